package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/franz/soundbot/internal/audiostore"
	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the catalog and audio directory",
	Long: `Run diagnostic checks to ensure the soundboard is healthy.

This command checks:
- SQLite version and database integrity
- Search index consistency with the catalog
- Audio files the catalog references but that are missing on disk
- Audio files on disk that no catalog entry references

With --fix the search index is rebuilt when it has drifted.
With --watch the asset checks re-run whenever the audio directory
changes.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().Bool("fix", false, "rebuild the search index if it has drifted")
	doctorCmd.Flags().BoolP("watch", "w", false, "keep running and re-check on audio directory changes")
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	fix, _ := cmd.Flags().GetBool("fix")
	watch, _ := cmd.Flags().GetBool("watch")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	assets := openAssets()

	util.InfoLog("=== Soundbot Doctor ===")
	util.InfoLog("")

	results := []checkResult{checkSQLite()}
	results = append(results, checkIntegrity(store))
	results = append(results, checkShadow(store, fix))
	results = append(results, checkAssets(store, assets)...)

	if err := printResults(results); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	return watchAssets(store, assets)
}

func printResults(results []checkResult) error {
	util.InfoLog("")
	util.InfoLog("=== Diagnostic Results ===")
	util.InfoLog("")

	hasErrors := false
	hasWarnings := false

	for _, r := range results {
		symbol := "✓"
		if r.error {
			symbol = "✗"
			hasErrors = true
		} else if r.warning {
			symbol = "⚠"
			hasWarnings = true
		}

		line := fmt.Sprintf("[%s] %s", symbol, r.name)
		if r.message != "" {
			line += fmt.Sprintf(": %s", r.message)
		}

		if r.error {
			util.ErrorLog("%s", line)
		} else if r.warning {
			util.WarnLog("%s", line)
		} else {
			util.SuccessLog("%s", line)
		}
	}

	util.InfoLog("")
	if hasErrors {
		util.ErrorLog("Some checks failed. Resolve the errors above.")
		return fmt.Errorf("diagnostics failed")
	}
	if hasWarnings {
		util.WarnLog("Some checks produced warnings. Review them before proceeding.")
	} else {
		util.SuccessLog("All checks passed.")
	}
	return nil
}

func checkSQLite() checkResult {
	return checkResult{
		name:    "SQLite",
		message: fmt.Sprintf("version %s", catalog.SQLiteVersion()),
	}
}

func checkIntegrity(store *catalog.Store) checkResult {
	if err := store.CheckIntegrity(); err != nil {
		return checkResult{name: "Database integrity", message: err.Error(), error: true}
	}
	count, err := store.CountSounds()
	if err != nil {
		return checkResult{name: "Database integrity", message: err.Error(), error: true}
	}
	return checkResult{
		name:    "Database integrity",
		message: fmt.Sprintf("ok, %d sounds", count),
	}
}

// checkShadow compares the search index row count with the catalog and
// optionally rebuilds the index from scratch
func checkShadow(store *catalog.Store, fix bool) checkResult {
	sounds, err := store.CountSounds()
	if err != nil {
		return checkResult{name: "Search index", message: err.Error(), error: true}
	}
	shadow, err := store.ShadowCount()
	if err != nil {
		return checkResult{name: "Search index", message: err.Error(), error: true}
	}

	if shadow == sounds {
		return checkResult{name: "Search index", message: "in sync"}
	}

	drift := fmt.Sprintf("%d indexed vs %d sounds", shadow, sounds)
	if !fix {
		return checkResult{
			name:    "Search index",
			message: drift + " (run with --fix to rebuild)",
			warning: true,
		}
	}

	if err := store.RebuildShadow(); err != nil {
		return checkResult{name: "Search index", message: err.Error(), error: true}
	}
	return checkResult{name: "Search index", message: drift + ", rebuilt"}
}

// checkAssets cross-references catalog audio refs with the files on disk
func checkAssets(store *catalog.Store, assets *audiostore.Store) []checkResult {
	refs, err := store.AudioRefs()
	if err != nil {
		return []checkResult{{name: "Audio files", message: err.Error(), error: true}}
	}

	var results []checkResult

	missing := 0
	for name, ref := range refs {
		if !assets.Exists(ref) {
			util.WarnLog("Sound %q references missing file %s", name, ref)
			missing++
		}
	}
	if missing > 0 {
		results = append(results, checkResult{
			name:    "Referenced audio",
			message: fmt.Sprintf("%d of %d files missing", missing, len(refs)),
			error:   true,
		})
	} else {
		results = append(results, checkResult{
			name:    "Referenced audio",
			message: fmt.Sprintf("all %d files present", len(refs)),
		})
	}

	stored, err := assets.List()
	if err != nil {
		results = append(results, checkResult{name: "Orphaned audio", message: err.Error(), error: true})
		return results
	}

	referenced := make(map[string]bool, len(refs))
	for _, ref := range refs {
		referenced[ref] = true
	}

	orphans := 0
	for _, ref := range stored {
		if !referenced[ref] {
			util.WarnLog("File %s is not referenced by any sound", ref)
			orphans++
		}
	}
	if orphans > 0 {
		results = append(results, checkResult{
			name:    "Orphaned audio",
			message: fmt.Sprintf("%d unreferenced files", orphans),
			warning: true,
		})
	} else {
		results = append(results, checkResult{name: "Orphaned audio", message: "none"})
	}

	return results
}

// watchAssets re-runs the asset checks whenever the audio directory changes
func watchAssets(store *catalog.Store, assets *audiostore.Store) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	dir := viper.GetString("audio_dir")
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	util.InfoLog("Watching %s for changes (ctrl-c to stop)", dir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			util.InfoLog("")
			util.InfoLog("Change detected: %s", event)
			printResults(checkAssets(store, assets))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.WarnLog("Watcher error: %v", err)

		case <-sig:
			util.InfoLog("Stopping watcher")
			return nil
		}
	}
}
