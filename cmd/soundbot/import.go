package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var importCmd = &cobra.Command{
	Use:   "import <dir>",
	Short: "Bulk-import a directory of mp3 files",
	Long: `Import every mp3 in a directory (recursively) into the catalog.

Each file is named after its title tag, falling back to the file name.
Files that already exist in the catalog, or that are not MPEG audio,
are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("tags", "t", "", "tags to attach to every imported sound")
	importCmd.Flags().String("author", "", "who added these sounds")
}

func runImport(cmd *cobra.Command, args []string) error {
	dir := args[0]
	tags, _ := cmd.Flags().GetString("tags")
	author, _ := cmd.Flags().GetString("author")

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".mp3") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", dir, err)
	}

	if len(files) == 0 {
		util.WarnLog("No mp3 files found under %s", dir)
		return nil
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	assets := openAssets()
	parsedTags := catalog.ParseTags(tags)

	var bar *progressbar.ProgressBar
	if !viper.GetBool("quiet") {
		bar = progressbar.Default(int64(len(files)), "importing")
	}

	added, skipped := 0, 0
	for _, path := range files {
		if bar != nil {
			bar.Add(1)
		}

		ref, title, err := assets.Ingest(path)
		if err != nil {
			util.WarnLog("Skipping %s: %v", path, err)
			skipped++
			continue
		}

		name := title
		if name == "" {
			base := filepath.Base(path)
			name = strings.TrimSuffix(base, filepath.Ext(base))
		}

		snd := &catalog.Sound{
			Name:       name,
			Tags:       parsedTags,
			AudioRef:   ref,
			AuthorName: author,
		}
		if err := store.InsertSound(snd); err != nil {
			if delErr := assets.DeleteAsset(ref); delErr != nil {
				util.WarnLog("Failed to clean up asset %s: %v", ref, delErr)
			}
			if errors.Is(err, util.ErrDuplicate) {
				util.WarnLog("Skipping %s: %q already exists", path, name)
			} else {
				util.WarnLog("Skipping %s: %v", path, err)
			}
			skipped++
			continue
		}
		added++
	}

	fmt.Println()
	util.SuccessLog("Imported %d sounds (%d skipped)", added, skipped)
	return nil
}
