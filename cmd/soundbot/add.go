package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/fetch"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a sound to the catalog",
	Long: `Add a sound from a local file or a remote URL.

The audio must be MPEG (mp3). The file is validated, copied into the
audio directory and registered in the catalog under the given name.
When no name is given, the embedded title tag is used, falling back to
the file name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringP("file", "f", "", "local audio file to add")
	addCmd.Flags().StringP("url", "u", "", "remote audio file to download and add")
	addCmd.Flags().StringP("tags", "t", "", "space-separated tags")
	addCmd.Flags().String("author", "", "who added this sound")
}

func runAdd(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	url, _ := cmd.Flags().GetString("url")
	tags, _ := cmd.Flags().GetString("tags")
	author, _ := cmd.Flags().GetString("author")

	if (file == "") == (url == "") {
		return fmt.Errorf("exactly one of --file or --url is required")
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	assets := openAssets()

	source := file
	if url != "" {
		util.InfoLog("Downloading %s", url)
		fetcher := fetch.New(os.TempDir())
		tmp, err := fetcher.Download(context.Background(), url)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		source = tmp
	}

	ref, title, err := assets.Ingest(source)
	if err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = strings.TrimSpace(args[0])
	}
	if name == "" {
		name = title
	}
	if name == "" && file != "" {
		base := filepath.Base(file)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if name == "" {
		if delErr := assets.DeleteAsset(ref); delErr != nil {
			util.WarnLog("Failed to clean up asset %s: %v", ref, delErr)
		}
		return fmt.Errorf("no name given and none found in the file; pass one explicitly")
	}

	snd := &catalog.Sound{
		Name:       name,
		Tags:       catalog.ParseTags(tags),
		AudioRef:   ref,
		AuthorName: author,
	}
	if err := store.InsertSound(snd); err != nil {
		// Don't leave the freshly stored asset orphaned
		if delErr := assets.DeleteAsset(ref); delErr != nil {
			util.WarnLog("Failed to clean up asset %s: %v", ref, delErr)
		}
		if errors.Is(err, util.ErrDuplicate) {
			return fmt.Errorf("a sound named %q (or with this file) already exists", name)
		}
		return err
	}

	util.SuccessLog("Added sound #%d %q", snd.ID, snd.Name)
	if len(snd.Tags) > 0 {
		util.InfoLog("  Tags: %s", snd.Tags.String())
	}
	util.InfoLog("  Audio: %s", ref)
	return nil
}
