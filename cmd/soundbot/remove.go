package main

import (
	"fmt"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:   "remove <name-or-id>",
	Short: "Remove a sound from the catalog",
	Long: `Remove a sound and its audio file.

The audio file is deleted on a best-effort basis: if it is already gone
the catalog entry is still removed.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	snd, err := mustFindSound(store, args[0])
	if err != nil {
		return err
	}

	assetErr, err := store.DeleteSound(catalog.ByID(snd.ID), openAssets())
	if err != nil {
		return fmt.Errorf("failed to remove sound %q: %w", snd.Name, err)
	}
	if assetErr != nil {
		util.WarnLog("Audio file %s could not be deleted: %v", snd.AudioRef, assetErr)
	}

	util.SuccessLog("Removed sound #%d %q", snd.ID, snd.Name)
	return nil
}
