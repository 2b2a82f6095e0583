package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var tagCmd = &cobra.Command{
	Use:   "tag <name-or-id> [tags...]",
	Short: "Replace the tags of a sound",
	Long: `Replace a sound's tags with the given list. With no tags the sound
is untagged. Tags keep their case but lose characters outside
letters, digits, dashes and underscores.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTag,
}

var renameCmd = &cobra.Command{
	Use:   "rename <name-or-id> <new-name>",
	Short: "Rename a sound",
	Args:  cobra.ExactArgs(2),
	RunE:  runRename,
}

func init() {
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(renameCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	snd, err := mustFindSound(store, args[0])
	if err != nil {
		return err
	}

	snd.Tags = catalog.ParseTags(strings.Join(args[1:], " "))
	if err := store.UpdateSound(snd); err != nil {
		return fmt.Errorf("failed to update %q: %w", snd.Name, err)
	}

	if len(snd.Tags) == 0 {
		util.SuccessLog("Cleared tags of %q", snd.Name)
	} else {
		util.SuccessLog("Tagged %q with [%s]", snd.Name, snd.Tags.String())
	}
	return nil
}

func runRename(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	snd, err := mustFindSound(store, args[0])
	if err != nil {
		return err
	}

	oldName := snd.Name
	snd.Name = strings.TrimSpace(args[1])
	if snd.Name == "" {
		return fmt.Errorf("the new name must not be empty")
	}

	if err := store.UpdateSound(snd); err != nil {
		if errors.Is(err, util.ErrDuplicate) {
			return fmt.Errorf("a sound named %q already exists", snd.Name)
		}
		return fmt.Errorf("failed to rename %q: %w", oldName, err)
	}

	util.SuccessLog("Renamed %q to %q", oldName, snd.Name)
	return nil
}
