package main

import (
	"errors"
	"fmt"

	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin <name>",
	Short: "Pin a sound to the board's pinned view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPinned(args[0], true)
	},
}

var unpinCmd = &cobra.Command{
	Use:   "unpin <name>",
	Short: "Remove a sound from the pinned view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPinned(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(unpinCmd)
}

func setPinned(name string, pinned bool) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetPinned(name, pinned); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return fmt.Errorf("no sound named %q", name)
		}
		return err
	}

	if pinned {
		util.SuccessLog("Pinned %q", name)
	} else {
		util.SuccessLog("Unpinned %q", name)
	}
	return nil
}
