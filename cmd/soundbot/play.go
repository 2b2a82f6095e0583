package main

import (
	"fmt"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play <name-or-id>",
	Short: "Mark a sound as played and print its audio file",
	Long: `Resolve a sound, bump its play counter and print the path of its
audio file so it can be piped into a player:

  mpv "$(soundbot play airhorn)"`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

var randomCmd = &cobra.Command{
	Use:   "random",
	Short: "Play a random sound",
	Args:  cobra.NoArgs,
	RunE:  runRandom,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(randomCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	snd, err := mustFindSound(store, args[0])
	if err != nil {
		return err
	}

	return playSound(store, snd)
}

func runRandom(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	snd, err := store.RandomSound()
	if err != nil {
		return fmt.Errorf("failed to pick a sound: %w", err)
	}
	if snd == nil {
		return fmt.Errorf("the catalog is empty")
	}

	util.InfoLog("Picked %q", snd.Name)
	return playSound(store, snd)
}

func playSound(store *catalog.Store, snd *catalog.Sound) error {
	if err := store.IncrementPlayCount(snd.ID); err != nil {
		util.WarnLog("Failed to record play for %q: %v", snd.Name, err)
	}

	path, err := openAssets().Path(snd.AudioRef)
	if err != nil {
		return fmt.Errorf("sound %q has a broken audio reference: %w", snd.Name, err)
	}

	fmt.Println(path)
	return nil
}
