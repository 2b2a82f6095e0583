package main

import (
	"fmt"

	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change board settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <join|leave> <sound-name|none>",
	Short: "Set the join or leave sound",
	Long: `Set the sound played when someone joins or leaves the channel.
Use "none" to disable it.`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	settings, err := store.Settings()
	if err != nil {
		return err
	}

	showSoundSetting := func(label, name string) {
		if name == "" {
			util.InfoLog("%s: (disabled)", label)
		} else {
			util.InfoLog("%s: %s", label, name)
		}
	}

	showSoundSetting("Join sound ", settings.JoinSound)
	showSoundSetting("Leave sound", settings.LeaveSound)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	which, value := args[0], args[1]
	if which != "join" && which != "leave" {
		return fmt.Errorf("unknown setting %q (want join or leave)", which)
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if value == "none" {
		value = ""
	} else {
		// Only existing sounds can be configured
		if _, err := mustFindSound(store, value); err != nil {
			return err
		}
	}

	settings, err := store.Settings()
	if err != nil {
		return err
	}

	if which == "join" {
		settings.JoinSound = value
	} else {
		settings.LeaveSound = value
	}

	if err := store.UpdateSettings(settings); err != nil {
		return err
	}

	if value == "" {
		util.SuccessLog("Disabled the %s sound", which)
	} else {
		util.SuccessLog("Set the %s sound to %q", which, value)
	}
	return nil
}
