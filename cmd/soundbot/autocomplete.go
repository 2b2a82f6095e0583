package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete <partial>",
	Short: "Suggest sound names for a partial input",
	Long: `Print up to 25 sound names matching a partial input, ranked by
relevance. Inputs of fewer than three characters fall back to the
most recently added sounds. This backs the chat client's
as-you-type suggestions.`,
	Args: cobra.ExactArgs(1),
	RunE: runAutocomplete,
}

func init() {
	rootCmd.AddCommand(autocompleteCmd)

	autocompleteCmd.Flags().IntP("limit", "n", 25, "maximum number of suggestions")
	autocompleteCmd.Flags().Bool("allow-none", false, "offer NONE as a choice, for optional picks")
}

func runAutocomplete(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	allowNone, _ := cmd.Flags().GetBool("allow-none")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	names, err := store.Autocomplete(args[0], limit)
	if err != nil {
		return fmt.Errorf("autocomplete failed: %w", err)
	}

	if allowNone && strings.HasPrefix("none", strings.ToLower(args[0])) {
		names = append([]string{"NONE"}, names...)
		if len(names) > limit {
			names = names[:limit]
		}
	}

	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
