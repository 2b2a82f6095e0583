package main

import (
	"fmt"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search the catalog",
	Long: `Search sounds by name and tags.

Matching is fuzzy: case and accents are ignored and any word of three
or more letters matches as a substring, so "wars" finds "Star-Wars!".`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntP("page", "p", 1, "page number to show")
}

func runSearch(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		page = 1
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	p := store.Template(catalog.QuerySearch, text).
		PageLimit(pageSize()).
		Offset(int64(page-1) * pageSize()).
		Build()

	if err := printPage(p, catalog.QuerySearch, text); err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return nil
}
