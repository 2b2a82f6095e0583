package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [all|pinned|most_played|recently_added]",
	Short: "List sounds in the catalog",
	Long: `List sounds, one page at a time.

The presets match the board's display modes:
  all             every sound, oldest first
  pinned          pinned sounds, by name
  most_played     by play count, highest first
  recently_added  newest first

Use --page to move through the pages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().IntP("page", "p", 1, "page number to show")
	listCmd.Flags().Int64("limit", 0, "cap the listing at this many sounds (0 = all)")
}

func runList(cmd *cobra.Command, args []string) error {
	kindArg := "all"
	if len(args) > 0 {
		kindArg = args[0]
	}
	kind, ok := catalog.ParseQueryKind(kindArg)
	if !ok || kind == catalog.QuerySearch {
		return fmt.Errorf("unknown listing %q (want all, pinned, most_played or recently_added)", kindArg)
	}

	page, _ := cmd.Flags().GetInt("page")
	if page < 1 {
		page = 1
	}
	limit, _ := cmd.Flags().GetInt64("limit")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	builder := store.Template(kind, "").
		PageLimit(pageSize()).
		Offset(int64(page-1) * pageSize())
	if limit > 0 {
		builder.Limit(limit)
	}

	return printPage(builder.Build(), kind, "")
}

// printPage renders one paginator page as a table plus a paging footer
func printPage(p *catalog.Paginator, kind catalog.QueryKind, search string) error {
	info, err := p.PageInfo()
	if err != nil {
		return fmt.Errorf("failed to count sounds: %w", err)
	}

	sounds, err := p.NextPage()
	if err != nil {
		return fmt.Errorf("failed to fetch page: %w", err)
	}

	if len(sounds) == 0 {
		util.InfoLog("Nothing to show.")
		return nil
	}

	title := kind.Title()
	if kind == catalog.QuerySearch {
		title = fmt.Sprintf("Search %q", search)
	}
	util.InfoLog("=== %s ===", title)

	for _, snd := range sounds {
		pin := " "
		if snd.Pinned {
			pin = "*"
		}
		line := fmt.Sprintf("%s #%-4d %-30s", pin, snd.ID, snd.Name)
		if len(snd.Tags) > 0 {
			line += fmt.Sprintf("  [%s]", snd.Tags.String())
		}
		fmt.Println(line)
		detail := fmt.Sprintf("        added %s", humanize.Time(snd.CreatedAt))
		if snd.AuthorName != "" {
			detail += fmt.Sprintf(" by %s", snd.AuthorName)
		}
		if snd.PlayCount > 0 {
			detail += fmt.Sprintf(", played %d times", snd.PlayCount)
			if snd.LastPlayedAt != nil {
				detail += fmt.Sprintf(" (last %s)", humanize.Time(*snd.LastPlayedAt))
			}
		}
		fmt.Println(detail)
	}

	fmt.Println()
	util.InfoLog("Page %d of %d (%d sounds)", info.CurPage, info.TotalPages, info.RowCount)
	if info.NextPage != nil {
		util.InfoLog("Next page: --page %d", info.CurPage+1)
	}
	return nil
}
