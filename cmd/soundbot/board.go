package main

import (
	"fmt"
	"strings"

	"github.com/franz/soundbot/internal/catalog"
	"github.com/franz/soundbot/internal/ui"
	"github.com/franz/soundbot/internal/util"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board [all|pinned|most_played|recently_added|search]",
	Short: "Render the soundboard message",
	Long: `Render the soundboard exactly as the chat client would show it: a
grid of sound buttons plus the paging and display controls.

Every button carries an action token. Use --tokens to print them and
'soundbot press <token>' to simulate pressing a button.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBoard,
}

var pressCmd = &cobra.Command{
	Use:   "press <token>",
	Short: "Simulate pressing a board button",
	Long: `Decode an action token and perform it: play the sound, switch the
display mode or move to another page. Tokens from other applications
are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runPress,
}

func init() {
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(pressCmd)

	boardCmd.Flags().String("search", "", "search text (implies the search display)")
	boardCmd.Flags().Int64("offset", 0, "row offset to start the page at")
	boardCmd.Flags().Bool("tokens", false, "print each button's action token")
}

func runBoard(cmd *cobra.Command, args []string) error {
	search, _ := cmd.Flags().GetString("search")
	offset, _ := cmd.Flags().GetInt64("offset")
	showTokens, _ := cmd.Flags().GetBool("tokens")

	kind := catalog.QueryAll
	if len(args) > 0 {
		var ok bool
		kind, ok = catalog.ParseQueryKind(args[0])
		if !ok {
			return fmt.Errorf("unknown display %q", args[0])
		}
	}
	if search != "" {
		kind = catalog.QuerySearch
	}
	if kind == catalog.QuerySearch && search == "" {
		return fmt.Errorf("the search display needs --search")
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	return renderBoard(store, kind, search, offset, showTokens)
}

func renderBoard(store *catalog.Store, kind catalog.QueryKind, search string, offset int64, showTokens bool) error {
	p := store.Template(kind, search).
		PageLimit(pageSize()).
		Offset(offset).
		Build()

	msg, err := ui.BuildDisplay(p, kind, search)
	if err != nil {
		return fmt.Errorf("failed to build the board: %w", err)
	}

	fmt.Printf("== %s ==\n", msg.Title)
	for _, row := range append(msg.Rows, ui.ControlRows(kind)...) {
		var cells []string
		for _, btn := range row {
			label := btn.Label
			if btn.Disabled {
				label = "·" + label + "·"
			} else if btn.Style == ui.StyleSuccess {
				label = "*" + label
			}
			cells = append(cells, "["+label+"]")
		}
		fmt.Println(strings.Join(cells, " "))
		if showTokens {
			for _, btn := range row {
				if !btn.Disabled {
					fmt.Printf("    %-20s %s\n", btn.Label, btn.Token)
				}
			}
		}
	}
	return nil
}

func runPress(cmd *cobra.Command, args []string) error {
	action, err := ui.Decode(args[0])
	if err != nil {
		return fmt.Errorf("broken action token: %w", err)
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	switch a := action.(type) {
	case ui.PlaySound:
		snd, err := store.FindSound(catalog.ByID(a.ID))
		if err != nil {
			return err
		}
		if snd == nil {
			return fmt.Errorf("sound #%d is gone", a.ID)
		}
		return playSound(store, snd)

	case ui.PlayRandom:
		snd, err := store.RandomSound()
		if err != nil {
			return err
		}
		if snd == nil {
			return fmt.Errorf("the catalog is empty")
		}
		util.InfoLog("Picked %q", snd.Name)
		return playSound(store, snd)

	case ui.OpenSearch:
		util.InfoLog("This button opens the search prompt; try 'soundbot board search --search <text>'")
		return nil

	case ui.SelectDisplay:
		return renderBoard(store, a.Kind, "", 0, false)

	case ui.Paginate:
		return renderBoard(store, a.Kind, a.Search, a.Offset, false)

	case ui.Unknown:
		util.WarnLog("Token %q belongs to another application; ignoring", a.Raw)
		return nil

	default:
		return fmt.Errorf("unhandled action %T", action)
	}
}
