package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/franz/soundbot/internal/catalog"
)

// ButtonStyle maps onto the platform's button styles
type ButtonStyle int

const (
	StylePrimary ButtonStyle = iota
	StyleSuccess
	StyleSecondary
)

const (
	// MaxLabelLen is the platform ceiling on button labels
	MaxLabelLen = 80

	// RowSize is how many buttons fit on one grid row
	RowSize = 5

	// MaxGridButtons is the platform ceiling on components per message,
	// minus the row reserved for pagination controls
	MaxGridButtons = 20
)

// Button is one renderable UI element: a label, the opaque token delivered
// back when it is clicked, and a style. The platform collaborator turns
// these into actual components.
type Button struct {
	Label    string
	Token    string
	Style    ButtonStyle
	Disabled bool
}

// Row is one grid row of buttons
type Row []Button

// Message is a renderable sound display: a title plus button rows
type Message struct {
	Title string
	Rows  []Row
}

// TruncateLabel bounds a label to the platform maximum, marking the cut
func TruncateLabel(label string) string {
	if len(label) <= MaxLabelLen {
		return label
	}
	return label[:MaxLabelLen-3] + "..."
}

// SoundRows chunks sounds into grid rows of play buttons.
// Pinned sounds get the success style.
func SoundRows(sounds []*catalog.Sound) []Row {
	var rows []Row

	for start := 0; start < len(sounds); start += RowSize {
		end := start + RowSize
		if end > len(sounds) {
			end = len(sounds)
		}

		row := make(Row, 0, end-start)
		for _, snd := range sounds[start:end] {
			style := StylePrimary
			if snd.Pinned {
				style = StyleSuccess
			}
			row = append(row, Button{
				Label: TruncateLabel(snd.Name),
				Token: Encode(PlaySound{ID: snd.ID}),
				Style: style,
			})
		}
		rows = append(rows, row)
	}

	return rows
}

// PaginateRow builds the first/prev/next/last control row for the given
// page window. Controls whose offset is nil render disabled with a zero
// offset, so a stray click on a disabled-but-delivered control is harmless.
func PaginateRow(kind catalog.QueryKind, info *catalog.PageInfo, search string) Row {
	search = clampSearch(kind, search)

	control := func(label string, dir Direction, offset *int64) Button {
		var off int64
		if offset != nil {
			off = *offset
		}
		return Button{
			Label:    label,
			Token:    Encode(Paginate{Kind: kind, Dir: dir, Offset: off, Search: search}),
			Style:    StyleSecondary,
			Disabled: offset == nil,
		}
	}

	return Row{
		control("<<", First, info.FirstPage),
		control("<", Prev, info.PrevPage),
		control(">", Next, info.NextPage),
		control(">>", Last, info.LastPage),
	}
}

// ControlRows builds the preset select menu and the search/random buttons
func ControlRows(selected catalog.QueryKind) []Row {
	menu := Row{}
	for _, kind := range []catalog.QueryKind{
		catalog.QueryAll, catalog.QueryPinned, catalog.QueryRecentlyAdded, catalog.QueryMostPlayed,
	} {
		menu = append(menu, Button{
			Label:    TruncateLabel(kind.Title()),
			Token:    Encode(SelectDisplay{Kind: kind}),
			Style:    StyleSecondary,
			Disabled: kind == selected,
		})
	}

	return []Row{
		menu,
		{
			Button{Label: "Search", Token: Encode(OpenSearch{}), Style: StyleSecondary},
			Button{Label: "Play Random", Token: Encode(PlayRandom{}), Style: StyleSecondary},
		},
	}
}

// DisplayTitle renders the heading for a page window
func DisplayTitle(kind catalog.QueryKind, info *catalog.PageInfo, search string) string {
	if kind == catalog.QuerySearch {
		return fmt.Sprintf("%s `%s` (page %d of %d)", kind.Title(), search, info.CurPage, info.TotalPages)
	}
	return fmt.Sprintf("%s (page %d of %d)", kind.Title(), info.CurPage, info.TotalPages)
}

// BuildDisplay assembles the full display message for one page window:
// title, play-button grid, pagination controls. The page info is computed
// before the page query advances the paginator's offset.
func BuildDisplay(p *catalog.Paginator, kind catalog.QueryKind, search string) (*Message, error) {
	info, err := p.PageInfo()
	if err != nil {
		return nil, err
	}

	sounds, err := p.NextPage()
	if err != nil {
		return nil, err
	}
	if len(sounds) > MaxGridButtons {
		sounds = sounds[:MaxGridButtons]
	}

	rows := SoundRows(sounds)
	rows = append(rows, PaginateRow(kind, info, search))

	return &Message{
		Title: DisplayTitle(kind, info, search),
		Rows:  rows,
	}, nil
}

// clampSearch trims search text until the longest paginate token it can
// appear in fits the platform token ceiling
func clampSearch(kind catalog.QueryKind, search string) string {
	if kind != catalog.QuerySearch {
		return ""
	}

	for search != "" {
		token := Encode(Paginate{Kind: kind, Dir: First, Offset: 1<<31 - 1, Search: search})
		if len(token) <= MaxTokenLen {
			break
		}
		_, size := utf8.DecodeLastRuneInString(search)
		search = search[:len(search)-size]
	}

	return search
}
