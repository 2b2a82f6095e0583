package catalog

import "fmt"

// QueryKind names one of the fixed browsing presets. It is a closed set:
// the one switch in Template is the only place presets become queries.
type QueryKind int

const (
	QueryAll QueryKind = iota
	QueryPinned
	QueryMostPlayed
	QueryRecentlyAdded
	QuerySearch
)

// String returns the stable wire name of the preset, used inside
// component tokens
func (k QueryKind) String() string {
	switch k {
	case QueryPinned:
		return "pinned"
	case QueryMostPlayed:
		return "most_played"
	case QueryRecentlyAdded:
		return "recently_added"
	case QuerySearch:
		return "search"
	default:
		return "all"
	}
}

// Title returns the human heading for the preset
func (k QueryKind) Title() string {
	switch k {
	case QueryPinned:
		return "Pinned Sounds"
	case QueryMostPlayed:
		return "Most Played Sounds"
	case QueryRecentlyAdded:
		return "Recently Added Sounds"
	case QuerySearch:
		return "Search Results"
	default:
		return "All Sounds"
	}
}

// ParseQueryKind maps a wire name back to its preset
func ParseQueryKind(s string) (QueryKind, bool) {
	switch s {
	case "all":
		return QueryAll, true
	case "pinned":
		return QueryPinned, true
	case "most_played":
		return QueryMostPlayed, true
	case "recently_added":
		return QueryRecentlyAdded, true
	case "search":
		return QuerySearch, true
	}
	return QueryAll, false
}

// Template builds the preset paginator for a query kind. The search
// argument is raw user text and is only consulted for QuerySearch, where it
// is escaped via PrepareSearch before it reaches the FTS layer.
//
// Sort strategies are fixed per preset. RecentlyAdded uses the reverse-page
// trick (inverse sort, flipped back) so the newest window reads oldest
// first without a count round trip.
func (s *Store) Template(kind QueryKind, search string) *PaginatorBuilder {
	b := NewPaginator(s.db)

	switch kind {
	case QueryPinned:
		b.OrderBy(OrderBy{Column: ColName, Order: Asc}).Pinned(true)
	case QueryMostPlayed:
		b.OrderBy(OrderBy{Column: ColPlayCount, Order: Desc})
	case QueryRecentlyAdded:
		b.OrderBy(OrderBy{Column: ColCreatedAt, Order: Desc}).Reverse(true)
	case QuerySearch:
		b.OrderBy(OrderBy{Column: ColID, Order: Asc}).FTSFilter(PrepareSearch(search))
	case QueryAll:
		b.OrderBy(OrderBy{Column: ColID, Order: Asc})
	default:
		panic(fmt.Sprintf("unhandled query kind %d", kind))
	}

	return b
}
