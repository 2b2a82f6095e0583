package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/franz/soundbot/internal/util"
)

// Order is a sort direction
type Order int

const (
	Asc Order = iota
	Desc
)

// SQL returns the ORDER BY keyword for the direction
func (o Order) SQL() string {
	if o == Desc {
		return "DESC"
	}
	return "ASC"
}

// Inverse flips the direction
func (o Order) Inverse() Order {
	if o == Desc {
		return Asc
	}
	return Desc
}

// Column is a sortable sounds column
type Column int

const (
	ColID Column = iota
	ColName
	ColCreatedAt
	ColPlayCount
)

// SQL returns the column name
func (c Column) SQL() string {
	switch c {
	case ColName:
		return "name"
	case ColCreatedAt:
		return "created_at"
	case ColPlayCount:
		return "play_count"
	default:
		return "id"
	}
}

// OrderBy pairs a column with a direction
type OrderBy struct {
	Column Column
	Order  Order
}

// SQL renders the ORDER BY clause body
func (ob OrderBy) SQL() string {
	return ob.Column.SQL() + " " + ob.Order.SQL()
}

// Inverse flips the direction, keeping the column
func (ob OrderBy) Inverse() OrderBy {
	return OrderBy{Column: ob.Column, Order: ob.Order.Inverse()}
}

// PageInfo carries everything needed to render pagination controls for the
// current window. Nil offsets mean the corresponding control is disabled.
type PageInfo struct {
	RowCount   int64
	TotalPages int64
	CurPage    int64
	FirstPage  *int64
	PrevPage   *int64
	NextPage   *int64
	LastPage   *int64
}

// Paginator executes one bounded catalog query per NextPage call and tracks
// the window offset. Instances are cheap and single-use: every stateless
// request rebuilds one from its decoded cursor.
type Paginator struct {
	db        *sql.DB
	orderBy   OrderBy
	pageLimit int64
	offset    int64
	ftsFilter string
	hasFTS    bool
	pinned    *bool
	limit     *int64 // cap on the total number of rows considered
	reverse   bool   // run inverse sort, then re-sort the page back
}

// Same column list as soundColumns but qualified for the FTS join, where
// both sides carry name and tags.
const pagedColumns = `s.id, s.name, COALESCE(s.tags, ''), s.audio_file, s.created_at,
	COALESCE(s.author_id, ''), COALESCE(s.author_name, ''), COALESCE(s.author_global_name, ''),
	s.play_count, s.last_played_at, s.popularity, s.pinned`

// Offset reports the paginator's current offset
func (p *Paginator) Offset() int64 {
	return p.offset
}

// PageLimit reports the configured page size
func (p *Paginator) PageLimit() int64 {
	return p.pageLimit
}

func (p *Paginator) whereClause() (string, []any) {
	var (
		conds  []string
		params []any
	)

	if p.hasFTS {
		conds = append(conds, "fts.sounds_fts MATCH ?")
		params = append(params, p.ftsFilter)
	}
	if p.pinned != nil {
		conds = append(conds, "s.pinned = ?")
		params = append(params, *p.pinned)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), params
}

func (p *Paginator) fromClause() string {
	if p.hasFTS {
		return "FROM sounds s INNER JOIN sounds_fts fts ON s.id = fts.rowid"
	}
	return "FROM sounds s"
}

// NextPage runs one bounded query and advances the offset by the number of
// rows actually returned, which matters on a short final page.
func (p *Paginator) NextPage() ([]*Sound, error) {
	pageLimit := p.pageLimit

	if p.limit != nil {
		limit := *p.limit
		if pageLimit > limit {
			util.WarnLog("page limit %d exceeds total limit %d, adjusting", pageLimit, limit)
			pageLimit = limit
		}
		if p.offset >= limit {
			return nil, nil
		}
		if p.offset+pageLimit > limit {
			pageLimit = limit - p.offset
		}
	}

	// An empty filter after escaping means nothing searchable was entered:
	// zero rows, not an error.
	if p.hasFTS && p.ftsFilter == "" {
		return nil, nil
	}

	where, params := p.whereClause()
	query := fmt.Sprintf(
		"SELECT %s %s %s ORDER BY %s LIMIT %d OFFSET %d",
		pagedColumns, p.fromClause(), where, p.orderBy.SQL(), pageLimit, p.offset)

	if p.reverse {
		query = fmt.Sprintf(
			"SELECT * FROM (%s) ORDER BY %s", query, p.orderBy.Inverse().SQL())
	}

	rows, err := p.db.Query(query, params...)
	if err != nil {
		return nil, fmt.Errorf("paginator query failed: %w", err)
	}
	defer rows.Close()

	var sounds []*Sound
	for rows.Next() {
		snd, err := scanSound(rows)
		if err != nil {
			return nil, fmt.Errorf("paginator scan failed: %w", err)
		}
		sounds = append(sounds, snd)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("paginator rows failed: %w", err)
	}

	p.offset += int64(len(sounds))

	return sounds, nil
}

// RowCount returns the total number of rows matching the filters, truncated
// to the total-limit cap when one is set.
func (p *Paginator) RowCount() (int64, error) {
	if p.hasFTS && p.ftsFilter == "" {
		return 0, nil
	}

	where, params := p.whereClause()
	query := fmt.Sprintf("SELECT COUNT(*) %s %s", p.fromClause(), where)

	var count int64
	if err := p.db.QueryRow(query, params...).Scan(&count); err != nil {
		return 0, fmt.Errorf("row count query failed: %w", err)
	}

	if p.limit != nil && count > *p.limit {
		count = *p.limit
	}

	return count, nil
}

// PageInfo computes the page window and the four navigation offsets for the
// current offset. TotalPages floor-divides on purpose: a short final page is
// counted as part of page TotalPages, which the navigation math and the
// rendered titles both rely on.
func (p *Paginator) PageInfo() (*PageInfo, error) {
	rowCount, err := p.RowCount()
	if err != nil {
		return nil, err
	}

	info := &PageInfo{
		RowCount:   rowCount,
		TotalPages: rowCount / p.pageLimit,
	}
	if rowCount > 0 {
		info.CurPage = p.offset/p.pageLimit + 1
	}

	if rowCount > 0 && p.offset >= p.pageLimit {
		first := int64(0)
		info.FirstPage = &first
	}

	last := (info.TotalPages - 1) * p.pageLimit
	if rowCount > 0 && p.offset < last {
		info.LastPage = &last
	}

	if prev := p.offset - p.pageLimit; prev >= 0 {
		info.PrevPage = &prev
	}

	if next := p.offset + p.pageLimit; next < rowCount {
		info.NextPage = &next
	}

	return info, nil
}

// PaginatorBuilder assembles a Paginator. Defaults: order by id ascending,
// page limit 500, offset 0, no filters.
type PaginatorBuilder struct {
	paginator Paginator
}

// NewPaginator starts a builder against the given database
func NewPaginator(db *sql.DB) *PaginatorBuilder {
	return &PaginatorBuilder{
		paginator: Paginator{
			db:        db,
			orderBy:   OrderBy{Column: ColID, Order: Asc},
			pageLimit: 500,
		},
	}
}

// OrderBy sets the sort column and direction
func (b *PaginatorBuilder) OrderBy(ob OrderBy) *PaginatorBuilder {
	b.paginator.orderBy = ob
	return b
}

// PageLimit sets the page size
func (b *PaginatorBuilder) PageLimit(limit int64) *PaginatorBuilder {
	if limit > 0 {
		b.paginator.pageLimit = limit
	}
	return b
}

// Offset sets the starting offset
func (b *PaginatorBuilder) Offset(offset int64) *PaginatorBuilder {
	if offset > 0 {
		b.paginator.offset = offset
	}
	return b
}

// FTSFilter restricts results to rows whose shadow entry matches the given
// prepared FTS query (see PrepareSearch)
func (b *PaginatorBuilder) FTSFilter(filter string) *PaginatorBuilder {
	b.paginator.ftsFilter = filter
	b.paginator.hasFTS = true
	return b
}

// Pinned restricts results to pinned (or unpinned) sounds
func (b *PaginatorBuilder) Pinned(pinned bool) *PaginatorBuilder {
	b.paginator.pinned = &pinned
	return b
}

// Limit caps the total number of rows the paginator will ever consider,
// truncating the logical table before counting
func (b *PaginatorBuilder) Limit(limit int64) *PaginatorBuilder {
	b.paginator.limit = &limit
	return b
}

// Reverse makes each page show the window of the configured sort order,
// re-sorted back into the opposite order. Used for "last N in natural
// order" displays without a preceding count query.
func (b *PaginatorBuilder) Reverse(reverse bool) *PaginatorBuilder {
	b.paginator.reverse = reverse
	return b
}

// Build returns the assembled paginator
func (b *PaginatorBuilder) Build() *Paginator {
	p := b.paginator
	return &p
}
