package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/franz/soundbot/internal/catalog"
)

func newTestCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(filepath.Join(t.TempDir(), "ui-test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func seedSounds(t *testing.T, store *catalog.Store, names ...string) {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, name := range names {
		snd := &catalog.Sound{
			Name:      name,
			AudioRef:  name + ".mp3",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.InsertSound(snd); err != nil {
			t.Fatalf("failed to insert %q: %v", name, err)
		}
	}
}

func TestTruncateLabel(t *testing.T) {
	if got := TruncateLabel("short"); got != "short" {
		t.Errorf("TruncateLabel(short) = %q", got)
	}

	long := strings.Repeat("x", 100)
	got := TruncateLabel(long)
	if len(got) != MaxLabelLen {
		t.Errorf("truncated label length = %d, want %d", len(got), MaxLabelLen)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated label %q missing ellipsis", got)
	}
}

func TestSoundRowsChunkingAndStyles(t *testing.T) {
	sounds := make([]*catalog.Sound, 12)
	for i := range sounds {
		sounds[i] = &catalog.Sound{ID: int64(i + 1), Name: "snd"}
	}
	sounds[3].Pinned = true

	rows := SoundRows(sounds)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows for 12 sounds, got %d", len(rows))
	}
	if len(rows[0]) != 5 || len(rows[1]) != 5 || len(rows[2]) != 2 {
		t.Errorf("row sizes = %d/%d/%d, want 5/5/2", len(rows[0]), len(rows[1]), len(rows[2]))
	}

	if rows[0][3].Style != StyleSuccess {
		t.Error("expected pinned sound to use the success style")
	}
	if rows[0][0].Style != StylePrimary {
		t.Error("expected unpinned sound to use the primary style")
	}

	action, err := Decode(rows[1][0].Token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if play, ok := action.(PlaySound); !ok || play.ID != 6 {
		t.Errorf("expected button 6 to play sound 6, got %#v", action)
	}
}

func TestPaginateRowBoundaries(t *testing.T) {
	next := int64(2)
	last := int64(4)
	info := &catalog.PageInfo{RowCount: 5, TotalPages: 2, CurPage: 1, NextPage: &next, LastPage: &last}

	row := PaginateRow(catalog.QueryAll, info, "")
	if len(row) != 4 {
		t.Fatalf("expected 4 controls, got %d", len(row))
	}

	if !row[0].Disabled || !row[1].Disabled {
		t.Error("expected first/prev to be disabled on page 1")
	}
	if row[2].Disabled || row[3].Disabled {
		t.Error("expected next/last to be enabled")
	}

	action, err := Decode(row[2].Token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	pg, ok := action.(Paginate)
	if !ok {
		t.Fatalf("expected Paginate, got %#v", action)
	}
	if pg.Kind != catalog.QueryAll || pg.Dir != Next || pg.Offset != 2 {
		t.Errorf("next control = %+v, want all/next/2", pg)
	}
}

func TestPaginateRowClampsLongSearch(t *testing.T) {
	info := &catalog.PageInfo{RowCount: 100, TotalPages: 4, CurPage: 1}

	row := PaginateRow(catalog.QuerySearch, info, strings.Repeat("löng search ", 30))
	for _, btn := range row {
		if len(btn.Token) > MaxTokenLen {
			t.Errorf("token %q exceeds %d bytes", btn.Token, MaxTokenLen)
		}
		if _, err := Decode(btn.Token); err != nil {
			t.Errorf("clamped token %q does not decode: %v", btn.Token, err)
		}
	}
}

func TestControlRows(t *testing.T) {
	rows := ControlRows(catalog.QueryPinned)
	if len(rows) != 2 {
		t.Fatalf("expected menu plus action row, got %d rows", len(rows))
	}

	var sawSelected bool
	for _, btn := range rows[0] {
		action, err := Decode(btn.Token)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		sel, ok := action.(SelectDisplay)
		if !ok {
			t.Fatalf("expected SelectDisplay, got %#v", action)
		}
		if sel.Kind == catalog.QueryPinned {
			sawSelected = true
			if !btn.Disabled {
				t.Error("expected the active preset to be disabled")
			}
		}
	}
	if !sawSelected {
		t.Error("expected the pinned preset in the menu")
	}
}

func TestBuildDisplay(t *testing.T) {
	store := newTestCatalog(t)
	seedSounds(t, store, "one", "two", "three")

	p := store.Template(catalog.QueryAll, "").PageLimit(2).Build()
	msg, err := BuildDisplay(p, catalog.QueryAll, "")
	if err != nil {
		t.Fatalf("build display failed: %v", err)
	}

	if msg.Title != "All Sounds (page 1 of 1)" {
		t.Errorf("title = %q", msg.Title)
	}

	// One sound row plus the pagination row
	if len(msg.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(msg.Rows))
	}
	if len(msg.Rows[0]) != 2 {
		t.Errorf("expected 2 play buttons, got %d", len(msg.Rows[0]))
	}

	// Next control points at offset 2
	next := msg.Rows[1][2]
	if next.Disabled {
		t.Error("expected next control to be enabled")
	}
	action, err := Decode(next.Token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if pg := action.(Paginate); pg.Offset != 2 {
		t.Errorf("next offset = %d, want 2", pg.Offset)
	}
}

func TestBuildDisplaySearchTitle(t *testing.T) {
	store := newTestCatalog(t)
	seedSounds(t, store, "star wars obi wan")

	p := store.Template(catalog.QuerySearch, "star").PageLimit(2).Build()
	msg, err := BuildDisplay(p, catalog.QuerySearch, "star")
	if err != nil {
		t.Fatalf("build display failed: %v", err)
	}

	if msg.Title != "Search Results `star` (page 1 of 0)" {
		t.Errorf("title = %q", msg.Title)
	}
	if len(msg.Rows[0]) != 1 {
		t.Errorf("expected 1 search hit, got %d", len(msg.Rows[0]))
	}
}
