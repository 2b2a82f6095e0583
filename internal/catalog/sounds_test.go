package catalog

import (
	"errors"
	"sync"
	"testing"

	"github.com/franz/soundbot/internal/util"
)

func TestInsertAndFindSound(t *testing.T) {
	store := newTestStore(t)

	snd := mustInsert(t, store, testSound("Beep Boop", "r2d2 star wars droid", 0))
	if snd.ID == 0 {
		t.Fatal("expected insert to assign an id")
	}

	found, err := store.FindSound(ByName("Beep Boop"))
	if err != nil {
		t.Fatalf("find by name failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find inserted sound")
	}
	if found.Name != "Beep Boop" {
		t.Errorf("name = %q, want %q", found.Name, "Beep Boop")
	}
	if found.Tags.String() != "r2d2 star wars droid" {
		t.Errorf("tags = %q, want %q", found.Tags.String(), "r2d2 star wars droid")
	}
	if found.PlayCount != 0 {
		t.Errorf("play count = %d, want 0", found.PlayCount)
	}
	if found.LastPlayedAt != nil {
		t.Error("expected last played at to be unset")
	}
	if found.Pinned {
		t.Error("expected new sound to be unpinned")
	}

	byID, err := store.FindSound(ByID(found.ID))
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if byID == nil || byID.Name != found.Name {
		t.Error("find by id did not return the same sound")
	}

	byRef, err := store.FindSound(ByAudioRef(found.AudioRef))
	if err != nil {
		t.Fatalf("find by audio ref failed: %v", err)
	}
	if byRef == nil || byRef.ID != found.ID {
		t.Error("find by audio ref did not return the same sound")
	}
}

func TestFindSoundMissing(t *testing.T) {
	store := newTestStore(t)

	snd, err := store.FindSound(ByName("nope"))
	if err != nil {
		t.Fatalf("expected no error for missing sound, got %v", err)
	}
	if snd != nil {
		t.Error("expected nil for missing sound")
	}
}

func TestInsertDuplicate(t *testing.T) {
	store := newTestStore(t)
	mustInsert(t, store, testSound("klaxon", "alarm", 0))

	// Same name, different file
	dup := testSound("klaxon", "", 1)
	dup.AudioRef = "other.mp3"
	if err := store.InsertSound(dup); !errors.Is(err, util.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for name collision, got %v", err)
	}

	// Different name, same file
	dup = testSound("klaxon2", "", 2)
	dup.AudioRef = "klaxon.mp3"
	if err := store.InsertSound(dup); !errors.Is(err, util.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for audio file collision, got %v", err)
	}
}

func TestUpdateSoundResyncsShadow(t *testing.T) {
	store := newTestStore(t)
	snd := mustInsert(t, store, testSound("old name", "old-tag", 0))

	snd.Name = "new name"
	snd.Tags = ParseTags("fresh tag")
	if err := store.UpdateSound(snd); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	old, err := store.FindSound(ByName("old name"))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if old != nil {
		t.Error("expected old name to be gone")
	}

	updated, err := store.FindSound(ByName("new name"))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if updated == nil {
		t.Fatal("expected sound under new name")
	}
	if updated.Tags.String() != "fresh tag" {
		t.Errorf("tags = %q, want %q", updated.Tags.String(), "fresh tag")
	}

	// Shadow must reflect the update: old tag finds nothing, new tag hits
	page, err := store.Template(QuerySearch, "old-tag").Build().NextPage()
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("stale shadow entry: search for old tag returned %d rows", len(page))
	}

	page, err = store.Template(QuerySearch, "fresh").Build().NextPage()
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page) != 1 {
		t.Errorf("expected new tag to match 1 row, got %d", len(page))
	}
}

func TestUpdateSoundMissing(t *testing.T) {
	store := newTestStore(t)

	snd := testSound("ghost", "", 0)
	snd.ID = 1234
	if err := store.UpdateSound(snd); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestIncrementPlayCountConcurrent(t *testing.T) {
	store := newTestStore(t)
	snd := mustInsert(t, store, testSound("airhorn", "", 0))

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.IncrementPlayCount(snd.ID)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("increment failed: %v", err)
		}
	}

	found, err := store.FindSound(ByID(snd.ID))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.PlayCount != n {
		t.Errorf("play count = %d, want %d (lost updates)", found.PlayCount, n)
	}
	if found.LastPlayedAt == nil {
		t.Error("expected last played at to be set")
	}
}

func TestSetPinnedIdempotent(t *testing.T) {
	store := newTestStore(t)
	mustInsert(t, store, testSound("fanfare", "", 0))

	for i := 0; i < 2; i++ {
		if err := store.SetPinned("fanfare", true); err != nil {
			t.Fatalf("pin attempt %d failed: %v", i+1, err)
		}
	}

	snd, err := store.FindSound(ByName("fanfare"))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !snd.Pinned {
		t.Error("expected sound to be pinned")
	}

	if err := store.SetPinned("fanfare", false); err != nil {
		t.Fatalf("unpin failed: %v", err)
	}
	snd, _ = store.FindSound(ByName("fanfare"))
	if snd.Pinned {
		t.Error("expected sound to be unpinned")
	}

	if err := store.SetPinned("missing", true); !errors.Is(err, util.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing sound, got %v", err)
	}
}

type fakeAssets struct {
	deleted []string
	err     error
}

func (f *fakeAssets) DeleteAsset(ref string) error {
	f.deleted = append(f.deleted, ref)
	return f.err
}

func TestDeleteSoundRemovesShadow(t *testing.T) {
	store := newTestStore(t)
	mustInsert(t, store, testSound("wilhelm scream", "movie classic", 0))

	assets := &fakeAssets{}
	assetErr, err := store.DeleteSound(ByName("wilhelm scream"), assets)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if assetErr != nil {
		t.Fatalf("unexpected asset error: %v", assetErr)
	}
	if len(assets.deleted) != 1 || assets.deleted[0] != "wilhelm scream.mp3" {
		t.Errorf("expected asset delete for wilhelm scream.mp3, got %v", assets.deleted)
	}

	snd, err := store.FindSound(ByName("wilhelm scream"))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if snd != nil {
		t.Error("expected sound row to be gone")
	}

	// Shadow entry must be gone in the same transaction
	page, err := store.Template(QuerySearch, "wilhelm").Build().NextPage()
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page) != 0 {
		t.Errorf("expected no search hits after delete, got %d", len(page))
	}
}

func TestDeleteSoundAssetFailureIsNonFatal(t *testing.T) {
	store := newTestStore(t)
	mustInsert(t, store, testSound("sad trombone", "", 0))

	assets := &fakeAssets{err: errors.New("disk on fire")}
	assetErr, err := store.DeleteSound(ByName("sad trombone"), assets)
	if err != nil {
		t.Fatalf("row delete should proceed despite asset error, got %v", err)
	}
	if assetErr == nil {
		t.Error("expected asset error to be surfaced")
	}

	snd, _ := store.FindSound(ByName("sad trombone"))
	if snd != nil {
		t.Error("expected row to be deleted despite asset error")
	}
}

func TestDeleteSoundMissingIsNoop(t *testing.T) {
	store := newTestStore(t)

	assets := &fakeAssets{}
	assetErr, err := store.DeleteSound(ByName("nothing here"), assets)
	if err != nil || assetErr != nil {
		t.Errorf("expected no errors, got assetErr=%v err=%v", assetErr, err)
	}
	if len(assets.deleted) != 0 {
		t.Error("expected no asset deletes for missing sound")
	}
}

func TestRandomSound(t *testing.T) {
	store := newTestStore(t)

	snd, err := store.RandomSound()
	if err != nil {
		t.Fatalf("random on empty catalog failed: %v", err)
	}
	if snd != nil {
		t.Error("expected nil from empty catalog")
	}

	mustInsert(t, store, testSound("only one", "", 0))

	snd, err = store.RandomSound()
	if err != nil {
		t.Fatalf("random failed: %v", err)
	}
	if snd == nil || snd.Name != "only one" {
		t.Errorf("expected the single sound, got %+v", snd)
	}
}

func TestAutocomplete(t *testing.T) {
	store := newTestStore(t)
	mustInsert(t, store, testSound("Beep Boop", "r2d2 star wars droid", 0))
	mustInsert(t, store, testSound("Beep Bop", "gonk star wars droid", 1))
	mustInsert(t, store, testSound("Beez Biz", "random sound-effect", 2))

	names, err := store.Autocomplete("bee", 0)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(names) != 3 {
		t.Errorf("expected 3 matches for 'bee', got %d (%v)", len(names), names)
	}

	names, err = store.Autocomplete("bee", 2)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(names) != 2 {
		t.Errorf("expected limit of 2 matches, got %d", len(names))
	}

	names, err = store.Autocomplete("r2d2", 0)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Beep Boop" {
		t.Errorf("expected [Beep Boop] for 'r2d2', got %v", names)
	}

	// Case-insensitive substring (trigram) matching
	names, err = store.Autocomplete("RaN", 0)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(names) != 1 || names[0] != "Beez Biz" {
		t.Errorf("expected [Beez Biz] for 'RaN', got %v", names)
	}

	// Fewer than 3 chars falls back to most recently created names
	names, err = store.Autocomplete("be", 2)
	if err != nil {
		t.Fatalf("autocomplete failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Beez Biz" || names[1] != "Beep Bop" {
		t.Errorf("expected latest names [Beez Biz, Beep Bop], got %v", names)
	}
}

func TestCountSounds(t *testing.T) {
	store := newTestStore(t)

	count, err := store.CountSounds()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 sounds, got %d", count)
	}

	mustInsert(t, store, testSound("one", "", 0))
	mustInsert(t, store, testSound("two", "", 1))

	count, err = store.CountSounds()
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 sounds, got %d", count)
	}
}
