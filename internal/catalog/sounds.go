package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/franz/soundbot/internal/util"
)

// Sound is one catalog entry. The audio bytes live outside the catalog;
// AudioRef is the opaque reference owned by the audio store.
type Sound struct {
	ID                int64
	Name              string
	Tags              Tags
	AudioRef          string
	CreatedAt         time.Time
	AuthorID          string
	AuthorName        string
	AuthorDisplayName string
	PlayCount         int64
	LastPlayedAt      *time.Time
	Popularity        float64
	Pinned            bool
}

// Key selects a sound by one of its unique columns
type Key struct {
	column string
	value  any
}

// ByID selects a sound by its id
func ByID(id int64) Key { return Key{"id", id} }

// ByName selects a sound by its (unique) name
func ByName(name string) Key { return Key{"name", name} }

// ByAudioRef selects a sound by its audio file reference
func ByAudioRef(ref string) Key { return Key{"audio_file", ref} }

func (k Key) condition() string {
	return k.column + " = ?"
}

func (k Key) String() string {
	return fmt.Sprintf("%s=%v", k.column, k.value)
}

// AssetDeleter deletes the stored audio asset behind an audio reference.
// Implemented by the audiostore package.
type AssetDeleter interface {
	DeleteAsset(ref string) error
}

const soundColumns = `id, name, COALESCE(tags, ''), audio_file, created_at,
	COALESCE(author_id, ''), COALESCE(author_name, ''), COALESCE(author_global_name, ''),
	play_count, last_played_at, popularity, pinned`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSound(row rowScanner) (*Sound, error) {
	var (
		snd        Sound
		tags       string
		lastPlayed sql.NullTime
	)

	err := row.Scan(
		&snd.ID, &snd.Name, &tags, &snd.AudioRef, &snd.CreatedAt,
		&snd.AuthorID, &snd.AuthorName, &snd.AuthorDisplayName,
		&snd.PlayCount, &lastPlayed, &snd.Popularity, &snd.Pinned,
	)
	if err != nil {
		return nil, err
	}

	snd.Tags = ParseTags(tags)
	if lastPlayed.Valid {
		t := lastPlayed.Time
		snd.LastPlayedAt = &t
	}

	return &snd, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// InsertSound adds a new sound to the catalog. The FTS shadow entry is
// populated by the insert trigger in the same transaction. A name or
// audio_file collision reports util.ErrDuplicate.
func (s *Store) InsertSound(snd *Sound) error {
	util.InfoLog("inserting sound %q (file %s)", snd.Name, snd.AudioRef)

	createdAt := snd.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := s.db.Exec(`
		INSERT INTO sounds (name, tags, audio_file, created_at, author_id, author_name, author_global_name)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snd.Name, snd.Tags.param(), snd.AudioRef, createdAt,
		nullable(snd.AuthorID), nullable(snd.AuthorName), nullable(snd.AuthorDisplayName))

	if isUniqueViolation(err) {
		return fmt.Errorf("sound %q (file %s): %w", snd.Name, snd.AudioRef, util.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to insert sound %q: %w", snd.Name, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		snd.ID = id
	}
	snd.CreatedAt = createdAt

	return nil
}

// FindSound looks up a single sound by a unique key.
// Returns (nil, nil) when no sound matches.
func (s *Store) FindSound(key Key) (*Sound, error) {
	row := s.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM sounds WHERE %s", soundColumns, key.condition()),
		key.value,
	)

	snd, err := scanSound(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find sound (%s): %w", key, err)
	}

	return snd, nil
}

// UpdateSound replaces the mutable fields (name, tags) of a sound by id.
// The update trigger re-syncs the FTS shadow with delete-then-insert
// semantics inside the same transaction.
func (s *Store) UpdateSound(snd *Sound) error {
	util.InfoLog("updating sound %q", snd.Name)

	result, err := s.db.Exec(`
		UPDATE sounds SET name = ?, tags = ? WHERE id = ?
	`, snd.Name, snd.Tags.param(), snd.ID)

	if isUniqueViolation(err) {
		return fmt.Errorf("sound %q: %w", snd.Name, util.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to update sound %q: %w", snd.Name, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sound id %d: %w", snd.ID, util.ErrNotFound)
	}

	return nil
}

// IncrementPlayCount bumps play_count by one and stamps last_played_at.
// The increment happens inside the UPDATE itself, so concurrent plays of
// the same sound never lose counts.
func (s *Store) IncrementPlayCount(id int64) error {
	_, err := s.db.Exec(`
		UPDATE sounds
		SET play_count = play_count + 1, last_played_at = ?
		WHERE id = ?
	`, time.Now().UTC(), id)

	if err != nil {
		return fmt.Errorf("failed to increment play count for sound id %d: %w", id, err)
	}

	return nil
}

// SetPinned pins or unpins a sound by name. Idempotent: re-pinning a pinned
// sound succeeds and leaves it pinned.
func (s *Store) SetPinned(name string, pinned bool) error {
	util.InfoLog("setting pinned=%v for sound %q", pinned, name)

	result, err := s.db.Exec("UPDATE sounds SET pinned = ? WHERE name = ?", pinned, name)
	if err != nil {
		return fmt.Errorf("failed to set pinned for sound %q: %w", name, err)
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("sound %q: %w", name, util.ErrNotFound)
	}

	return nil
}

// DeleteSound removes the sound matching key, along with its FTS shadow
// entry (delete trigger, same transaction). The underlying asset is deleted
// first, best effort: an asset failure comes back as assetErr and does not
// stop the row delete. Deleting a non-existent sound is a no-op.
func (s *Store) DeleteSound(key Key, assets AssetDeleter) (assetErr error, err error) {
	snd, err := s.FindSound(key)
	if err != nil {
		return nil, err
	}
	if snd == nil {
		util.InfoLog("can't delete non-existent sound (%s)", key)
		return nil, nil
	}

	if assets != nil {
		if assetErr = assets.DeleteAsset(snd.AudioRef); assetErr != nil {
			util.WarnLog("failed to delete audio asset %s: %v", snd.AudioRef, assetErr)
		}
	}

	if _, err := s.db.Exec("DELETE FROM sounds WHERE id = ?", snd.ID); err != nil {
		return assetErr, fmt.Errorf("failed to delete sound %q: %w", snd.Name, err)
	}

	util.InfoLog("deleted sound %q", snd.Name)
	return assetErr, nil
}

// RandomSound picks one uniformly random sound.
// Returns (nil, nil) when the catalog is empty.
func (s *Store) RandomSound() (*Sound, error) {
	row := s.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM sounds ORDER BY RANDOM() LIMIT 1", soundColumns))

	snd, err := scanSound(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to pick random sound: %w", err)
	}

	return snd, nil
}

// Autocomplete suggests sound names for a partial input. Fewer than three
// characters cannot feed the trigram index, so the fallback is simply the
// most recently added names; otherwise the shadow table is matched and
// results come back by relevance.
func (s *Store) Autocomplete(partial string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 5
	}

	var (
		rows *sql.Rows
		err  error
	)

	if len(partial) < 3 {
		util.DebugLog("low character autocomplete: %q", partial)
		rows, err = s.db.Query(
			"SELECT name FROM sounds ORDER BY created_at DESC LIMIT ?", limit)
	} else {
		query := PrepareSearch(partial)
		if query == "" {
			return nil, nil
		}
		rows, err = s.db.Query(
			"SELECT name FROM sounds_fts WHERE sounds_fts MATCH ? ORDER BY rank LIMIT ?",
			query, limit)
	}

	if err != nil {
		return nil, fmt.Errorf("autocomplete query failed: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan autocomplete name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// CountSounds returns the total number of sounds in the catalog
func (s *Store) CountSounds() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM sounds").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count sounds: %w", err)
	}
	return count, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
