package catalog

import (
	"fmt"

	"github.com/franz/soundbot/internal/util"
)

// ShadowCount returns the number of rows in the search shadow table.
// In a healthy database this equals CountSounds; the triggers keep the
// two in lockstep.
func (s *Store) ShadowCount() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT count(*) FROM sounds_fts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count shadow rows: %w", err)
	}
	return count, nil
}

// RebuildShadow regenerates the search shadow table from the sounds
// table. Only needed after the two have drifted apart, which the
// triggers normally prevent.
func (s *Store) RebuildShadow() error {
	util.InfoLog("rebuilding search index")
	if _, err := s.db.Exec(
		"INSERT INTO sounds_fts(sounds_fts) VALUES('rebuild')"); err != nil {
		return fmt.Errorf("failed to rebuild search index: %w", err)
	}
	return nil
}

// AudioRefs returns the audio reference of every sound, keyed by name
func (s *Store) AudioRefs() (map[string]string, error) {
	rows, err := s.db.Query("SELECT name, audio_file FROM sounds")
	if err != nil {
		return nil, fmt.Errorf("failed to list audio refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]string)
	for rows.Next() {
		var name, ref string
		if err := rows.Scan(&name, &ref); err != nil {
			return nil, fmt.Errorf("failed to scan audio ref: %w", err)
		}
		refs[name] = ref
	}
	return refs, rows.Err()
}
