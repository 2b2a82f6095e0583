package catalog

import (
	"database/sql"
	"fmt"

	"github.com/franz/soundbot/internal/util"
)

// Settings is the singleton configuration row. JoinSound and LeaveSound
// name the sounds played on channel join/leave; empty means disabled.
type Settings struct {
	ID         int64
	JoinSound  string
	LeaveSound string
}

// Settings returns the settings row, creating it on first read.
// At most one row ever exists.
func (s *Store) Settings() (*Settings, error) {
	settings, err := s.firstSettingsRow()
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	util.DebugLog("initializing settings row")
	if _, err := s.db.Exec(
		"INSERT INTO settings (join_sound, leave_sound) VALUES (NULL, NULL)"); err != nil {
		return nil, fmt.Errorf("failed to init settings row: %w", err)
	}

	settings, err = s.firstSettingsRow()
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("settings row missing after init")
	}

	return settings, nil
}

// UpdateSettings writes the settings row in place
func (s *Store) UpdateSettings(settings *Settings) error {
	util.InfoLog("saving settings")

	_, err := s.db.Exec(`
		UPDATE settings SET join_sound = ?, leave_sound = ? WHERE id = ?
	`, nullable(settings.JoinSound), nullable(settings.LeaveSound), settings.ID)

	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}

	return nil
}

func (s *Store) firstSettingsRow() (*Settings, error) {
	var (
		settings   Settings
		joinSound  sql.NullString
		leaveSound sql.NullString
	)

	err := s.db.QueryRow("SELECT id, join_sound, leave_sound FROM settings LIMIT 1").
		Scan(&settings.ID, &joinSound, &leaveSound)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	settings.JoinSound = joinSound.String
	settings.LeaveSound = leaveSound.String

	return &settings, nil
}
