package catalog

import "testing"

func TestSettingsLazyInit(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("settings read failed: %v", err)
	}
	if settings.JoinSound != "" || settings.LeaveSound != "" {
		t.Errorf("expected empty defaults, got %+v", settings)
	}

	// A second read must not create a second row
	if _, err := store.Settings(); err != nil {
		t.Fatalf("second settings read failed: %v", err)
	}

	var count int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM settings").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected exactly one settings row, got %d", count)
	}
}

func TestSettingsUpdate(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.Settings()
	if err != nil {
		t.Fatalf("settings read failed: %v", err)
	}

	settings.JoinSound = `do!@)#$*&%&)'"op`
	settings.LeaveSound = "dope"
	if err := store.UpdateSettings(settings); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	settings, err = store.Settings()
	if err != nil {
		t.Fatalf("settings re-read failed: %v", err)
	}
	if settings.JoinSound != `do!@)#$*&%&)'"op` {
		t.Errorf("join sound = %q", settings.JoinSound)
	}
	if settings.LeaveSound != "dope" {
		t.Errorf("leave sound = %q", settings.LeaveSound)
	}

	// Clearing writes NULLs back
	settings.JoinSound = ""
	settings.LeaveSound = ""
	if err := store.UpdateSettings(settings); err != nil {
		t.Fatalf("settings clear failed: %v", err)
	}
	settings, _ = store.Settings()
	if settings.JoinSound != "" || settings.LeaveSound != "" {
		t.Errorf("expected cleared settings, got %+v", settings)
	}
}
