package db

import (
	"path/filepath"
	"testing"
)

func TestOpenCreatesSchema(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	for _, table := range []string{
		"users", "profiles", "posts", "guestbook", "weekly_posts", "commands", "board_settings",
	} {
		var name string
		err := database.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("expected table %s to exist: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	var applied int
	if err := first.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied == 0 {
		t.Fatalf("expected migrations to be recorded")
	}
	first.Close()

	// Reopening must not re-run anything.
	second, err := Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer second.Close()
	var again int
	if err := second.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&again); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if again != applied {
		t.Fatalf("expected %d migrations, got %d after reopen", applied, again)
	}
}

func TestBoardSettingsSeededAndUpdatable(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	settings, err := database.GetBoardSettings()
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.Name != "SOLO-OS" {
		t.Fatalf("expected seeded board name, got %q", settings.Name)
	}

	settings.Name = "My Board"
	settings.Tagline = "a quiet corner"
	settings.MOTD = "welcome back"
	if err := database.UpdateBoardSettings(settings); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	reloaded, err := database.GetBoardSettings()
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if reloaded.Name != "My Board" || reloaded.MOTD != "welcome back" {
		t.Fatalf("settings not persisted: %+v", reloaded)
	}
}
