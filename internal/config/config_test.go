package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("expected defaults for a missing file, got %v", err)
	}
	if cfg.Paths.Database != "./data/solo-os.db" {
		t.Fatalf("unexpected default database path: %q", cfg.Paths.Database)
	}
	if cfg.Admin.Username != "admin" {
		t.Fatalf("unexpected default admin username: %q", cfg.Admin.Username)
	}
	if cfg.Scripting.Timeout() != 2*time.Second {
		t.Fatalf("unexpected default timeout: %v", cfg.Scripting.Timeout())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
paths:
  database: /tmp/board.db
scripting:
  timeout_ms: 500
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Paths.Database != "/tmp/board.db" {
		t.Fatalf("override not applied: %q", cfg.Paths.Database)
	}
	if cfg.Scripting.Timeout() != 500*time.Millisecond {
		t.Fatalf("unexpected timeout: %v", cfg.Scripting.Timeout())
	}
	// Untouched sections keep their defaults.
	if cfg.Paths.Data != "./data" {
		t.Fatalf("expected default data path, got %q", cfg.Paths.Data)
	}
	if cfg.Admin.Username != "admin" {
		t.Fatalf("expected default admin username, got %q", cfg.Admin.Username)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("paths: [broken"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
