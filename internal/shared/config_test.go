package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./syllabus.db" {
			t.Errorf("expected database path ./syllabus.db, got %s", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 10 {
			t.Errorf("expected 10 max open conns, got %d", config.Database.MaxOpenConns)
		}
		if config.Sync.RedirectURI != "http://127.0.0.1:3000/callback" {
			t.Errorf("unexpected redirect uri: %s", config.Sync.RedirectURI)
		}
		if config.Sync.DebounceMS != 1000 {
			t.Errorf("expected 1000ms sync debounce, got %d", config.Sync.DebounceMS)
		}
		if config.UI.DarkMode {
			t.Error("expected light mode by default")
		}
		if config.UI.NotesDebounceMS != 500 {
			t.Errorf("expected 500ms notes debounce, got %d", config.UI.NotesDebounceMS)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[database]
path = "/tmp/test.db"

[sync]
client_id = "abc123"

[ui]
dark_mode = true
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Database.Path != "/tmp/test.db" {
			t.Errorf("unexpected database path: %s", config.Database.Path)
		}
		if config.Sync.ClientID != "abc123" {
			t.Errorf("unexpected client id: %s", config.Sync.ClientID)
		}
		if !config.UI.DarkMode {
			t.Error("expected dark mode enabled")
		}
	})

	t.Run("LoadConfig with missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig with invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[[[not toml"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created file should parse: %v", err)
		}
		if config.Database.Path != "./syllabus.db" {
			t.Errorf("unexpected database path: %s", config.Database.Path)
		}
	})

	t.Run("CreateConfigFile refuses to overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatal(err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}
