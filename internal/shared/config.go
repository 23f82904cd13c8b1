package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Sync     SyncConfig     `toml:"sync"`
	Content  ContentConfig  `toml:"content"`
	UI       UIConfig       `toml:"ui"`
}

// DatabaseConfig contains SQLite connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// SyncConfig contains settings for the optional remote sync service.
type SyncConfig struct {
	BaseURL      string `toml:"base_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	RedirectURI  string `toml:"redirect_uri"`
	// DebounceMS is the quiet window before a local change is mirrored remotely.
	DebounceMS int `toml:"debounce_ms"`
	// RateLimit caps remote pushes per second.
	RateLimit float64 `toml:"rate_limit"`
}

// ContentConfig contains overrides for the bundled syllabus data.
type ContentConfig struct {
	SyllabusPath string `toml:"syllabus_path"`
	ComposerPath string `toml:"composer_path"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// DarkMode is the startup default; the persisted theme key wins once set.
	DarkMode bool `toml:"dark_mode"`
	// NotesDebounceMS is the quiet window before an edited note is persisted.
	NotesDebounceMS int `toml:"notes_debounce_ms"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
