package repositories

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// ThemeKey holds the dark-mode preference as the string "true" or "false",
// matching the plain-string storage contract (no schema, no versioning).
const ThemeKey = "dark_mode"

// ThemeRepository persists the theme preference. Same fail-soft policy as
// the state repository: reads fall back to the provided default, writes are
// best-effort.
type ThemeRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewThemeRepository creates a ThemeRepository over an open database.
func NewThemeRepository(db *sql.DB, logger *log.Logger) *ThemeRepository {
	return &ThemeRepository{db: db, logger: logger}
}

// DarkMode reports the stored preference, or fallback when unset/unreadable.
func (r *ThemeRepository) DarkMode(fallback bool) bool {
	if r.db == nil {
		return fallback
	}
	raw, found, err := kvGet(r.db, ThemeKey)
	if err != nil {
		r.logger.Warn("theme read failed", "err", err)
		return fallback
	}
	if !found {
		return fallback
	}
	return raw == "true"
}

// SetDarkMode stores the preference as "true"/"false".
func (r *ThemeRepository) SetDarkMode(dark bool) {
	if r.db == nil {
		return
	}
	value := "false"
	if dark {
		value = "true"
	}
	if err := kvSet(r.db, ThemeKey, value); err != nil {
		r.logger.Warn("theme write failed", "err", err)
	}
}
