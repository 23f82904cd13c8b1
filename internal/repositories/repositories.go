package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// kvGet reads a single value from the kv table. The second return reports
// whether the key existed.
func kvGet(db *sql.DB, key string) (string, bool, error) {
	var value string
	err := db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query kv key %q: %w", key, err)
	}
	return value, true, nil
}

// kvSet upserts a single value, overwriting unconditionally (last-write-wins).
func kvSet(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	if err != nil {
		return fmt.Errorf("failed to write kv key %q: %w", key, err)
	}
	return nil
}

// kvDelete removes a key entirely. Deleting an absent key is not an error.
func kvDelete(db *sql.DB, key string) error {
	if _, err := db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete kv key %q: %w", key, err)
	}
	return nil
}
