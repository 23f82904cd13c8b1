package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/syllabus/internal/shared"
	"golang.org/x/oauth2"
)

// SyncSession is a stored remote sign-in. The newest row is the active one.
type SyncSession struct {
	ID        string
	Account   string
	Token     oauth2.Token
	CreatedAt time.Time
}

// SessionRepository persists OAuth tokens from `sync login` so later pulls
// and pushes can run without re-authenticating.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a SessionRepository over an open database.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create stores a new session with a generated id.
func (r *SessionRepository) Create(account string, token *oauth2.Token) (*SyncSession, error) {
	if token == nil || token.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty token", shared.ErrInvalidInput)
	}

	session := &SyncSession{
		ID:        shared.GenerateID(),
		Account:   account,
		Token:     *token,
		CreatedAt: time.Now(),
	}

	_, err := r.db.Exec(`
		INSERT INTO sync_sessions (id, account, access_token, refresh_token, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, session.ID, session.Account, token.AccessToken, token.RefreshToken, token.Expiry, session.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert sync session: %w", err)
	}

	return session, nil
}

// Latest returns the most recent session, or an error when none exists.
func (r *SessionRepository) Latest() (*SyncSession, error) {
	row := r.db.QueryRow(`
		SELECT id, account, access_token, refresh_token, expires_at, created_at
		FROM sync_sessions
		ORDER BY created_at DESC
		LIMIT 1
	`)

	var (
		session      SyncSession
		refreshToken sql.NullString
		expiresAt    sql.NullTime
	)
	err := row.Scan(&session.ID, &session.Account, &session.Token.AccessToken, &refreshToken, &expiresAt, &session.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrNotAuthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync session: %w", err)
	}

	if refreshToken.Valid {
		session.Token.RefreshToken = refreshToken.String
	}
	if expiresAt.Valid {
		session.Token.Expiry = expiresAt.Time
	}

	return &session, nil
}

// Clear removes all stored sessions (sign-out).
func (r *SessionRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM sync_sessions"); err != nil {
		return fmt.Errorf("failed to clear sync sessions: %w", err)
	}
	return nil
}
