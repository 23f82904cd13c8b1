package services

import (
	"context"

	"github.com/desertthunder/syllabus/internal/models"
)

// Service defines the interface for remote sync backends that can store and
// return a user's syllabus state.
type Service interface {
	// Authenticate establishes credentials with the backend.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// PullState retrieves the remote copy of the syllabus state.
	PullState(ctx context.Context) (models.SyllabusState, error)

	// PushState uploads the local syllabus state, replacing the remote copy.
	PushState(ctx context.Context, state models.SyllabusState) error

	// Health checks whether the backend is reachable and responding.
	Health(ctx context.Context) error

	// Name returns the name of the backend (e.g. "syllabus-sync").
	Name() string
}
