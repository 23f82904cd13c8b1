package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// Sync service errors
	ErrSyncRequest        = fmt.Errorf("sync request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Content errors
	ErrContentUnavailable = fmt.Errorf("syllabus content unavailable")
	ErrWorkNotFound       = fmt.Errorf("work not found")
	ErrComposerNotFound   = fmt.Errorf("composer not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
