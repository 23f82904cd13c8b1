package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/services"
	"github.com/desertthunder/syllabus/internal/shared"
)

// PullResult contains the outcome of a pull-and-merge operation.
type PullResult struct {
	Merged        models.SyllabusState // final state written locally
	RemoteRecords int                  // records the backend knew about
	LocalRecords  int                  // records held locally before the merge
}

// PushResult contains the outcome of a push operation.
type PushResult struct {
	Records int // records uploaded
}

// StateStore is the slice of the local persistence layer the engine needs.
// Implemented by repositories.StateRepository.
type StateStore interface {
	Load() models.SyllabusState
	Save(state models.SyllabusState)
}

// SyncEngine defines operations for syncing syllabus state with the backend.
type SyncEngine interface {
	// Pull fetches the remote state, merges it over the local one (remote
	// wins on conflicts), and saves the result locally.
	Pull(ctx context.Context, progress chan<- ProgressUpdate) (*PullResult, error)

	// Push uploads the local state wholesale, replacing the remote copy.
	Push(ctx context.Context, progress chan<- ProgressUpdate) (*PushResult, error)

	// Status checks backend reachability.
	Status(ctx context.Context, progress chan<- ProgressUpdate) error
}

// Engine implements SyncEngine against a services.Service and the local
// state store.
type Engine struct {
	service services.Service
	store   StateStore
}

// NewEngine creates an Engine with the provided service and store.
func NewEngine(service services.Service, store StateStore) *Engine {
	return &Engine{service: service, store: store}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Pull fetches remote state and merges it into the local store. Remote
// records overwrite local ones id by id; local records the backend has never
// seen survive untouched.
func (e *Engine) Pull(ctx context.Context, progress chan<- ProgressUpdate) (*PullResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: sync service not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(progress, pullRemoteUpdate(1, 3))
	remote, err := e.service.PullState(ctx)
	if err != nil {
		return nil, fmt.Errorf("pull failed: %w", err)
	}

	local := e.store.Load()
	result := &PullResult{
		RemoteRecords: len(remote.Records),
		LocalRecords:  len(local.Records),
	}

	sendProgress(progress, mergeStatesUpdate(2, 3, result.RemoteRecords))
	result.Merged = local.Merge(remote)

	sendProgress(progress, saveLocalUpdate(3, 3))
	e.store.Save(result.Merged)

	return result, nil
}

// Push uploads the local state wholesale.
func (e *Engine) Push(ctx context.Context, progress chan<- ProgressUpdate) (*PushResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: sync service not initialized", shared.ErrServiceUnavailable)
	}

	local := e.store.Load()
	sendProgress(progress, pushRemoteUpdate(1, 1, len(local.Records)))

	if err := e.service.PushState(ctx, local); err != nil {
		return nil, fmt.Errorf("push failed: %w", err)
	}

	return &PushResult{Records: len(local.Records)}, nil
}

// Status checks whether the backend is reachable.
func (e *Engine) Status(ctx context.Context, progress chan<- ProgressUpdate) error {
	if e.service == nil {
		return fmt.Errorf("%w: sync service not initialized", shared.ErrServiceUnavailable)
	}

	sendProgress(progress, checkHealthUpdate(e.service.Name()))
	return e.service.Health(ctx)
}
