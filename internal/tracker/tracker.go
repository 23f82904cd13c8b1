package tracker

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
)

// DefaultNotesDebounce is the quiet window before an edited note is written
// through to the store.
const DefaultNotesDebounce = 500 * time.Millisecond

// Store is the persistence contract the tracker writes through. Implemented
// by repositories.StateRepository; all methods are fail-soft.
type Store interface {
	Load() models.SyllabusState
	Save(state models.SyllabusState)
	Record(id string) models.ItemRecord
	SetRecord(id string, checked bool, notes string)
	Clear()
}

// Tracker binds rendered items to persisted records and tracks aggregate
// progress. Checkbox changes persist synchronously; note edits persist after
// a debounce window. All mutations notify observers.
type Tracker struct {
	mu             sync.Mutex
	store          Store
	registry       *Registry
	debounce       *Debouncer
	logger         *log.Logger
	observers      map[int]Observer
	nextObserverID int
	// bound marks ids restored in the current registry generation. Items
	// without a discoverable id are never bound and never persisted.
	bound map[string]struct{}
	stats models.ProgressStats
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithNotesDebounce overrides the notes persistence quiet window.
func WithNotesDebounce(d time.Duration) Option {
	return func(t *Tracker) { t.debounce = NewDebouncer(d) }
}

// New creates a Tracker over the given store.
func New(store Store, logger *log.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		registry:  NewRegistry(),
		debounce:  NewDebouncer(DefaultNotesDebounce),
		logger:    logger,
		observers: map[int]Observer{},
		bound:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Registry exposes the live rendered item set.
func (t *Tracker) Registry() *Registry { return t.registry }

// Bind replaces the rendered set and restores each item's checked state and
// notes from the store by id. Re-binding is idempotent: the bound set is
// rebuilt from scratch, so no duplicate handlers or writes can accumulate.
// Items with no discoverable id are skipped with a warning and participate
// in no persistence.
func (t *Tracker) Bind(items []models.RenderedItem) {
	t.mu.Lock()

	state := t.store.Load()
	restored := make([]models.RenderedItem, len(items))
	bound := make(map[string]struct{}, len(items))

	for i, item := range items {
		if item.ID == "" {
			t.logger.Warn("checklist item missing id, skipping persistence", "title", item.Title)
			restored[i] = item
			continue
		}
		rec := state.Record(item.ID)
		item.Checked = rec.Checked
		item.Notes = rec.Notes
		restored[i] = item
		bound[item.ID] = struct{}{}
	}

	t.registry.Replace(restored)
	t.bound = bound
	t.stats = models.ComputeStats(t.registry.Items())
	stats := t.stats
	t.mu.Unlock()

	t.notify(EventProgressUpdated, stats)
}

// SetChecked records a checkbox transition. The write is synchronous; the
// debounced notes value is not disturbed. Unknown ids are an error; unbound
// (id-less) items cannot be reached here because they have no id to pass.
func (t *Tracker) SetChecked(id string, checked bool) error {
	t.mu.Lock()
	item, ok := t.registry.Get(id)
	if !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: no rendered item %q", shared.ErrInvalidInput, id)
	}

	t.registry.setChecked(id, checked)
	if _, isBound := t.bound[id]; isBound {
		t.store.SetRecord(id, checked, item.Notes)
	}
	t.mu.Unlock()

	t.notify(EventCheckboxChanged, ChangeData{ItemID: id, Checked: checked, Notes: item.Notes})
	t.UpdateProgress()
	return nil
}

// Toggle flips the checkbox for id and returns the new state.
func (t *Tracker) Toggle(id string) (bool, error) {
	t.mu.Lock()
	item, ok := t.registry.Get(id)
	t.mu.Unlock()
	if !ok {
		return false, fmt.Errorf("%w: no rendered item %q", shared.ErrInvalidInput, id)
	}
	next := !item.Checked
	if err := t.SetChecked(id, next); err != nil {
		return false, err
	}
	return next, nil
}

// EditNotes updates the rendered notes immediately and schedules the
// persisted write after the debounce window. Rapid edits coalesce into one
// write carrying the final value.
func (t *Tracker) EditNotes(id, notes string) error {
	t.mu.Lock()
	if _, ok := t.registry.Get(id); !ok {
		t.mu.Unlock()
		return fmt.Errorf("%w: no rendered item %q", shared.ErrInvalidInput, id)
	}
	t.registry.setNotes(id, notes)
	_, isBound := t.bound[id]
	t.mu.Unlock()

	if !isBound {
		return nil
	}

	t.debounce.Trigger(id, func() {
		t.mu.Lock()
		item, ok := t.registry.Get(id)
		t.mu.Unlock()
		if !ok {
			// Content was replaced inside the window; the pending edit
			// belongs to a destroyed item.
			return
		}
		t.store.SetRecord(id, item.Checked, item.Notes)
		t.notify(EventNotesChanged, ChangeData{ItemID: id, Checked: item.Checked, Notes: item.Notes})
	})
	return nil
}

// FlushNotes forces pending debounced writes through. Call before exit.
func (t *Tracker) FlushNotes() { t.debounce.Flush() }

// UpdateProgress recomputes counters over the current rendered set and
// notifies observers. Persisted-but-unrendered records do not count.
func (t *Tracker) UpdateProgress() models.ProgressStats {
	t.mu.Lock()
	t.stats = models.ComputeStats(t.registry.Items())
	stats := t.stats
	t.mu.Unlock()

	t.notify(EventProgressUpdated, stats)
	return stats
}

// Stats returns the last computed counters without recomputing.
func (t *Tracker) Stats() models.ProgressStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}

// Reset clears the store and zeroes every rendered item. Destructive and
// irreversible; callers gate it behind explicit confirmation.
func (t *Tracker) Reset() {
	t.debounce.Stop()

	t.mu.Lock()
	t.store.Clear()
	t.registry.clearAll()
	t.stats = models.ComputeStats(t.registry.Items())
	stats := t.stats
	t.mu.Unlock()

	t.notify(EventProgressUpdated, stats)
	t.notify(EventReset, struct{}{})
}
