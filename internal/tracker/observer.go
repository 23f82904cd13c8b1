package tracker

import "sort"

// Event names emitted by the tracker.
const (
	EventCheckboxChanged = "checkboxChanged"
	EventNotesChanged    = "notesChanged"
	EventProgressUpdated = "progressUpdated"
	EventReset           = "reset"
	EventContentReplaced = "contentReplaced"
)

// ChangeData is the payload for checkboxChanged and notesChanged events.
type ChangeData struct {
	ItemID  string
	Checked bool
	Notes   string
}

// Observer receives tracker events. Observers run synchronously in
// subscription order; a failing observer is isolated and never prevents the
// others from running.
type Observer func(event string, data any)

// Subscribe registers an observer and returns a function that removes it.
func (t *Tracker) Subscribe(obs Observer) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextObserverID
	t.nextObserverID++
	t.observers[id] = obs

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.observers, id)
	}
}

// notify fans an event out to all observers, best-effort. A panic inside one
// observer is recovered and logged so the rest still run.
func (t *Tracker) notify(event string, data any) {
	t.mu.Lock()
	ids := make([]int, 0, len(t.observers))
	for id := range t.observers {
		ids = append(ids, id)
	}
	// Stable order keeps fan-out deterministic for tests.
	sort.Ints(ids)
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, t.observers[id])
	}
	t.mu.Unlock()

	for _, obs := range observers {
		t.invoke(obs, event, data)
	}
}

func (t *Tracker) invoke(obs Observer, event string, data any) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("observer failed", "event", event, "err", r)
		}
	}()
	obs(event, data)
}
