package tracker

import (
	"sync"
	"time"
)

// Debouncer defers work until a quiet period has elapsed since the last
// trigger for a given key. Trailing-edge only: a new trigger within the
// window cancels the pending task and reschedules it with the new function.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*deferred
}

type deferred struct {
	timer *time.Timer
	fn    func()
}

// NewDebouncer creates a Debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay, pending: map[string]*deferred{}}
}

// Trigger schedules fn to run after the quiet window, replacing any pending
// task for the same key (cancel-and-restart).
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
	}

	p := &deferred{fn: fn}
	p.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A replacement may have landed between timer fire and lock acquire.
		if cur, ok := d.pending[key]; !ok || cur != p {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		p.fn()
	})
	d.pending[key] = p
}

// Cancel drops the pending task for key without running it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p, ok := d.pending[key]; ok {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Flush runs every pending task immediately. Used before shutdown so edits
// made inside the window are not lost.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	tasks := make([]func(), 0, len(d.pending))
	for key, p := range d.pending {
		p.timer.Stop()
		tasks = append(tasks, p.fn)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}

// Stop cancels everything without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// PendingCount reports how many tasks are waiting for their window to close.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
