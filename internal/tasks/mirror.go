package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/syllabus/internal/tracker"
	"golang.org/x/time/rate"
)

// DefaultMirrorDebounce is the quiet window after the last local change
// before the mirror pushes to the backend.
const DefaultMirrorDebounce = time.Second

const mirrorKey = "mirror"

// Mirror watches a tracker and pushes the full local state to the sync
// backend after each burst of changes settles. Push failures are logged and
// dropped; local state stays authoritative.
type Mirror struct {
	engine   SyncEngine
	debounce *tracker.Debouncer
	limiter  *rate.Limiter
	logger   *log.Logger
	timeout  time.Duration
}

// MirrorOption configures a Mirror.
type MirrorOption func(*Mirror)

// WithMirrorDebounce overrides the quiet window.
func WithMirrorDebounce(d time.Duration) MirrorOption {
	return func(m *Mirror) { m.debounce = tracker.NewDebouncer(d) }
}

// WithRateLimit caps pushes to n per second.
func WithRateLimit(n float64) MirrorOption {
	return func(m *Mirror) {
		if n > 0 {
			m.limiter = rate.NewLimiter(rate.Limit(n), 1)
		}
	}
}

// NewMirror creates a Mirror over the given engine.
func NewMirror(engine SyncEngine, logger *log.Logger, opts ...MirrorOption) *Mirror {
	m := &Mirror{
		engine:   engine,
		debounce: tracker.NewDebouncer(DefaultMirrorDebounce),
		limiter:  rate.NewLimiter(rate.Limit(1), 1),
		logger:   logger,
		timeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attach subscribes the mirror to tracker change events. Returns a detach
// function that unsubscribes and cancels any pending push.
func (m *Mirror) Attach(t *tracker.Tracker) func() {
	unsubscribe := t.Subscribe(func(event string, data any) {
		switch event {
		case tracker.EventCheckboxChanged, tracker.EventNotesChanged, tracker.EventReset:
			m.debounce.Trigger(mirrorKey, m.push)
		}
	})

	return func() {
		unsubscribe()
		m.debounce.Cancel(mirrorKey)
	}
}

// Flush pushes immediately if a push is pending. Call before exit.
func (m *Mirror) Flush() {
	m.debounce.Flush()
}

func (m *Mirror) push() {
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	if err := m.limiter.Wait(ctx); err != nil {
		m.logger.Warn("mirror push rate limited past deadline", "err", err)
		return
	}

	result, err := m.engine.Push(ctx, nil)
	if err != nil {
		m.logger.Warn("mirror push failed, local state unaffected", "err", err)
		return
	}
	m.logger.Debug("mirrored state to backend", "records", result.Records)
}
