package tracker

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
	internaltesting "github.com/desertthunder/syllabus/internal/testing"
)

func testItems() []models.RenderedItem {
	return []models.RenderedItem{
		{ID: "hildegard-o-virtus", Title: "O virtus Sapientiae", Era: "medieval", EraTitle: "Medieval", Position: 0},
		{ID: "machaut-messe", Title: "Messe de Nostre Dame", Era: "medieval", EraTitle: "Medieval", Position: 1},
		{ID: "bach-mass-b-minor", Title: "Mass in B minor", Era: "baroque", EraTitle: "Baroque", Position: 2},
	}
}

func newTestTracker(t *testing.T, opts ...Option) (*Tracker, *internaltesting.MemoryStore) {
	t.Helper()
	store := internaltesting.NewMemoryStore()
	logger := shared.NewLogger(io.Discard)
	trk := New(store, logger, opts...)
	trk.Bind(testItems())
	return trk, store
}

func TestBind(t *testing.T) {
	t.Run("restores persisted records by id", func(t *testing.T) {
		store := internaltesting.NewMemoryStore()
		store.SetRecord("machaut-messe", true, "ars nova")

		trk := New(store, shared.NewLogger(io.Discard))
		trk.Bind(testItems())

		item, ok := trk.Registry().Get("machaut-messe")
		if !ok {
			t.Fatal("expected item in registry")
		}
		if !item.Checked || item.Notes != "ars nova" {
			t.Errorf("record not restored: %+v", item)
		}
		if stats := trk.Stats(); stats.Completed != 1 || stats.Total != 3 {
			t.Errorf("unexpected stats after bind: %+v", stats)
		}
	})

	t.Run("rebinding is idempotent", func(t *testing.T) {
		trk, store := newTestTracker(t)
		if err := trk.SetChecked("hildegard-o-virtus", true); err != nil {
			t.Fatal(err)
		}

		trk.Bind(testItems())
		trk.Bind(testItems())

		item, _ := trk.Registry().Get("hildegard-o-virtus")
		if !item.Checked {
			t.Error("checked state lost across rebind")
		}
		if got := trk.Registry().Len(); got != 3 {
			t.Errorf("expected 3 items after rebind, got %d", got)
		}
		// Rebinding reads, never writes.
		saves := store.Saves
		trk.Bind(testItems())
		if store.Saves != saves {
			t.Error("bind should not write to the store")
		}
	})

	t.Run("items without ids are skipped for persistence", func(t *testing.T) {
		trk, store := newTestTracker(t)
		trk.Bind([]models.RenderedItem{{Title: "untitled"}})

		if got := trk.Registry().Len(); got != 1 {
			t.Fatalf("expected item rendered anyway, got %d", got)
		}
		saves := store.Saves
		trk.UpdateProgress()
		if store.Saves != saves {
			t.Error("unbound items must never reach the store")
		}
	})
}

func TestSetChecked(t *testing.T) {
	t.Run("persists synchronously", func(t *testing.T) {
		trk, store := newTestTracker(t)

		if err := trk.SetChecked("bach-mass-b-minor", true); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if rec := store.Record("bach-mass-b-minor"); !rec.Checked {
			t.Error("checkbox change not written through")
		}
		if stats := trk.Stats(); stats.Completed != 1 || stats.Percentage != 33 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})

	t.Run("preserves notes on the record", func(t *testing.T) {
		trk, store := newTestTracker(t, WithNotesDebounce(time.Millisecond))
		trk.EditNotes("bach-mass-b-minor", "the Credo")
		trk.FlushNotes()

		trk.SetChecked("bach-mass-b-minor", true)
		if rec := store.Record("bach-mass-b-minor"); rec.Notes != "the Credo" {
			t.Errorf("checkbox write clobbered notes: %+v", rec)
		}
	})

	t.Run("unknown id errors", func(t *testing.T) {
		trk, _ := newTestTracker(t)
		err := trk.SetChecked("no-such-work", true)
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestToggle(t *testing.T) {
	trk, _ := newTestTracker(t)

	checked, err := trk.Toggle("hildegard-o-virtus")
	if err != nil || !checked {
		t.Fatalf("expected first toggle to check, got %v %v", checked, err)
	}
	checked, err = trk.Toggle("hildegard-o-virtus")
	if err != nil || checked {
		t.Fatalf("expected second toggle to uncheck, got %v %v", checked, err)
	}
	if _, err := trk.Toggle("no-such-work"); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestEditNotes(t *testing.T) {
	t.Run("rapid edits coalesce into one write", func(t *testing.T) {
		trk, store := newTestTracker(t, WithNotesDebounce(20*time.Millisecond))

		trk.EditNotes("machaut-messe", "f")
		trk.EditNotes("machaut-messe", "fi")
		trk.EditNotes("machaut-messe", "first polyphonic mass")

		// Inside the window nothing has been persisted yet.
		if rec := store.Record("machaut-messe"); rec.Notes != "" {
			t.Errorf("write should be pending, got %q", rec.Notes)
		}

		deadline := time.Now().Add(time.Second)
		for store.Record("machaut-messe").Notes == "" && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}

		if rec := store.Record("machaut-messe"); rec.Notes != "first polyphonic mass" {
			t.Errorf("expected final value persisted, got %q", rec.Notes)
		}
		if store.Saves != 1 {
			t.Errorf("expected exactly one write, got %d", store.Saves)
		}
	})

	t.Run("registry reflects the edit immediately", func(t *testing.T) {
		trk, _ := newTestTracker(t)
		trk.EditNotes("machaut-messe", "draft")
		if item, _ := trk.Registry().Get("machaut-messe"); item.Notes != "draft" {
			t.Errorf("expected live notes, got %q", item.Notes)
		}
	})

	t.Run("flush forces the pending write through", func(t *testing.T) {
		trk, store := newTestTracker(t, WithNotesDebounce(time.Hour))
		trk.EditNotes("machaut-messe", "kept")
		trk.FlushNotes()
		if rec := store.Record("machaut-messe"); rec.Notes != "kept" {
			t.Errorf("flush lost the edit, got %q", rec.Notes)
		}
	})

	t.Run("unknown id errors", func(t *testing.T) {
		trk, _ := newTestTracker(t)
		if err := trk.EditNotes("no-such-work", "x"); err == nil {
			t.Error("expected error for unknown id")
		}
	})
}

func TestObservers(t *testing.T) {
	t.Run("fan out in subscription order", func(t *testing.T) {
		trk, _ := newTestTracker(t)

		var mu sync.Mutex
		var order []string
		trk.Subscribe(func(event string, data any) {
			if event == EventCheckboxChanged {
				mu.Lock()
				order = append(order, "first")
				mu.Unlock()
			}
		})
		trk.Subscribe(func(event string, data any) {
			if event == EventCheckboxChanged {
				mu.Lock()
				order = append(order, "second")
				mu.Unlock()
			}
		})

		trk.SetChecked("bach-mass-b-minor", true)

		mu.Lock()
		defer mu.Unlock()
		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("unexpected fan-out order: %v", order)
		}
	})

	t.Run("a panicking observer is isolated", func(t *testing.T) {
		trk, _ := newTestTracker(t)

		trk.Subscribe(func(event string, data any) {
			panic("observer bug")
		})
		var called bool
		trk.Subscribe(func(event string, data any) {
			if event == EventCheckboxChanged {
				called = true
			}
		})

		if err := trk.SetChecked("bach-mass-b-minor", true); err != nil {
			t.Fatalf("mutation must survive observer panic: %v", err)
		}
		if !called {
			t.Error("later observers must still run after a panic")
		}
	})

	t.Run("unsubscribe removes the observer", func(t *testing.T) {
		trk, _ := newTestTracker(t)

		var calls int
		unsubscribe := trk.Subscribe(func(event string, data any) {
			if event == EventCheckboxChanged {
				calls++
			}
		})

		trk.SetChecked("bach-mass-b-minor", true)
		unsubscribe()
		trk.SetChecked("bach-mass-b-minor", false)

		if calls != 1 {
			t.Errorf("expected one call before unsubscribe, got %d", calls)
		}
	})

	t.Run("checkbox change carries payload", func(t *testing.T) {
		trk, _ := newTestTracker(t)

		var got ChangeData
		trk.Subscribe(func(event string, data any) {
			if event == EventCheckboxChanged {
				got = data.(ChangeData)
			}
		})

		trk.SetChecked("machaut-messe", true)
		if got.ItemID != "machaut-messe" || !got.Checked {
			t.Errorf("unexpected payload: %+v", got)
		}
	})
}

func TestReset(t *testing.T) {
	trk, store := newTestTracker(t, WithNotesDebounce(time.Hour))
	trk.SetChecked("bach-mass-b-minor", true)
	trk.EditNotes("machaut-messe", "pending edit")

	var sawReset bool
	trk.Subscribe(func(event string, data any) {
		if event == EventReset {
			sawReset = true
		}
	})

	trk.Reset()

	if stats := trk.Stats(); stats.Completed != 0 {
		t.Errorf("expected zeroed stats, got %+v", stats)
	}
	for _, item := range trk.Registry().Items() {
		if item.Checked || item.Notes != "" {
			t.Errorf("item not cleared: %+v", item)
		}
	}
	if rec := store.Record("bach-mass-b-minor"); rec.Checked {
		t.Error("store not cleared")
	}
	if !sawReset {
		t.Error("reset event not emitted")
	}

	// The pending debounced edit belonged to the cleared state and must not
	// resurrect it.
	trk.FlushNotes()
	if rec := store.Record("machaut-messe"); rec.Notes != "" {
		t.Errorf("stale edit leaked through reset: %q", rec.Notes)
	}
}

func TestUpdateProgress(t *testing.T) {
	trk, _ := newTestTracker(t)
	trk.SetChecked("hildegard-o-virtus", true)
	trk.SetChecked("machaut-messe", true)

	stats := trk.UpdateProgress()
	if stats.Completed != 2 || stats.Total != 3 || stats.Percentage != 67 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestDebouncer(t *testing.T) {
	t.Run("trailing edge only", func(t *testing.T) {
		d := NewDebouncer(10 * time.Millisecond)

		var mu sync.Mutex
		var fired []int
		for i := 1; i <= 3; i++ {
			n := i
			d.Trigger("k", func() {
				mu.Lock()
				fired = append(fired, n)
				mu.Unlock()
			})
		}

		deadline := time.Now().Add(time.Second)
		for {
			mu.Lock()
			done := len(fired) > 0
			mu.Unlock()
			if done || time.Now().After(deadline) {
				break
			}
			time.Sleep(time.Millisecond)
		}

		mu.Lock()
		defer mu.Unlock()
		if len(fired) != 1 || fired[0] != 3 {
			t.Errorf("expected only the last trigger to fire, got %v", fired)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		d := NewDebouncer(time.Hour)
		d.Trigger("a", func() {})
		d.Trigger("b", func() {})
		if got := d.PendingCount(); got != 2 {
			t.Errorf("expected 2 pending, got %d", got)
		}
		d.Cancel("a")
		if got := d.PendingCount(); got != 1 {
			t.Errorf("expected 1 pending after cancel, got %d", got)
		}
	})

	t.Run("flush runs pending tasks", func(t *testing.T) {
		d := NewDebouncer(time.Hour)
		var ran bool
		d.Trigger("k", func() { ran = true })
		d.Flush()
		if !ran {
			t.Error("flush should run the pending task")
		}
		if d.PendingCount() != 0 {
			t.Error("flush should drain the pending set")
		}
	})

	t.Run("stop drops everything", func(t *testing.T) {
		d := NewDebouncer(time.Hour)
		var ran bool
		d.Trigger("k", func() { ran = true })
		d.Stop()
		d.Flush()
		if ran {
			t.Error("stopped task must not run")
		}
	})
}

func TestCoordinator(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("runs components in registration order", func(t *testing.T) {
		c := NewCoordinator(logger)

		var order []string
		c.Register("registry", func() error {
			order = append(order, "registry")
			return nil
		})
		c.Register("menu", func() error {
			order = append(order, "menu")
			return nil
		})

		c.ContentReplaced()
		if len(order) != 2 || order[0] != "registry" || order[1] != "menu" {
			t.Errorf("unexpected order: %v", order)
		}
	})

	t.Run("a failing component does not stop the rest", func(t *testing.T) {
		c := NewCoordinator(logger)

		c.Register("broken", func() error { return errors.New("sync failed") })
		var ran bool
		c.Register("healthy", func() error {
			ran = true
			return nil
		})

		c.ContentReplaced()
		if !ran {
			t.Error("later components must run after a failure")
		}
	})

	t.Run("re-running is safe", func(t *testing.T) {
		c := NewCoordinator(logger)

		var runs int
		c.Register("counter", func() error {
			runs++
			return nil
		})

		c.ContentReplaced()
		c.ContentReplaced()
		if runs != 2 {
			t.Errorf("expected 2 runs, got %d", runs)
		}
	})
}
