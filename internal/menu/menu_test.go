package menu

import (
	"testing"

	"github.com/desertthunder/syllabus/internal/models"
)

func fixtureItems() []models.RenderedItem {
	return []models.RenderedItem{
		{ID: "a1", Title: "Alpha One", Era: "ancient", EraTitle: "Ancient", Position: 0, Checked: true},
		{ID: "a2", Title: "Alpha Two", Era: "ancient", EraTitle: "Ancient", Position: 1},
		{ID: "b1", Title: "Beta One", Era: "baroque", EraTitle: "Baroque", Position: 2},
		{ID: "b2", Title: "Beta Two", Era: "baroque", EraTitle: "Baroque", Position: 3, Checked: true},
	}
}

func TestBuild(t *testing.T) {
	t.Run("empty input yields loading placeholder", func(t *testing.T) {
		m := Build(nil)
		if !m.Loading {
			t.Error("expected loading model")
		}
		if len(m.Sections) != 0 {
			t.Errorf("expected no sections, got %d", len(m.Sections))
		}
		if m.ExpandedIndex() != -1 {
			t.Errorf("expected no expansion, got %d", m.ExpandedIndex())
		}
	})

	t.Run("groups by era in document order", func(t *testing.T) {
		m := Build(fixtureItems())
		if len(m.Sections) != 2 {
			t.Fatalf("expected 2 sections, got %d", len(m.Sections))
		}
		if m.Sections[0].Key != "ancient" || m.Sections[1].Key != "baroque" {
			t.Errorf("wrong section order: %s, %s", m.Sections[0].Key, m.Sections[1].Key)
		}
		if m.Sections[0].Entries[1].ID != "a2" {
			t.Errorf("entry order broken: %s", m.Sections[0].Entries[1].ID)
		}
	})

	t.Run("exactly one next-incomplete across the whole model", func(t *testing.T) {
		m := Build(fixtureItems())
		count := 0
		for _, section := range m.Sections {
			for _, entry := range section.Entries {
				if entry.Status == StatusNextIncomplete {
					count++
					if entry.ID != "a2" {
						t.Errorf("expected a2 tagged next, got %s", entry.ID)
					}
				}
			}
		}
		if count != 1 {
			t.Errorf("expected exactly one next-incomplete entry, got %d", count)
		}
	})

	t.Run("auto-expands the section holding next-incomplete", func(t *testing.T) {
		m := Build(fixtureItems())
		if m.ExpandedIndex() != 0 {
			t.Errorf("expected section 0 expanded, got %d", m.ExpandedIndex())
		}

		items := fixtureItems()
		items[1].Checked = true
		m = Build(items)
		if m.ExpandedIndex() != 1 {
			t.Errorf("expected section 1 expanded, got %d", m.ExpandedIndex())
		}
	})

	t.Run("all complete leaves every section collapsed", func(t *testing.T) {
		items := fixtureItems()
		for i := range items {
			items[i].Checked = true
		}
		m := Build(items)
		if m.ExpandedIndex() != -1 {
			t.Errorf("expected no expansion, got %d", m.ExpandedIndex())
		}
		if _, ok := m.NextIncomplete(); ok {
			t.Error("expected no next-incomplete entry")
		}
	})
}

func TestToggle(t *testing.T) {
	t.Run("expanding collapses the previously open section", func(t *testing.T) {
		m := Build(fixtureItems())
		m.Toggle(1)
		if m.ExpandedIndex() != 1 {
			t.Errorf("expected section 1 expanded, got %d", m.ExpandedIndex())
		}
		if m.IsExpanded(0) {
			t.Error("section 0 should have collapsed")
		}
	})

	t.Run("toggling the open section collapses it", func(t *testing.T) {
		m := Build(fixtureItems())
		m.Toggle(0)
		if m.ExpandedIndex() != -1 {
			t.Errorf("expected all collapsed, got %d", m.ExpandedIndex())
		}
	})

	t.Run("ignores out of range indices", func(t *testing.T) {
		m := Build(fixtureItems())
		m.Toggle(99)
		m.Toggle(-1)
		if m.ExpandedIndex() != 0 {
			t.Errorf("expansion should be untouched, got %d", m.ExpandedIndex())
		}
	})
}

func TestCarryExpansion(t *testing.T) {
	t.Run("keeps user choice across a rebuild", func(t *testing.T) {
		prev := Build(fixtureItems())
		prev.Toggle(1)

		rebuilt := Build(fixtureItems())
		rebuilt.CarryExpansion(&prev)
		if rebuilt.ExpandedIndex() != 1 {
			t.Errorf("expected section 1 carried over, got %d", rebuilt.ExpandedIndex())
		}
	})

	t.Run("no-op when nothing was open", func(t *testing.T) {
		prev := Build(fixtureItems())
		prev.Toggle(0)

		rebuilt := Build(fixtureItems())
		rebuilt.CarryExpansion(&prev)
		if rebuilt.ExpandedIndex() != 0 {
			t.Errorf("auto-expansion should stand, got %d", rebuilt.ExpandedIndex())
		}
	})

	t.Run("no-op for a zero-value previous model", func(t *testing.T) {
		var prev Model

		rebuilt := Build(fixtureItems())
		rebuilt.CarryExpansion(&prev)
		if rebuilt.ExpandedIndex() != 0 {
			t.Errorf("auto-expansion should stand, got %d", rebuilt.ExpandedIndex())
		}
	})
}

func TestNextIncomplete(t *testing.T) {
	m := Build(fixtureItems())
	entry, ok := m.NextIncomplete()
	if !ok {
		t.Fatal("expected a next-incomplete entry")
	}
	if entry.ID != "a2" || entry.Position != 1 {
		t.Errorf("wrong entry: %+v", entry)
	}
}

func TestStatusString(t *testing.T) {
	cases := []struct {
		status Status
		want   string
	}{
		{StatusPending, "pending"},
		{StatusCompleted, "completed"},
		{StatusNextIncomplete, "next"},
	}
	for _, tc := range cases {
		if got := tc.status.String(); got != tc.want {
			t.Errorf("Status(%d).String() = %q, want %q", tc.status, got, tc.want)
		}
	}
}
