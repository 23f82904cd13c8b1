package menu

import "github.com/desertthunder/syllabus/internal/models"

// Status tags a menu entry.
type Status int

const (
	StatusPending Status = iota
	StatusCompleted
	// StatusNextIncomplete marks the single globally-first unchecked item,
	// the "continue where you left off" target.
	StatusNextIncomplete
)

func (s Status) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusNextIncomplete:
		return "next"
	default:
		return "pending"
	}
}

// Entry is one navigable menu line, linking to an item's position.
type Entry struct {
	ID       string
	Title    string
	Status   Status
	Position int
}

// Section groups entries by era, in document order.
type Section struct {
	Key     string
	Title   string
	Entries []Entry
	// HasNext reports whether this section contains the next-incomplete item.
	HasNext bool
}

// Model is the derived outline. Ephemeral: rebuilt whole on every change.
type Model struct {
	Sections []Section
	// Loading is set when no groups are discoverable yet (content not
	// rendered); render a placeholder instead of an empty menu.
	Loading bool
	// expanded is the index of the single open section, or -1.
	expanded int
}

// Build derives a Model from the rendered item set in document order.
//
// The first unchecked item anywhere in the set is tagged next-incomplete
// (a global singleton, not per section). On first build the section holding
// it starts expanded; when everything is complete no section does.
func Build(items []models.RenderedItem) Model {
	if len(items) == 0 {
		return Model{Loading: true, expanded: -1}
	}

	nextID := ""
	for _, item := range items {
		if !item.Checked {
			nextID = item.ID
			break
		}
	}

	m := Model{expanded: -1}
	sectionIndex := map[string]int{}

	for _, item := range items {
		i, ok := sectionIndex[item.Era]
		if !ok {
			i = len(m.Sections)
			sectionIndex[item.Era] = i
			m.Sections = append(m.Sections, Section{Key: item.Era, Title: item.EraTitle})
		}

		status := StatusPending
		switch {
		case item.ID != "" && item.ID == nextID:
			status = StatusNextIncomplete
			m.Sections[i].HasNext = true
		case item.Checked:
			status = StatusCompleted
		}

		m.Sections[i].Entries = append(m.Sections[i].Entries, Entry{
			ID:       item.ID,
			Title:    item.Title,
			Status:   status,
			Position: item.Position,
		})
	}

	if m.expanded < 0 {
		for i, section := range m.Sections {
			if section.HasNext {
				m.expanded = i
				break
			}
		}
	}

	return m
}

// ExpandedIndex returns the index of the open section, or -1 when all are
// collapsed.
func (m *Model) ExpandedIndex() int { return m.expanded }

// IsExpanded reports whether section i is the open one.
func (m *Model) IsExpanded(i int) bool { return i == m.expanded }

// Toggle opens or closes section i under mutual exclusion: expanding one
// section first collapses whichever was open, and toggling the open section
// collapses it. Out-of-range indices are ignored.
func (m *Model) Toggle(i int) {
	if i < 0 || i >= len(m.Sections) {
		return
	}
	if m.expanded == i {
		m.expanded = -1
		return
	}
	m.expanded = i
}

// NextIncomplete returns the entry tagged next-incomplete, if any.
func (m *Model) NextIncomplete() (Entry, bool) {
	for _, section := range m.Sections {
		for _, entry := range section.Entries {
			if entry.Status == StatusNextIncomplete {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// CarryExpansion preserves the open section across a rebuild when the user
// had explicitly opened one; otherwise the rebuilt auto-expansion stands.
func (m *Model) CarryExpansion(prev *Model) {
	if prev == nil || prev.expanded < 0 || prev.expanded >= len(prev.Sections) {
		return
	}
	prevKey := prev.Sections[prev.expanded].Key
	for i, section := range m.Sections {
		if section.Key == prevKey {
			m.expanded = i
			return
		}
	}
}
