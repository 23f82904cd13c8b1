package tracker

import "github.com/desertthunder/syllabus/internal/models"

// Registry enumerates the currently rendered checklist items in document
// order. The set is mutable only by wholesale replacement: items are
// destroyed and recreated together when content is re-rendered.
type Registry struct {
	items      []models.RenderedItem
	index      map[string]int
	generation int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: map[string]int{}}
}

// Replace swaps in a new rendered item set, renumbering positions to
// document order and bumping the generation counter. Prior items are gone;
// bindings against them are invalid.
func (r *Registry) Replace(items []models.RenderedItem) {
	r.items = make([]models.RenderedItem, len(items))
	r.index = make(map[string]int, len(items))
	for i, item := range items {
		item.Position = i
		r.items[i] = item
		if item.ID != "" {
			r.index[item.ID] = i
		}
	}
	r.generation++
}

// Items returns a copy of the rendered set in document order.
func (r *Registry) Items() []models.RenderedItem {
	out := make([]models.RenderedItem, len(r.items))
	copy(out, r.items)
	return out
}

// Len reports the rendered item count.
func (r *Registry) Len() int { return len(r.items) }

// Generation reports how many times the set has been replaced.
func (r *Registry) Generation() int { return r.generation }

// Get looks up a rendered item by id.
func (r *Registry) Get(id string) (models.RenderedItem, bool) {
	i, ok := r.index[id]
	if !ok {
		return models.RenderedItem{}, false
	}
	return r.items[i], true
}

// setChecked mutates the rendered checked flag. Reports whether id exists.
func (r *Registry) setChecked(id string, checked bool) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.items[i].Checked = checked
	return true
}

// setNotes mutates the rendered notes text. Reports whether id exists.
func (r *Registry) setNotes(id, notes string) bool {
	i, ok := r.index[id]
	if !ok {
		return false
	}
	r.items[i].Notes = notes
	return true
}

// clearAll resets every rendered item to unchecked with empty notes.
func (r *Registry) clearAll() {
	for i := range r.items {
		r.items[i].Checked = false
		r.items[i].Notes = ""
	}
}
