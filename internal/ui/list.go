package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/syllabus/internal/models"
)

var _ list.Item = workItem{}

// workItem wraps [models.RenderedItem] to implement [list.Item].
type workItem struct {
	item   models.RenderedItem
	isNext bool
}

func (i workItem) FilterValue() string { return i.item.Title }

func (i workItem) Title() string {
	return fmt.Sprintf("%s %s", checkGlyph(i.item.Checked, i.isNext), i.item.Title)
}

func (i workItem) Description() string {
	desc := i.item.EraTitle
	if i.item.Notes != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.item.Notes)
	}
	return desc
}

// checkGlyph renders the completion marker for a work. The next unheard work
// gets an arrow so it stands out from plain unchecked boxes.
func checkGlyph(checked, isNext bool) string {
	switch {
	case checked:
		return "[x]"
	case isNext:
		return "[→]"
	default:
		return "[ ]"
	}
}

// buildListItems converts rendered items to list items, marking the work
// matching nextID.
func buildListItems(items []models.RenderedItem, nextID string) []list.Item {
	out := make([]list.Item, len(items))
	for i, item := range items {
		out[i] = workItem{item: item, isNext: item.ID != "" && item.ID == nextID}
	}
	return out
}
