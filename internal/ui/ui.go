package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/syllabus/internal/content"
	"github.com/desertthunder/syllabus/internal/menu"
	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/tracker"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ChecklistView ViewState = iota
	DetailView
	MenuView
	ConfirmResetView
)

// ThemeStore persists the dark mode preference. Implemented by
// repositories.ThemeRepository.
type ThemeStore interface {
	DarkMode(fallback bool) bool
	SetDarkMode(dark bool)
}

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	tracker *tracker.Tracker
	library *content.Library
	themes  ThemeStore
	width   int
	height  int

	workList   list.Model
	outline    menu.Model
	menuCursor int

	detailID     string
	detailBody   string
	notesInput   textarea.Model
	editingNotes bool

	dark   bool
	styles *Palette
	help   help.Model
	keys   keyMap
	err    error
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, trk *tracker.Tracker, library *content.Library, themes ThemeStore) *Model {
	dark := themes.DarkMode(false)

	m := &Model{
		ctx:     ctx,
		view:    ChecklistView,
		tracker: trk,
		library: library,
		themes:  themes,
		dark:    dark,
		styles:  paletteFor(dark),
		help:    help.New(),
		keys:    newKeyMap(),
	}
	m.rebuildChecklist(true)
	return m
}

func paletteFor(dark bool) *Palette {
	if dark {
		return DarkPalette()
	}
	return LightPalette()
}

// nextIncompleteID returns the id of the first unchecked item in document
// order, or "" when everything is complete.
func nextIncompleteID(items []models.RenderedItem) string {
	for _, item := range items {
		if !item.Checked {
			return item.ID
		}
	}
	return ""
}

// rebuildChecklist regenerates the work list from the live registry. The
// cursor survives unless resetCursor is set.
func (m *Model) rebuildChecklist(resetCursor bool) {
	items := m.tracker.Registry().Items()
	cursor := 0
	if !resetCursor && m.workList.Items() != nil {
		cursor = m.workList.Index()
	}

	delegate := list.NewDefaultDelegate()
	m.workList = list.New(buildListItems(items, nextIncompleteID(items)), delegate, max(m.width-4, 0), max(m.height-8, 0))
	m.workList.Title = "Classical Music Syllabus"
	m.workList.SetShowHelp(false)
	if cursor < len(items) {
		m.workList.Select(cursor)
	}
}

// Init is a no-op; all state is loaded before the program starts.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.workList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ChecklistView:
			return m.handleChecklistKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case MenuView:
			return m.handleMenuKeys(msg)
		case ConfirmResetView:
			return m.handleConfirmResetKeys(msg)
		}
	}

	if m.view == ChecklistView {
		var cmd tea.Cmd
		m.workList, cmd = m.workList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return m.styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ChecklistView:
		return m.renderChecklist()
	case DetailView:
		return m.renderDetail()
	case MenuView:
		return m.renderMenu()
	case ConfirmResetView:
		return m.renderConfirmReset()
	default:
		return ""
	}
}

func (m *Model) selectedItem() (models.RenderedItem, bool) {
	selected := m.workList.SelectedItem()
	if selected == nil {
		return models.RenderedItem{}, false
	}
	wi, ok := selected.(workItem)
	return wi.item, ok
}

func (m *Model) handleChecklistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.tracker.FlushNotes()
		return m, tea.Quit

	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.selectedItem(); ok {
			if _, err := m.tracker.Toggle(item.ID); err != nil {
				m.err = err
				return m, nil
			}
			m.rebuildChecklist(false)
		}
		return m, nil

	case key.Matches(msg, m.keys.enter):
		if item, ok := m.selectedItem(); ok {
			m.openDetail(item)
		}
		return m, nil

	case key.Matches(msg, m.keys.menu):
		outline := menu.Build(m.tracker.Registry().Items())
		outline.CarryExpansion(&m.outline)
		m.outline = outline
		m.menuCursor = 0
		m.view = MenuView
		return m, nil

	case key.Matches(msg, m.keys.next):
		m.jumpToNextIncomplete()
		return m, nil

	case key.Matches(msg, m.keys.theme):
		m.dark = !m.dark
		m.styles = paletteFor(m.dark)
		m.themes.SetDarkMode(m.dark)
		return m, nil

	case key.Matches(msg, m.keys.reset):
		m.view = ConfirmResetView
		return m, nil
	}

	var cmd tea.Cmd
	m.workList, cmd = m.workList.Update(msg)
	return m, cmd
}

func (m *Model) jumpToNextIncomplete() {
	items := m.tracker.Registry().Items()
	for i, item := range items {
		if !item.Checked {
			m.workList.Select(i)
			return
		}
	}
}

func (m *Model) openDetail(item models.RenderedItem) {
	m.detailID = item.ID
	m.detailBody = m.renderWorkContext(item.ID)

	ta := textarea.New()
	ta.Placeholder = "Listening notes..."
	ta.SetValue(item.Notes)
	ta.SetWidth(min(m.width-6, 72))
	ta.SetHeight(4)
	m.notesInput = ta
	m.editingNotes = false
	m.view = DetailView
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingNotes {
		if msg.String() == "esc" {
			m.editingNotes = false
			m.notesInput.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.notesInput, cmd = m.notesInput.Update(msg)
		// Every keystroke lands in the registry immediately; the tracker
		// debounces the persisted write.
		if err := m.tracker.EditNotes(m.detailID, m.notesInput.Value()); err != nil {
			m.err = err
		}
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.tracker.FlushNotes()
		return m, tea.Quit
	case "esc":
		m.view = ChecklistView
		m.rebuildChecklist(false)
		return m, nil
	case "e":
		m.editingNotes = true
		return m, m.notesInput.Focus()
	case " ":
		if _, err := m.tracker.Toggle(m.detailID); err != nil {
			m.err = err
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.tracker.FlushNotes()
		return m, tea.Quit
	case "esc", "m":
		m.view = ChecklistView
		return m, nil
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
		return m, nil
	case "down", "j":
		if m.menuCursor < len(m.outline.Sections)-1 {
			m.menuCursor++
		}
		return m, nil
	case "enter", " ":
		m.outline.Toggle(m.menuCursor)
		return m, nil
	case "n":
		if entry, ok := m.outline.NextIncomplete(); ok {
			m.workList.Select(entry.Position)
			m.view = ChecklistView
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleConfirmResetKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.tracker.Reset()
		m.rebuildChecklist(true)
		m.view = ChecklistView
		return m, nil
	case "n", "esc", "q":
		m.view = ChecklistView
		return m, nil
	}
	return m, nil
}

func (m *Model) renderChecklist() string {
	stats := m.tracker.Stats()
	progress := m.styles.ok.Render(fmt.Sprintf("%d/%d works heard (%d%%)", stats.Completed, stats.Total, stats.Percentage))

	helpKeys := []key.Binding{m.keys.toggle, m.keys.enter, m.keys.menu, m.keys.next, m.keys.theme, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", m.workList.View(), progress, helpView)
}

func (m *Model) renderDetail() string {
	var b strings.Builder
	b.WriteString(m.detailBody)

	b.WriteString("\n" + m.styles.section.Render("Notes") + "\n")
	if m.editingNotes {
		b.WriteString(m.notesInput.View())
		b.WriteString("\n" + m.styles.help.Render("esc to stop editing"))
	} else {
		notes := m.notesInput.Value()
		if notes == "" {
			notes = m.styles.help.Render("(none — press e to add)")
		} else {
			notes = m.styles.notes.Render(notes)
		}
		b.WriteString(notes)
		editKey := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit notes"))
		helpKeys := []key.Binding{editKey, m.keys.toggle, m.keys.back, m.keys.quit}
		b.WriteString("\n\n" + m.help.ShortHelpView(helpKeys))
	}

	return b.String()
}

func (m *Model) renderMenu() string {
	if m.outline.Loading {
		return m.styles.help.Render("Loading syllabus...")
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Eras") + "\n")

	for i, section := range m.outline.Sections {
		marker := "▸"
		if m.outline.IsExpanded(i) {
			marker = "▾"
		}

		line := fmt.Sprintf("%s %s", marker, section.Title)
		if i == m.menuCursor {
			line = m.styles.next.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")

		if !m.outline.IsExpanded(i) {
			continue
		}
		for _, entry := range section.Entries {
			var status string
			switch entry.Status {
			case menu.StatusCompleted:
				status = m.styles.ok.Render("✓")
			case menu.StatusNextIncomplete:
				status = m.styles.next.Render("→")
			default:
				status = " "
			}
			b.WriteString(fmt.Sprintf("      %s %s\n", status, entry.Title))
		}
	}

	helpKeys := []key.Binding{m.keys.up, m.keys.down, m.keys.enter, m.keys.next, m.keys.back}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}

func (m *Model) renderConfirmReset() string {
	stats := m.tracker.Stats()
	title := m.styles.warn.Render("Reset all progress?")
	info := fmt.Sprintf("\nThis clears %d completed works and every note. It cannot be undone.\n", stats.Completed)

	helpKeys := []key.Binding{m.keys.yes, m.keys.no}
	return fmt.Sprintf("%s\n%s\n%s", title, info, m.help.ShortHelpView(helpKeys))
}
