package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	enter  key.Binding
	toggle key.Binding
	back   key.Binding
	menu   key.Binding
	next   key.Binding
	theme  key.Binding
	reset  key.Binding
	yes    key.Binding
	no     key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		menu:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next unheard")),
		theme:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		reset:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reset")),
		yes:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.enter, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.toggle},
		{k.menu, k.next, k.theme, k.reset},
		{k.back, k.quit},
	}
}
