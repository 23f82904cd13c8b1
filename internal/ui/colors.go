package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	section lipgloss.Style
	ok      lipgloss.Style
	next    lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	notes   lipgloss.Style
}

func NewPalette(t, sec, s, n, e, w, h, nt string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		section: NewBold(sec),
		ok:      NewStyle(s),
		next:    NewBold(n),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		notes:   NewEm(nt),
	}
}

// DarkPalette suits dark terminal backgrounds; LightPalette mirrors it with
// colors that stay readable on white.
func DarkPalette() *Palette {
	return NewPalette("#7D56F4", "#A88BFA", "#04B575", "#FFD23F", "#FF5F5F", "#FFA500", "#626262", "#8A8A8A")
}

func LightPalette() *Palette {
	return NewPalette("#5B3DC4", "#6D4FD0", "#027A52", "#B07D00", "#C22F2F", "#B36B00", "#767676", "#5E5E5E")
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
