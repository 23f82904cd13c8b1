package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderWorkContext builds the detail pane for a work: title, composer
// biography, historical context, and the suggested recording, rendered from
// markdown with glamour. Falls back to raw markdown if rendering fails.
func (m *Model) renderWorkContext(workID string) string {
	md := m.workMarkdown(workID)

	style := "light"
	if m.dark {
		style = "dark"
	}

	width := m.width - 4
	if width < 40 || width > 100 {
		width = 80
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// workMarkdown assembles the markdown source for a work's detail pane.
func (m *Model) workMarkdown(workID string) string {
	work, err := m.library.WorkByID(workID)
	if err != nil {
		return fmt.Sprintf("# Unknown work\n\n%v", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", work.Title)

	if composer, err := m.library.ComposerForWork(workID); err == nil {
		fmt.Fprintf(&b, "**%s** (%s)\n\n", composer.Name, composer.Years)
		if composer.Bio != "" {
			fmt.Fprintf(&b, "%s\n\n", composer.Bio)
		}
	}

	if work.Year != "" {
		fmt.Fprintf(&b, "*Composed %s*\n\n", work.Year)
	}

	if work.HistoricalContext != "" {
		fmt.Fprintf(&b, "## Historical Context\n\n%s\n\n", work.HistoricalContext)
	}

	if len(work.Notes) > 0 {
		b.WriteString("## Listening Guide\n\n")
		for _, note := range work.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
		b.WriteString("\n")
	}

	if work.Recording != nil {
		fmt.Fprintf(&b, "## Suggested Recording\n\n%s\n", work.Recording.Performer)
		if work.Recording.URL != "" {
			fmt.Fprintf(&b, "\n<%s>\n", work.Recording.URL)
		}
	}

	return b.String()
}
