package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/desertthunder/syllabus/internal/formatter"
	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/urfave/cli/v3"
)

// List prints the checklist grouped by era.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	items := r.tracker.Registry().Items()
	if era := cmd.String("era"); era != "" {
		filtered := items[:0:0]
		for _, item := range items {
			if item.Era == era {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) == 0 {
			return fmt.Errorf("%w: unknown era %q", shared.ErrInvalidFlag, era)
		}
		items = filtered
	}

	if cmd.Bool("json") {
		report := formatter.Report{Items: items, Stats: models.ComputeStats(items)}
		return r.writeJSON(report, cmd.Bool("pretty"))
	}

	currentEra := ""
	for _, item := range items {
		if item.Era != currentEra {
			currentEra = item.Era
			r.writePlainln("%s", item.EraTitle)
		}

		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		r.writePlain("  %s %-40s %s\n", mark, item.Title, item.ID)
		if item.Notes != "" {
			r.writePlain("        ↳ %s\n", item.Notes)
		}
	}

	stats := r.tracker.Stats()
	return r.writePlainln("%d/%d works heard (%d%%)", stats.Completed, stats.Total, stats.Percentage)
}

// Composer prints a composer biography, rendered as markdown unless --plain.
func (r *Runner) Composer(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: composer id", shared.ErrMissingArgument)
	}

	// Accept either a composer id or a work id.
	composer, err := r.library.ComposerByID(id)
	if err != nil {
		composer, err = r.library.ComposerForWork(id)
		if err != nil {
			return fmt.Errorf("%w: %s", shared.ErrComposerNotFound, id)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(composer, true)
	}

	md := fmt.Sprintf("# %s\n\n*%s*\n\n%s\n", composer.Name, composer.Years, composer.Bio)
	if cmd.Bool("plain") {
		return r.writePlain("%s", md)
	}

	style := "light"
	if r.themes.DarkMode(r.config.UI.DarkMode) {
		style = "dark"
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithStandardStyle(style), glamour.WithWordWrap(80))
	if err != nil {
		return r.writePlain("%s", md)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return r.writePlain("%s", md)
	}
	return r.writePlain("%s", out)
}
