package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/desertthunder/syllabus/internal/tasks"
	"github.com/desertthunder/syllabus/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive checklist.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/syllabus-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.logger = fileLogger

	// With a signed-in sync session, changes made in the TUI mirror to the
	// backend in the background.
	if r.service != nil && r.engine != nil {
		if err := r.restoreSession(ctx); err == nil {
			mirrorOpts := []tasks.MirrorOption{
				tasks.WithRateLimit(r.config.Sync.RateLimit),
			}
			if r.config.Sync.DebounceMS > 0 {
				mirrorOpts = append(mirrorOpts,
					tasks.WithMirrorDebounce(time.Duration(r.config.Sync.DebounceMS)*time.Millisecond))
			}
			mirror := tasks.NewMirror(r.engine, fileLogger, mirrorOpts...)
			detach := mirror.Attach(r.tracker)
			defer func() {
				mirror.Flush()
				detach()
			}()
		}
	}

	model := ui.NewModel(ctx, r.tracker, r.library, r.themes)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
