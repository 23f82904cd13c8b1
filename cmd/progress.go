package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/syllabus/internal/menu"
	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/urfave/cli/v3"
)

// Check marks a work as listened.
func (r *Runner) Check(ctx context.Context, cmd *cli.Command) error {
	return r.setChecked(cmd.StringArg("id"), true)
}

// Uncheck clears a work's completion.
func (r *Runner) Uncheck(ctx context.Context, cmd *cli.Command) error {
	return r.setChecked(cmd.StringArg("id"), false)
}

func (r *Runner) setChecked(id string, checked bool) error {
	if id == "" {
		return fmt.Errorf("%w: work id", shared.ErrMissingArgument)
	}

	if err := r.tracker.SetChecked(id, checked); err != nil {
		return err
	}

	work, _ := r.library.WorkByID(id)
	stats := r.tracker.Stats()
	mark := "✓"
	if !checked {
		mark = "○"
	}
	return r.writePlain("%s %s — %d/%d works (%d%%)\n", mark, work.Title, stats.Completed, stats.Total, stats.Percentage)
}

// Note attaches or clears listening notes on a work. The write is flushed
// before returning so the one-shot command always persists.
func (r *Runner) Note(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: work id", shared.ErrMissingArgument)
	}

	text := cmd.StringArg("text")
	if cmd.Bool("clear") {
		text = ""
	} else if text == "" {
		return fmt.Errorf("%w: note text (or --clear)", shared.ErrMissingArgument)
	}

	if err := r.tracker.EditNotes(id, text); err != nil {
		return err
	}
	r.tracker.FlushNotes()

	if text == "" {
		return r.writePlain("Notes cleared for %s\n", id)
	}
	return r.writePlain("Notes saved for %s\n", id)
}

// Progress prints aggregate completion counters.
func (r *Runner) Progress(ctx context.Context, cmd *cli.Command) error {
	stats := r.tracker.UpdateProgress()

	if cmd.Bool("json") {
		return r.writeJSON(stats, true)
	}

	bar := renderBar(stats.Percentage, 30)
	r.writePlain("%s %d%%\n", bar, stats.Percentage)
	return r.writePlain("%d of %d works heard\n", stats.Completed, stats.Total)
}

// renderBar draws a fixed-width completion bar.
func renderBar(percentage, width int) string {
	filled := percentage * width / 100
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

// Next prints the next work to listen to in syllabus order.
func (r *Runner) Next(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	outline := menu.Build(r.tracker.Registry().Items())
	entry, ok := outline.NextIncomplete()
	if !ok {
		return r.writePlain("All %d works heard — the syllabus is complete.\n", r.tracker.Stats().Total)
	}

	if cmd.Bool("json") {
		work, err := r.library.WorkByID(entry.ID)
		if err != nil {
			return err
		}
		return r.writeJSON(work, true)
	}

	work, err := r.library.WorkByID(entry.ID)
	if err != nil {
		return err
	}

	r.writePlain("Next up: %s\n", work.Title)
	if composer, err := r.library.ComposerForWork(entry.ID); err == nil {
		r.writePlain("Composer: %s (%s)\n", composer.Name, composer.Years)
	}
	if work.Year != "" {
		r.writePlain("Composed: %s\n", work.Year)
	}
	return r.writePlain("\nsyllabus check %s  (when you've listened)\n", entry.ID)
}

// Reset clears all completion state and notes. Destructive, so it prompts
// unless --yes is given.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		stats := r.tracker.Stats()
		r.writePlain("This clears %d completed works and every note. Continue? [y/N] ", stats.Completed)

		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return r.writePlain("Reset cancelled.\n")
		}
	}

	r.tracker.Reset()
	return r.writePlain("All progress cleared.\n")
}
