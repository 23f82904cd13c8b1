package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/syllabus/internal/shared"
	"github.com/urfave/cli/v3"
)

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// ThemeShow prints the active theme.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	dark := r.themes.DarkMode(r.config.UI.DarkMode)
	return r.writePlain("%s\n", themeName(dark))
}

// ThemeToggle flips between light and dark and persists the choice.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	dark := !r.themes.DarkMode(r.config.UI.DarkMode)
	r.themes.SetDarkMode(dark)
	return r.writePlain("Theme set to %s\n", themeName(dark))
}

// ThemeSet sets the theme explicitly to "light" or "dark".
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	switch cmd.StringArg("mode") {
	case "dark":
		r.themes.SetDarkMode(true)
	case "light":
		r.themes.SetDarkMode(false)
	default:
		return fmt.Errorf("%w: mode must be light or dark", shared.ErrInvalidInput)
	}
	return r.writePlain("Theme set to %s\n", cmd.StringArg("mode"))
}
