// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the database and configuration file.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// listCommand prints the checklist.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all works with completion state",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "era",
				Usage: "Only show works from this era",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		},
		Action: r.List,
	}
}

// checkCommand marks a work complete.
func checkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Mark a work as listened",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Check,
	}
}

// uncheckCommand clears a work's completion.
func uncheckCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "uncheck",
		Usage: "Mark a work as not yet listened",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Action: r.Uncheck,
	}
}

// noteCommand sets or clears listening notes.
func noteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "note",
		Usage: "Attach listening notes to a work",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
			&cli.StringArg{Name: "text"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Remove the work's notes",
			},
		},
		Action: r.Note,
	}
}

// progressCommand prints aggregate counters.
func progressCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "progress",
		Usage: "Show completion counters",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Progress,
	}
}

// nextCommand prints the next unheard work.
func nextCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "next",
		Usage: "Show the next work to listen to",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Next,
	}
}

// resetCommand clears all progress after confirmation.
func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear all completion state and notes",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Reset,
	}
}

// composerCommand prints a composer biography.
func composerCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "composer",
		Usage: "Show a composer biography",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "id"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Skip markdown rendering",
			},
		},
		Action: r.Composer,
	}
}

// exportCommand writes a progress report to disk.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export progress report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Report format: json, csv, markdown, txt (comma-separated for several)",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (directory when exporting several formats)",
			},
		},
		Action: r.Export,
	}
}

// themeCommand reads or toggles the persisted theme.
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Show or change the color theme",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the active theme",
				Action: r.ThemeShow,
			},
			{
				Name:   "toggle",
				Usage:  "Switch between light and dark",
				Action: r.ThemeToggle,
			},
			{
				Name:  "set",
				Usage: "Set the theme explicitly",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "mode"},
				},
				Action: r.ThemeSet,
			},
		},
	}
}

// syncCommand manages the optional remote backend.
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync progress with the remote backend",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Authenticate with the sync backend using OAuth2",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "account",
						Usage: "Account label for the stored session",
						Value: "default",
					},
				},
				Action: r.SyncLogin,
			},
			{
				Name:   "pull",
				Usage:  "Merge remote progress into the local copy (remote wins)",
				Action: r.SyncPull,
			},
			{
				Name:   "push",
				Usage:  "Upload local progress, replacing the remote copy",
				Action: r.SyncPush,
			},
			{
				Name:   "status",
				Usage:  "Check backend reachability and session state",
				Action: r.SyncStatus,
			},
			{
				Name:   "logout",
				Usage:  "Forget the stored session",
				Action: r.SyncLogout,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive tracking.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive checklist",
		Action:  r.TUI,
	}
}
