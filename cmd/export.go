package main

import (
	"context"
	"strings"

	"github.com/desertthunder/syllabus/internal/formatter"
	"github.com/desertthunder/syllabus/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the progress report to disk. A comma-separated --format list
// writes every format into one directory.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireLibrary(); err != nil {
		return err
	}

	items := r.tracker.Registry().Items()
	report := formatter.Report{Items: items, Stats: r.tracker.Stats()}

	format := cmd.String("format")
	if strings.Contains(format, ",") {
		results := tasks.ExportAll(report, strings.Split(format, ","), cmd.String("output"), nil)
		var failed bool
		for _, res := range results {
			if res.Err != nil {
				failed = true
				r.writePlain("✗ %s: %v\n", res.Format, res.Err)
				continue
			}
			r.writePlain("✓ Report written to %s\n", res.Path)
		}
		if failed {
			r.logger.Warn("some formats failed to export")
		}
		return nil
	}

	path, err := tasks.Export(report, format, cmd.String("output"), nil)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Report written to %s\n", path)
}
