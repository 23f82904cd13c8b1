package tasks

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/syllabus/internal/formatter"
	"github.com/desertthunder/syllabus/internal/shared"
)

// Export renders a progress report to disk in the requested format and
// returns the path written.
func Export(report formatter.Report, format, path string, progress chan<- ProgressUpdate) (string, error) {
	sendProgress(progress, writeReportUpdate(format))
	return formatter.WriteReport(report, format, path)
}

// ExportResult records the outcome of one format in a multi-format export.
type ExportResult struct {
	Format string
	Path   string
	Err    error
}

// ExportAll writes the report in every requested format concurrently, one
// worker per format (the set is small and bounded). Partial failures are
// reported per format, never as a whole-run error.
func ExportAll(report formatter.Report, formats []string, dir string, progress chan<- ProgressUpdate) []ExportResult {
	if dir == "" {
		dir = fmt.Sprintf("syllabus_export_%d", time.Now().Unix())
	}

	results := make([]ExportResult, len(formats))

	var wg sync.WaitGroup
	for i, format := range formats {
		wg.Add(1)
		go func(i int, format string) {
			defer wg.Done()

			format = strings.TrimSpace(format)
			if format == "" {
				results[i] = ExportResult{Format: format, Err: fmt.Errorf("%w: empty format", shared.ErrInvalidFlag)}
				return
			}

			sendProgress(progress, writeReportUpdate(format))
			path, err := formatter.WriteReport(report, format, filepath.Join(dir, "syllabus_progress."+formatter.Extension(format)))
			results[i] = ExportResult{Format: format, Path: path, Err: err}
		}(i, format)
	}
	wg.Wait()

	return results
}
