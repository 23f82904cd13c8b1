// package formatter provides functions to export syllabus progress to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/syllabus/internal/models"
	"github.com/desertthunder/syllabus/internal/shared"
)

// Report bundles the rendered checklist with its aggregate counters.
type Report struct {
	Items []models.RenderedItem `json:"items"`
	Stats models.ProgressStats  `json:"stats"`
}

// ExportToCSV converts a Report to CSV with columns: Position, Era, Title, Completed, Notes
func ExportToCSV(report Report) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Position", "Era", "Title", "Completed", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range report.Items {
		record := []string{
			strconv.Itoa(item.Position + 1),
			item.EraTitle,
			item.Title,
			strconv.FormatBool(item.Checked),
			item.Notes,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Report to a Markdown checklist grouped by era.
func ExportToMarkdown(report Report) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Listening Progress\n\n")
	buf.WriteString(fmt.Sprintf("**Completed**: %d of %d (%d%%)\n\n",
		report.Stats.Completed, report.Stats.Total, report.Stats.Percentage))

	currentEra := ""
	for _, item := range report.Items {
		if item.Era != currentEra {
			currentEra = item.Era
			buf.WriteString(fmt.Sprintf("## %s\n\n", item.EraTitle))
		}

		mark := " "
		if item.Checked {
			mark = "x"
		}
		buf.WriteString(fmt.Sprintf("- [%s] %s\n", mark, item.Title))
		if item.Notes != "" {
			buf.WriteString(fmt.Sprintf("  - %s\n", item.Notes))
		}
	}

	return buf.Bytes()
}

// ExportToText converts a Report to a plain text summary.
func ExportToText(report Report) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Listening Progress — %d/%d works (%d%%)\n",
		report.Stats.Completed, report.Stats.Total, report.Stats.Percentage))
	buf.WriteString(strings.Repeat("=", 40) + "\n\n")

	currentEra := ""
	for _, item := range report.Items {
		if item.Era != currentEra {
			currentEra = item.Era
			buf.WriteString(item.EraTitle + "\n")
			buf.WriteString(strings.Repeat("-", len(item.EraTitle)) + "\n")
		}

		mark := "[ ]"
		if item.Checked {
			mark = "[x]"
		}
		buf.WriteString(fmt.Sprintf("%s %s\n", mark, item.Title))
	}

	return buf.Bytes()
}

// ExportToJSON converts a Report to indented JSON.
func ExportToJSON(report Report) ([]byte, error) {
	return shared.MarshalJSON(report, true)
}

// Extension returns the file extension for a report format, or "" when the
// format is unknown.
func Extension(format string) string {
	switch format {
	case "csv":
		return "csv"
	case "markdown", "md":
		return "md"
	case "txt", "text":
		return "txt"
	case "json", "":
		return "json"
	}
	return ""
}

// WriteReport renders the report in the requested format and writes it to
// path. An empty path derives a timestamped filename in the working
// directory. Returns the path written.
func WriteReport(report Report, format, path string) (string, error) {
	var data []byte
	var err error

	switch format {
	case "csv":
		data, err = ExportToCSV(report)
	case "markdown", "md":
		data = ExportToMarkdown(report)
	case "txt", "text":
		data = ExportToText(report)
	case "json", "":
		data, err = ExportToJSON(report)
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
	if err != nil {
		return "", err
	}

	if path == "" {
		path = fmt.Sprintf("syllabus_progress_%d.%s", time.Now().Unix(), Extension(format))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
