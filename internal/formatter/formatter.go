// package formatter renders score collections for export (CSV, JSON, Markdown)
package formatter

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/scorelib/internal/csv"
	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
)

// Formats lists the accepted export format names.
var Formats = []string{"csv", "json", "markdown"}

// ExportCSV renders scores as a CSV document with the catalog header row.
func ExportCSV(scores []models.Score) []byte {
	lines := make([]string, 0, len(scores)+1)
	lines = append(lines, csv.Header)
	for _, s := range scores {
		lines = append(lines, csv.EncodeScore(s))
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// ExportJSON renders scores as pretty-printed JSON.
func ExportJSON(scores []models.Score) ([]byte, error) {
	return shared.MarshalJSON(scores, true)
}

// ExportMarkdown renders scores as a Markdown table.
func ExportMarkdown(scores []models.Score) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Score Library\n\n")
	fmt.Fprintf(&buf, "**Scores**: %d\n\n", len(scores))

	buf.WriteString("| Title | Composer | Arranger | Genre | Difficulty | Duration |\n")
	buf.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, s := range scores {
		genre := s.Genre
		if s.Genre2 != "" {
			genre = fmt.Sprintf("%s, %s", genre, s.Genre2)
		}
		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s | %s |\n",
			cell(s.Title), cell(s.Composer), cell(s.Arranger), cell(genre), cell(s.Difficulty), cell(s.Duration))
	}

	return buf.Bytes()
}

// cell escapes pipes so field content cannot break the table.
func cell(v string) string {
	if v == "" {
		return "-"
	}
	return strings.ReplaceAll(v, "|", "\\|")
}

// DefaultFilename returns the dated export filename, e.g.
// music-scores-2026-08-28.csv.
func DefaultFilename(format string, now time.Time) string {
	ext := format
	if format == "markdown" {
		ext = "md"
	}
	return fmt.Sprintf("music-scores-%s.%s", now.Format("2006-01-02"), ext)
}

// WriteExport renders scores in the given format and writes them to path.
// An empty path defaults to [DefaultFilename] in dir.
func WriteExport(scores []models.Score, format, dir, path string) (string, error) {
	if format == "" {
		format = "csv"
	}

	var data []byte
	var err error

	switch format {
	case "csv":
		data = ExportCSV(scores)
	case "json":
		if data, err = ExportJSON(scores); err != nil {
			return "", fmt.Errorf("failed to generate JSON: %w", err)
		}
	case "markdown":
		data = ExportMarkdown(scores)
	default:
		return "", fmt.Errorf("%w: unknown export format %q (must be one of %s)", shared.ErrInvalidFlag, format, strings.Join(Formats, ", "))
	}

	if path == "" {
		if dir == "" {
			dir = "."
		}
		path = filepath.Join(dir, DefaultFilename(format, time.Now()))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
