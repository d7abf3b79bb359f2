package formatter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/scorelib/internal/csv"
	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
)

var sampleScores = []models.Score{
	{
		Title:      "Adagio, from Concerto",
		Composer:   "Albinoni",
		Genre:      "Classical",
		Difficulty: "Intermediate",
		Duration:   "4:30",
	},
	{
		Title:    "Take Five",
		Composer: "Desmond",
		Arranger: "Brubeck",
		Genre:    "Jazz",
		Genre2:   "Pop",
	},
}

func TestExportCSV(t *testing.T) {
	data := string(ExportCSV(sampleScores))
	lines := strings.Split(strings.TrimRight(data, "\n"), "\n")

	if lines[0] != csv.Header {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Fatalf("line count = %d, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[1], `"Adagio, from Concerto","Albinoni"`) {
		t.Errorf("first row = %q", lines[1])
	}

	// The embedded comma must survive a parse round-trip.
	fields := csv.ParseLine(lines[1])
	if fields[0] != "Adagio, from Concerto" {
		t.Errorf("parsed title = %q", fields[0])
	}
}

func TestExportCSVEmpty(t *testing.T) {
	data := string(ExportCSV(nil))
	if data != csv.Header+"\n" {
		t.Errorf("ExportCSV(nil) = %q", data)
	}
}

func TestExportJSON(t *testing.T) {
	data, err := ExportJSON(sampleScores)
	if err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	var decoded []models.Score
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Title != "Adagio, from Concerto" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestExportMarkdown(t *testing.T) {
	data := string(ExportMarkdown(sampleScores))

	if !strings.Contains(data, "# Score Library") {
		t.Error("missing heading")
	}
	if !strings.Contains(data, "**Scores**: 2") {
		t.Error("missing count")
	}
	if !strings.Contains(data, "| Take Five | Desmond | Brubeck | Jazz, Pop |") {
		t.Errorf("missing row:\n%s", data)
	}
	// Empty cells render as a dash
	if !strings.Contains(data, "| - | Classical |") {
		t.Errorf("missing dash cell:\n%s", data)
	}
}

func TestDefaultFilename(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		format string
		want   string
	}{
		{"csv", "music-scores-2026-08-28.csv"},
		{"json", "music-scores-2026-08-28.json"},
		{"markdown", "music-scores-2026-08-28.md"},
	}

	for _, tt := range tests {
		if got := DefaultFilename(tt.format, now); got != tt.want {
			t.Errorf("DefaultFilename(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("writes to an explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		got, err := WriteExport(sampleScores, "csv", "", path)
		if err != nil {
			t.Fatalf("WriteExport() error = %v", err)
		}
		if got != path {
			t.Errorf("path = %q, want %q", got, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		if !strings.HasPrefix(string(data), csv.Header) {
			t.Errorf("export = %q", data)
		}
	})

	t.Run("defaults to a dated filename in the directory", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteExport(sampleScores, "json", dir, "")
		if err != nil {
			t.Fatalf("WriteExport() error = %v", err)
		}

		base := filepath.Base(path)
		if !strings.HasPrefix(base, "music-scores-") || !strings.HasSuffix(base, ".json") {
			t.Errorf("filename = %q", base)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("dir = %q, want %q", filepath.Dir(path), dir)
		}
	})

	t.Run("empty format means csv", func(t *testing.T) {
		dir := t.TempDir()

		path, err := WriteExport(sampleScores, "", dir, "")
		if err != nil {
			t.Fatalf("WriteExport() error = %v", err)
		}
		if !strings.HasSuffix(path, ".csv") {
			t.Errorf("path = %q", path)
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		if _, err := WriteExport(sampleScores, "xml", t.TempDir(), ""); !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("WriteExport() error = %v, want ErrInvalidFlag", err)
		}
	})
}
