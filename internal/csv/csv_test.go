package csv

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain fields",
			line: "Moonlight Sonata,Beethoven,,Classical",
			want: []string{"Moonlight Sonata", "Beethoven", "", "Classical"},
		},
		{
			name: "quoted field with comma",
			line: `"Adagio, from Concerto",Albinoni`,
			want: []string{"Adagio, from Concerto", "Albinoni"},
		},
		{
			name: "doubled quote is a literal quote",
			line: `"The ""Moonlight"" Sonata",Beethoven`,
			want: []string{`The "Moonlight" Sonata`, "Beethoven"},
		},
		{
			name: "fields are trimmed",
			line: "  Moonlight Sonata ,  Beethoven  ",
			want: []string{"Moonlight Sonata", "Beethoven"},
		},
		{
			name: "quoted fields are trimmed too",
			line: `" Moonlight Sonata ","Beethoven"`,
			want: []string{"Moonlight Sonata", "Beethoven"},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			want: []string{""},
		},
		{
			name: "trailing comma yields trailing empty field",
			line: "Title,Composer,",
			want: []string{"Title", "Composer", ""},
		},
		{
			name: "unterminated quote consumes the rest of the line",
			line: `"Moonlight,Beethoven`,
			want: []string{"Moonlight,Beethoven"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseLine(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseLine(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestEncodeLine(t *testing.T) {
	t.Run("quotes every field", func(t *testing.T) {
		got := EncodeLine([]string{"Moonlight Sonata", "Beethoven", ""})
		want := `"Moonlight Sonata","Beethoven",""`
		if got != want {
			t.Errorf("EncodeLine() = %q, want %q", got, want)
		}
	})

	t.Run("doubles internal quotes", func(t *testing.T) {
		got := EncodeLine([]string{`The "Moonlight" Sonata`})
		want := `"The ""Moonlight"" Sonata"`
		if got != want {
			t.Errorf("EncodeLine() = %q, want %q", got, want)
		}
	})

	t.Run("round-trips through ParseLine", func(t *testing.T) {
		fields := []string{"Adagio, from Concerto", `say "when"`, "Classical"}
		got := ParseLine(EncodeLine(fields))
		if diff := cmp.Diff(fields, got); diff != "" {
			t.Errorf("round-trip mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSplit(t *testing.T) {
	t.Run("discards header and blank lines", func(t *testing.T) {
		doc := Header + "\n\nEtude,Chopin\r\n\nNocturne,Chopin\n"
		got, err := Split(doc)
		if err != nil {
			t.Fatalf("Split() error = %v", err)
		}
		want := []string{"Etude,Chopin", "Nocturne,Chopin"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Split() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("header only is an empty file", func(t *testing.T) {
		if _, err := Split(Header + "\n"); !errors.Is(err, shared.ErrEmptyFile) {
			t.Errorf("Split() error = %v, want ErrEmptyFile", err)
		}
	})

	t.Run("empty document is an empty file", func(t *testing.T) {
		if _, err := Split(""); !errors.Is(err, shared.ErrEmptyFile) {
			t.Errorf("Split() error = %v, want ErrEmptyFile", err)
		}
	})

	t.Run("whitespace-only document is an empty file", func(t *testing.T) {
		if _, err := Split("\n  \n\r\n"); !errors.Is(err, shared.ErrEmptyFile) {
			t.Errorf("Split() error = %v, want ErrEmptyFile", err)
		}
	})
}

func TestRowScore(t *testing.T) {
	t.Run("maps all columns", func(t *testing.T) {
		fields := []string{"Etude Op. 10", "Chopin", "Liszt", "Classical", "Film", "Advanced", "3:00", "fast"}
		got := RowScore(fields)
		want := models.Score{
			Title:      "Etude Op. 10",
			Composer:   "Chopin",
			Arranger:   "Liszt",
			Genre:      "Classical",
			Genre2:     "Film",
			Difficulty: "Advanced",
			Duration:   "3:00",
			Notes:      "fast",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("RowScore() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing trailing fields stay empty", func(t *testing.T) {
		got := RowScore([]string{"Etude", "Chopin"})
		if got.Title != "Etude" || got.Composer != "Chopin" {
			t.Errorf("RowScore() = %+v", got)
		}
		if got.Arranger != "" || got.Notes != "" {
			t.Errorf("expected empty optional fields, got %+v", got)
		}
	})
}

func TestEncodeScore(t *testing.T) {
	score := models.Score{
		Title:    "Adagio, from Concerto",
		Composer: "Albinoni",
		Genre:    "Classical",
	}

	line := EncodeScore(score)
	if !strings.HasPrefix(line, `"Adagio, from Concerto","Albinoni"`) {
		t.Errorf("EncodeScore() = %q", line)
	}

	got := RowScore(ParseLine(line))
	if diff := cmp.Diff(score, got); diff != "" {
		t.Errorf("encode/parse round-trip mismatch (-want +got):\n%s", diff)
	}
}
