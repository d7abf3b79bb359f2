package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/scorelib/internal/shared"
)

// Difficulty levels a score may carry. An empty difficulty is also valid.
var Difficulties = []string{"Beginner", "Intermediate", "Advanced", "Expert"}

// Score represents one catalogued piece of music.
//
// ID, Sequence, CreatedAt and UpdatedAt are assigned by the record store;
// OwnerID is set once at creation and never changed.
type Score struct {
	ID         string    `json:"id"`
	Sequence   int       `json:"-"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	Composer   string    `json:"composer"`
	Arranger   string    `json:"arranger,omitempty"`
	Genre      string    `json:"genre,omitempty"`
	Genre2     string    `json:"genre2,omitempty"`
	Difficulty string    `json:"difficulty,omitempty"`
	Duration   string    `json:"duration,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate checks that required fields are present and the difficulty, when
// set, is one of the known levels.
func (s Score) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: title is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Composer) == "" {
		return fmt.Errorf("%w: composer is required", shared.ErrInvalidInput)
	}
	if s.Difficulty != "" && !ValidDifficulty(s.Difficulty) {
		return fmt.Errorf("%w: invalid difficulty %q (must be one of %s)", shared.ErrInvalidInput, s.Difficulty, strings.Join(Difficulties, ", "))
	}
	return nil
}

// TitleMatches reports whether the score's title equals the given title after
// trimming whitespace, ignoring case. This is the duplicate oracle used by
// both the add flow and the CSV import reconciler.
func (s Score) TitleMatches(title string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Title), strings.TrimSpace(title))
}

// ValidDifficulty reports whether d is one of the known difficulty levels.
func ValidDifficulty(d string) bool {
	for _, level := range Difficulties {
		if d == level {
			return true
		}
	}
	return false
}
