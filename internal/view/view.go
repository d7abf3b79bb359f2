// package view derives the filtered, sorted projection of a score collection.
//
// The engine operates on an immutable snapshot of the owner's full record set
// and re-derives the view whenever records, filters, or sort parameters
// change; nothing is mutated in place.
package view

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/desertthunder/scorelib/internal/models"
)

// Filter narrows the record set. Empty fields are ignored; populated fields
// are combined with logical AND.
type Filter struct {
	Search     string // wildcard pattern matched against title, composer, arranger
	Genre      string // exact match against genre or genre2
	Difficulty string // exact match
}

// Sort orders the filtered records.
type Sort struct {
	Field      string
	Descending bool
}

// SortFields lists the accepted values for [Sort.Field].
var SortFields = []string{"title", "composer", "arranger", "genre", "difficulty", "duration", "createdAt", "updatedAt"}

// View is the ordered, filtered sequence of scores plus the counts used for
// "showing X of Y" reporting.
type View struct {
	Scores []models.Score
	Shown  int
	Total  int
}

// CompilePattern converts a wildcard search pattern into a case-insensitive
// regular expression: '*' matches zero or more characters, '?' matches
// exactly one, and everything else (including regexp metacharacters) matches
// literally. The result is unanchored, giving substring-search semantics.
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)")
	for _, r := range pattern {
		switch r {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid search pattern %q: %w", pattern, err)
	}
	return re, nil
}

// Apply filters and sorts the given record set, returning the derived view.
// The input slice is never modified.
func Apply(scores []models.Score, f Filter, s Sort) (View, error) {
	result := make([]models.Score, 0, len(scores))

	var re *regexp.Regexp
	if f.Search != "" {
		var err error
		if re, err = CompilePattern(f.Search); err != nil {
			return View{}, err
		}
	}

	for _, score := range scores {
		if re != nil {
			matched := re.MatchString(score.Title) ||
				re.MatchString(score.Composer) ||
				(score.Arranger != "" && re.MatchString(score.Arranger))
			if !matched {
				continue
			}
		}
		if f.Genre != "" && score.Genre != f.Genre && score.Genre2 != f.Genre {
			continue
		}
		if f.Difficulty != "" && score.Difficulty != f.Difficulty {
			continue
		}
		result = append(result, score)
	}

	if s.Field != "" {
		if err := sortScores(result, s); err != nil {
			return View{}, err
		}
	}

	return View{Scores: result, Shown: len(result), Total: len(scores)}, nil
}

// sortScores stably orders scores by the sort field. String fields compare
// case-insensitively; date fields compare by timestamp with the zero time
// sorting lowest. Ties keep their pre-sort relative order.
func sortScores(scores []models.Score, s Sort) error {
	var less func(a, b models.Score) bool

	switch s.Field {
	case "createdAt":
		less = func(a, b models.Score) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case "updatedAt":
		less = func(a, b models.Score) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case "title", "composer", "arranger", "genre", "difficulty", "duration":
		key := stringKey(s.Field)
		less = func(a, b models.Score) bool {
			return strings.ToLower(key(a)) < strings.ToLower(key(b))
		}
	default:
		return fmt.Errorf("invalid sort field %q (must be one of %s)", s.Field, strings.Join(SortFields, ", "))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if s.Descending {
			return less(scores[j], scores[i])
		}
		return less(scores[i], scores[j])
	})

	return nil
}

func stringKey(field string) func(models.Score) string {
	switch field {
	case "title":
		return func(s models.Score) string { return s.Title }
	case "composer":
		return func(s models.Score) string { return s.Composer }
	case "arranger":
		return func(s models.Score) string { return s.Arranger }
	case "genre":
		return func(s models.Score) string { return s.Genre }
	case "difficulty":
		return func(s models.Score) string { return s.Difficulty }
	default:
		return func(s models.Score) string { return s.Duration }
	}
}

// UniqueGenres returns the sorted set of genre names present on the given
// scores, for populating filter choices.
func UniqueGenres(scores []models.Score) []string {
	seen := make(map[string]struct{})
	var genres []string
	for _, s := range scores {
		for _, g := range []string{s.Genre, s.Genre2} {
			if g == "" {
				continue
			}
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				genres = append(genres, g)
			}
		}
	}
	sort.Strings(genres)
	return genres
}
