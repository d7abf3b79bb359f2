package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/view"
	"github.com/urfave/cli/v3"
)

// viewFromFlags builds the collection view inputs from shared filter flags.
func viewFromFlags(cmd *cli.Command) (view.Filter, view.Sort) {
	filter := view.Filter{
		Search:     cmd.String("search"),
		Genre:      cmd.String("genre"),
		Difficulty: cmd.String("difficulty"),
	}
	sort := view.Sort{
		Field:      cmd.String("sort"),
		Descending: cmd.Bool("desc"),
	}
	return filter, sort
}

// List renders the filtered, sorted collection view.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	scores, err := st.ListByOwner(ctx, r.owner())
	if err != nil {
		return fmt.Errorf("failed to list scores: %w", err)
	}

	filter, sort := viewFromFlags(cmd)
	result, err := view.Apply(scores, filter, sort)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(result, cmd.Bool("pretty"))
	}

	if result.Total == 0 {
		r.writePlain("No scores in your library yet. Run 'scorelib add' or 'scorelib import' to get started.\n")
		return nil
	}

	for _, s := range result.Scores {
		r.printScore(s)
	}

	r.writePlainln("Showing %d of %d scores", result.Shown, result.Total)
	return nil
}

// printScore writes a one-score summary block.
func (r *Runner) printScore(s models.Score) {
	line := fmt.Sprintf("%s — %s", s.Title, s.Composer)
	if s.Arranger != "" {
		line += fmt.Sprintf(" (arr. %s)", s.Arranger)
	}
	r.writePlain("%s\n", line)

	details := []string{}
	if genre := joinGenres(s); genre != "" {
		details = append(details, genre)
	}
	if s.Difficulty != "" {
		details = append(details, s.Difficulty)
	}
	if s.Duration != "" {
		details = append(details, s.Duration)
	}
	if len(details) > 0 {
		r.writePlain("  %s\n", strings.Join(details, " · "))
	}
	r.writePlain("  id: %s\n", s.ID)
}

func joinGenres(s models.Score) string {
	if s.Genre == "" {
		return s.Genre2
	}
	if s.Genre2 == "" {
		return s.Genre
	}
	return s.Genre + ", " + s.Genre2
}
