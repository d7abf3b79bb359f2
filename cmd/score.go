package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scorelib/internal/models"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/urfave/cli/v3"
)

// scoreFromFlags builds a score from the shared field flags.
func scoreFromFlags(cmd *cli.Command) models.Score {
	return models.Score{
		Title:      cmd.String("title"),
		Composer:   cmd.String("composer"),
		Arranger:   cmd.String("arranger"),
		Genre:      cmd.String("genre"),
		Genre2:     cmd.String("genre2"),
		Difficulty: cmd.String("difficulty"),
		Duration:   cmd.String("duration"),
		Notes:      cmd.String("notes"),
	}
}

// applyFlagOverrides copies only the flags the user actually set onto an
// existing score, leaving the rest untouched.
func applyFlagOverrides(cmd *cli.Command, score *models.Score) {
	for flag, field := range map[string]*string{
		"title":      &score.Title,
		"composer":   &score.Composer,
		"arranger":   &score.Arranger,
		"genre":      &score.Genre,
		"genre2":     &score.Genre2,
		"difficulty": &score.Difficulty,
		"duration":   &score.Duration,
		"notes":      &score.Notes,
	} {
		if cmd.IsSet(flag) {
			*field = cmd.String(flag)
		}
	}
}

// Add creates a new score record.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	score := scoreFromFlags(cmd)
	if score.Title == "" {
		return fmt.Errorf("%w: --title is required", shared.ErrMissingArgument)
	}
	if score.Composer == "" {
		return fmt.Errorf("%w: --composer is required", shared.ErrMissingArgument)
	}

	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	if !cmd.Bool("yes") {
		existing, err := st.ListByOwner(ctx, r.owner())
		if err != nil {
			return fmt.Errorf("failed to check for duplicates: %w", err)
		}
		for _, s := range existing {
			if s.TitleMatches(score.Title) {
				if !r.confirm(fmt.Sprintf("A score titled %q already exists. Add anyway?", s.Title)) {
					r.writePlain("Cancelled.\n")
					return nil
				}
				break
			}
		}
	}

	created, err := st.Create(ctx, score, r.owner())
	if err != nil {
		return fmt.Errorf("failed to add score: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(created, true)
	}

	r.writePlain("✓ Added %q by %s (id: %s)\n", created.Title, created.Composer, created.ID)
	return nil
}

// Edit updates fields of an existing score.
func (r *Runner) Edit(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: score id", shared.ErrMissingArgument)
	}

	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	score, err := st.Get(ctx, id)
	if err != nil {
		return err
	}

	applyFlagOverrides(cmd, &score)

	if err := score.Validate(); err != nil {
		return err
	}

	updated, err := st.Update(ctx, id, score)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(updated, true)
	}

	r.writePlain("✓ Updated %q (id: %s)\n", updated.Title, updated.ID)
	return nil
}

// Delete removes a score after confirmation.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: score id", shared.ErrMissingArgument)
	}

	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	score, err := st.Get(ctx, id)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		if !r.confirm(fmt.Sprintf("Delete %q by %s?", score.Title, score.Composer)) {
			r.writePlain("Cancelled.\n")
			return nil
		}
	}

	if err := st.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	r.writePlain("✓ Deleted %q (id: %s)\n", score.Title, id)
	return nil
}
