package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/tasks"
	"github.com/urfave/cli/v3"
)

// GenresList prints the shared genre list.
func (r *Runner) GenresList(ctx context.Context, cmd *cli.Command) error {
	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	genres, err := st.GetGenres(ctx)
	if err != nil {
		return fmt.Errorf("failed to load genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	for _, genre := range genres {
		r.writePlain("%s\n", genre)
	}
	r.writePlainln("%d genre(s)", len(genres))
	return nil
}

// GenresAdd adds a genre to the shared list.
func (r *Runner) GenresAdd(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: genre name", shared.ErrMissingArgument)
	}

	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	result, err := st.AddGenre(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to add genre: %w", err)
	}

	if !result.Success {
		r.writePlain("%s\n", result.Message)
		return nil
	}

	r.writePlain("✓ Added genre %q (%d total)\n", name, len(result.Genres))
	return nil
}

// GenresMigrate moves a legacy per-device genre file into the shared list.
// With no path argument the default location is used.
func (r *Runner) GenresMigrate(ctx context.Context, cmd *cli.Command) error {
	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	path := cmd.StringArg("path")
	if path == "" {
		path = r.config.Library.LegacyGenresPath
	}
	if path == "" {
		return fmt.Errorf("%w: path to legacy genre file", shared.ErrMissingArgument)
	}

	result, err := tasks.MigrateLegacyGenres(ctx, nil, st, path)
	if err != nil {
		return err
	}

	if result.Migrated == 0 {
		r.writePlain("No custom genres to migrate.\n")
		return nil
	}

	r.writePlain("✓ Migrated %d custom genre(s) into the shared list\n", result.Migrated)
	return nil
}
