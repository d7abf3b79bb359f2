package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/scorelib/internal/formatter"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/tasks"
	"github.com/desertthunder/scorelib/internal/view"
	"github.com/urfave/cli/v3"
)

// duplicateResolver maps the --on-duplicate flag to a [tasks.Resolver]. The
// "ask" mode walks the two-step prompt: first offer to skip the duplicates,
// then offer to import everything anyway.
func (r *Runner) duplicateResolver(mode string) (tasks.Resolver, error) {
	switch mode {
	case "skip":
		return func([]string, int) tasks.Resolution { return tasks.SkipDuplicates }, nil
	case "all":
		return func([]string, int) tasks.Resolution { return tasks.ImportAll }, nil
	case "abort":
		return func([]string, int) tasks.Resolution { return tasks.AbortImport }, nil
	case "ask", "":
		return func(duplicates []string, count int) tasks.Resolution {
			r.writePlainln("Found %d score(s) with duplicate titles:", count)
			for _, title := range duplicates {
				r.writePlain("  - %s\n", title)
			}
			if count > len(duplicates) {
				r.writePlain("  ... and %d more\n", count-len(duplicates))
			}
			r.writePlain("\n")

			if r.confirm("Skip these duplicates and import the rest?") {
				return tasks.SkipDuplicates
			}
			if r.confirm("Import everything, including duplicates?") {
				return tasks.ImportAll
			}
			return tasks.AbortImport
		}, nil
	default:
		return nil, fmt.Errorf("%w: --on-duplicate must be ask, skip, all, or abort (got %q)", shared.ErrInvalidFlag, mode)
	}
}

// Import reads a CSV file and reconciles its rows into the catalog.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("file")
	if path == "" {
		return fmt.Errorf("%w: path to a CSV file", shared.ErrMissingArgument)
	}

	resolve, err := r.duplicateResolver(cmd.String("on-duplicate"))
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	st, closer, err := r.resolveStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer closer()

	existing, err := st.ListByOwner(ctx, r.owner())
	if err != nil {
		return fmt.Errorf("failed to load existing scores: %w", err)
	}

	progress := make(chan tasks.ProgressUpdate, 64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	engine := tasks.NewImportEngine(st, r.owner())
	outcome, err := engine.Import(ctx, progress, string(data), existing, resolve, tasks.ImportOpts{
		RateLimit: r.config.Import.RateLimit,
	})
	close(progress)
	<-done

	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(outcome, true)
	}

	r.writePlainln("%s", strings.TrimRight(outcome.Summary(), "\n"))
	return nil
}

// Export writes the (optionally filtered) collection view to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
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

	path, err := formatter.WriteExport(result.Scores, cmd.String("format"), r.config.Export.Directory, cmd.String("output"))
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d score(s) to %s\n", result.Shown, path)
	return nil
}
