package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scorelib/internal/repositories"
	"github.com/desertthunder/scorelib/internal/shared"
	"github.com/desertthunder/scorelib/internal/store"
	"github.com/desertthunder/scorelib/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config *shared.Config
	store  store.ScoreStore
	logger *log.Logger
	output io.Writer
	stdin  *bufio.Scanner
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A pre-built Store bypasses config-driven store resolution; tests inject an
// in-memory double here.
type RunnerOpts struct {
	Config *shared.Config
	Store  store.ScoreStore
	Logger *log.Logger
	Output io.Writer
	Input  io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	return &Runner{
		config: opts.Config,
		store:  opts.Store,
		logger: opts.Logger,
		output: opts.Output,
		stdin:  bufio.NewScanner(opts.Input),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, listCommand, addCommand, editCommand, deleteCommand, importCommand, exportCommand, genresCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveStore returns the record store for this session, opening it from
// configuration when none was injected. The returned closer releases the
// underlying connection and is a no-op for injected or remote stores.
//
// On first open, the legacy per-device genre file is reconciled into the
// shared genre list (best-effort; a failure is logged, not fatal).
func (r *Runner) resolveStore(ctx context.Context, cmd *cli.Command) (store.ScoreStore, func(), error) {
	if r.store != nil {
		return r.store, func() {}, nil
	}

	config := r.config
	if configPath := cmd.String("config"); configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			loaded, err := shared.LoadConfig(configPath)
			if err != nil {
				return nil, nil, err
			}
			config = loaded
			r.config = loaded
		}
	}

	var st store.ScoreStore
	closer := func() {}

	if config.Remote.Enabled {
		st = store.NewRemoteStore(config.Remote.BaseURL, config.Remote.APIKey, nil)
	} else {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", shared.ErrStoreUnavailable, err)
		}
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}

		st = repositories.NewStore(db)
		closer = func() { db.Close() }
	}

	r.migrateLegacyGenres(ctx, st, config)

	return st, closer, nil
}

// migrateLegacyGenres runs the one-time legacy genre reconciliation at
// session start.
func (r *Runner) migrateLegacyGenres(ctx context.Context, st store.ScoreStore, config *shared.Config) {
	path := config.Library.LegacyGenresPath
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return
		}
		path = filepath.Join(homeDir, ".scorelib", "custom_genres.json")
	}

	result, err := tasks.MigrateLegacyGenres(ctx, nil, st, path)
	if err != nil {
		r.logger.Warn("legacy genre migration failed", "path", path, "error", err)
		return
	}
	if result.Migrated > 0 {
		r.logger.Info("migrated legacy custom genres", "count", result.Migrated, "path", path)
	}
}

// owner returns the configured owner identifier scoping all operations.
func (r *Runner) owner() string {
	if r.config != nil && r.config.Library.OwnerID != "" {
		return r.config.Library.OwnerID
	}
	return "local"
}

// confirm prompts for a yes/no answer on the runner's input stream.
// Anything other than y/yes declines.
func (r *Runner) confirm(prompt string) bool {
	r.writePlain("%s [y/N]: ", prompt)
	if !r.stdin.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(r.stdin.Text()))
	return answer == "y" || answer == "yes"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
