// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// configFlag is shared by every command that opens the store.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// filterFlags are the collection view flags shared by list and export.
func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "search",
			Aliases: []string{"s"},
			Usage:   "Wildcard search across title, composer, arranger (* and ?)",
		},
		&cli.StringFlag{
			Name:    "genre",
			Aliases: []string{"g"},
			Usage:   "Only scores whose genre or second genre matches exactly",
		},
		&cli.StringFlag{
			Name:    "difficulty",
			Aliases: []string{"d"},
			Usage:   "Only scores with this difficulty",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "Sort field: title, composer, arranger, genre, difficulty, duration, createdAt, updatedAt",
			Value: "createdAt",
		},
		&cli.BoolFlag{
			Name:  "desc",
			Usage: "Sort in descending order",
		},
	}
}

// scoreFlags are the score field flags shared by add and edit.
func scoreFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "title",
			Usage: "Score title",
		},
		&cli.StringFlag{
			Name:  "composer",
			Usage: "Composer name",
		},
		&cli.StringFlag{
			Name:  "arranger",
			Usage: "Arranger name",
		},
		&cli.StringFlag{
			Name:  "genre",
			Usage: "Primary genre",
		},
		&cli.StringFlag{
			Name:  "genre2",
			Usage: "Secondary genre",
		},
		&cli.StringFlag{
			Name:  "difficulty",
			Usage: "Difficulty: Beginner, Intermediate, Advanced, Expert",
		},
		&cli.StringFlag{
			Name:  "duration",
			Usage: "Approximate duration, e.g. 4:30",
		},
		&cli.StringFlag{
			Name:  "notes",
			Usage: "Free-form notes",
		},
	}
}

// setupCommand initializes configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Initialize config file and database, run migrations",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Setup,
	}
}

// listCommand renders the filtered, sorted collection view.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List scores with optional filtering and sorting",
		Flags: append(filterFlags(),
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
				Value: true,
			},
		),
		Action: r.List,
	}
}

// addCommand creates a score record.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a score to the catalog",
		Flags: append(scoreFlags(),
			configFlag(),
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the duplicate title prompt",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the created score as JSON",
			},
		),
		Action: r.Add,
	}
}

// editCommand updates an existing score by id.
func editCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "edit",
		Usage: "Edit a score's fields",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: append(scoreFlags(),
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the updated score as JSON",
			},
		),
		Action: r.Edit,
	}
}

// deleteCommand removes a score by id.
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "delete",
		Aliases: []string{"rm"},
		Usage:   "Delete a score from the catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Delete,
	}
}

// importCommand runs the CSV import reconciliation flow.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import scores from a CSV file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "on-duplicate",
				Usage: "Duplicate handling: ask, skip, all, abort",
				Value: "ask",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the import summary as JSON",
			},
		},
		Action: r.Import,
	}
}

// exportCommand writes the (optionally filtered) collection to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export scores to CSV, JSON, or Markdown",
		Flags: append(filterFlags(),
			configFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, json, markdown",
				Value:   "csv",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (defaults to music-scores-<date>.<ext>)",
			},
		),
		Action: r.Export,
	}
}

// genresCommand manages the shared genre list.
func genresCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "genres",
		Usage: "Manage the shared genre list",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List all genres",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.GenresList,
			},
			{
				Name:  "add",
				Usage: "Add a genre to the shared list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.GenresAdd,
			},
			{
				Name:  "migrate",
				Usage: "Migrate legacy per-device custom genres into the shared list",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.GenresMigrate,
			},
		},
	}
}

// tuiCommand launches the interactive terminal browser.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"browse"},
		Usage:   "Browse the catalog interactively",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
