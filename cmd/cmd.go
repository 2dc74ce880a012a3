// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/zhuifan/internal/formatter"
	"github.com/urfave/cli/v3"
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   defaultConfigPath,
	}
}

// draftFlags are the writable anime fields shared by add and update.
func draftFlags(titleRequired bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "Anime title",
			Required: titleRequired,
		},
		&cli.IntFlag{
			Name:    "episode",
			Aliases: []string{"e"},
			Usage:   "Current episode",
			Value:   1,
		},
		&cli.IntFlag{
			Name:  "total",
			Usage: "Total episodes, 0 for unknown",
		},
		&cli.StringFlag{
			Name:    "platform",
			Aliases: []string{"p"},
			Usage:   "Streaming platform; anything outside the known list is stored as a custom platform",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Platform URL",
		},
		&cli.StringFlag{
			Name:    "status",
			Aliases: []string{"s"},
			Usage:   "追番中, 已完结 or 暂停",
		},
		&cli.StringFlag{
			Name:    "day",
			Aliases: []string{"d"},
			Usage:   "Update day, 周一..周日 or 1-7",
		},
		&cli.StringFlag{
			Name:  "notes",
			Usage: "Free-form notes",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
	}
}

// setupCommand handles setup operations for the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.RollbackDatabase,
			},
		},
	}
}

// serveCommand runs the anime store.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the anime store REST API",
		Flags: []cli.Flag{
			configFlag(),
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides config)",
			},
			&cli.StringFlag{
				Name:  "database",
				Usage: "SQLite database path (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// animeCommand handles tracked anime from the command line.
func animeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "anime",
		Aliases: []string{"a"},
		Usage:   "Manage tracked anime",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tracked anime",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "status",
						Aliases: []string{"s"},
						Usage:   "Only this status",
					},
					&cli.StringFlag{
						Name:    "platform",
						Aliases: []string{"p"},
						Usage:   "Only this platform",
					},
					&cli.StringFlag{
						Name:    "day",
						Aliases: []string{"d"},
						Usage:   "Only this update day, 周一..周日 or 1-7",
					},
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"q"},
						Usage:   "Case-insensitive match on title, platform and notes",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.AnimeList,
			},
			{
				Name:  "today",
				Usage: "List anime releasing today",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AnimeToday,
			},
			{
				Name:   "add",
				Usage:  "Track a new anime",
				Flags:  draftFlags(true),
				Action: r.AnimeAdd,
			},
			{
				Name:      "update",
				Aliases:   []string{"edit"},
				Usage:     "Change fields of a tracked anime",
				ArgsUsage: "<id>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  draftFlags(false),
				Action: r.AnimeUpdate,
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Stop tracking an anime",
				ArgsUsage: "<id>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: r.AnimeDelete,
			},
			{
				Name:      "open",
				Usage:     "Open an anime's platform URL in the browser",
				ArgsUsage: "<id>",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.AnimeOpen,
			},
			{
				Name:  "export",
				Usage: "Export the tracked list",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "One of " + formatNames() + "; inferred from --output when unset",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, stdout when unset",
					},
				},
				Action: r.AnimeExport,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive tracker",
		Action:  r.TUI,
	}
}

func formatNames() string {
	names := make([]string, 0, len(formatter.Formats()))
	for _, f := range formatter.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
