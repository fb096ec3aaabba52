// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "seed",
				Usage: "Install the starter track library after migrating",
			},
		},
		Action: r.Setup,
	}
}

// danceCommand launches the interactive terminal stage.
func danceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "dance",
		Aliases: []string{"tui"},
		Usage:   "Watch the dancer in an interactive terminal stage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for a reproducible dance",
			},
			&cli.FloatFlag{
				Name:  "bpm",
				Usage: "Starting tempo in beats per minute",
			},
			&cli.IntFlag{
				Name:  "fps",
				Usage: "Simulation frame rate",
			},
			&cli.StringFlag{
				Name:  "moves",
				Usage: "YAML pose library replacing the built-in choreography",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Redirect logs to a file while the TUI owns the terminal",
			},
		},
		Action: r.Dance,
	}
}

// serveCommand starts the web stage.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"web"},
		Usage:   "Serve the dancer as a live web page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address, host:port",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the stage in the default browser",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for a reproducible dance",
			},
			&cli.FloatFlag{
				Name:  "bpm",
				Usage: "Starting tempo in beats per minute",
			},
			&cli.IntFlag{
				Name:  "fps",
				Usage: "Simulation frame rate",
			},
		},
		Action: r.Serve,
	}
}

// stillCommand renders a single frozen frame.
func stillCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "still",
		Usage: "Render one frozen pose as an SVG document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed selecting the pose",
			},
			&cli.FloatFlag{
				Name:  "scale",
				Usage: "Stage scale factor",
				Value: 1,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (default: stdout)",
			},
		},
		Action: r.Still,
	}
}

// demoCommand runs a timed headless dance and reports engine stats.
func demoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run the dancer headless for a few seconds and report stats",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.IntFlag{
				Name:    "seconds",
				Aliases: []string{"n"},
				Usage:   "How long to dance",
				Value:   10,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for a reproducible dance",
			},
			&cli.FloatFlag{
				Name:  "bpm",
				Usage: "Starting tempo in beats per minute",
			},
			&cli.BoolFlag{
				Name:  "drift",
				Usage: "Enable parameter drift",
			},
			&cli.BoolFlag{
				Name:  "auto",
				Usage: "Enable auto-drive on every parameter",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Demo,
	}
}

// libraryCommand handles track library operations.
func libraryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "library",
		Aliases: []string{"lib"},
		Usage:   "Manage the track library",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Import tracks from a CSV export",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.LibraryImport,
			},
			{
				Name:  "list",
				Usage: "List library tracks",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:  "key",
						Usage: "Filter by Camelot key, e.g. 8A",
					},
					&cli.FloatFlag{
						Name:  "min-bpm",
						Usage: "Minimum tempo",
					},
					&cli.FloatFlag{
						Name:  "max-bpm",
						Usage: "Maximum tempo",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Substring match on artist or title",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to show",
						Value: 50,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.LibraryList,
			},
			{
				Name:  "seed",
				Usage: "Install the starter track library",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.LibrarySeed,
			},
			{
				Name:  "export",
				Usage: "Export the library or a crate to a file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, m3u or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output base name or directory",
					},
					&cli.StringFlag{
						Name:  "crate",
						Usage: "Export a named crate instead of the whole library",
					},
					&cli.StringFlag{
						Name:  "image",
						Usage: "Cover image URL for markdown exports",
					},
				},
				Action: r.LibraryExport,
			},
		},
	}
}

// crateCommand handles crate operations.
func crateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "crate",
		Usage: "Organize tracks into crates",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a new crate",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Crate description",
					},
				},
				Action: r.CrateCreate,
			},
			{
				Name:  "list",
				Usage: "List crates",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CrateList,
			},
			{
				Name:  "show",
				Usage: "Show a crate and its tracks",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CrateShow,
			},
			{
				Name:  "add",
				Usage: "Add a library track to a crate",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:     "crate",
						Usage:    "Crate name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Track artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Track title",
						Required: true,
					},
				},
				Action: r.CrateAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a track from a crate",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.StringFlag{
						Name:     "crate",
						Usage:    "Crate name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "artist",
						Usage:    "Track artist",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "title",
						Usage:    "Track title",
						Required: true,
					},
				},
				Action: r.CrateRemove,
			},
			{
				Name:  "delete",
				Usage: "Delete a crate",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "name",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CrateDelete,
			},
		},
	}
}

// artworkCommand handles album artwork lookups.
func artworkCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "artwork",
		Aliases: []string{"art"},
		Usage:   "Album artwork operations",
		Commands: []*cli.Command{
			{
				Name:  "lookup",
				Usage: "Look up cover art for one track",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "artist",
					},
					&cli.StringArg{
						Name: "title",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.ArtworkLookup,
			},
			{
				Name:  "fill",
				Usage: "Backfill missing artwork URLs across the library",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of tracks to backfill",
						Value: 25,
					},
				},
				Action: r.ArtworkFill,
			},
		},
	}
}
