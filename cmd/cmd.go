// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the database and config file
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize database and run migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// serveCommand starts the JSON API server
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the HTTP API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// generateCommand produces a new article for a user
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a practice article",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "User slot (user1 or user2)",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "topic",
				Aliases:  []string{"t"},
				Usage:    "Article topic",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "level",
				Aliases:  []string{"l"},
				Usage:    "Proficiency level (DELE A1-C2 or JLPT N5-N1)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "save",
				Usage: "Save the generated article",
			},
			&cli.BoolFlag{
				Name:    "pretty",
				Aliases: []string{"p"},
				Usage:   "Pretty-print JSON output",
				Value:   true,
			},
		},
		Action: r.Generate,
	}
}

// articlesCommand groups saved article operations
func articlesCommand(r *Runner) *cli.Command {
	userFlag := &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User slot (user1 or user2)",
		Required: true,
	}

	return &cli.Command{
		Name:    "articles",
		Aliases: []string{"art"},
		Usage:   "Saved article operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List a user's saved articles",
				Flags: []cli.Flag{
					userFlag,
					&cli.BoolFlag{
						Name:    "pretty",
						Aliases: []string{"p"},
						Usage:   "Pretty-print JSON output",
					},
				},
				Action: r.ListArticles,
			},
			{
				Name:  "delete",
				Usage: "Delete a saved article by ID",
				Flags: []cli.Flag{
					userFlag,
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Article ID",
						Required: true,
					},
				},
				Action: r.DeleteArticle,
			},
			{
				Name:  "export",
				Usage: "Export a user's articles to files",
				Flags: []cli.Flag{
					userFlag,
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: markdown, text, or csv",
						Value:   "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory",
						Value:   "export",
					},
				},
				Action: r.ExportArticles,
			},
		},
	}
}

// statsCommand shows a user's reading statistics
func statsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show a user's reading statistics",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "User slot (user1 or user2)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:    "pretty",
				Aliases: []string{"p"},
				Usage:   "Pretty-print JSON output",
				Value:   true,
			},
		},
		Action: r.Stats,
	}
}

// langCommand gets or sets the interface language
func langCommand(r *Runner) *cli.Command {
	userFlag := &cli.StringFlag{
		Name:     "user",
		Aliases:  []string{"u"},
		Usage:    "User slot (user1 or user2)",
		Required: true,
	}

	return &cli.Command{
		Name:  "lang",
		Usage: "Interface language settings",
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Show the user's interface language",
				Flags:  []cli.Flag{userFlag},
				Action: r.GetLanguage,
			},
			{
				Name:  "set",
				Usage: "Set the user's interface language",
				Flags: []cli.Flag{
					userFlag,
					&cli.StringFlag{
						Name:     "language",
						Aliases:  []string{"l"},
						Usage:    "spanish, english, or japanese",
						Required: true,
					},
				},
				Action: r.SetLanguage,
			},
		},
	}
}

// migrateCommand replays legacy file data into the database
func migrateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Migrate legacy article files into the database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Migrate a single user slot (defaults to all)",
			},
		},
		Action: r.Migrate,
	}
}

// browseCommand launches the interactive article browser
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse saved articles in an interactive TUI",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "user",
				Aliases:  []string{"u"},
				Usage:    "User slot (user1 or user2)",
				Required: true,
			},
		},
		Action: r.Browse,
	}
}
