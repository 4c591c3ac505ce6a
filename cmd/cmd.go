// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes local state: config file and journal database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the journal database",
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

// archivesCommand handles archive listing and inspection.
func archivesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "archives",
		Aliases: []string{"arc"},
		Usage:   "Archive operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List the tenant's archives",
				Flags: []cli.Flag{
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
				Action: r.ArchivesList,
			},
			{
				Name:  "assets",
				Usage: "List the assets of an archive",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "archive-id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.StringFlag{
						Name:  "csv",
						Usage: "Write the listing to a CSV file at this path",
					},
				},
				Action: r.ArchiveAssets,
			},
		},
	}
}

// searchCommand evaluates a search expression against an archive.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search an archive for assets",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "archive-id",
			},
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filename",
				Usage: "Filter by filename pattern, e.g. *.png",
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "Filter by asset type, e.g. image",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.StringFlag{
				Name:  "csv",
				Usage: "Write results to a CSV file at this path",
			},
		},
		Action: r.Search,
	}
}

// setCommand stages and commits a metadata edit.
func setCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Set a metadata field on an asset",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "asset-href",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "field",
				Usage:    "Numeric metadata field id",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "value",
				Usage:    "New field value",
				Required: true,
			},
		},
		Action: r.Set,
	}
}

// moveCommand stages and commits a move, then waits for the background job.
func moveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "move",
		Usage: "Move assets to another archive",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Destination archive id",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "asset",
				Usage:    "Asset href to move (repeatable)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "no-wait",
				Usage: "Submit the move without waiting for the background job",
			},
		},
		Action: r.Move,
	}
}

// uploadCommand stages and commits a chunked upload, then waits for processing.
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a file to an archive",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "to",
				Usage:    "Destination archive id",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "Filename to store the asset under (defaults to the file's base name)",
			},
			&cli.BoolFlag{
				Name:  "no-wait",
				Usage: "Submit the upload without waiting for processing",
			},
		},
		Action: r.Upload,
	}
}

// renditionCommand downloads a rendered variant of an asset.
func renditionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "rendition",
		Usage: "Download a rendition of an asset",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "asset-href",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "profile",
				Usage: "Rendition profile to match",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Minimum size of the shortest side in pixels",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
		},
		Action: r.Rendition,
	}
}

// watchCommand follows a background job's status location until it finishes.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Poll a background-task status location until it finishes",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "location",
			},
		},
		Action: r.Watch,
	}
}

// statusCommand inspects the commit-session journal.
func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Inspect recorded commit sessions",
		Commands: []*cli.Command{
			{
				Name:  "sessions",
				Usage: "List recorded sessions, newest first",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.StatusSessions,
			},
			{
				Name:  "records",
				Usage: "Show the task outcomes of one session",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "session-id",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.StatusRecords,
			},
		},
	}
}
