package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/hpungsan/linkboard/internal/config"
	"github.com/hpungsan/linkboard/internal/errors"
	"github.com/hpungsan/linkboard/internal/ops"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(gw ops.Gateway, db *sql.DB, cfg *config.Config, baseDir string) *cli.App {
	app := &cli.App{
		Name:    "linkboard",
		Usage:   "Save webpages as link cards on a wiki.js page",
		Version: Version,
		Commands: []*cli.Command{
			addContainerCmd(gw, db, cfg),
			addCategoryCmd(gw, db, cfg),
			saveCmd(gw, db, cfg),
			clearLinksCmd(gw, db, cfg),
			listCmd(gw, db, cfg),
			refreshCmd(gw, db, cfg),
			exportCmd(gw, db, cfg),
			importCmd(gw, db, cfg),
			historyCmd(db, cfg),
			showCmd(db),
			restoreCmd(gw, db, cfg),
			configCmd(cfg, baseDir),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// addContainerCmd creates the add-container command.
func addContainerCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "add-container",
		Usage: "Add a top-level container to the board",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name", Required: true},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "Explicit key (derived from name by default)"},
			&cli.IntFlag{Name: "columns", Aliases: []string{"c"}, Usage: "Column count 1-4 (default 2)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.AddContainer(context.Background(), gw, db, cfg, ops.AddContainerInput{
				Name:    c.String("name"),
				Key:     c.String("key"),
				Columns: c.Int("columns"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// addCategoryCmd creates the add-category command.
func addCategoryCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "add-category",
		Usage: "Add a category inside an existing container",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name", Required: true},
			&cli.StringFlag{Name: "container", Aliases: []string{"C"}, Usage: "Owning container key", Required: true},
			&cli.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "Explicit key (derived from name by default)"},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Short text under the title"},
			&cli.StringFlag{Name: "layout", Aliases: []string{"l"}, Usage: "cards|compact|large (default cards)"},
			&cli.StringFlag{Name: "accent", Aliases: []string{"a"}, Usage: "Accent color name (default blue)"},
			&cli.IntFlag{Name: "column", Usage: "Advisory column hint"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.AddCategory(context.Background(), gw, db, cfg, ops.AddCategoryInput{
				Name:        c.String("name"),
				Key:         c.String("key"),
				Description: c.String("description"),
				Container:   c.String("container"),
				Layout:      c.String("layout"),
				Accent:      c.String("accent"),
				Column:      c.Int("column"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// saveCmd creates the save command.
func saveCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "save",
		Usage:     "Save a webpage as a link card",
		ArgsUsage: "<url>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Target category key", Required: true},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Display title (defaults to the URL host)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("url argument is required"))
			}
			output, err := ops.AddLink(context.Background(), gw, db, cfg, ops.AddLinkInput{
				URL:      c.Args().First(),
				Title:    c.String("title"),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// clearLinksCmd creates the clear-links command.
func clearLinksCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "clear-links",
		Usage: "Remove every link from every category (keeps containers and categories)",
		Action: func(c *cli.Context) error {
			output, err := ops.RemoveLinks(context.Background(), gw, db, cfg, ops.RemoveLinksInput{})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List the board's containers and categories",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "refresh", Aliases: []string{"r"}, Usage: "Force a pull instead of serving the cache"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(context.Background(), gw, db, cfg, ops.ListInput{
				Refresh: c.Bool("refresh"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// refreshCmd creates the refresh command.
func refreshCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "refresh",
		Usage: "Pull the board page and rebuild the local cache",
		Action: func(c *cli.Context) error {
			output, err := ops.Refresh(context.Background(), gw, db, cfg, ops.RefreshInput{})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the full board model as JSON",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "content", Usage: "Include the raw HTML page body"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Export(context.Background(), gw, db, cfg, ops.ExportInput{
				IncludeContent: c.Bool("content"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import links from a Markdown bookmarks file into one category",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Aliases: []string{"c"}, Usage: "Target category key", Required: true},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("path argument is required"))
			}
			output, err := ops.ImportLinks(context.Background(), gw, db, cfg, ops.ImportLinksInput{
				Path:     c.Args().First(),
				Category: c.String("category"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// historyCmd creates the history command.
func historyCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List local pre-edit snapshots, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Max entries (default 20, max 100)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.History(context.Background(), db, cfg, ops.HistoryInput{
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show one snapshot including its page body",
		ArgsUsage: "<snapshot-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("snapshot id argument is required"))
			}
			output, err := ops.ShowSnapshot(context.Background(), db, ops.ShowSnapshotInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// restoreCmd creates the restore command.
func restoreCmd(gw ops.Gateway, db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "restore",
		Usage:     "Overwrite the live page with a snapshot's body",
		ArgsUsage: "<snapshot-id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("snapshot id argument is required"))
			}
			output, err := ops.Restore(context.Background(), gw, db, cfg, ops.RestoreInput{
				ID: c.Args().First(),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// configCmd creates the config command.
func configCmd(cfg *config.Config, baseDir string) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Show or update the stored configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "endpoint", Usage: "wiki.js GraphQL endpoint URL"},
			&cli.StringFlag{Name: "token", Usage: "API bearer token"},
			&cli.IntFlag{Name: "page-id", Usage: "Wiki page holding the board"},
			&cli.StringFlag{Name: "locale", Usage: "Page locale"},
			&cli.BoolFlag{Name: "check-conflicts", Usage: "Enable the last-modified conflict guard"},
		},
		Action: func(c *cli.Context) error {
			changed := false
			if c.IsSet("endpoint") {
				cfg.Endpoint = c.String("endpoint")
				changed = true
			}
			if c.IsSet("token") {
				cfg.Token = c.String("token")
				changed = true
			}
			if c.IsSet("page-id") {
				cfg.PageID = c.Int("page-id")
				changed = true
			}
			if c.IsSet("locale") {
				cfg.Locale = c.String("locale")
				changed = true
			}
			if c.IsSet("check-conflicts") {
				cfg.CheckConflicts = c.Bool("check-conflicts")
				changed = true
			}

			if changed {
				if err := config.Save(baseDir, cfg); err != nil {
					return outputError(errors.NewInternal(err))
				}
			}

			// Never print the token back.
			view := *cfg
			if view.Token != "" {
				view.Token = "(set)"
			}
			return outputJSON(view)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if boardErr, ok := err.(*errors.BoardError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", boardErr.Code, boardErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}
