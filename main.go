package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/arrgh/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

// queryFlags are shared by the query and watch commands
func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to arrgh.json (default: searched from the working directory up)",
		},
		&cli.StringFlag{
			Name:    "data",
			Aliases: []string{"d"},
			Usage:   "JSON or YAML file holding an array of records",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "record format of the data file (json, yaml); inferred from the extension when empty",
		},
		&cli.StringSliceFlag{
			Name:    "where",
			Aliases: []string{"w"},
			Usage:   `condition such as "age >= 30"; repeat to combine with AND`,
		},
		&cli.StringSliceFlag{
			Name:    "order-by",
			Aliases: []string{"o"},
			Usage:   `sort key, "-field" for descending; repeat for tie-breakers`,
		},
		&cli.StringSliceFlag{
			Name:    "select",
			Aliases: []string{"s"},
			Usage:   "field to keep in the output; repeat for more",
		},
		&cli.BoolFlag{
			Name:  "distinct",
			Usage: "drop duplicate result rows",
		},
		&cli.StringFlag{
			Name:  "limit",
			Usage: "maximum number of result rows",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "output format (json, yaml, table)",
		},
	}
}

func queryOptions(c *cli.Command) (commands.QueryOptions, error) {
	opts := commands.QueryOptions{
		Name:       c.Args().First(),
		ConfigPath: c.String("config"),
		DataPath:   c.String("data"),
		Format:     c.String("format"),
		Output:     c.String("output"),
		Where:      c.StringSlice("where"),
		OrderBy:    c.StringSlice("order-by"),
		Select:     c.StringSlice("select"),
		Distinct:   c.Bool("distinct"),
	}

	if raw := c.String("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return opts, fmt.Errorf("invalid --limit %q: must be a non-negative integer", raw)
		}
		opts.Limit = limit
	}

	return opts, nil
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "arrgh",
		Usage:   "Query JSON and YAML records with filters, multi-key sorting and projections",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("ARRGH_LOG_LEVEL"),
				Value:   "warn",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			ctrl.Flags.LogLevel = level.String()
			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:      "query",
				Usage:     "Run a stored or ad-hoc query and print the result",
				ArgsUsage: "[NAME]",
				Flags:     queryFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					opts, err := queryOptions(c)
					if err != nil {
						return err
					}
					return ctrl.Query(ctx, opts)
				},
			},
			{
				Name:      "watch",
				Usage:     "Re-run a query whenever the data file or arrgh.json changes",
				ArgsUsage: "[NAME]",
				Flags:     queryFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					opts, err := queryOptions(c)
					if err != nil {
						return err
					}
					return ctrl.Watch(ctx, opts)
				},
			},
			{
				Name:  "init",
				Usage: "Create a starter arrgh.json in the current directory",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run arrgh")
	}
}
