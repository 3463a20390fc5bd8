package cli

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdLog() *cli.Command {
	var siteCfg config.Site
	var data dataset
	var redOnly bool
	var format string

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, data.Flags()...)
	flags = append(flags,
		&cli.BoolFlag{
			Name:        "red-only",
			Usage:       "Show red zone entries only",
			Destination: &redOnly,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [table|json|yaml]",
			Value:       formatTable,
			Destination: &format,
		},
	)

	return &cli.Command{
		Name:  "log",
		Usage: "Generate a demo risk log and print it newest first",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}

			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site configuration")
			}

			uc, _, err := data.load(ctx, site, time.Now())
			if err != nil {
				return err
			}

			entries, err := uc.Log.Query(ctx, model.LogFilter{OnlyRedZone: redOnly})
			if err != nil {
				return err
			}

			views := make([]logEntryView, 0, len(entries))
			for _, e := range entries {
				views = append(views, toLogEntryView(e))
			}

			return writeOutput(c.Root().Writer, format, views, func(t *table) {
				writeLogTable(t, entries)
			})
		},
	}
}
