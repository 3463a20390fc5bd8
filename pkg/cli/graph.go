package cli

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/service/simulator"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdGraph() *cli.Command {
	var siteCfg config.Site
	var data dataset
	var format string

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, data.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [json|yaml]",
			Value:       formatJSON,
			Destination: &format,
		},
	)

	return &cli.Command{
		Name:  "graph",
		Usage: "Build a relationship graph snapshot from one round of observations",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := checkFormat(format, formatJSON, formatYAML); err != nil {
				return err
			}

			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site configuration")
			}

			now := time.Now()
			uc, rng, err := data.load(ctx, site, now)
			if err != nil {
				return err
			}

			source := simulator.NewObservationSource(rng, uc.Site().Workers())
			observations, err := source.Observe(ctx, now)
			if err != nil {
				return goerr.Wrap(err, "failed to observe workers")
			}
			if _, err := uc.Assessment.RecordAll(ctx, observations); err != nil {
				return goerr.Wrap(err, "failed to record observations")
			}

			graph, err := uc.Graph.Refresh(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to build graph")
			}

			return writeOutput(c.Root().Writer, format, toGraphView(graph), nil)
		},
	}
}
