package cli

import (
	"context"
	"io"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/service/simulator"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// reportWriter renders a report summary together with the trend and heatmap
// prepared before the summary is generated
type reportWriter struct {
	w       io.Writer
	format  string
	trend   []*model.TrendPoint
	heatmap []*model.HeatmapCell
}

var _ interfaces.ReportRenderer = (*reportWriter)(nil)

func (r *reportWriter) Render(_ context.Context, summary *model.ReportSummary) error {
	report := reportView{
		Summary: toSummaryView(summary),
		Trend:   toTrendViews(r.trend),
		Heatmap: toHeatmapViews(r.heatmap),
	}
	return writeOutput(r.w, r.format, report, func(t *table) {
		writeReportTable(t, report)
	})
}

func cmdReport() *cli.Command {
	var siteCfg config.Site
	var data dataset
	var days int
	var format string

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, data.Flags()...)
	flags = append(flags,
		&cli.IntFlag{
			Name:        "days",
			Aliases:     []string{"d"},
			Usage:       "Number of days covered by the trend and heatmap",
			Value:       7,
			Destination: &days,
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
		Name:  "report",
		Usage: "Summarise a demo risk log and one round of observations with a daily trend and team heatmap",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}

			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site configuration")
			}

			renderer := &reportWriter{w: c.Root().Writer, format: format}
			now := time.Now()
			uc, rng, err := data.load(ctx, site, now, usecase.WithReportRenderer(renderer))
			if err != nil {
				return err
			}

			// Generated entries carry no loads, so today's load averages come
			// from one round of observations
			source := simulator.NewObservationSource(rng, uc.Site().Workers())
			observations, err := source.Observe(ctx, now)
			if err != nil {
				return goerr.Wrap(err, "failed to observe workers")
			}
			if _, err := uc.Assessment.RecordAll(ctx, observations); err != nil {
				return goerr.Wrap(err, "failed to record observations")
			}

			if renderer.trend, err = uc.Report.Trend(ctx, days); err != nil {
				return goerr.Wrap(err, "failed to compute trend")
			}
			if renderer.heatmap, err = uc.Report.Heatmap(ctx, days); err != nil {
				return goerr.Wrap(err, "failed to compute heatmap")
			}

			if _, err := uc.Report.Generate(ctx); err != nil {
				return err
			}
			return nil
		},
	}
}
