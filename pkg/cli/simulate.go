package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/luxyvenom/aimonitor/pkg/service/alert"
	"github.com/luxyvenom/aimonitor/pkg/service/simulator"
	"github.com/luxyvenom/aimonitor/pkg/service/worker"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type simulationSummary struct {
	Duration         string           `json:"duration" yaml:"duration"`
	EntryCount       int              `json:"entry_count" yaml:"entry_count"`
	RedZoneCount     int              `json:"red_zone_count" yaml:"red_zone_count"`
	AlertsSent       int64            `json:"alerts_sent" yaml:"alerts_sent"`
	AlertsSuppressed int64            `json:"alerts_suppressed" yaml:"alerts_suppressed"`
	GraphNodes       int              `json:"graph_nodes" yaml:"graph_nodes"`
	GraphEdges       int              `json:"graph_edges" yaml:"graph_edges"`
	Workers          []assessmentView `json:"workers" yaml:"workers"`
}

func cmdSimulate() *cli.Command {
	var siteCfg config.Site
	var duration time.Duration
	var seed int
	var format string

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags,
		&cli.DurationFlag{
			Name:        "duration",
			Usage:       "How long to run the monitoring loop (0 runs until interrupted)",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("AIMONITOR_DURATION"),
			Destination: &duration,
		},
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "Random seed for simulated vitals (0 picks one from the clock)",
			Sources:     cli.EnvVars("AIMONITOR_SEED"),
			Destination: &seed,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Summary format [table|json|yaml]",
			Value:       formatTable,
			Destination: &format,
		},
	)

	return &cli.Command{
		Name:    "simulate",
		Aliases: []string{"s"},
		Usage:   "Run the tick-driven monitoring loop against simulated vitals",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := checkFormat(format, formatTable, formatJSON, formatYAML); err != nil {
				return err
			}
			if duration < 0 {
				return goerr.New("duration must not be negative", goerr.V("duration", duration))
			}

			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load site configuration")
			}

			vitalsTicks, err := worker.NewScheduleTicks(site.Schedule.Vitals)
			if err != nil {
				return err
			}
			graphTicks, err := worker.NewScheduleTicks(site.Schedule.Graph)
			if err != nil {
				return err
			}

			notifier := alert.NewRedZoneNotifier(alert.WithLimit(site.AlertInterval(), site.Alert.Burst))
			registry := site.Registry()
			uc := usecase.New(memory.New(),
				usecase.WithSite(registry),
				usecase.WithNotifier(notifier),
				usecase.WithSystemActions(site.SystemActions),
				usecase.WithEventLimit(site.EventLimit()),
			)

			d := dataset{seed: seed}
			source := simulator.NewObservationSource(d.rand(), registry.Workers())

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			logging.Default().Info("Starting simulation",
				"site", siteCfg,
				"duration", duration,
				"vitals", vitalsTicks.String(),
				"graph", graphTicks.String(),
			)

			assessmentWorker := worker.NewAssessmentWorker(source, uc.Assessment, vitalsTicks)
			graphWorker := worker.NewGraphRefreshWorker(uc.Graph, graphTicks)

			started := time.Now()
			var eg errgroup.Group
			eg.Go(func() error {
				assessmentWorker.Run(ctx)
				return nil
			})
			eg.Go(func() error {
				graphWorker.Run(ctx)
				return nil
			})
			if err := eg.Wait(); err != nil {
				return err
			}

			uc.Assessment.WaitNotifications()

			// the loop context is done by now
			summary, err := summarize(context.WithoutCancel(ctx), uc, notifier, time.Since(started))
			if err != nil {
				return err
			}
			return writeOutput(c.Root().Writer, format, summary, func(t *table) {
				writeSimulationTable(t, summary)
			})
		},
	}
}

func summarize(ctx context.Context, uc *usecase.UseCases, notifier *alert.RedZoneNotifier, elapsed time.Duration) (*simulationSummary, error) {
	total, err := uc.Log.Count(ctx, nil)
	if err != nil {
		return nil, err
	}
	red, err := uc.Log.CountRedZone(ctx)
	if err != nil {
		return nil, err
	}
	graph, err := uc.Graph.Latest(ctx)
	if err != nil {
		return nil, err
	}

	assessments := uc.Assessment.LatestAll()
	usecase.SortAssessmentsBySeverity(assessments)

	summary := &simulationSummary{
		Duration:         elapsed.Round(time.Millisecond).String(),
		EntryCount:       total,
		RedZoneCount:     red,
		AlertsSent:       notifier.Sent(),
		AlertsSuppressed: notifier.Suppressed(),
		Workers:          toAssessmentViews(assessments),
	}
	if graph != nil {
		summary.GraphNodes = len(graph.Nodes)
		summary.GraphEdges = len(graph.Edges)
	}
	return summary, nil
}

func writeSimulationTable(t *table, s *simulationSummary) {
	t.Line("Duration\t%s", s.Duration)
	t.Line("Entries\t%d (%d red)", s.EntryCount, s.RedZoneCount)
	t.Line("Alerts\t%d sent, %d suppressed", s.AlertsSent, s.AlertsSuppressed)
	t.Line("Graph\t%d nodes, %d edges", s.GraphNodes, s.GraphEdges)
	t.Line("")
	t.Line("WORKER\tROLE\tPHYSICAL\tCOGNITIVE\tSCORE\tZONE\tLUMBAR\tBPM")
	for _, a := range s.Workers {
		t.Row(types.RiskLevel(a.RiskLevel), "%s %s\t%s\t%.1f\t%.1f\t%d\t%s\t%s\t%d",
			a.WorkerID, a.WorkerName, a.Role,
			a.PhysicalLoad, a.CognitiveLoad,
			a.RiskScore, a.RiskLevel,
			a.LumbarRisk, a.HeartRate,
		)
	}
}
