package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var siteCfg config.Site
	var data dataset
	var strict bool

	var flags []cli.Flag
	flags = append(flags, siteCfg.Flags()...)
	flags = append(flags, data.Flags()...)
	flags = append(flags, &cli.BoolFlag{
		Name:        "strict",
		Usage:       "Fail on audit findings such as teams without workers",
		Destination: &strict,
	})

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the site configuration file and, with --count, a generated log",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the configuration file
			site, err := siteCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			registry := site.Registry()
			if err := registry.Validate(); err != nil {
				return goerr.Wrap(err, "site records are inconsistent")
			}

			logger.Info("Configuration validation passed",
				"site", siteCfg,
				"workspace_count", len(site.Workspaces),
				"team_count", len(site.Teams),
				"worker_count", len(site.Workers),
				"vitals_schedule", site.Schedule.Vitals,
				"graph_schedule", site.Schedule.Graph,
			)

			// Step 2: Audit the organisation for likely mistakes
			uc := usecase.New(memory.New(), usecase.WithSite(registry))
			issues := reportIssues(logger, "Site audit", uc.AuditSite())

			// Step 3: Audit a generated log when a size was asked for
			if c.IsSet("count") {
				logUC, _, err := data.load(ctx, site, time.Now())
				if err != nil {
					return err
				}
				result, err := logUC.AuditLog(ctx)
				if err != nil {
					return goerr.Wrap(err, "log audit failed")
				}
				issues += reportIssues(logger, "Log audit", result)
			}

			if strict && issues > 0 {
				return fmt.Errorf("audit found %d issue(s)", issues)
			}
			return nil
		},
	}
}

// reportIssues logs each issue of an audit as a warning and returns how many
// there were
func reportIssues(logger *slog.Logger, name string, result *usecase.ValidationResult) int {
	if !result.HasIssues() {
		logger.Info(name + " passed")
		return 0
	}
	for _, issue := range result.Issues {
		logger.Warn(name+" issue found",
			"subject", issue.Subject,
			"message", issue.Message,
			"expected", issue.Expected,
			"actual", issue.Actual,
		)
	}
	return len(result.Issues)
}

