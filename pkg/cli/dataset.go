package cli

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/cli/config"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/luxyvenom/aimonitor/pkg/service/simulator"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// dataset holds the flags shared by commands that work on a generated
// demo log
type dataset struct {
	count int
	seed  int
}

func (d *dataset) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "count",
			Aliases:     []string{"n"},
			Usage:       "Number of log entries to generate",
			Value:       simulator.DefaultCount,
			Sources:     cli.EnvVars("AIMONITOR_COUNT"),
			Destination: &d.count,
		},
		&cli.IntFlag{
			Name:        "seed",
			Usage:       "Random seed for generated data (0 picks one from the clock)",
			Sources:     cli.EnvVars("AIMONITOR_SEED"),
			Destination: &d.seed,
		},
	}
}

func (d *dataset) rand() *rand.Rand {
	seed := uint64(d.seed) // #nosec G115
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) // #nosec G115
	}
	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// load builds in-memory use cases for the site and fills the log with
// generated entries
func (d *dataset) load(ctx context.Context, site *config.SiteFile, now time.Time, opts ...usecase.Option) (*usecase.UseCases, *rand.Rand, error) {
	if d.count < 0 {
		return nil, nil, goerr.New("count must not be negative", goerr.V("count", d.count))
	}

	registry := site.Registry()
	ucOpts := []usecase.Option{
		usecase.WithSite(registry),
		usecase.WithSystemActions(site.SystemActions),
		usecase.WithEventLimit(site.EventLimit()),
		usecase.WithClock(func() time.Time { return now }),
	}
	uc := usecase.New(memory.New(), append(ucOpts, opts...)...)

	rng := d.rand()
	gen := simulator.NewLogGenerator(rng, registry.Workers(), simulator.WithActions(site.SystemActions))
	if n, err := uc.Log.AppendAll(ctx, gen.Generate(now, d.count)); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to store generated log", goerr.V("index", n))
	}

	logging.From(ctx).Debug("generated demo log", "count", d.count, "seed", d.seed)
	return uc, rng, nil
}
