package simulator

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
)

const (
	// DefaultWindow is how far back generated timestamps reach
	DefaultWindow = 48 * time.Hour
	// DefaultCount is the number of entries of a demo log
	DefaultCount = 20
)

// LogGenerator synthesises demonstration log entries. Timestamps are uniform
// within the window, scores uniform in [0, 100], and the action, response
// and details depend on the zone of the score.
type LogGenerator struct {
	rng     *rand.Rand
	workers []model.Worker
	actions []string
	window  time.Duration
}

type GeneratorOption func(*LogGenerator)

// WithActions sets the action catalogue, most severe first
func WithActions(actions []string) GeneratorOption {
	return func(g *LogGenerator) {
		if len(actions) > 0 {
			g.actions = actions
		}
	}
}

func WithWindow(window time.Duration) GeneratorOption {
	return func(g *LogGenerator) {
		if window > 0 {
			g.window = window
		}
	}
}

// NewLogGenerator creates a generator drawing from rng. Entries are
// attributed to the given workers; without workers a fixed crew of ten
// anonymous workers W001..W010 is used.
func NewLogGenerator(rng *rand.Rand, workers []model.Worker, opts ...GeneratorOption) *LogGenerator {
	if len(workers) == 0 {
		for i := range 10 {
			id := fmt.Sprintf("W%03d", i+1)
			workers = append(workers, model.Worker{ID: types.WorkerID(id), Name: "Worker " + id})
		}
	}

	g := &LogGenerator{
		rng:     rng,
		workers: slices.Clone(workers),
		actions: model.DefaultSystemActions,
		window:  DefaultWindow,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns count entries, newest first
func (g *LogGenerator) Generate(now time.Time, count int) []*model.LogEntry {
	entries := make([]*model.LogEntry, 0, count)
	for range count {
		entries = append(entries, g.Entry(now))
	}
	slices.SortStableFunc(entries, func(a, b *model.LogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	return entries
}

// Entry draws one entry
func (g *LogGenerator) Entry(now time.Time) *model.LogEntry {
	offset := time.Duration(g.rng.Int64N(int64(g.window)))
	worker := g.workers[g.rng.IntN(len(g.workers))]
	score := g.rng.IntN(model.MaxRiskScore + 1)
	level := model.ClassifyRiskScore(score)

	entry := &model.LogEntry{
		Timestamp:       now.Add(-offset),
		WorkerID:        worker.ID,
		WorkerName:      worker.Name,
		RiskScore:       score,
		RiskLevel:       level,
		SystemAction:    g.pickAction(level),
		ManagerResponse: PickManagerResponse(level, g.rng.Float64()),
	}

	if level == types.RiskLevelRed && g.rng.Float64() < 0.5 {
		entry.Details = fmt.Sprintf("lumbar load %d%% detected, immediate action required", score)
	}
	return entry
}

func (g *LogGenerator) pickAction(level types.RiskLevel) string {
	pool := g.actions
	if level == types.RiskLevelRed {
		pool = pool[:min(model.SevereActionCount, len(pool))]
	}
	return pool[g.rng.IntN(len(pool))]
}

// PickManagerResponse maps a uniform draw u in [0, 1) to a response with
// zone dependent weights:
//
//	red:    u > 0.6 yes,     u > 0.3  pending, else no
//	yellow: u > 0.5 pending, u > 0.25 yes,     else no
//	green:  u > 0.7 pending, u > 0.4  yes,     else no
func PickManagerResponse(level types.RiskLevel, u float64) types.ManagerResponse {
	switch level {
	case types.RiskLevelRed:
		switch {
		case u > 0.6:
			return types.ManagerResponseYes
		case u > 0.3:
			return types.ManagerResponsePending
		default:
			return types.ManagerResponseNo
		}
	case types.RiskLevelYellow:
		switch {
		case u > 0.5:
			return types.ManagerResponsePending
		case u > 0.25:
			return types.ManagerResponseYes
		default:
			return types.ManagerResponseNo
		}
	default:
		switch {
		case u > 0.7:
			return types.ManagerResponsePending
		case u > 0.4:
			return types.ManagerResponseYes
		default:
			return types.ManagerResponseNo
		}
	}
}
