package simulator

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
)

const (
	minHeartRate   = 60
	heartRateRange = 40
	// maxLoadStep bounds the change of a load between two observations
	maxLoadStep = 10.0
)

// ObservationSource stands in for wearable sensors. Each worker's loads
// follow a bounded random walk so consecutive readings stay plausible.
type ObservationSource struct {
	mu      sync.Mutex
	rng     *rand.Rand
	workers []model.Worker
	loads   map[string][2]float64
}

var _ interfaces.ObservationSource = (*ObservationSource)(nil)

func NewObservationSource(rng *rand.Rand, workers []model.Worker) *ObservationSource {
	return &ObservationSource{
		rng:     rng,
		workers: workers,
		loads:   make(map[string][2]float64, len(workers)),
	}
}

// Observe returns one observation per worker stamped with now
func (s *ObservationSource) Observe(ctx context.Context, now time.Time) ([]*model.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	observations := make([]*model.Observation, 0, len(s.workers))
	for _, w := range s.workers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prev, ok := s.loads[w.ID.String()]
		if !ok {
			prev = [2]float64{20 + s.rng.Float64()*60, 20 + s.rng.Float64()*60}
		}
		next := [2]float64{s.step(prev[0]), s.step(prev[1])}
		s.loads[w.ID.String()] = next

		observations = append(observations, &model.Observation{
			WorkerID:      w.ID,
			WorkerName:    w.Name,
			Role:          w.Role,
			PhysicalLoad:  next[0],
			CognitiveLoad: next[1],
			HeartRate:     minHeartRate + s.rng.IntN(heartRateRange),
			Timestamp:     now,
		})
	}
	return observations, nil
}

func (s *ObservationSource) step(v float64) float64 {
	return model.ClampLoad(v + (s.rng.Float64()-0.5)*2*maxLoadStep)
}
