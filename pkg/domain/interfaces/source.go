package interfaces

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
)

// TickSource emits the instants at which a periodic job should run. The
// channel is closed once ctx is done.
type TickSource interface {
	Ticks(ctx context.Context) <-chan time.Time
}

// ObservationSource produces load observations of the monitored workers
type ObservationSource interface {
	Observe(ctx context.Context, now time.Time) ([]*model.Observation, error)
}
