package worker

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
)

// GraphRefreshWorker rebuilds the relationship graph on every tick
type GraphRefreshWorker struct {
	*tickLoop
	graph *usecase.GraphUseCase
}

func NewGraphRefreshWorker(graph *usecase.GraphUseCase, ticks interfaces.TickSource) *GraphRefreshWorker {
	w := &GraphRefreshWorker{graph: graph}
	w.tickLoop = newTickLoop("graph-refresh", ticks, w.refresh)
	return w
}

func (w *GraphRefreshWorker) refresh(ctx context.Context, _ time.Time) error {
	if _, err := w.graph.Refresh(ctx); err != nil {
		return goerr.Wrap(err, "failed to refresh graph")
	}
	return nil
}
