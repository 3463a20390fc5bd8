package memory

import (
	"context"
	"sync/atomic"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// graphRepository publishes whole graph snapshots. Readers always see either
// the previous or the next snapshot, never a partially built one.
type graphRepository struct {
	current atomic.Pointer[model.Graph]
}

func newGraphRepository() *graphRepository {
	return &graphRepository{}
}

func (r *graphRepository) Put(ctx context.Context, graph *model.Graph) error {
	if graph == nil {
		return goerr.New("graph is nil")
	}
	if err := graph.Validate(); err != nil {
		return goerr.Wrap(err, "refusing to publish inconsistent graph")
	}
	r.current.Store(graph)
	return nil
}

func (r *graphRepository) Latest(ctx context.Context) (*model.Graph, error) {
	return r.current.Load(), nil
}
