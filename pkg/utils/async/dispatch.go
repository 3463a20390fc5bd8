package async

import (
	"context"
	"sync"

	"github.com/luxyvenom/aimonitor/pkg/utils/errutil"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// Group runs fire-and-forget handlers and lets its owner wait for the ones
// still in flight. The zero value is ready to use.
type Group struct {
	wg sync.WaitGroup
}

// Dispatch runs handler in a new goroutine. The handler context is detached
// from ctx but keeps its logger, so the handler survives the caller's tick.
// Failures and panics go through errutil.Handle.
func (g *Group) Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("panic", r)), name+" panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, name+" failed")
		}
	}()
}

// Wait blocks until every dispatched handler has returned
func (g *Group) Wait() {
	g.wg.Wait()
}
