package worker

import (
	"context"
	"sync"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/utils/errutil"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
)

// tickLoop runs one cycle immediately and then one per tick. A cycle always
// runs to completion before the next tick is read.
//
// Architecture assumptions:
// - Single process (no distributed locking)
// - A failed cycle is logged and retried on the next tick
type tickLoop struct {
	name     string
	ticks    interfaces.TickSource
	cycle    func(ctx context.Context, now time.Time) error
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func newTickLoop(name string, ticks interfaces.TickSource, cycle func(ctx context.Context, now time.Time) error) *tickLoop {
	return &tickLoop{
		name:   name,
		ticks:  ticks,
		cycle:  cycle,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

// Start begins the loop in a background goroutine
func (l *tickLoop) Start(ctx context.Context) error {
	logging.From(ctx).Info("worker starting", "worker", l.name)
	go l.Run(ctx)
	return nil
}

// Stop signals the loop to stop and waits for the current cycle to finish
func (l *tickLoop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
	<-l.doneCh
}

// Done is closed when the loop has exited
func (l *tickLoop) Done() <-chan struct{} {
	return l.doneCh
}

// Run blocks until ctx is cancelled, Stop is called or the tick source is
// exhausted. It must be called at most once, either directly or via Start.
func (l *tickLoop) Run(ctx context.Context) {
	defer close(l.doneCh)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	logger := logging.From(ctx)

	l.runCycle(ctx, time.Now())

	ticks := l.ticks.Ticks(ctx)
	for {
		select {
		case now, ok := <-ticks:
			if !ok {
				logger.Info("worker tick source closed", "worker", l.name)
				return
			}
			l.runCycle(ctx, now)

		case <-l.stopCh:
			logger.Info("worker received stop signal", "worker", l.name)
			return

		case <-ctx.Done():
			logger.Info("worker context cancelled", "worker", l.name)
			return
		}
	}
}

func (l *tickLoop) runCycle(ctx context.Context, now time.Time) {
	if err := l.cycle(ctx, now); err != nil {
		// Log error but continue worker
		errutil.Handle(ctx, err, l.name+" cycle failed (will retry next tick)")
	}
}
