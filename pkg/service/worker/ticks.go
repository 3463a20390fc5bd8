package worker

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
	"github.com/robfig/cron/v3"
)

// ScheduleTicks emits ticks following a cron schedule such as "@every 2s"
// or "*/5 * * * *". A tick that arrives while the previous one is still
// unconsumed is dropped, so a slow consumer never builds up a backlog.
type ScheduleTicks struct {
	spec     string
	schedule cron.Schedule
}

var _ interfaces.TickSource = (*ScheduleTicks)(nil)

// NewScheduleTicks parses a standard cron expression or descriptor
func NewScheduleTicks(spec string) (*ScheduleTicks, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid schedule", goerr.V("schedule", spec))
	}
	return &ScheduleTicks{spec: spec, schedule: schedule}, nil
}

func (s *ScheduleTicks) String() string {
	return s.spec
}

// Ticks starts emitting until ctx is done, then closes the channel
func (s *ScheduleTicks) Ticks(ctx context.Context) <-chan time.Time {
	ch := make(chan time.Time, 1)

	go func() {
		defer close(ch)

		next := s.schedule.Next(time.Now())
		for {
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case t := <-timer.C:
				select {
				case ch <- t:
				default:
				}
				next = s.schedule.Next(t)
			}
		}
	}()

	return ch
}
