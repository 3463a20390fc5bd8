package worker_test

import (
	"context"
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/service/worker"
	"github.com/m-mizutani/gt"
)

func TestNewScheduleTicks(t *testing.T) {
	for _, spec := range []string{"@every 2s", "@every 4s", "*/5 * * * *", "@hourly"} {
		ticks, err := worker.NewScheduleTicks(spec)
		gt.NoError(t, err).Required()
		gt.String(t, ticks.String()).Equal(spec)
	}

	_, err := worker.NewScheduleTicks("every two seconds")
	gt.Error(t, err)
}

func TestScheduleTicks_Ticks(t *testing.T) {
	ticks, err := worker.NewScheduleTicks("@every 1s")
	gt.NoError(t, err).Required()

	ctx, cancel := context.WithCancel(context.Background())
	ch := ticks.Ticks(ctx)

	select {
	case tick, ok := <-ch:
		gt.Bool(t, ok).True()
		gt.Bool(t, tick.IsZero()).False()
	case <-time.After(3 * time.Second):
		t.Fatal("no tick received")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("tick channel not closed after cancel")
		}
	}
}
