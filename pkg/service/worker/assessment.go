package worker

import (
	"context"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AssessmentWorker pulls observations on every tick and records them
type AssessmentWorker struct {
	*tickLoop
	source     interfaces.ObservationSource
	assessment *usecase.AssessmentUseCase
}

func NewAssessmentWorker(source interfaces.ObservationSource, assessment *usecase.AssessmentUseCase, ticks interfaces.TickSource) *AssessmentWorker {
	w := &AssessmentWorker{
		source:     source,
		assessment: assessment,
	}
	w.tickLoop = newTickLoop("assessment", ticks, w.assess)
	return w
}

func (w *AssessmentWorker) assess(ctx context.Context, now time.Time) error {
	observations, err := w.source.Observe(ctx, now)
	if err != nil {
		return goerr.Wrap(err, "failed to observe workers")
	}

	entries, err := w.assessment.RecordAll(ctx, observations)
	if err != nil {
		return goerr.Wrap(err, "failed to record observations",
			goerr.V("observed", len(observations)),
			goerr.V("recorded", len(entries)))
	}

	logging.From(ctx).Debug("assessment cycle completed", "recorded", len(entries))
	return nil
}
