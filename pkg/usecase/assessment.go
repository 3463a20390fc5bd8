package usecase

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/utils/async"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// AssessmentUseCase turns load observations into log entries and keeps the
// latest risk card of every observed worker.
type AssessmentUseCase struct {
	repo     interfaces.Repository
	actions  []string
	notifier interfaces.Notifier
	alerts   async.Group

	mu     sync.RWMutex
	latest map[types.WorkerID]*model.WorkerAssessment
	order  []types.WorkerID
}

func NewAssessmentUseCase(repo interfaces.Repository, actions []string, notifier interfaces.Notifier) *AssessmentUseCase {
	if len(actions) == 0 {
		actions = model.DefaultSystemActions
	}
	return &AssessmentUseCase{
		repo:     repo,
		actions:  actions,
		notifier: notifier,
		latest:   make(map[types.WorkerID]*model.WorkerAssessment),
	}
}

// Record scores one observation and appends the resulting entry to the log.
// The latest assessment of the worker is updated only after the append
// succeeded.
func (uc *AssessmentUseCase) Record(ctx context.Context, obs *model.Observation) (*model.LogEntry, error) {
	if err := obs.Validate(); err != nil {
		return nil, goerr.Wrap(err, "rejected observation")
	}

	assessment := model.NewRiskAssessment(obs.PhysicalLoad, obs.CognitiveLoad)
	lumbar, err := lumbarRiskOf(obs, assessment)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to derive lumbar risk", goerr.V(WorkerIDKey, obs.WorkerID))
	}

	entry := &model.LogEntry{
		Timestamp:    obs.Timestamp,
		WorkerID:     obs.WorkerID,
		WorkerName:   obs.WorkerName,
		RiskScore:    assessment.RiskScore,
		RiskLevel:    assessment.RiskLevel,
		SystemAction: uc.actionFor(assessment.RiskLevel),
		Loads: &model.LoadReading{
			Physical:  assessment.PhysicalLoad,
			Cognitive: assessment.CognitiveLoad,
		},
	}
	if assessment.RiskLevel == types.RiskLevelRed {
		entry.Details = fmt.Sprintf("lumbar load %d%% detected, immediate action required",
			int(math.Round(assessment.PhysicalLoad)))
	}

	stored, err := uc.repo.Log().Append(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append assessment", goerr.V(WorkerIDKey, obs.WorkerID))
	}

	uc.remember(&model.WorkerAssessment{
		WorkerID:   obs.WorkerID,
		WorkerName: obs.WorkerName,
		Role:       obs.Role,
		Assessment: assessment,
		LumbarRisk: lumbar,
		HeartRate:  obs.HeartRate,
		Detail:     stored.Details,
		Timestamp:  obs.Timestamp,
	})

	logging.From(ctx).Debug("assessment recorded",
		"worker_id", stored.WorkerID,
		"risk_score", stored.RiskScore,
		"risk_level", stored.RiskLevel,
	)

	if stored.IsRedZone() && uc.notifier != nil {
		alert := stored.Copy()
		uc.alerts.Dispatch(ctx, "red zone notification", func(ctx context.Context) error {
			return uc.notifier.NotifyRedZone(ctx, alert)
		})
	}

	return stored, nil
}

// RecordAll records observations in order. A rejected observation is
// returned as error after the remaining ones were processed.
func (uc *AssessmentUseCase) RecordAll(ctx context.Context, observations []*model.Observation) ([]*model.LogEntry, error) {
	var (
		stored   []*model.LogEntry
		firstErr error
	)
	for _, obs := range observations {
		entry, err := uc.Record(ctx, obs)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		stored = append(stored, entry)
	}
	return stored, firstErr
}

// WaitNotifications blocks until every dispatched red zone notification has
// been delivered or has failed
func (uc *AssessmentUseCase) WaitNotifications() {
	uc.alerts.Wait()
}

// Latest returns the most recent assessment of a worker, or nil if the
// worker was never observed
func (uc *AssessmentUseCase) Latest(workerID types.WorkerID) *model.WorkerAssessment {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	a, ok := uc.latest[workerID]
	if !ok {
		return nil
	}
	copied := *a
	return &copied
}

// LatestAll returns the latest assessment of every observed worker in the
// order they were first observed
func (uc *AssessmentUseCase) LatestAll() []*model.WorkerAssessment {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	result := make([]*model.WorkerAssessment, 0, len(uc.order))
	for _, id := range uc.order {
		copied := *uc.latest[id]
		result = append(result, &copied)
	}
	return result
}

func (uc *AssessmentUseCase) remember(a *model.WorkerAssessment) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	prev, exists := uc.latest[a.WorkerID]
	if !exists {
		uc.order = append(uc.order, a.WorkerID)
	} else if prev.Timestamp.After(a.Timestamp) {
		return
	}
	uc.latest[a.WorkerID] = a
}

// actionFor picks the system action of a zone from the catalogue, which is
// ordered most severe first
func (uc *AssessmentUseCase) actionFor(level types.RiskLevel) string {
	switch level {
	case types.RiskLevelRed:
		return uc.actions[0]
	case types.RiskLevelYellow:
		return uc.actions[len(uc.actions)/2]
	default:
		return uc.actions[len(uc.actions)-1]
	}
}

// lumbarRiskOf uses the heart rate when vitals were captured and falls back
// to the zone of the integrated score
func lumbarRiskOf(obs *model.Observation, a model.RiskAssessment) (types.LumbarRisk, error) {
	if obs.HeartRate > 0 {
		return types.LumbarRiskFromHeartRate(obs.HeartRate), nil
	}
	return types.RiskLevelToLumbarRisk(a.RiskLevel)
}

// SortAssessmentsBySeverity orders assessments by score, highest first
func SortAssessmentsBySeverity(assessments []*model.WorkerAssessment) {
	slices.SortStableFunc(assessments, func(a, b *model.WorkerAssessment) int {
		return b.Assessment.RiskScore - a.Assessment.RiskScore
	})
}
