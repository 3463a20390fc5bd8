package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/repository/memory"
	"github.com/luxyvenom/aimonitor/pkg/service/worker"
	"github.com/luxyvenom/aimonitor/pkg/usecase"
	"github.com/m-mizutani/gt"
)

// manualTicks lets the test decide when a tick happens
type manualTicks struct {
	ch chan time.Time
}

func newManualTicks() *manualTicks {
	return &manualTicks{ch: make(chan time.Time)}
}

func (m *manualTicks) Ticks(ctx context.Context) <-chan time.Time {
	return m.ch
}

// mockObservationSource returns fixed loads for its workers
type mockObservationSource struct {
	mu       sync.Mutex
	workers  []types.WorkerID
	calls    int
	failOnce bool
}

func (m *mockObservationSource) Observe(ctx context.Context, now time.Time) ([]*model.Observation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.failOnce {
		m.failOnce = false
		return nil, errors.New("sensor gateway unavailable")
	}

	result := make([]*model.Observation, 0, len(m.workers))
	for _, id := range m.workers {
		result = append(result, &model.Observation{
			WorkerID:      id,
			PhysicalLoad:  75,
			CognitiveLoad: 85,
			Timestamp:     now,
		})
	}
	return result, nil
}

func (m *mockObservationSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestAssessmentWorker(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	source := &mockObservationSource{workers: []types.WorkerID{"W001", "W002"}}
	ticks := newManualTicks()

	w := worker.NewAssessmentWorker(source, uc.Assessment, ticks)
	gt.NoError(t, w.Start(context.Background())).Required()

	ticks.ch <- time.Now()
	ticks.ch <- time.Now()
	w.Stop()

	gt.Number(t, source.callCount()).Equal(3)

	count, err := repo.Log().Count(context.Background(), nil)
	gt.NoError(t, err).Required()
	gt.Number(t, count).Equal(6)

	latest := uc.Assessment.Latest("W002")
	gt.Value(t, latest).NotNil()
	gt.Value(t, latest.Assessment.RiskLevel).Equal(types.RiskLevelRed)
}

func TestAssessmentWorker_ContinuesAfterFailure(t *testing.T) {
	repo := memory.New()
	uc := usecase.New(repo)
	source := &mockObservationSource{workers: []types.WorkerID{"W001"}, failOnce: true}
	ticks := newManualTicks()

	w := worker.NewAssessmentWorker(source, uc.Assessment, ticks)
	gt.NoError(t, w.Start(context.Background())).Required()

	ticks.ch <- time.Now()
	w.Stop()

	gt.Number(t, source.callCount()).Equal(2)
	count, err := repo.Log().Count(context.Background(), nil)
	gt.NoError(t, err).Required()
	gt.Number(t, count).Equal(1)
}

func TestAssessmentWorker_StopsWhenTicksClose(t *testing.T) {
	uc := usecase.New(memory.New())
	source := &mockObservationSource{}
	ticks := newManualTicks()
	w := worker.NewAssessmentWorker(source, uc.Assessment, ticks)

	done := make(chan struct{})
	go func() {
		w.Run(context.Background())
		close(done)
	}()
	close(ticks.ch)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after tick source closed")
	}
}

func TestGraphRefreshWorker(t *testing.T) {
	repo := memory.New()
	site := model.NewSiteRegistry()
	site.RegisterWorkspace(model.Workspace{ID: "WS001", Name: "Floor 1"})
	site.RegisterTeam(model.Team{ID: "T001", Name: "Team A", WorkspaceID: "WS001"})
	uc := usecase.New(repo, usecase.WithSite(site))
	ticks := newManualTicks()

	w := worker.NewGraphRefreshWorker(uc.Graph, ticks)
	ctx, cancel := context.WithCancel(context.Background())
	gt.NoError(t, w.Start(ctx)).Required()

	ticks.ch <- time.Now()
	cancel()
	<-w.Done()

	g, err := uc.Graph.Latest(context.Background())
	gt.NoError(t, err).Required()
	gt.Value(t, g).NotNil()
	gt.Array(t, g.Nodes).Length(2)
	gt.Array(t, g.Edges).Length(1)
}
