package usecase_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
)

var testNow = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// newTestSite mirrors a small plant: two floors, three teams, five workers
// with team T002 having a single member.
func newTestSite() *model.SiteRegistry {
	site := model.NewSiteRegistry()
	site.RegisterWorkspace(model.Workspace{ID: "WS001", Name: "Floor 1", Location: "1F"})
	site.RegisterWorkspace(model.Workspace{ID: "WS002", Name: "Floor 2", Location: "2F"})
	site.RegisterTeam(model.Team{ID: "T001", Name: "Team A", WorkspaceID: "WS001"})
	site.RegisterTeam(model.Team{ID: "T002", Name: "Team B", WorkspaceID: "WS001"})
	site.RegisterTeam(model.Team{ID: "T003", Name: "Team C", WorkspaceID: "WS002"})
	site.RegisterWorker(model.Worker{ID: "W001", Name: "Kim Cheolsu", TeamID: "T001"})
	site.RegisterWorker(model.Worker{ID: "W002", Name: "Lee Younghee", TeamID: "T002"})
	site.RegisterWorker(model.Worker{ID: "W003", Name: "Park Minsu", TeamID: "T003"})
	site.RegisterWorker(model.Worker{ID: "W004", Name: "Choi Jiyoung", TeamID: "T001"})
	site.RegisterWorker(model.Worker{ID: "W005", Name: "Jung Daeho", TeamID: "T001"})
	return site
}

func observation(workerID string, physical, cognitive float64, at time.Time) *model.Observation {
	return &model.Observation{
		WorkerID:      types.WorkerID(workerID),
		WorkerName:    "worker " + workerID,
		PhysicalLoad:  physical,
		CognitiveLoad: cognitive,
		Timestamp:     at,
	}
}

// mockNotifier records red zone notifications
type mockNotifier struct {
	mu       sync.Mutex
	received []*model.LogEntry
	notified chan struct{}
	err      error
}

func newMockNotifier() *mockNotifier {
	return &mockNotifier{notified: make(chan struct{}, 16)}
}

func (m *mockNotifier) NotifyRedZone(ctx context.Context, entry *model.LogEntry) error {
	m.mu.Lock()
	m.received = append(m.received, entry)
	m.mu.Unlock()
	m.notified <- struct{}{}
	return m.err
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.received)
}

// mockRenderer captures the rendered summary or fails
type mockRenderer struct {
	rendered *model.ReportSummary
	fail     bool
}

var errRenderFailed = errors.New("pdf export is not available")

func (m *mockRenderer) Render(ctx context.Context, summary *model.ReportSummary) error {
	if m.fail {
		return errRenderFailed
	}
	m.rendered = summary
	return nil
}
