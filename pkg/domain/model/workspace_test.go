package model_test

import (
	"testing"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestNewSiteRegistry(t *testing.T) {
	reg := model.NewSiteRegistry()
	gt.Value(t, reg).NotNil()
	gt.Array(t, reg.Workspaces()).Length(0)
	gt.Array(t, reg.Teams()).Length(0)
	gt.Array(t, reg.Workers()).Length(0)
	gt.NoError(t, reg.Validate())
}

func newSite() *model.SiteRegistry {
	reg := model.NewSiteRegistry()
	reg.RegisterWorkspace(model.Workspace{ID: "WS001", Name: "Floor 1", Location: "1F"})
	reg.RegisterWorkspace(model.Workspace{ID: "WS002", Name: "Floor 2", Location: "2F"})
	reg.RegisterTeam(model.Team{ID: "T001", Name: "Team A", WorkspaceID: "WS001"})
	reg.RegisterWorker(model.Worker{ID: "W001", Name: "Kim Cheolsu", TeamID: "T001"})
	reg.RegisterWorker(model.Worker{ID: "W002", Name: "Lee Younghee", TeamID: "T001"})
	return reg
}

func TestSiteRegistry_RegistrationOrder(t *testing.T) {
	reg := newSite()

	gt.Array(t, reg.Workspaces()).Length(2)
	gt.Value(t, reg.Workspaces()[0].ID).Equal(types.WorkspaceID("WS001"))
	gt.Value(t, reg.Workspaces()[1].ID).Equal(types.WorkspaceID("WS002"))
	gt.Value(t, reg.Workers()[1].ID).Equal(types.WorkerID("W002"))
}

func TestSiteRegistry_ReplaceKeepsOrder(t *testing.T) {
	reg := newSite()
	reg.RegisterWorker(model.Worker{ID: "W001", Name: "Renamed", TeamID: "T001"})

	workers := reg.Workers()
	gt.Array(t, workers).Length(2)
	gt.Value(t, workers[0].Name).Equal("Renamed")
}

func TestSiteRegistry_Lookup(t *testing.T) {
	reg := newSite()

	w, err := reg.Worker("W002")
	gt.NoError(t, err).Required()
	gt.Value(t, w.Name).Equal("Lee Younghee")

	_, err = reg.Worker("W404")
	gt.Error(t, err).Is(model.ErrWorkerNotFound)

	team, err := reg.Team("T001")
	gt.NoError(t, err).Required()
	gt.Value(t, team.WorkspaceID).Equal(types.WorkspaceID("WS001"))

	_, err = reg.Team("T404")
	gt.Error(t, err).Is(model.ErrTeamNotFound)
}

func TestSiteRegistry_Validate(t *testing.T) {
	t.Run("valid site", func(t *testing.T) {
		gt.NoError(t, newSite().Validate())
	})

	t.Run("team with unknown workspace", func(t *testing.T) {
		reg := newSite()
		reg.RegisterTeam(model.Team{ID: "T009", Name: "Ghost", WorkspaceID: "WS404"})
		gt.Error(t, reg.Validate()).Is(model.ErrWorkspaceNotFound)
	})

	t.Run("worker with unknown team", func(t *testing.T) {
		reg := newSite()
		reg.RegisterWorker(model.Worker{ID: "W009", Name: "Ghost", TeamID: "T404"})
		gt.Error(t, reg.Validate()).Is(model.ErrTeamNotFound)
	})

	t.Run("invalid worker ID", func(t *testing.T) {
		reg := newSite()
		reg.RegisterWorker(model.Worker{ID: "W 9", Name: "Ghost", TeamID: "T001"})
		gt.Error(t, reg.Validate()).Is(types.ErrInvalidID)
	})
}

func TestObservation_Validate(t *testing.T) {
	gt.Error(t, (*model.Observation)(nil).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Observation{WorkerID: "W001"}).Validate()).Is(model.ErrMissingRequired)
	gt.Error(t, (&model.Observation{Timestamp: fixedNow}).Validate()).Is(types.ErrInvalidID)
	gt.Error(t, (&model.Observation{WorkerID: "W001", Timestamp: fixedNow, HeartRate: -1}).Validate()).Is(model.ErrOutOfRange)
	gt.NoError(t, (&model.Observation{WorkerID: "W001", Timestamp: fixedNow, PhysicalLoad: 250}).Validate())
}
