package model

import (
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Workspace is a physical work area such as a production floor
type Workspace struct {
	ID       types.WorkspaceID
	Name     string
	Location string
}

// Team is a crew assigned to one workspace
type Team struct {
	ID          types.TeamID
	Name        string
	WorkspaceID types.WorkspaceID
}

// Worker is a monitored person
type Worker struct {
	ID     types.WorkerID
	Name   string `masq:"secret"`
	TeamID types.TeamID
	Role   string
}

// Event is a risk event attached to the relationship graph
type Event struct {
	ID          types.EventID
	Timestamp   time.Time
	WorkerID    types.WorkerID // optional
	RiskScore   int
	Description string
}

// Site errors
var (
	ErrWorkspaceNotFound = goerr.New("workspace not found")
	ErrTeamNotFound      = goerr.New("team not found")
	ErrWorkerNotFound    = goerr.New("worker not found")
)

// SiteRegistry holds the organisational records of a site in registration
// order. Registering an existing ID replaces the record in place.
type SiteRegistry struct {
	workspaces     map[types.WorkspaceID]*Workspace
	workspaceOrder []types.WorkspaceID
	teams          map[types.TeamID]*Team
	teamOrder      []types.TeamID
	workers        map[types.WorkerID]*Worker
	workerOrder    []types.WorkerID
}

// NewSiteRegistry creates a new empty SiteRegistry
func NewSiteRegistry() *SiteRegistry {
	return &SiteRegistry{
		workspaces: make(map[types.WorkspaceID]*Workspace),
		teams:      make(map[types.TeamID]*Team),
		workers:    make(map[types.WorkerID]*Worker),
	}
}

// RegisterWorkspace adds a workspace to the registry
func (r *SiteRegistry) RegisterWorkspace(ws Workspace) {
	if _, exists := r.workspaces[ws.ID]; !exists {
		r.workspaceOrder = append(r.workspaceOrder, ws.ID)
	}
	r.workspaces[ws.ID] = &ws
}

// RegisterTeam adds a team to the registry
func (r *SiteRegistry) RegisterTeam(team Team) {
	if _, exists := r.teams[team.ID]; !exists {
		r.teamOrder = append(r.teamOrder, team.ID)
	}
	r.teams[team.ID] = &team
}

// RegisterWorker adds a worker to the registry
func (r *SiteRegistry) RegisterWorker(worker Worker) {
	if _, exists := r.workers[worker.ID]; !exists {
		r.workerOrder = append(r.workerOrder, worker.ID)
	}
	r.workers[worker.ID] = &worker
}

// Worker retrieves a worker by ID
func (r *SiteRegistry) Worker(id types.WorkerID) (*Worker, error) {
	w, ok := r.workers[id]
	if !ok {
		return nil, goerr.Wrap(ErrWorkerNotFound, "worker not found", goerr.V(WorkerIDKey, id))
	}
	copied := *w
	return &copied, nil
}

// Team retrieves a team by ID
func (r *SiteRegistry) Team(id types.TeamID) (*Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, goerr.Wrap(ErrTeamNotFound, "team not found", goerr.V("team_id", id))
	}
	copied := *t
	return &copied, nil
}

// Workspaces returns all workspaces in registration order
func (r *SiteRegistry) Workspaces() []Workspace {
	result := make([]Workspace, 0, len(r.workspaceOrder))
	for _, id := range r.workspaceOrder {
		result = append(result, *r.workspaces[id])
	}
	return result
}

// Teams returns all teams in registration order
func (r *SiteRegistry) Teams() []Team {
	result := make([]Team, 0, len(r.teamOrder))
	for _, id := range r.teamOrder {
		result = append(result, *r.teams[id])
	}
	return result
}

// Workers returns all workers in registration order
func (r *SiteRegistry) Workers() []Worker {
	result := make([]Worker, 0, len(r.workerOrder))
	for _, id := range r.workerOrder {
		result = append(result, *r.workers[id])
	}
	return result
}

// Validate checks IDs and that every team and worker points at a registered
// parent.
func (r *SiteRegistry) Validate() error {
	for _, ws := range r.Workspaces() {
		if err := ws.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid workspace")
		}
	}
	for _, team := range r.Teams() {
		if err := team.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team")
		}
		if _, ok := r.workspaces[team.WorkspaceID]; !ok {
			return goerr.Wrap(ErrWorkspaceNotFound, "team refers to unknown workspace",
				goerr.V("team_id", team.ID), goerr.V("workspace_id", team.WorkspaceID))
		}
	}
	for _, worker := range r.Workers() {
		if err := worker.ID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid worker")
		}
		if _, ok := r.teams[worker.TeamID]; !ok {
			return goerr.Wrap(ErrTeamNotFound, "worker refers to unknown team",
				goerr.V(WorkerIDKey, worker.ID), goerr.V("team_id", worker.TeamID))
		}
	}
	return nil
}
