package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// GraphWorker is a worker together with its current assessment. Assessment
// is nil for workers that were not observed yet.
type GraphWorker struct {
	Worker     model.Worker
	Assessment *model.RiskAssessment
}

// GraphInput is everything a relationship graph is built from. Events are
// expected in the order they happened.
type GraphInput struct {
	Workspaces []model.Workspace
	Teams      []model.Team
	Workers    []GraphWorker
	Events     []model.Event
}

const (
	riskChainLabel = "risk chain"

	workspaceEdgeWeight   = 1.0
	teamMemberEdgeWeight  = 0.8
	workerEventEdgeWeight = 0.6
	riskChainEdgeWeight   = 0.9
	peerEdgeWeight        = 0.5
)

var edgeColors = map[types.EdgeType]string{
	types.EdgeTypeSameTeam:      "#3b82f6",
	types.EdgeTypeRiskChain:     "#ef4444",
	types.EdgeTypeWorkspace:     "#06b6d4",
	types.EdgeTypeEventSequence: "#8b5cf6",
	types.EdgeTypeWorkerEvent:   "#f59e0b",
}

const defaultEdgeColor = "#64748b"

// nodeStyler sets the size and colour of a node from its payload
type nodeStyler struct {
	size  float64
	color string
}

func (s *nodeStyler) VisitWorker(d *model.WorkerData) {
	s.size = 8
	s.color = "#6366f1"
	if d.CurrentRiskLevel.IsValid() {
		s.color = d.CurrentRiskLevel.HexColor()
	}
}

func (s *nodeStyler) VisitEvent(*model.EventData) {
	s.size, s.color = 6, "#8b5cf6"
}

func (s *nodeStyler) VisitWorkspace(*model.WorkspaceData) {
	s.size, s.color = 12, "#06b6d4"
}

func (s *nodeStyler) VisitTeam(*model.TeamData) {
	s.size, s.color = 10, "#10b981"
}

func (s *nodeStyler) VisitRisk(*model.RiskData) {
	s.size, s.color = 8, "#f59e0b"
}

type graphBuilder struct {
	graph *model.Graph
	nodes map[string]bool
	edges map[string]bool
}

func newGraphBuilder(generatedAt time.Time) *graphBuilder {
	return &graphBuilder{
		graph: model.NewGraph(generatedAt),
		nodes: make(map[string]bool),
		edges: make(map[string]bool),
	}
}

// addNode adds a styled node. The first node with a given ID wins.
func (b *graphBuilder) addNode(id, label string, data model.NodeData) bool {
	if b.nodes[id] {
		return false
	}
	node := model.NewGraphNode(id, label, data)
	var style nodeStyler
	data.Accept(&style)
	node.Size, node.Color = style.size, style.color

	b.nodes[id] = true
	b.graph.Nodes = append(b.graph.Nodes, node)
	return true
}

// addEdge adds an edge when both endpoints exist and the ID is unused
func (b *graphBuilder) addEdge(source, target string, edgeType types.EdgeType, weight, width float64, label string) {
	if !b.nodes[source] || !b.nodes[target] {
		return
	}
	id := model.NewEdgeID(source, target)
	if b.edges[id] {
		return
	}

	color, ok := edgeColors[edgeType]
	if !ok {
		color = defaultEdgeColor
	}

	b.edges[id] = true
	b.graph.Edges = append(b.graph.Edges, &model.GraphEdge{
		ID:     id,
		Source: source,
		Target: target,
		Type:   edgeType,
		Weight: weight,
		Color:  color,
		Width:  width,
		Label:  label,
	})
}

// BuildGraph builds a full relationship graph snapshot. References to
// records missing from the input produce no edge, so the result always
// satisfies Graph.Validate.
func BuildGraph(input GraphInput, generatedAt time.Time) *model.Graph {
	b := newGraphBuilder(generatedAt)

	teamWorkspace := make(map[types.TeamID]types.WorkspaceID, len(input.Teams))
	for _, team := range input.Teams {
		if _, ok := teamWorkspace[team.ID]; !ok {
			teamWorkspace[team.ID] = team.WorkspaceID
		}
	}
	teamSize := make(map[types.TeamID]int)
	workspaceSize := make(map[types.WorkspaceID]int)
	for _, w := range input.Workers {
		teamSize[w.Worker.TeamID]++
		if ws, ok := teamWorkspace[w.Worker.TeamID]; ok {
			workspaceSize[ws]++
		}
	}

	// Workspaces
	for _, ws := range input.Workspaces {
		b.addNode(ws.ID.String(), ws.Name, &model.WorkspaceData{
			WorkspaceID:   ws.ID,
			WorkspaceName: ws.Name,
			Location:      ws.Location,
			WorkerCount:   workspaceSize[ws.ID],
		})
	}

	// Teams, linked from their workspace
	for _, team := range input.Teams {
		added := b.addNode(team.ID.String(), team.Name, &model.TeamData{
			TeamID:      team.ID,
			TeamName:    team.Name,
			WorkspaceID: team.WorkspaceID,
			WorkerCount: teamSize[team.ID],
		})
		if added {
			b.addEdge(team.WorkspaceID.String(), team.ID.String(), types.EdgeTypeWorkspace, workspaceEdgeWeight, 2, "")
		}
	}

	// Workers coloured by current zone, linked from their team
	var (
		teamOrder   []types.TeamID
		teamMembers = make(map[types.TeamID][]string)
	)
	for _, w := range input.Workers {
		data := &model.WorkerData{
			WorkerID:    w.Worker.ID,
			WorkerName:  w.Worker.Name,
			TeamID:      w.Worker.TeamID,
			WorkspaceID: teamWorkspace[w.Worker.TeamID],
		}
		if w.Assessment != nil {
			data.RiskScore = w.Assessment.RiskScore
			data.CurrentRiskLevel = model.ClassifyRiskScore(w.Assessment.RiskScore)
		}
		if !b.addNode(w.Worker.ID.String(), w.Worker.Name, data) {
			continue
		}
		b.addEdge(w.Worker.TeamID.String(), w.Worker.ID.String(), types.EdgeTypeSameTeam, teamMemberEdgeWeight, 1.5, "")

		if w.Worker.TeamID == "" {
			continue
		}
		if _, ok := teamMembers[w.Worker.TeamID]; !ok {
			teamOrder = append(teamOrder, w.Worker.TeamID)
		}
		teamMembers[w.Worker.TeamID] = append(teamMembers[w.Worker.TeamID], w.Worker.ID.String())
	}

	// Events linked from the worker they concern
	var redEvents []string
	for i, ev := range input.Events {
		level := model.ClassifyRiskScore(ev.RiskScore)
		added := b.addNode(ev.ID.String(), fmt.Sprintf("Event %d", i+1), &model.EventData{
			EventID:     ev.ID,
			Timestamp:   ev.Timestamp,
			RiskLevel:   level,
			RiskScore:   ev.RiskScore,
			WorkerID:    ev.WorkerID,
			Description: ev.Description,
		})
		if !added {
			continue
		}
		if ev.WorkerID != "" {
			b.addEdge(ev.WorkerID.String(), ev.ID.String(), types.EdgeTypeWorkerEvent, workerEventEdgeWeight, 1, "")
		}
		if level == types.RiskLevelRed {
			redEvents = append(redEvents, ev.ID.String())
		}
	}

	// Risk chain over consecutive red events
	for i := 0; i+1 < len(redEvents); i++ {
		b.addEdge(redEvents[i], redEvents[i+1], types.EdgeTypeRiskChain, riskChainEdgeWeight, 2, riskChainLabel)
	}

	// Peer links between members (0,1), (2,3), ... of each team. An odd
	// member out stays unlinked.
	for _, teamID := range teamOrder {
		members := teamMembers[teamID]
		for i := 0; i+1 < len(members); i += 2 {
			b.addEdge(members[i], members[i+1], types.EdgeTypeSameTeam, peerEdgeWeight, 1, "")
		}
	}

	return b.graph
}

// GraphUseCase rebuilds and publishes the relationship graph
type GraphUseCase struct {
	repo        interfaces.Repository
	site        *model.SiteRegistry
	assessments *AssessmentUseCase
	eventLimit  int
	now         func() time.Time

	// refreshing serialises rebuilds so two refreshes never overlap
	refreshing sync.Mutex
}

func NewGraphUseCase(repo interfaces.Repository, site *model.SiteRegistry, assessments *AssessmentUseCase, eventLimit int, now func() time.Time) *GraphUseCase {
	if now == nil {
		now = time.Now
	}
	return &GraphUseCase{
		repo:        repo,
		site:        site,
		assessments: assessments,
		eventLimit:  eventLimit,
		now:         now,
	}
}

// Refresh builds a new snapshot from the site, the latest assessments and
// the most recent log entries, then publishes it.
func (uc *GraphUseCase) Refresh(ctx context.Context) (*model.Graph, error) {
	uc.refreshing.Lock()
	defer uc.refreshing.Unlock()

	input, err := uc.collectInput(ctx)
	if err != nil {
		return nil, err
	}

	graph := BuildGraph(*input, uc.now())
	if err := uc.repo.Graph().Put(ctx, graph); err != nil {
		return nil, goerr.Wrap(err, "failed to publish graph")
	}

	logging.From(ctx).Debug("graph refreshed",
		"nodes", len(graph.Nodes),
		"edges", len(graph.Edges),
	)
	return graph, nil
}

// Latest returns the last published snapshot, nil before the first refresh
func (uc *GraphUseCase) Latest(ctx context.Context) (*model.Graph, error) {
	graph, err := uc.repo.Graph().Latest(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest graph")
	}
	return graph, nil
}

func (uc *GraphUseCase) collectInput(ctx context.Context) (*GraphInput, error) {
	input := &GraphInput{
		Workspaces: uc.site.Workspaces(),
		Teams:      uc.site.Teams(),
	}

	for _, w := range uc.site.Workers() {
		gw := GraphWorker{Worker: w}
		if uc.assessments != nil {
			if latest := uc.assessments.Latest(w.ID); latest != nil {
				a := latest.Assessment
				gw.Assessment = &a
			}
		}
		input.Workers = append(input.Workers, gw)
	}

	if uc.eventLimit <= 0 {
		return input, nil
	}

	entries, err := uc.repo.Log().List(ctx, model.LogFilter{Limit: uc.eventLimit})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent log entries")
	}
	slices.Reverse(entries)
	input.Events = EventsFromLog(entries)

	return input, nil
}

// EventsFromLog converts log entries, oldest first, into graph events with
// sequential IDs E001, E002, ...
func EventsFromLog(entries []*model.LogEntry) []model.Event {
	events := make([]model.Event, 0, len(entries))
	for i, e := range entries {
		events = append(events, model.Event{
			ID:          types.EventID(fmt.Sprintf("E%03d", i+1)),
			Timestamp:   e.Timestamp,
			WorkerID:    e.WorkerID,
			RiskScore:   e.RiskScore,
			Description: eventDescription(e),
		})
	}
	return events
}

func eventDescription(e *model.LogEntry) string {
	var kind string
	switch model.ClassifyRiskScore(e.RiskScore) {
	case types.RiskLevelRed:
		kind = "danger"
	case types.RiskLevelYellow:
		kind = "caution"
	default:
		kind = "normal"
	}
	if e.SystemAction == "" {
		return kind + " event"
	}
	return fmt.Sprintf("%s event: %s", kind, e.SystemAction)
}
