package model_test

import (
	"testing"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

type kindCounter struct {
	counts map[types.NodeType]int
}

func (k *kindCounter) VisitWorker(*model.WorkerData)       { k.counts[types.NodeTypeWorker]++ }
func (k *kindCounter) VisitEvent(*model.EventData)         { k.counts[types.NodeTypeEvent]++ }
func (k *kindCounter) VisitWorkspace(*model.WorkspaceData) { k.counts[types.NodeTypeWorkspace]++ }
func (k *kindCounter) VisitTeam(*model.TeamData)           { k.counts[types.NodeTypeTeam]++ }
func (k *kindCounter) VisitRisk(*model.RiskData)           { k.counts[types.NodeTypeRisk]++ }

func TestNewGraphNode_TypeFromPayload(t *testing.T) {
	payloads := []model.NodeData{
		&model.WorkerData{WorkerID: "W001"},
		&model.EventData{EventID: "E001"},
		&model.WorkspaceData{WorkspaceID: "WS001"},
		&model.TeamData{TeamID: "T001"},
		&model.RiskData{RiskID: "R001", RiskType: types.RiskTypeIntegrated},
	}

	counter := &kindCounter{counts: make(map[types.NodeType]int)}
	for _, p := range payloads {
		n := model.NewGraphNode("id", "label", p)
		gt.Value(t, n.Type).Equal(p.NodeType())
		n.Data.Accept(counter)
	}

	for _, nt := range types.AllNodeTypes() {
		gt.Number(t, counter.counts[nt]).Equal(1)
	}
}

func TestNewEdgeID(t *testing.T) {
	gt.String(t, model.NewEdgeID("WS001", "T001")).Equal("WS001->T001")
	gt.Value(t, model.NewEdgeID("a", "b")).Equal(model.NewEdgeID("a", "b"))
	gt.Value(t, model.NewEdgeID("a", "b")).NotEqual(model.NewEdgeID("b", "a"))

	// hyphens are legal inside node IDs
	gt.NoError(t, types.WorkerID("W-1").Validate())
	gt.NoError(t, types.TeamID("T-W").Validate())
	gt.Value(t, model.NewEdgeID("T", "W-1")).NotEqual(model.NewEdgeID("T-W", "1"))
}

func sampleGraph() *model.Graph {
	g := model.NewGraph(time.Now())
	g.Nodes = append(g.Nodes,
		model.NewGraphNode("WS001", "Floor 1", &model.WorkspaceData{WorkspaceID: "WS001"}),
		model.NewGraphNode("T001", "Team A", &model.TeamData{TeamID: "T001", WorkspaceID: "WS001"}),
	)
	g.Edges = append(g.Edges, &model.GraphEdge{
		ID:     model.NewEdgeID("WS001", "T001"),
		Source: "WS001",
		Target: "T001",
		Type:   types.EdgeTypeWorkspace,
		Weight: 1.0,
	})
	return g
}

func TestGraph_Validate(t *testing.T) {
	t.Run("valid graph", func(t *testing.T) {
		gt.NoError(t, sampleGraph().Validate())
	})

	t.Run("empty graph", func(t *testing.T) {
		g := model.NewGraph(time.Now())
		gt.NoError(t, g.Validate())
		gt.Array(t, g.Nodes).Length(0)
		gt.Array(t, g.Edges).Length(0)
	})

	t.Run("dangling target", func(t *testing.T) {
		g := sampleGraph()
		g.Edges = append(g.Edges, &model.GraphEdge{ID: "T001-W999", Source: "T001", Target: "W999", Type: types.EdgeTypeSameTeam})
		gt.Error(t, g.Validate()).Is(model.ErrDanglingEdge)
	})

	t.Run("dangling source", func(t *testing.T) {
		g := sampleGraph()
		g.Edges = append(g.Edges, &model.GraphEdge{ID: "X-T001", Source: "X", Target: "T001", Type: types.EdgeTypeSameTeam})
		gt.Error(t, g.Validate()).Is(model.ErrDanglingEdge)
	})

	t.Run("duplicate node", func(t *testing.T) {
		g := sampleGraph()
		g.Nodes = append(g.Nodes, model.NewGraphNode("T001", "dup", &model.TeamData{TeamID: "T001"}))
		gt.Error(t, g.Validate()).Is(model.ErrDuplicateNode)
	})

	t.Run("duplicate edge", func(t *testing.T) {
		g := sampleGraph()
		g.Edges = append(g.Edges, g.Edges[0])
		gt.Error(t, g.Validate()).Is(model.ErrDuplicateEdge)
	})

	t.Run("payload mismatch", func(t *testing.T) {
		g := sampleGraph()
		g.Nodes[0].Type = types.NodeTypeTeam
		gt.Error(t, g.Validate())
	})
}

func TestGraph_Lookup(t *testing.T) {
	g := sampleGraph()
	gt.Value(t, g.Node("T001").Label).Equal("Team A")
	gt.Value(t, g.Node("missing")).Nil()
	gt.Array(t, g.NodesByType(types.NodeTypeWorkspace)).Length(1)
	gt.Array(t, g.EdgesByType(types.EdgeTypeWorkspace)).Length(1)
	gt.Array(t, g.EdgesByType(types.EdgeTypeRiskChain)).Length(0)
}
