package model

import (
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// NodeData is the type-specific payload of a graph node. The set of
// implementations is closed; use Accept with a NodeDataVisitor to handle
// every kind.
type NodeData interface {
	NodeType() types.NodeType
	Accept(v NodeDataVisitor)
	isNodeData()
}

// NodeDataVisitor receives the concrete payload of a node. Implementing it
// forces a handler for each of the five node kinds.
type NodeDataVisitor interface {
	VisitWorker(d *WorkerData)
	VisitEvent(d *EventData)
	VisitWorkspace(d *WorkspaceData)
	VisitTeam(d *TeamData)
	VisitRisk(d *RiskData)
}

type WorkerData struct {
	WorkerID    types.WorkerID
	WorkerName  string `masq:"secret"`
	TeamID      types.TeamID
	WorkspaceID types.WorkspaceID
	// CurrentRiskLevel is empty for workers without an assessment yet
	CurrentRiskLevel types.RiskLevel
	RiskScore        int
}

type EventData struct {
	EventID     types.EventID
	Timestamp   time.Time
	RiskLevel   types.RiskLevel
	RiskScore   int
	WorkerID    types.WorkerID // optional
	Description string
}

type WorkspaceData struct {
	WorkspaceID   types.WorkspaceID
	WorkspaceName string
	Location      string
	WorkerCount   int
}

type TeamData struct {
	TeamID      types.TeamID
	TeamName    string
	WorkspaceID types.WorkspaceID
	WorkerCount int
}

type RiskData struct {
	RiskID   string
	RiskType types.RiskType
	Level    types.RiskLevel
	Score    int
}

func (d *WorkerData) NodeType() types.NodeType    { return types.NodeTypeWorker }
func (d *EventData) NodeType() types.NodeType     { return types.NodeTypeEvent }
func (d *WorkspaceData) NodeType() types.NodeType { return types.NodeTypeWorkspace }
func (d *TeamData) NodeType() types.NodeType      { return types.NodeTypeTeam }
func (d *RiskData) NodeType() types.NodeType      { return types.NodeTypeRisk }

func (d *WorkerData) Accept(v NodeDataVisitor)    { v.VisitWorker(d) }
func (d *EventData) Accept(v NodeDataVisitor)     { v.VisitEvent(d) }
func (d *WorkspaceData) Accept(v NodeDataVisitor) { v.VisitWorkspace(d) }
func (d *TeamData) Accept(v NodeDataVisitor)      { v.VisitTeam(d) }
func (d *RiskData) Accept(v NodeDataVisitor)      { v.VisitRisk(d) }

func (*WorkerData) isNodeData()    {}
func (*EventData) isNodeData()     {}
func (*WorkspaceData) isNodeData() {}
func (*TeamData) isNodeData()      {}
func (*RiskData) isNodeData()      {}

// GraphNode is one entity of the relationship graph. Identity is the ID.
type GraphNode struct {
	ID    string
	Type  types.NodeType
	Label string
	Data  NodeData
	Size  float64
	Color string
}

// NewGraphNode creates a node whose Type is taken from its payload
func NewGraphNode(id, label string, data NodeData) *GraphNode {
	return &GraphNode{
		ID:    id,
		Type:  data.NodeType(),
		Label: label,
		Data:  data,
	}
}

// GraphEdge is a typed relation between two nodes of the same snapshot
type GraphEdge struct {
	ID     string
	Source string
	Target string
	Type   types.EdgeType
	Weight float64
	Color  string
	Width  float64
	Label  string
}

// EdgeIDSeparator joins the endpoints of an edge ID. It cannot occur in a
// valid node ID, so distinct endpoint pairs never share an edge ID.
const EdgeIDSeparator = "->"

// NewEdgeID derives the edge ID from its endpoints, so rebuilding a graph
// from the same input yields the same IDs.
func NewEdgeID(source, target string) string {
	return source + EdgeIDSeparator + target
}

// Graph is a full-replacement snapshot of the relationship graph
type Graph struct {
	Nodes       []*GraphNode
	Edges       []*GraphEdge
	GeneratedAt time.Time
}

// NewGraph returns an empty graph with non-nil node and edge slices
func NewGraph(generatedAt time.Time) *Graph {
	return &Graph{
		Nodes:       []*GraphNode{},
		Edges:       []*GraphEdge{},
		GeneratedAt: generatedAt,
	}
}

// Node returns the node with the given ID, or nil
func (g *Graph) Node(id string) *GraphNode {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// NodesByType returns nodes of the given type in insertion order
func (g *Graph) NodesByType(t types.NodeType) []*GraphNode {
	var result []*GraphNode
	for _, n := range g.Nodes {
		if n.Type == t {
			result = append(result, n)
		}
	}
	return result
}

// EdgesByType returns edges of the given type in insertion order
func (g *Graph) EdgesByType(t types.EdgeType) []*GraphEdge {
	var result []*GraphEdge
	for _, e := range g.Edges {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Validate checks node and edge ID uniqueness, node payload consistency and
// that every edge endpoint exists in the graph.
func (g *Graph) Validate() error {
	nodeIDs := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if nodeIDs[n.ID] {
			return goerr.Wrap(ErrDuplicateNode, "node ID is used twice", goerr.V(NodeIDKey, n.ID))
		}
		nodeIDs[n.ID] = true

		if n.Data == nil || n.Data.NodeType() != n.Type {
			return goerr.New("node payload does not match node type",
				goerr.V(NodeIDKey, n.ID), goerr.V("type", n.Type))
		}
	}

	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return goerr.Wrap(ErrDuplicateEdge, "edge ID is used twice", goerr.V(EdgeIDKey, e.ID))
		}
		edgeIDs[e.ID] = true

		if !nodeIDs[e.Source] {
			return goerr.Wrap(ErrDanglingEdge, "edge source not found",
				goerr.V(EdgeIDKey, e.ID), goerr.V(NodeIDKey, e.Source))
		}
		if !nodeIDs[e.Target] {
			return goerr.Wrap(ErrDanglingEdge, "edge target not found",
				goerr.V(EdgeIDKey, e.ID), goerr.V(NodeIDKey, e.Target))
		}
	}

	return nil
}
