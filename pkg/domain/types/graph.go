package types

// NodeType is the kind of entity a graph node represents
type NodeType string

const (
	NodeTypeWorker    NodeType = "worker"
	NodeTypeEvent     NodeType = "event"
	NodeTypeWorkspace NodeType = "workspace"
	NodeTypeTeam      NodeType = "team"
	NodeTypeRisk      NodeType = "risk"
)

// AllNodeTypes returns all valid node types
func AllNodeTypes() []NodeType {
	return []NodeType{
		NodeTypeWorker,
		NodeTypeEvent,
		NodeTypeWorkspace,
		NodeTypeTeam,
		NodeTypeRisk,
	}
}

// IsValid checks if the node type is valid
func (t NodeType) IsValid() bool {
	switch t {
	case NodeTypeWorker, NodeTypeEvent, NodeTypeWorkspace, NodeTypeTeam, NodeTypeRisk:
		return true
	default:
		return false
	}
}

// String returns the string representation of the node type
func (t NodeType) String() string {
	return string(t)
}

// EdgeType is the relation a graph edge represents
type EdgeType string

const (
	EdgeTypeSameTeam      EdgeType = "same_team"
	EdgeTypeRiskChain     EdgeType = "risk_chain"
	EdgeTypeWorkspace     EdgeType = "workspace"
	EdgeTypeEventSequence EdgeType = "event_sequence"
	EdgeTypeWorkerEvent   EdgeType = "worker_event"
)

// AllEdgeTypes returns all valid edge types
func AllEdgeTypes() []EdgeType {
	return []EdgeType{
		EdgeTypeSameTeam,
		EdgeTypeRiskChain,
		EdgeTypeWorkspace,
		EdgeTypeEventSequence,
		EdgeTypeWorkerEvent,
	}
}

// IsValid checks if the edge type is valid
func (t EdgeType) IsValid() bool {
	switch t {
	case EdgeTypeSameTeam, EdgeTypeRiskChain, EdgeTypeWorkspace, EdgeTypeEventSequence, EdgeTypeWorkerEvent:
		return true
	default:
		return false
	}
}

// String returns the string representation of the edge type
func (t EdgeType) String() string {
	return string(t)
}

// RiskType distinguishes the load a risk node summarises
type RiskType string

const (
	RiskTypePhysical   RiskType = "physical"
	RiskTypeCognitive  RiskType = "cognitive"
	RiskTypeIntegrated RiskType = "integrated"
)

// IsValid checks if the risk type is valid
func (t RiskType) IsValid() bool {
	switch t {
	case RiskTypePhysical, RiskTypeCognitive, RiskTypeIntegrated:
		return true
	default:
		return false
	}
}
