package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrMissingRequired        = goerr.New("required field is missing")
	ErrOutOfRange             = goerr.New("value is out of range")
	ErrInconsistentRiskLevel  = goerr.New("risk level does not match risk score")
	ErrInvalidManagerResponse = goerr.New("invalid manager response")
	ErrDanglingEdge           = goerr.New("edge references a node outside the graph")
	ErrDuplicateNode          = goerr.New("duplicate node ID")
	ErrDuplicateEdge          = goerr.New("duplicate edge ID")
)

// Context keys for error values
const (
	FieldKey     = "field"
	WorkerIDKey  = "worker_id"
	RiskScoreKey = "risk_score"
	RiskLevelKey = "risk_level"
	NodeIDKey    = "node_id"
	EdgeIDKey    = "edge_id"
)
