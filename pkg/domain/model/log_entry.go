package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// LogEntryID is a UUID-based identifier for LogEntry
type LogEntryID string

// NewLogEntryID generates a new UUID v4 LogEntryID
func NewLogEntryID() LogEntryID {
	return LogEntryID(uuid.New().String())
}

// LogEntry is one audit record of a risk event and the automated or human
// response to it. Once appended to the log it is never modified.
type LogEntry struct {
	ID              LogEntryID
	Timestamp       time.Time
	WorkerID        types.WorkerID
	WorkerName      string `masq:"secret"`
	RiskScore       int
	RiskLevel       types.RiskLevel
	SystemAction    string
	ManagerResponse types.ManagerResponse
	Details         string // optional
	// Loads is set when the entry was scored from an observation
	Loads *LoadReading
}

// LoadReading holds the clamped loads an entry was scored from
type LoadReading struct {
	Physical  float64
	Cognitive float64
}

func (r *LoadReading) validate() error {
	if r.Physical < MinLoad || r.Physical > MaxLoad || r.Cognitive < MinLoad || r.Cognitive > MaxLoad {
		return goerr.Wrap(ErrOutOfRange, "loads must be between 0 and 100",
			goerr.V("physical_load", r.Physical), goerr.V("cognitive_load", r.Cognitive))
	}
	return nil
}

// Validate checks the required fields of an entry before it is appended.
// RiskLevel and ManagerResponse may be left empty; when set they must be
// consistent with the score and a known response respectively.
func (e *LogEntry) Validate() error {
	if e == nil {
		return goerr.Wrap(ErrMissingRequired, "log entry is nil")
	}
	if e.WorkerID == "" {
		return goerr.Wrap(ErrMissingRequired, "worker ID is required", goerr.V(FieldKey, "WorkerID"))
	}
	if e.Timestamp.IsZero() {
		return goerr.Wrap(ErrMissingRequired, "timestamp is required",
			goerr.V(FieldKey, "Timestamp"), goerr.V(WorkerIDKey, e.WorkerID))
	}
	if e.RiskScore < MinRiskScore || e.RiskScore > MaxRiskScore {
		return goerr.Wrap(ErrOutOfRange, "risk score must be between 0 and 100",
			goerr.V(WorkerIDKey, e.WorkerID), goerr.V(RiskScoreKey, e.RiskScore))
	}
	if e.RiskLevel != "" && e.RiskLevel != ClassifyRiskScore(e.RiskScore) {
		return goerr.Wrap(ErrInconsistentRiskLevel, "risk level must match classification of risk score",
			goerr.V(WorkerIDKey, e.WorkerID),
			goerr.V(RiskScoreKey, e.RiskScore),
			goerr.V(RiskLevelKey, e.RiskLevel))
	}
	if e.ManagerResponse != "" && !e.ManagerResponse.IsValid() {
		return goerr.Wrap(ErrInvalidManagerResponse, "unknown manager response",
			goerr.V(WorkerIDKey, e.WorkerID), goerr.V("manager_response", e.ManagerResponse))
	}
	if e.Loads != nil {
		if err := e.Loads.validate(); err != nil {
			return goerr.Wrap(err, "invalid load reading", goerr.V(WorkerIDKey, e.WorkerID))
		}
	}
	return nil
}

// IsRedZone reports whether the entry was classified red
func (e *LogEntry) IsRedZone() bool {
	return e.RiskLevel == types.RiskLevelRed
}

// Copy returns a detached copy of the entry
func (e *LogEntry) Copy() *LogEntry {
	copied := *e
	if e.Loads != nil {
		loads := *e.Loads
		copied.Loads = &loads
	}
	return &copied
}

// LogFilter narrows a log query. The zero value selects every entry.
type LogFilter struct {
	OnlyRedZone bool
	WorkerID    types.WorkerID
	// Limit caps the number of returned entries; 0 means no limit
	Limit int
}

// Match reports whether the entry passes the filter, ignoring Limit
func (f LogFilter) Match(e *LogEntry) bool {
	if f.OnlyRedZone && !e.IsRedZone() {
		return false
	}
	if f.WorkerID != "" && e.WorkerID != f.WorkerID {
		return false
	}
	return true
}

// LogPredicate selects entries for counting
type LogPredicate func(e *LogEntry) bool

// RedZonePredicate selects red-zone entries
func RedZonePredicate(e *LogEntry) bool {
	return e.IsRedZone()
}

// RiskLevelPredicate selects entries of the given zone
func RiskLevelPredicate(level types.RiskLevel) LogPredicate {
	return func(e *LogEntry) bool {
		return e.RiskLevel == level
	}
}

// ManagerResponsePredicate selects entries with the given manager response
func ManagerResponsePredicate(resp types.ManagerResponse) LogPredicate {
	return func(e *LogEntry) bool {
		return e.ManagerResponse == resp
	}
}

// DefaultSystemActions is the catalogue of automated responses, ordered from
// most to least severe. Red-zone events only use the first four.
var DefaultSystemActions = []string{
	"Work stop requested",
	"Site manager alerted",
	"Mandatory rest break",
	"Task reassignment recommended",
	"Rest recommended",
	"Stretching guidance sent",
	"Workload adjustment suggested",
	"Continued monitoring",
}

// SevereActionCount is the number of leading catalogue entries reserved for
// red-zone events
const SevereActionCount = 4
