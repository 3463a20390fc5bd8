package model

import (
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// Observation is one raw reading of a worker's load signals
type Observation struct {
	WorkerID      types.WorkerID
	WorkerName    string `masq:"secret"`
	Role          string
	PhysicalLoad  float64
	CognitiveLoad float64
	// HeartRate in BPM; 0 when no vitals were captured
	HeartRate int
	Timestamp time.Time
}

// Validate checks the fields needed to turn the observation into a log entry.
// Loads are not range checked; they are clamped when scored.
func (o *Observation) Validate() error {
	if o == nil {
		return goerr.Wrap(ErrMissingRequired, "observation is nil")
	}
	if err := o.WorkerID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid observation worker")
	}
	if o.Timestamp.IsZero() {
		return goerr.Wrap(ErrMissingRequired, "observation timestamp is required",
			goerr.V(WorkerIDKey, o.WorkerID))
	}
	if o.HeartRate < 0 {
		return goerr.Wrap(ErrOutOfRange, "heart rate must not be negative",
			goerr.V(WorkerIDKey, o.WorkerID), goerr.V("heart_rate", o.HeartRate))
	}
	return nil
}
