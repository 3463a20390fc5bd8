package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// idPattern accepts identifiers such as "W001", "ws-north" or "T_02"
var idPattern = regexp.MustCompile(`^[A-Za-z0-9]+([_-][A-Za-z0-9]+)*$`)

func validateID(kind string, id string) error {
	if id == "" {
		return goerr.Wrap(ErrInvalidID, kind+" ID cannot be empty")
	}
	if !idPattern.MatchString(id) {
		return goerr.Wrap(ErrInvalidID, kind+" ID must be alphanumeric with hyphens or underscores",
			goerr.V("id", id))
	}
	return nil
}

// ErrInvalidID is wrapped by every ID validation failure
var ErrInvalidID = goerr.New("invalid ID")

// WorkerID identifies a monitored worker
type WorkerID string

// Validate checks if the WorkerID is valid
func (w WorkerID) Validate() error {
	return validateID("worker", string(w))
}

// String returns the string representation of WorkerID
func (w WorkerID) String() string {
	return string(w)
}

// WorkspaceID identifies a physical workspace
type WorkspaceID string

// Validate checks if the WorkspaceID is valid
func (w WorkspaceID) Validate() error {
	return validateID("workspace", string(w))
}

// String returns the string representation of WorkspaceID
func (w WorkspaceID) String() string {
	return string(w)
}

// EventID identifies a risk event in the relationship graph
type EventID string

// Validate checks if the EventID is valid
func (e EventID) Validate() error {
	return validateID("event", string(e))
}

// String returns the string representation of EventID
func (e EventID) String() string {
	return string(e)
}
