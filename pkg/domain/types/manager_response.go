package types

import "fmt"

// ManagerResponse records how a site manager reacted to a logged risk event
type ManagerResponse string

const (
	ManagerResponseYes     ManagerResponse = "yes"
	ManagerResponseNo      ManagerResponse = "no"
	ManagerResponsePending ManagerResponse = "pending"
)

// AllManagerResponses returns all valid manager responses
func AllManagerResponses() []ManagerResponse {
	return []ManagerResponse{
		ManagerResponseYes,
		ManagerResponseNo,
		ManagerResponsePending,
	}
}

// IsValid checks if the manager response is valid
func (r ManagerResponse) IsValid() bool {
	switch r {
	case ManagerResponseYes, ManagerResponseNo, ManagerResponsePending:
		return true
	default:
		return false
	}
}

// String returns the string representation of the manager response
func (r ManagerResponse) String() string {
	return string(r)
}

// ParseManagerResponse parses a string into a ManagerResponse
func ParseManagerResponse(s string) (ManagerResponse, error) {
	resp := ManagerResponse(s)
	if !resp.IsValid() {
		return "", fmt.Errorf("invalid manager response: %s", s)
	}
	return resp, nil
}
