package types

// TeamID represents a unique identifier for a team
type TeamID string

// Validate checks if the TeamID is valid
func (t TeamID) Validate() error {
	return validateID("team", string(t))
}

// String returns the string representation of TeamID
func (t TeamID) String() string {
	return string(t)
}
