package types

import "fmt"

// RiskLevel is the three-tier zone a risk score falls into
type RiskLevel string

const (
	RiskLevelGreen  RiskLevel = "green"
	RiskLevelYellow RiskLevel = "yellow"
	RiskLevelRed    RiskLevel = "red"
)

// AllRiskLevels returns all valid risk levels ordered by severity
func AllRiskLevels() []RiskLevel {
	return []RiskLevel{
		RiskLevelGreen,
		RiskLevelYellow,
		RiskLevelRed,
	}
}

// IsValid checks if the risk level is valid
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLevelGreen, RiskLevelYellow, RiskLevelRed:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level
func (l RiskLevel) String() string {
	return string(l)
}

// Severity returns the position of the level in green < yellow < red.
// Invalid levels return -1.
func (l RiskLevel) Severity() int {
	switch l {
	case RiskLevelGreen:
		return 0
	case RiskLevelYellow:
		return 1
	case RiskLevelRed:
		return 2
	default:
		return -1
	}
}

// HexColor returns the display colour of the zone
func (l RiskLevel) HexColor() string {
	switch l {
	case RiskLevelRed:
		return "#ef4444"
	case RiskLevelYellow:
		return "#facc15"
	case RiskLevelGreen:
		return "#22c55e"
	default:
		return "#64748b"
	}
}

// ParseRiskLevel parses a string into a RiskLevel
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(s)
	if !level.IsValid() {
		return "", fmt.Errorf("invalid risk level: %s", s)
	}
	return level, nil
}
