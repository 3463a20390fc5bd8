package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// LumbarRisk is the body-region sub-risk shown on the lumbar (L5-S1) model
type LumbarRisk string

const (
	LumbarRiskLow    LumbarRisk = "low"
	LumbarRiskMedium LumbarRisk = "medium"
	LumbarRiskHigh   LumbarRisk = "high"
)

// Heart rate boundaries used to derive a lumbar risk from vitals
const (
	LumbarHighHeartRate   = 90
	LumbarMediumHeartRate = 75
)

// ErrInvalidLumbarRisk is returned for values outside low/medium/high
var ErrInvalidLumbarRisk = goerr.New("invalid lumbar risk")

// AllLumbarRisks returns all valid lumbar risks
func AllLumbarRisks() []LumbarRisk {
	return []LumbarRisk{
		LumbarRiskLow,
		LumbarRiskMedium,
		LumbarRiskHigh,
	}
}

// IsValid checks if the lumbar risk is valid
func (r LumbarRisk) IsValid() bool {
	switch r {
	case LumbarRiskLow, LumbarRiskMedium, LumbarRiskHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the lumbar risk
func (r LumbarRisk) String() string {
	return string(r)
}

// ParseLumbarRisk parses a string into a LumbarRisk
func ParseLumbarRisk(s string) (LumbarRisk, error) {
	risk := LumbarRisk(s)
	if !risk.IsValid() {
		return "", goerr.Wrap(ErrInvalidLumbarRisk, "failed to parse lumbar risk", goerr.V("value", s))
	}
	return risk, nil
}

// LumbarRiskToRiskLevel maps low, medium and high onto green, yellow and red.
// Any other value is rejected rather than mapped to a default zone.
func LumbarRiskToRiskLevel(r LumbarRisk) (RiskLevel, error) {
	switch r {
	case LumbarRiskLow:
		return RiskLevelGreen, nil
	case LumbarRiskMedium:
		return RiskLevelYellow, nil
	case LumbarRiskHigh:
		return RiskLevelRed, nil
	default:
		return "", goerr.Wrap(ErrInvalidLumbarRisk, "cannot map lumbar risk to risk level", goerr.V("value", r))
	}
}

// RiskLevelToLumbarRisk is the inverse of LumbarRiskToRiskLevel
func RiskLevelToLumbarRisk(l RiskLevel) (LumbarRisk, error) {
	switch l {
	case RiskLevelGreen:
		return LumbarRiskLow, nil
	case RiskLevelYellow:
		return LumbarRiskMedium, nil
	case RiskLevelRed:
		return LumbarRiskHigh, nil
	default:
		return "", goerr.Wrap(ErrInvalidLumbarRisk, "cannot map risk level to lumbar risk", goerr.V("value", l))
	}
}

// LumbarRiskFromHeartRate derives the lumbar risk from a heart rate in BPM
func LumbarRiskFromHeartRate(bpm int) LumbarRisk {
	switch {
	case bpm > LumbarHighHeartRate:
		return LumbarRiskHigh
	case bpm > LumbarMediumHeartRate:
		return LumbarRiskMedium
	default:
		return LumbarRiskLow
	}
}
