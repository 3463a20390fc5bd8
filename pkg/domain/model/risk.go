package model

import (
	"math"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/types"
)

// Weights of the integrated risk score
const (
	PhysicalLoadWeight  = 0.4
	CognitiveLoadWeight = 0.6
)

// Zone thresholds, inclusive on the lower bound of each band
const (
	RedZoneThreshold    = 70
	YellowZoneThreshold = 40
)

const (
	MinLoad = 0.0
	MaxLoad = 100.0

	MinRiskScore = 0
	MaxRiskScore = 100
)

// ClampLoad limits a load value to [0, 100]. NaN is treated as no load.
func ClampLoad(v float64) float64 {
	if math.IsNaN(v) {
		return MinLoad
	}
	return math.Max(MinLoad, math.Min(MaxLoad, v))
}

// CalculateRiskScore combines physical and cognitive load into the integrated
// risk score: round(clamp(0.4*physical + 0.6*cognitive, 0, 100)). Each load is
// clamped to [0, 100] before weighting.
func CalculateRiskScore(physicalLoad, cognitiveLoad float64) int {
	integrated := ClampLoad(physicalLoad)*PhysicalLoadWeight + ClampLoad(cognitiveLoad)*CognitiveLoadWeight
	return int(math.Round(ClampLoad(integrated)))
}

// ClassifyRiskScore returns the zone of a risk score
func ClassifyRiskScore(score int) types.RiskLevel {
	switch {
	case score >= RedZoneThreshold:
		return types.RiskLevelRed
	case score >= YellowZoneThreshold:
		return types.RiskLevelYellow
	default:
		return types.RiskLevelGreen
	}
}

// RiskAssessment is one classified observation of a worker's load
type RiskAssessment struct {
	PhysicalLoad  float64
	CognitiveLoad float64
	RiskScore     int
	RiskLevel     types.RiskLevel
}

// NewRiskAssessment scores and classifies the given loads. Loads outside
// [0, 100] are clamped.
func NewRiskAssessment(physicalLoad, cognitiveLoad float64) RiskAssessment {
	score := CalculateRiskScore(physicalLoad, cognitiveLoad)
	return RiskAssessment{
		PhysicalLoad:  ClampLoad(physicalLoad),
		CognitiveLoad: ClampLoad(cognitiveLoad),
		RiskScore:     score,
		RiskLevel:     ClassifyRiskScore(score),
	}
}

// WorkerAssessment is the latest risk card of a single worker
type WorkerAssessment struct {
	WorkerID   types.WorkerID
	WorkerName string `masq:"secret"`
	Role       string
	Assessment RiskAssessment
	LumbarRisk types.LumbarRisk
	HeartRate  int
	Detail     string
	Timestamp  time.Time
}
