package model

import (
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/types"
)

// ReportSummary is the content confirmed by a report export
type ReportSummary struct {
	GeneratedAt     time.Time
	EntryCount      int
	RedZoneCount    int
	PendingRedZone  int
	CountByLevel    map[types.RiskLevel]int
	CountByResponse map[types.ManagerResponse]int
}

// TrendPoint is the daily aggregate of logged risk scores
type TrendPoint struct {
	Date             string // YYYY-MM-DD
	AverageRiskScore int
	// Load averages cover only entries that carry a LoadReading
	AveragePhysicalLoad  int
	AverageCognitiveLoad int
	EntryCount           int
	WorkerCount          int
	RedZoneCount         int
}

// HeatmapCell is the average risk of one team on one day
type HeatmapCell struct {
	WorkspaceID types.WorkspaceID
	TeamID      types.TeamID
	Date        string // YYYY-MM-DD
	RiskScore   int
	RiskLevel   types.RiskLevel
	EntryCount  int
}
