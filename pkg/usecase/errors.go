package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// Report errors
	ErrReportGeneration = errors.New("report generation failed")

	// Input errors
	ErrInvalidPeriod = errors.New("invalid report period")
)

// Context keys for error values
const (
	WorkerIDKey = "worker_id"
	DaysKey     = "days"
)
