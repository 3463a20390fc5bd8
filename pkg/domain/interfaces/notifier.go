package interfaces

import (
	"context"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
)

// Notifier delivers red-zone alerts
type Notifier interface {
	NotifyRedZone(ctx context.Context, entry *model.LogEntry) error
}

// ReportRenderer exports a report summary. Rendering is a stub concern; a
// failure must not affect the log it summarises.
type ReportRenderer interface {
	Render(ctx context.Context, summary *model.ReportSummary) error
}
