package interfaces

import (
	"context"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
)

// LogRepository is the append-only store of risk log entries
type LogRepository interface {
	// Append validates and stores a new entry, returning the stored copy with
	// ID, RiskLevel and ManagerResponse filled in. Nothing is stored on error.
	Append(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error)

	// List returns entries matching filter, newest timestamp first
	List(ctx context.Context, filter model.LogFilter) ([]*model.LogEntry, error)

	// Count returns the number of entries satisfying pred. A nil pred counts
	// every entry.
	Count(ctx context.Context, pred model.LogPredicate) (int, error)
}

// GraphRepository holds the most recently published relationship graph
type GraphRepository interface {
	// Put replaces the current snapshot
	Put(ctx context.Context, graph *model.Graph) error

	// Latest returns the current snapshot, or nil when none was published yet
	Latest(ctx context.Context) (*model.Graph, error)
}
