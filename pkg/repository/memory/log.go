package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// logRepository keeps entries in insertion order. Entries are never updated
// or removed once appended.
type logRepository struct {
	mu      sync.RWMutex
	entries []*model.LogEntry
}

func newLogRepository() *logRepository {
	return &logRepository{}
}

func (r *logRepository) Append(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, goerr.Wrap(err, "rejected log entry")
	}

	stored := entry.Copy()
	stored.ID = model.NewLogEntryID()
	stored.RiskLevel = model.ClassifyRiskScore(stored.RiskScore)
	if stored.ManagerResponse == "" {
		stored.ManagerResponse = types.ManagerResponsePending
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, stored)

	return stored.Copy(), nil
}

func (r *logRepository) List(ctx context.Context, filter model.LogFilter) ([]*model.LogEntry, error) {
	if filter.Limit < 0 {
		return nil, goerr.Wrap(model.ErrOutOfRange, "limit must not be negative", goerr.V("limit", filter.Limit))
	}

	r.mu.RLock()
	matched := make([]*model.LogEntry, 0, len(r.entries))
	// Walk backwards so that the stable sort keeps newer insertions first
	// among equal timestamps.
	for i := len(r.entries) - 1; i >= 0; i-- {
		if filter.Match(r.entries[i]) {
			matched = append(matched, r.entries[i].Copy())
		}
	}
	r.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b *model.LogEntry) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func (r *logRepository) Count(ctx context.Context, pred model.LogPredicate) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if pred == nil {
		return len(r.entries), nil
	}

	count := 0
	for _, e := range r.entries {
		if pred(e.Copy()) {
			count++
		}
	}
	return count, nil
}
