package usecase

import (
	"context"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// LogUseCase is the read/append surface of the risk log
type LogUseCase struct {
	repo interfaces.Repository
}

func NewLogUseCase(repo interfaces.Repository) *LogUseCase {
	return &LogUseCase{repo: repo}
}

// Append stores an entry. It either appends the whole entry or nothing.
func (uc *LogUseCase) Append(ctx context.Context, entry *model.LogEntry) (*model.LogEntry, error) {
	stored, err := uc.repo.Log().Append(ctx, entry)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to append log entry")
	}
	return stored, nil
}

// AppendAll stores entries in order and stops at the first rejected entry.
// Entries before it stay appended.
func (uc *LogUseCase) AppendAll(ctx context.Context, entries []*model.LogEntry) (int, error) {
	for i, e := range entries {
		if _, err := uc.Append(ctx, e); err != nil {
			return i, goerr.Wrap(err, "failed to append batch", goerr.V("index", i))
		}
	}
	return len(entries), nil
}

// Query returns entries newest first
func (uc *LogUseCase) Query(ctx context.Context, filter model.LogFilter) ([]*model.LogEntry, error) {
	entries, err := uc.repo.Log().List(ctx, filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query log")
	}
	return entries, nil
}

func (uc *LogUseCase) Count(ctx context.Context, pred model.LogPredicate) (int, error) {
	n, err := uc.repo.Log().Count(ctx, pred)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count log entries")
	}
	return n, nil
}

func (uc *LogUseCase) CountRedZone(ctx context.Context) (int, error) {
	return uc.Count(ctx, model.RedZonePredicate)
}
