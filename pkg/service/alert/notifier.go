package alert

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/luxyvenom/aimonitor/pkg/domain/interfaces"
	"github.com/luxyvenom/aimonitor/pkg/domain/model"
	"github.com/luxyvenom/aimonitor/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultInterval = 10 * time.Second
	DefaultBurst    = 3
)

// RedZoneNotifier writes a critical log record for red zone entries. Alerts
// are rate limited so a crew in sustained overload does not flood the log;
// suppressed alerts are counted instead.
type RedZoneNotifier struct {
	limiter    *rate.Limiter
	logger     *slog.Logger
	sent       atomic.Int64
	suppressed atomic.Int64
}

var _ interfaces.Notifier = (*RedZoneNotifier)(nil)

type Option func(*RedZoneNotifier)

// WithLogger sends alerts to logger instead of the logger found in the
// context of each notification
func WithLogger(logger *slog.Logger) Option {
	return func(n *RedZoneNotifier) {
		n.logger = logger
	}
}

// WithLimit allows burst alerts at once and one more per interval. A zero
// interval disables limiting.
func WithLimit(interval time.Duration, burst int) Option {
	return func(n *RedZoneNotifier) {
		limit := rate.Inf
		if interval > 0 {
			limit = rate.Every(interval)
		}
		n.limiter = rate.NewLimiter(limit, max(burst, 1))
	}
}

func NewRedZoneNotifier(opts ...Option) *RedZoneNotifier {
	n := &RedZoneNotifier{
		limiter: rate.NewLimiter(rate.Every(DefaultInterval), DefaultBurst),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NotifyRedZone alerts on a red entry. Entries of other zones are rejected.
func (n *RedZoneNotifier) NotifyRedZone(ctx context.Context, entry *model.LogEntry) error {
	if entry == nil || !entry.IsRedZone() {
		return goerr.New("not a red zone entry")
	}

	if !n.limiter.Allow() {
		n.suppressed.Add(1)
		return nil
	}

	logger := n.logger
	if logger == nil {
		logger = logging.From(ctx)
	}
	logger.Error("CRITICAL: red zone detected",
		"worker_id", entry.WorkerID,
		"risk_score", entry.RiskScore,
		"system_action", entry.SystemAction,
		"entry_id", entry.ID,
		"details", entry.Details,
	)
	n.sent.Add(1)
	return nil
}

// Sent returns the number of alerts written
func (n *RedZoneNotifier) Sent() int64 {
	return n.sent.Load()
}

// Suppressed returns the number of alerts dropped by the rate limit
func (n *RedZoneNotifier) Suppressed() int64 {
	return n.suppressed.Load()
}
