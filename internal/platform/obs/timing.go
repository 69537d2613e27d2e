package obs

import (
	"context"
	"itinerary-route-service/internal/platform/logger"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
)

type ctxKey string

const RequestIDKey ctxKey = "req_id"

// WithRequestID stores id for later Time calls.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

type opStats struct {
	calls  *xsync.Counter
	errors *xsync.Counter
}

var stats = xsync.NewMapOf[string, *opStats]()

// Time measures an operation; call the returned func with a pointer to the
// operation's error, usually as `defer obs.Time(ctx, "op")(&err)`.
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := RequestID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		s, _ := stats.LoadOrCompute(name, func() *opStats {
			return &opStats{calls: xsync.NewCounter(), errors: xsync.NewCounter()}
		})
		s.calls.Inc()

		if errp != nil && *errp != nil {
			s.errors.Inc()
			logger.Warn("op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "error", *errp)
			return
		}
		logger.Debug("op done", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}

// OpCount is a snapshot of one operation's counters.
type OpCount struct {
	Calls  int64 `json:"calls"`
	Errors int64 `json:"errors"`
}

// Snapshot returns the counters recorded so far, keyed by operation name.
func Snapshot() map[string]OpCount {
	out := make(map[string]OpCount, stats.Size())
	stats.Range(func(name string, s *opStats) bool {
		out[name] = OpCount{Calls: s.calls.Value(), Errors: s.errors.Value()}
		return true
	})
	return out
}
