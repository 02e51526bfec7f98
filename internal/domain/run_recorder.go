package domain

import (
	"context"
	"time"
)

// ReconcilePassRecord summarizes one reconciliation pass for offline
// analysis.
type ReconcilePassRecord struct {
	RunID     string
	StartedAt time.Time
	Scheduled int
	Cancelled int
	Unchanged int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

// ReconcileRunRecorder receives pass summaries. Implementations must treat
// recording as best-effort; a failed write never affects reconciliation.
type ReconcileRunRecorder interface {
	RecordPass(ctx context.Context, record ReconcilePassRecord) error
	Flush(ctx context.Context) error
	Close() error
}
