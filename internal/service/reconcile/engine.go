package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/campusdesk/campusdesk/internal/domain"
	"github.com/campusdesk/campusdesk/internal/infra/notifier"
	"github.com/campusdesk/campusdesk/internal/observability/metrics"
	"github.com/campusdesk/campusdesk/internal/observability/tracing"
	"github.com/campusdesk/campusdesk/internal/service/derive"
)

const refreshTriggerBody = "Refreshing lecture status"

// Engine converges the notification store toward the derived desired state.
// Every pass is a full reconciliation: derive, diff against the persisted
// baseline, issue the minimal schedule/cancel calls, persist the new
// baseline. Passes are serialized; overlapping requests coalesce into at
// most one queued follow-up pass.
type Engine struct {
	actions      domain.ActionItemRepository
	timetable    domain.TimetableRepository
	baseline     domain.BaselineRepository
	notifier     notifier.Notifier
	deriver      *derive.Deriver
	metrics      *metrics.ReconcileMetrics
	recorder     domain.ReconcileRunRecorder
	sweepUnknown bool

	mu      sync.Mutex
	pending atomic.Bool
}

func NewEngine(
	actions domain.ActionItemRepository,
	timetable domain.TimetableRepository,
	baseline domain.BaselineRepository,
	n notifier.Notifier,
	deriver *derive.Deriver,
	reconcileMetrics *metrics.ReconcileMetrics,
	recorder domain.ReconcileRunRecorder,
	sweepUnknown bool,
) *Engine {
	return &Engine{
		actions:      actions,
		timetable:    timetable,
		baseline:     baseline,
		notifier:     n,
		deriver:      deriver,
		metrics:      reconcileMetrics,
		recorder:     recorder,
		sweepUnknown: sweepUnknown,
	}
}

// Run executes one reconciliation pass at the current wall-clock time,
// waiting for any in-flight pass to finish first.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	return e.RunAt(ctx, time.Now())
}

// RunAt executes one reconciliation pass evaluated at the given instant.
// Requests absorbed while the pass was running are drained as follow-up
// passes before the lock is released; the returned result is the first
// pass's.
func (e *Engine) RunAt(ctx context.Context, now time.Time) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	result, err := e.pass(ctx, now)
	e.drainPending(ctx)
	return result, err
}

// Request asks for a reconciliation pass without waiting for the result.
// If a pass is already running, the request is absorbed into a single
// follow-up pass; any number of concurrent requests collapse into one.
func (e *Engine) Request(ctx context.Context) {
	e.pending.Store(true)
	if !e.mu.TryLock() {
		// Whoever holds the lock drains the pending flag before releasing
		// it, so this request is already covered.
		return
	}
	defer e.mu.Unlock()
	e.drainPending(ctx)
}

// drainPending runs one pass per pending request until the flag stays
// clear. Every lock holder must call this before releasing e.mu, or a
// request absorbed mid-pass would be dropped. Caller must hold e.mu.
func (e *Engine) drainPending(ctx context.Context) {
	for e.pending.Swap(false) {
		if ctx.Err() != nil {
			return
		}
		if _, err := e.pass(ctx, time.Now()); err != nil {
			slog.ErrorContext(ctx, "requested reconciliation pass failed",
				slog.String("error", err.Error()),
			)
		}
	}
}

// pass runs the reconciliation algorithm. Caller must hold e.mu.
func (e *Engine) pass(ctx context.Context, now time.Time) (*Result, error) {
	runID := uuid.NewString()
	startedAt := time.Now()

	ctx, span := tracing.StartReconcilePassSpan(ctx, runID, now)
	defer span.End()

	result := &Result{RunID: runID}

	items, err := e.actions.List(ctx)
	if err != nil {
		e.finishPass(ctx, span, result, startedAt, err)
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}

	slots, err := e.timetable.List(ctx)
	if err != nil {
		e.finishPass(ctx, span, result, startedAt, err)
		return nil, fmt.Errorf("failed to list lecture slots: %w", err)
	}

	prev, err := e.baseline.Load(ctx)
	if err != nil {
		e.finishPass(ctx, span, result, startedAt, err)
		return nil, fmt.Errorf("failed to load baseline: %w", err)
	}

	intents, skipped := e.deriver.Derive(items, slots, now)
	result.Skipped = skipped

	slog.DebugContext(ctx, "derived desired state",
		slog.String("run_id", runID),
		slog.Int("intent_count", len(intents)),
		slog.Int("skipped_count", skipped),
	)

	next := make(domain.Baseline, len(intents))
	desired := make(map[string]struct{}, len(intents))

	for _, intent := range intents {
		desired[intent.EntityKey] = struct{}{}
		e.applyIntent(ctx, intent, prev, next, result)
	}

	e.sweepOrphans(ctx, prev, desired, next, result)

	if e.sweepUnknown {
		e.sweepForeign(ctx, next, result)
	}

	if err := e.baseline.Save(ctx, next); err != nil {
		// Notification effects already stand; the stale baseline is
		// corrected by the next pass re-diffing against reality.
		slog.ErrorContext(ctx, "failed to persist baseline",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
	}

	e.finishPass(ctx, span, result, startedAt, nil)

	slog.InfoContext(ctx, "reconciliation pass complete",
		slog.String("run_id", runID),
		slog.Int("scheduled", result.Scheduled),
		slog.Int("cancelled", result.Cancelled),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("skipped", result.Skipped),
		slog.Int("failed", result.Failed),
		slog.Duration("duration", time.Since(startedAt)),
	)

	return result, nil
}

// applyIntent reconciles one desired intent against the previous baseline,
// writing the surviving record into next.
func (e *Engine) applyIntent(
	ctx context.Context,
	intent domain.NotificationIntent,
	prev domain.Baseline,
	next domain.Baseline,
	result *Result,
) {
	record, existed := prev[intent.EntityKey]

	if existed && record.Fingerprint == intent.Fingerprint {
		next[intent.EntityKey] = record
		result.Unchanged++
		if e.metrics != nil {
			e.metrics.RecordIntent(ctx, "unchanged")
		}
		return
	}

	if existed {
		// Fingerprint changed: cancel the stale notification before
		// scheduling its replacement. A failed cancel is logged and not
		// retried; the replacement supersedes it on the next delivery.
		for _, id := range record.AllIDs() {
			if err := e.cancelOne(ctx, intent.EntityKey, id); err != nil {
				slog.WarnContext(ctx, "failed to cancel superseded notification",
					slog.String("entity_key", intent.EntityKey),
					slog.String("notification_id", id),
					slog.String("error", err.Error()),
				)
			}
		}
	}

	fresh, err := e.scheduleIntent(ctx, intent)
	if err != nil {
		slog.ErrorContext(ctx, "failed to schedule notification",
			slog.String("entity_key", intent.EntityKey),
			slog.String("error", err.Error()),
		)
		result.Failed++
		if e.metrics != nil {
			e.metrics.RecordIntent(ctx, "failed")
		}
		if existed {
			// Keep the old record so the entity stays in the baseline. Its
			// handles were already cancelled above; the stale fingerprint
			// makes the next pass retry the schedule, and re-cancelling
			// dead handles is harmless (404 counts as success).
			next[intent.EntityKey] = record
		}
		return
	}

	next[intent.EntityKey] = *fresh
	result.Scheduled++
	if e.metrics != nil {
		e.metrics.RecordIntent(ctx, "scheduled")
	}
}

// scheduleIntent issues the primary notification plus one silent refresh
// trigger per boundary instant, returning the record that owns all the
// resulting handles.
func (e *Engine) scheduleIntent(ctx context.Context, intent domain.NotificationIntent) (*domain.NotificationRecord, error) {
	sctx, span := tracing.StartNotifierCallSpan(ctx, "schedule", intent.EntityKey)
	primaryID, err := e.notifier.Schedule(sctx, &notifier.Notification{
		Title:     intent.Title,
		Body:      intent.Body,
		TriggerAt: intent.TriggerAt,
		Silent:    intent.Silent,
		Sticky:    intent.Sticky,
	})
	span.End()
	if err != nil {
		return nil, err
	}

	record := &domain.NotificationRecord{
		EntityKey:      intent.EntityKey,
		NotificationID: primaryID,
		Fingerprint:    intent.Fingerprint,
	}

	for _, at := range intent.RefreshAt {
		triggerAt := at
		rctx, rspan := tracing.StartNotifierCallSpan(ctx, "schedule_refresh", intent.EntityKey)
		id, err := e.notifier.Schedule(rctx, &notifier.Notification{
			Title:     intent.Title,
			Body:      refreshTriggerBody,
			TriggerAt: &triggerAt,
			Silent:    true,
		})
		rspan.End()
		if err != nil {
			// Partial refresh coverage is acceptable; the periodic pass
			// still converges the status after the missed boundary.
			slog.WarnContext(ctx, "failed to schedule refresh trigger",
				slog.String("entity_key", intent.EntityKey),
				slog.Time("trigger_at", at),
				slog.String("error", err.Error()),
			)
			continue
		}
		record.ExtraIDs = append(record.ExtraIDs, id)
	}

	return record, nil
}

// sweepOrphans cancels every baseline record whose entity no longer exists
// in the desired state. Records whose cancel fails stay in the next
// baseline so the following pass retries them.
func (e *Engine) sweepOrphans(
	ctx context.Context,
	prev domain.Baseline,
	desired map[string]struct{},
	next domain.Baseline,
	result *Result,
) {
	for key, record := range prev {
		if _, ok := desired[key]; ok {
			continue
		}

		failed := false
		for _, id := range record.AllIDs() {
			if err := e.cancelOne(ctx, key, id); err != nil {
				slog.WarnContext(ctx, "failed to cancel orphaned notification",
					slog.String("entity_key", key),
					slog.String("notification_id", id),
					slog.String("error", err.Error()),
				)
				failed = true
			}
		}

		if failed {
			next[key] = record
			result.Failed++
			if e.metrics != nil {
				e.metrics.RecordIntent(ctx, "failed")
			}
			continue
		}

		result.Cancelled++
		if e.metrics != nil {
			e.metrics.RecordIntent(ctx, "cancelled")
		}
	}

	if e.metrics != nil {
		e.metrics.RecordOrphansCancelled(ctx, result.Cancelled)
	}
}

// sweepForeign cancels scheduled notifications the baseline does not own.
// These appear when a previous baseline save was lost after scheduling
// succeeded.
func (e *Engine) sweepForeign(ctx context.Context, next domain.Baseline, result *Result) {
	ids, err := e.notifier.ListScheduled(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to list scheduled notifications for sweep",
			slog.String("error", err.Error()),
		)
		return
	}

	owned := make(map[string]struct{}, len(next))
	for _, record := range next {
		for _, id := range record.AllIDs() {
			owned[id] = struct{}{}
		}
	}

	for _, id := range ids {
		if _, ok := owned[id]; ok {
			continue
		}
		if err := e.cancelOne(ctx, "", id); err != nil {
			slog.WarnContext(ctx, "failed to cancel unknown notification",
				slog.String("notification_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Cancelled++
	}
}

func (e *Engine) cancelOne(ctx context.Context, entityKey, id string) error {
	cctx, span := tracing.StartNotifierCallSpan(ctx, "cancel", entityKey)
	defer span.End()
	return e.notifier.Cancel(cctx, id)
}

// finishPass records pass-level observability. passErr is non-nil only for
// aborted passes.
func (e *Engine) finishPass(ctx context.Context, span trace.Span, result *Result, startedAt time.Time, passErr error) {
	duration := time.Since(startedAt)

	tracing.RecordReconcilePassResult(span,
		result.Scheduled, result.Cancelled, result.Unchanged, result.Skipped, result.Failed, passErr)

	outcome := "success"
	if passErr != nil {
		outcome = "aborted"
	} else if result.Failed > 0 {
		outcome = "partial"
	}

	if e.metrics != nil {
		e.metrics.RecordPass(ctx, outcome, duration)
		e.metrics.RecordItemsSkipped(ctx, result.Skipped)
	}

	if e.recorder != nil {
		record := domain.ReconcilePassRecord{
			RunID:     result.RunID,
			StartedAt: startedAt,
			Scheduled: result.Scheduled,
			Cancelled: result.Cancelled,
			Unchanged: result.Unchanged,
			Skipped:   result.Skipped,
			Failed:    result.Failed,
			Duration:  duration,
		}
		if err := e.recorder.RecordPass(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record reconciliation pass",
				slog.String("run_id", result.RunID),
				slog.String("error", err.Error()),
			)
		}
	}
}
