package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	reconcileMeterName = "reconcile.engine"
)

type ReconcileMetrics struct {
	passesTotal      metric.Int64Counter
	intentsProcessed metric.Int64Counter
	orphansCancelled metric.Int64Counter
	itemsSkipped     metric.Int64Counter
	passDuration     metric.Float64Histogram
}

func NewReconcileMetrics() (*ReconcileMetrics, error) {
	meter := otel.Meter(reconcileMeterName)

	passesTotal, err := meter.Int64Counter(
		"reconcile_passes_total",
		metric.WithDescription("Total number of reconciliation passes"),
		metric.WithUnit("{pass}"),
	)
	if err != nil {
		return nil, err
	}

	intentsProcessed, err := meter.Int64Counter(
		"reconcile_intents_total",
		metric.WithDescription("Total number of notification intents processed"),
		metric.WithUnit("{intent}"),
	)
	if err != nil {
		return nil, err
	}

	orphansCancelled, err := meter.Int64Counter(
		"reconcile_orphans_cancelled_total",
		metric.WithDescription("Total number of orphaned notifications cancelled"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	itemsSkipped, err := meter.Int64Counter(
		"reconcile_items_skipped_total",
		metric.WithDescription("Total number of items skipped due to malformed stored data"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, err
	}

	passDuration, err := meter.Float64Histogram(
		"reconcile_pass_duration_seconds",
		metric.WithDescription("Reconciliation pass duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ReconcileMetrics{
		passesTotal:      passesTotal,
		intentsProcessed: intentsProcessed,
		orphansCancelled: orphansCancelled,
		itemsSkipped:     itemsSkipped,
		passDuration:     passDuration,
	}, nil
}

func (m *ReconcileMetrics) RecordPass(ctx context.Context, outcome string, duration time.Duration) {
	m.passesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
	m.passDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (m *ReconcileMetrics) RecordIntent(ctx context.Context, action string) {
	m.intentsProcessed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
	))
}

func (m *ReconcileMetrics) RecordOrphansCancelled(ctx context.Context, count int) {
	if count > 0 {
		m.orphansCancelled.Add(ctx, int64(count))
	}
}

func (m *ReconcileMetrics) RecordItemsSkipped(ctx context.Context, count int) {
	if count > 0 {
		m.itemsSkipped.Add(ctx, int64(count))
	}
}
