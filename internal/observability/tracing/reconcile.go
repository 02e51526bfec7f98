package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const reconcileTracerName = "github.com/campusdesk/campusdesk/internal/service/reconcile"

func ReconcileTracer() trace.Tracer {
	return otel.Tracer(reconcileTracerName)
}

func StartReconcilePassSpan(ctx context.Context, runID string, now time.Time) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.pass",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.String("pass.now", now.Format(time.RFC3339)),
		),
	)
}

func StartNotifierCallSpan(ctx context.Context, operation, entityKey string) (context.Context, trace.Span) {
	return ReconcileTracer().Start(ctx, "reconcile.notifier."+operation,
		trace.WithAttributes(
			attribute.String("entity_key", entityKey),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordReconcilePassResult(span trace.Span, scheduled, cancelled, unchanged, skipped, failed int, err error) {
	span.SetAttributes(
		attribute.Int("pass.scheduled_count", scheduled),
		attribute.Int("pass.cancelled_count", cancelled),
		attribute.Int("pass.unchanged_count", unchanged),
		attribute.Int("pass.skipped_count", skipped),
		attribute.Int("pass.failed_count", failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
