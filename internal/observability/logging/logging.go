package logging

import (
	"context"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
)

// Environment selects the log output format.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels log records with the emitting subsystem.
type Module string

// ServiceInfo identifies the running service in every log record.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

// NewLogger builds the process logger. Production output is JSON; dev
// output is human-readable text. Records emitted inside a traced request
// carry the trace and span ids.
func NewLogger(level slog.Level, env Environment, info ServiceInfo) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if env == EnvDev {
		inner = slog.NewTextHandler(os.Stdout, opts)
	} else {
		inner = slog.NewJSONHandler(os.Stdout, opts)
	}

	attrs := []slog.Attr{
		slog.String("service", info.Name),
		slog.String("version", info.Version),
	}
	if info.Revision != "" {
		attrs = append(attrs, slog.String("revision", info.Revision))
	}

	return slog.New(&traceHandler{inner: inner.WithAttrs(attrs)})
}

// traceHandler injects the active span context into each record.
type traceHandler struct {
	inner slog.Handler
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, record slog.Record) error {
	if span := trace.SpanContextFromContext(ctx); span.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", span.TraceID().String()),
			slog.String("span_id", span.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, record)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{inner: h.inner.WithGroup(name)}
}
