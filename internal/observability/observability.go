package observability

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/campusdesk/campusdesk/internal/observability/logging"
)

type Config struct {
	ServiceInfo  logging.ServiceInfo
	Environment  logging.Environment
	LogLevel     slog.Level
	SamplingRate float64
}

// Resources holds the process-wide observability state. Telemetry export
// is active only when an OTLP endpoint is configured; logging always is.
type Resources struct {
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Init builds the logger and, when OTEL_EXPORTER_OTLP_ENDPOINT is set,
// installs the global OTLP trace and metric providers.
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res := &Resources{
		logger: logging.NewLogger(cfg.LogLevel, cfg.Environment, cfg.ServiceInfo),
	}

	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		return res, nil
	}

	otelResource, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceInfo.Name),
			semconv.ServiceVersion(cfg.ServiceInfo.Version),
			semconv.DeploymentEnvironment(string(cfg.Environment)),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SamplingRate))
	res.tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(otelResource),
		sdktrace.WithSampler(sampler),
	)
	otel.SetTracerProvider(res.tracerProvider)

	metricExporter, err := otlpmetrichttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
		sdkmetric.WithResource(otelResource),
	)
	otel.SetMeterProvider(res.meterProvider)

	return res, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
