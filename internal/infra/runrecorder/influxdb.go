package runrecorder

import (
	"context"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/campusdesk/campusdesk/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ReconcileRunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "reconcile pass recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, reconcile pass recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "reconcile pass recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordPass(ctx context.Context, record domain.ReconcilePassRecord) error {
	runID := record.RunID
	if runID == "" {
		runID = "default"
	}

	point := influxdb2.NewPoint(
		"reconcile_pass",
		map[string]string{
			"run_id": runID,
		},
		map[string]any{
			"scheduled_count": record.Scheduled,
			"cancelled_count": record.Cancelled,
			"unchanged_count": record.Unchanged,
			"skipped_count":   record.Skipped,
			"failed_count":    record.Failed,
			"duration_ms":     record.Duration.Milliseconds(),
		},
		record.StartedAt,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write reconcile pass to InfluxDB",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		return err
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	r.client.Close()
	return nil
}
