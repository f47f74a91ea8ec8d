package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MonitorMetricsMeterName is the name used for the monitor metrics meter
const MonitorMetricsMeterName = "github.com/driftlock/syncenv/monitor"

// MonitorMetrics holds the OpenTelemetry instruments for the status monitor
type MonitorMetrics struct {
	statusChanges metric.Int64Counter
	syncReady     metric.Int64Gauge
	waitDuration  metric.Float64Histogram
}

// NewMonitorMetrics creates a new MonitorMetrics instance with the given
// meter provider. If provider is nil, it returns nil (no-op metrics).
func NewMonitorMetrics(provider metric.MeterProvider) (*MonitorMetrics, error) {
	if provider == nil {
		return nil, nil
	}

	meter := provider.Meter(MonitorMetricsMeterName)

	statusChanges, err := meter.Int64Counter(
		"syncenv_status_changes_total",
		metric.WithDescription("Number of published status changes per signal"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, err
	}

	syncReady, err := meter.Int64Gauge(
		"syncenv_sync_ready",
		metric.WithDescription("Whether the environment is currently sync-ready (1) or not (0)"),
	)
	if err != nil {
		return nil, err
	}

	waitDuration, err := meter.Float64Histogram(
		"syncenv_wait_until_ready_seconds",
		metric.WithDescription("Time callers spent waiting for sync readiness"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.1, 0.5, 1, 5, 15, 60, 300),
	)
	if err != nil {
		return nil, err
	}

	return &MonitorMetrics{
		statusChanges: statusChanges,
		syncReady:     syncReady,
		waitDuration:  waitDuration,
	}, nil
}

// RecordStatusChange records one published change for the named signal
func (m *MonitorMetrics) RecordStatusChange(ctx context.Context, signal string) {
	if m == nil || m.statusChanges == nil {
		return
	}

	m.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("signal", signal),
	))
}

// RecordSyncReady records the current sync readiness of the environment
func (m *MonitorMetrics) RecordSyncReady(ctx context.Context, ready bool) {
	if m == nil || m.syncReady == nil {
		return
	}

	var v int64
	if ready {
		v = 1
	}
	m.syncReady.Record(ctx, v)
}

// RecordWaitDuration records how long a caller waited for readiness and
// whether readiness was reached before the wait ended
func (m *MonitorMetrics) RecordWaitDuration(ctx context.Context, duration time.Duration, ready bool) {
	if m == nil || m.waitDuration == nil {
		return
	}

	m.waitDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.Bool("ready", ready),
	))
}
