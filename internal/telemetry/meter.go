package telemetry

import (
	"fmt"
	"log/slog"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// MeterProviderOption is a function that configures the meter provider setup
type MeterProviderOption func(*meterProviderConfig)

// meterProviderConfig holds the configuration for creating a meter provider
type meterProviderConfig struct {
	config   *Config
	registry *promclient.Registry
}

// WithTelemetryConfig sets the telemetry configuration
func WithTelemetryConfig(cfg *Config) MeterProviderOption {
	return func(c *meterProviderConfig) {
		c.config = cfg
	}
}

// WithPrometheusRegistry sets the Prometheus registry metrics are exported to
func WithPrometheusRegistry(registry *promclient.Registry) MeterProviderOption {
	return func(c *meterProviderConfig) {
		c.registry = registry
	}
}

// NewMeterProvider creates an OpenTelemetry MeterProvider backed by a
// Prometheus exporter. Returns a no-op provider when telemetry is disabled
// or no configuration is given. The caller is responsible for calling
// Shutdown on the returned provider when it is an SDK provider.
func NewMeterProvider(opts ...MeterProviderOption) (metric.MeterProvider, error) {
	setup := &meterProviderConfig{}
	for _, opt := range opts {
		opt(setup)
	}

	if setup.config == nil || !setup.config.Enabled {
		slog.Info("Metrics disabled, using no-op meter provider")
		return noop.NewMeterProvider(), nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(setup.config.serviceName()),
			semconv.ServiceVersion(setup.config.serviceVersion()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry resource: %w", err)
	}

	exporterOpts := []prometheus.Option{}
	if setup.registry != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(setup.registry))
	}

	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	slog.Info("Metrics enabled",
		"service_name", setup.config.serviceName(),
		"service_version", setup.config.serviceVersion())

	return provider, nil
}
