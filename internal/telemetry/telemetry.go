// Package telemetry provides OpenTelemetry instrumentation for the
// sync-environment monitor. Metrics are exported through a Prometheus
// registry scraped by the daemon's /metrics endpoint.
package telemetry

// DefaultServiceName is the default service name for telemetry
const DefaultServiceName = "syncenvd"

// Config represents the telemetry configuration
type Config struct {
	// Enabled controls whether telemetry is enabled.
	// When false, no meter provider is initialized and all instrument
	// recording is a no-op.
	Enabled bool `yaml:"enabled"`

	// ServiceName is the service name attached to exported metrics.
	// Defaults to "syncenvd" if not specified.
	ServiceName string `yaml:"serviceName,omitempty"`

	// ServiceVersion is the service version attached to exported metrics
	ServiceVersion string `yaml:"serviceVersion,omitempty"`
}

// serviceName returns the configured service name or the default
func (c *Config) serviceName() string {
	if c == nil || c.ServiceName == "" {
		return DefaultServiceName
	}
	return c.ServiceName
}

// serviceVersion returns the configured service version or "unknown"
func (c *Config) serviceVersion() string {
	if c == nil || c.ServiceVersion == "" {
		return "unknown"
	}
	return c.ServiceVersion
}
