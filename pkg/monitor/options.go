package monitor

import (
	"log/slog"

	"github.com/driftlock/syncenv/internal/broadcast"
	"github.com/driftlock/syncenv/internal/telemetry"
	"github.com/driftlock/syncenv/pkg/platform"
	"github.com/driftlock/syncenv/pkg/status"
)

// QuotaExceededHandler is invoked asynchronously, at most once per manager
// lifetime, when a sync-event notification reports quota exhaustion
type QuotaExceededHandler func()

// config holds the manager configuration assembled from options
type config struct {
	monitoringOptions status.MonitoringOptions
	containerID       string
	quotaHandler      QuotaExceededHandler
	logger            *slog.Logger
	showEventInLog    bool
	metrics           *telemetry.MonitorMetrics
	streamBufferSize  int

	accountQuerier platform.AccountQuerier
	pathMonitor    platform.PathMonitor
	powerSource    platform.PowerStateSource
	eventSource    platform.SyncEventSource
	tokenSource    platform.UbiquityTokenSource
}

// Option is a function that configures the manager
type Option func(*config)

// WithMonitoringOptions selects which signal sources the manager activates
// on Start. Defaults to status.MonitorDefault.
func WithMonitoringOptions(opts status.MonitoringOptions) Option {
	return func(c *config) {
		c.monitoringOptions = opts
	}
}

// WithContainerIdentifier sets the sync container the event adapter listens
// to. Without it the sync-event signal never leaves idle.
func WithContainerIdentifier(id string) Option {
	return func(c *config) {
		c.containerID = id
	}
}

// WithQuotaExceededHandler sets the callback fired (at most once per manager
// lifetime) when quota exhaustion is observed
func WithQuotaExceededHandler(h QuotaExceededHandler) Option {
	return func(c *config) {
		c.quotaHandler = h
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithShowEventInLog makes the manager log every raw sync notification
// payload verbatim, for diagnostics
func WithShowEventInLog(show bool) Option {
	return func(c *config) {
		c.showEventInLog = show
	}
}

// WithMetrics sets the telemetry instruments. Nil metrics are a no-op.
func WithMetrics(m *telemetry.MonitorMetrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithStreamBufferSize sets the per-subscriber stream buffer
func WithStreamBufferSize(n int) Option {
	return func(c *config) {
		c.streamBufferSize = n
	}
}

// WithAccountQuerier sets the account status collaborator
func WithAccountQuerier(q platform.AccountQuerier) Option {
	return func(c *config) {
		c.accountQuerier = q
	}
}

// WithPathMonitor sets the network path collaborator
func WithPathMonitor(p platform.PathMonitor) Option {
	return func(c *config) {
		c.pathMonitor = p
	}
}

// WithPowerStateSource sets the low-power-mode collaborator
func WithPowerStateSource(p platform.PowerStateSource) Option {
	return func(c *config) {
		c.powerSource = p
	}
}

// WithSyncEventSource sets the sync-engine notification collaborator
func WithSyncEventSource(s platform.SyncEventSource) Option {
	return func(c *config) {
		c.eventSource = s
	}
}

// WithUbiquityTokenSource sets the cloud-drive identity collaborator
func WithUbiquityTokenSource(s platform.UbiquityTokenSource) Option {
	return func(c *config) {
		c.tokenSource = s
	}
}

// newConfig applies options over the defaults
func newConfig(opts ...Option) *config {
	c := &config{
		monitoringOptions: status.MonitorDefault,
		streamBufferSize:  broadcast.DefaultBufferSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}
