// Package config provides configuration loading and management for the
// sync-environment daemon.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/driftlock/syncenv/internal/telemetry"
	"github.com/driftlock/syncenv/pkg/status"
)

// EnvPrefix is the prefix for the daemon's environment variables
const EnvPrefix = "SYNCENVD"

const (
	// DefaultAddress is the listen address used when none is configured
	DefaultAddress = ":8080"

	// DefaultNetworkPollInterval is how often the local path monitor
	// re-inspects the host interfaces when no interval is configured
	DefaultNetworkPollInterval = 5 * time.Second

	// DefaultTokenPollInterval is how often the local token source re-stats
	// the token file when no interval is configured
	DefaultTokenPollInterval = 30 * time.Second
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// Server holds the HTTP diagnostics endpoint settings
	Server ServerConfig `yaml:"server,omitempty"`

	// Monitor holds the status monitor settings
	Monitor MonitorConfig `yaml:"monitor"`

	// Sources holds the host-level signal source settings
	Sources SourcesConfig `yaml:"sources,omitempty"`

	// Telemetry holds the metrics exporter settings
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// ServerConfig defines the HTTP listener settings
type ServerConfig struct {
	// Address is the listen address in host:port form.
	// Defaults to ":8080" if not specified.
	Address string `yaml:"address,omitempty"`
}

// MonitorConfig defines which signals the daemon monitors and how
type MonitorConfig struct {
	// Options names the signal sources to activate. Valid names are
	// "network", "account", "syncEvent" and "cloudDrive". An empty list
	// selects the default set (network, account, syncEvent).
	Options []string `yaml:"options,omitempty"`

	// ContainerID is the sync container the event adapter listens to.
	// Required when syncEvent monitoring is selected.
	ContainerID string `yaml:"containerId,omitempty"`

	// ShowEventInLog makes the daemon log every raw sync notification
	ShowEventInLog bool `yaml:"showEventInLog,omitempty"`

	// StreamBufferSize is the per-subscriber stream buffer depth
	StreamBufferSize int `yaml:"streamBufferSize,omitempty"`

	// SnapshotPath is where the daemon persists the last observed
	// environment snapshot. Empty disables persistence.
	SnapshotPath string `yaml:"snapshotPath,omitempty"`
}

// SourcesConfig defines the host-level signal source settings
type SourcesConfig struct {
	// Network holds the local network path monitor settings
	Network *NetworkSourceConfig `yaml:"network,omitempty"`

	// Account holds the remote account probe settings
	Account *AccountSourceConfig `yaml:"account,omitempty"`

	// CloudDrive holds the identity token source settings
	CloudDrive *CloudDriveSourceConfig `yaml:"cloudDrive,omitempty"`
}

// NetworkSourceConfig defines the local interface poller settings
type NetworkSourceConfig struct {
	// PollInterval is how often the host interfaces are re-inspected
	// (e.g. "5s", "1m"). Defaults to 5s.
	PollInterval string `yaml:"pollInterval,omitempty"`
}

// AccountSourceConfig defines the remote account probe settings
type AccountSourceConfig struct {
	// Endpoint is the base URL of the account status endpoint
	Endpoint string `yaml:"endpoint"`

	// PollInterval is how often the endpoint is probed for change
	// notifications (e.g. "30s"). Defaults to 30s.
	PollInterval string `yaml:"pollInterval,omitempty"`
}

// CloudDriveSourceConfig defines the identity token source settings
type CloudDriveSourceConfig struct {
	// TokenPath is the filesystem path whose existence marks an active
	// cloud-drive identity token
	TokenPath string `yaml:"tokenPath"`

	// PollInterval is how often the token path is re-checked
	// (e.g. "30s"). Defaults to 30s.
	PollInterval string `yaml:"pollInterval,omitempty"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetAddress returns the listen address, using the default if not specified
func (c *Config) GetAddress() string {
	if c.Server.Address == "" {
		return DefaultAddress
	}
	return c.Server.Address
}

// MonitoringOptions parses the configured option names into the monitor's
// option set. An empty list yields the default set; unknown names are
// rejected.
func (c *Config) MonitoringOptions() (status.MonitoringOptions, error) {
	if len(c.Monitor.Options) == 0 {
		return status.MonitorDefault, nil
	}

	for _, name := range c.Monitor.Options {
		if status.ParseMonitoringOptions([]string{name}) == 0 {
			return 0, fmt.Errorf("unknown monitoring option %q", name)
		}
	}
	return status.ParseMonitoringOptions(c.Monitor.Options), nil
}

// NetworkPollInterval returns the configured network poll interval or the
// default
func (c *Config) NetworkPollInterval() time.Duration {
	if c.Sources.Network == nil || c.Sources.Network.PollInterval == "" {
		return DefaultNetworkPollInterval
	}
	d, err := time.ParseDuration(c.Sources.Network.PollInterval)
	if err != nil {
		return DefaultNetworkPollInterval
	}
	return d
}

// AccountPollInterval returns the configured account probe interval or the
// default
func (c *Config) AccountPollInterval() time.Duration {
	if c.Sources.Account == nil || c.Sources.Account.PollInterval == "" {
		return DefaultTokenPollInterval
	}
	d, err := time.ParseDuration(c.Sources.Account.PollInterval)
	if err != nil {
		return DefaultTokenPollInterval
	}
	return d
}

// CloudDrivePollInterval returns the configured token poll interval or the
// default
func (c *Config) CloudDrivePollInterval() time.Duration {
	if c.Sources.CloudDrive == nil || c.Sources.CloudDrive.PollInterval == "" {
		return DefaultTokenPollInterval
	}
	d, err := time.ParseDuration(c.Sources.CloudDrive.PollInterval)
	if err != nil {
		return DefaultTokenPollInterval
	}
	return d
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	opts, err := c.MonitoringOptions()
	if err != nil {
		return fmt.Errorf("monitor.options: %w", err)
	}

	if opts.Has(status.MonitorSyncEvent) && c.Monitor.ContainerID == "" {
		return fmt.Errorf("monitor.containerId is required when syncEvent monitoring is selected")
	}

	if c.Monitor.StreamBufferSize < 0 {
		return fmt.Errorf("monitor.streamBufferSize must not be negative")
	}

	return c.validateSources()
}

// validateSources validates the signal source configurations
func (c *Config) validateSources() error {
	if n := c.Sources.Network; n != nil && n.PollInterval != "" {
		if _, err := time.ParseDuration(n.PollInterval); err != nil {
			return fmt.Errorf("sources.network.pollInterval must be a valid duration (e.g. '5s'): %w", err)
		}
	}

	if a := c.Sources.Account; a != nil {
		if a.Endpoint == "" {
			return fmt.Errorf("sources.account.endpoint is required")
		}
		u, err := url.Parse(a.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("sources.account.endpoint must be an absolute URL, got %q", a.Endpoint)
		}
		if a.PollInterval != "" {
			if _, err := time.ParseDuration(a.PollInterval); err != nil {
				return fmt.Errorf("sources.account.pollInterval must be a valid duration (e.g. '30s'): %w", err)
			}
		}
	}

	if d := c.Sources.CloudDrive; d != nil {
		if d.TokenPath == "" {
			return fmt.Errorf("sources.cloudDrive.tokenPath is required")
		}
		if d.PollInterval != "" {
			if _, err := time.ParseDuration(d.PollInterval); err != nil {
				return fmt.Errorf("sources.cloudDrive.pollInterval must be a valid duration (e.g. '30s'): %w", err)
			}
		}
	}

	return nil
}
