package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/driftlock/syncenv/internal/api"
	"github.com/driftlock/syncenv/internal/config"
	"github.com/driftlock/syncenv/internal/telemetry"
	"github.com/driftlock/syncenv/pkg/monitor"
	"github.com/driftlock/syncenv/pkg/platform/local"
	"github.com/driftlock/syncenv/pkg/status"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync-environment daemon",
	Long: `Start the daemon: activate the configured signal monitors and serve
the composed environment status over HTTP.

The configuration file (--config) selects which signals to monitor, the
host-level signal sources and the telemetry settings.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverReadTimeout      = 10 * time.Second
	// The wait endpoint may legitimately hold a response for minutes, so the
	// write timeout must exceed its cap.
	serverWriteTimeout = 6 * time.Minute
	serverIdleTimeout  = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", config.DefaultAddress, "Address to listen on")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		slog.Error("Failed to bind address flag", "error", err)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		slog.Error("Failed to bind config flag", "error", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
	}
}

// buildMonitor assembles the status monitor from the daemon configuration,
// wiring the host-level signal sources for every section present
func buildMonitor(cfg *config.Config, metrics *telemetry.MonitorMetrics, logger *slog.Logger) (*monitor.Manager, error) {
	monOpts, err := cfg.MonitoringOptions()
	if err != nil {
		return nil, err
	}

	opts := []monitor.Option{
		monitor.WithMonitoringOptions(monOpts),
		monitor.WithLogger(logger),
		monitor.WithMetrics(metrics),
		monitor.WithShowEventInLog(cfg.Monitor.ShowEventInLog),
		monitor.WithQuotaExceededHandler(func() {
			logger.Warn("cloud storage quota exceeded, sync uploads will fail until space is freed")
		}),
	}

	if cfg.Monitor.ContainerID != "" {
		opts = append(opts, monitor.WithContainerIdentifier(cfg.Monitor.ContainerID))
	}
	if cfg.Monitor.StreamBufferSize > 0 {
		opts = append(opts, monitor.WithStreamBufferSize(cfg.Monitor.StreamBufferSize))
	}

	if monOpts.Has(status.MonitorNetwork) {
		pathMonitor := local.NewInterfacePathMonitor(cfg.NetworkPollInterval(), logger)
		opts = append(opts, monitor.WithPathMonitor(pathMonitor))
	}
	if monOpts.Has(status.MonitorAccount) && cfg.Sources.Account != nil {
		querier := local.NewHTTPAccountQuerier(cfg.Sources.Account.Endpoint, cfg.AccountPollInterval(), logger)
		opts = append(opts, monitor.WithAccountQuerier(querier))
	}
	if monOpts.Has(status.MonitorCloudDrive) && cfg.Sources.CloudDrive != nil {
		tokens := local.NewFileTokenSource(cfg.Sources.CloudDrive.TokenPath, cfg.CloudDrivePollInterval(), logger)
		opts = append(opts, monitor.WithUbiquityTokenSource(tokens))
	}

	return monitor.New(opts...), nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.Default()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	address := cfg.GetAddress()
	if cmd.Flags().Changed("address") {
		address = viper.GetString("address")
	}

	logger.Info("Starting sync-environment daemon",
		"config", configPath,
		"address", address)

	// Telemetry: a Prometheus registry backs both the meter provider and the
	// /metrics endpoint.
	registry := promclient.NewRegistry()
	provider, err := telemetry.NewMeterProvider(
		telemetry.WithTelemetryConfig(cfg.Telemetry),
		telemetry.WithPrometheusRegistry(registry),
	)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}
	defer func() {
		if shutdowner, ok := provider.(interface{ Shutdown(context.Context) error }); ok {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdowner.Shutdown(shutdownCtx); err != nil {
				logger.Error("Failed to shut down meter provider", "error", err)
			}
		}
	}()

	metrics, err := telemetry.NewMonitorMetrics(provider)
	if err != nil {
		return fmt.Errorf("failed to create monitor metrics: %w", err)
	}

	mgr, err := buildMonitor(cfg, metrics, logger)
	if err != nil {
		return fmt.Errorf("failed to build monitor: %w", err)
	}
	defer mgr.Close()

	if err := mgr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start monitor: %w", err)
	}

	if cfg.Monitor.SnapshotPath != "" {
		persistence := status.NewFileSnapshotPersistence(cfg.Monitor.SnapshotPath)
		if snap, err := persistence.LoadSnapshot(ctx); err != nil {
			logger.Warn("Failed to load environment snapshot", "error", err)
		} else if !snap.ObservedAt.IsZero() {
			logger.Info("Loaded last-known environment snapshot",
				"observedAt", snap.ObservedAt,
				"syncReady", snap.Environment.IsSyncReady())
		}

		notifier := monitor.NewNotifier(mgr)
		removeObserver := notifier.OnEnvironmentStatusChange(func(env status.EnvironmentStatus) {
			snap := &status.Snapshot{Environment: env, ObservedAt: time.Now().UTC()}
			if err := persistence.SaveSnapshot(context.Background(), snap); err != nil {
				logger.Error("Failed to persist environment snapshot", "error", err)
			}
		})
		defer removeObserver()
	}

	serverOpts := []api.ServerOption{
		api.WithMiddlewares(
			middleware.RealIP,
			middleware.Recoverer,
			api.LoggingMiddleware(logger),
		),
	}
	if cfg.Telemetry != nil && cfg.Telemetry.Enabled {
		serverOpts = append(serverOpts, api.WithPrometheusRegistry(registry))
	}

	server := &http.Server{
		Addr:         address,
		Handler:      api.NewServer(mgr, serverOpts...),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("Server shutdown complete")
	return nil
}
