package commands

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/questforge/questforge/internal/logger"
	"github.com/questforge/questforge/pkg/api"
	"github.com/questforge/questforge/pkg/config"
	"github.com/questforge/questforge/pkg/docstore"
	"github.com/questforge/questforge/pkg/health"
	"github.com/questforge/questforge/pkg/lifecycle"
	"github.com/questforge/questforge/pkg/metrics"
	"github.com/questforge/questforge/pkg/retry"
	"github.com/questforge/questforge/pkg/status"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the QuestForge API server",
	Long: `Start the QuestForge API server with the specified configuration.

The server proves connectivity to the document store before opening its
listener: credentials are validated, a connection test document is written
under the configured retry schedule, and the startup health check must pass.
Only then does the HTTP port bind and the service status get published.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/questforge/config.yaml.

Examples:
  # Start with default config
  questforge start

  # Start with custom config file
  questforge start --config /etc/questforge/config.yaml

  # Start with environment variable overrides
  QUESTFORGE_LOGGING_LEVEL=DEBUG questforge start`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()), "environment", cfg.Environment)

	// Initialize metrics (if enabled)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Credentials are validated before any network traffic; a missing bundle
	// fails here listing every absent field.
	store, err := docstore.NewS3Store(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to initialize document store: %w", err)
	}

	policy := retry.Policy{
		Attempts: cfg.Health.MaxRetries,
		Delay:    cfg.Health.RetryDelay,
	}

	// Prove store connectivity before anything else touches it
	if err := health.EnsureConnected(ctx, store, policy); err != nil {
		return fmt.Errorf("store connectivity check failed: %w", err)
	}
	logger.Info("Document store connected", "bucket", cfg.Store.Bucket)

	// Startup health gate: required settings, then a store write and a
	// collection listing under the retry schedule
	runner := health.NewRunner(store, policy, func() []string {
		return config.MissingRequired(cfg)
	})
	if err := runner.Run(ctx); err != nil {
		return fmt.Errorf("startup health check failed: %w", err)
	}

	publisher := status.NewPublisher(store, cfg.Environment)
	coordinator := lifecycle.NewCoordinator(publisher, cfg.ShutdownTimeout)

	// Metrics server (if enabled) runs on its own port for its whole life
	if metricsServer := metrics.NewServer(cfg.Metrics.Port); metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				coordinator.ReportAsync("metrics server", err)
			}
		}()
	}

	apiServer := api.NewServer(cfg.Server, api.RouterDeps{
		Store:       store,
		Version:     Version,
		Environment: cfg.Environment,
	})

	// Publish the service location once the socket is actually bound, never
	// before
	apiServer.OnListening = func(addr net.Addr) {
		ip := localIP()
		baseURL := cfg.Server.PublicURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://%s:%d", ip, apiServer.Port())
		}

		pubCtx, pubCancel := context.WithTimeout(ctx, 5*time.Second)
		defer pubCancel()

		if err := publisher.PublishServiceStatus(pubCtx, startupStatusDocument(apiServer.Port(), baseURL, ip)); err != nil {
			coordinator.ReportAsync("service status publish", err)
		}
		publisher.PublishAPIURL(pubCtx, baseURL, status.StatusStarted)

		logger.Info("Service status published", "url", baseURL, "instance_id", publisher.InstanceID())
	}

	// Shutdown order: stop accepting requests, then unwind the serve loop
	coordinator.OnStop("api server", apiServer.Stop)
	coordinator.OnStop("serve context", func(context.Context) error {
		cancel()
		return nil
	})

	go func() {
		defer func() {
			if r := recover(); r != nil {
				coordinator.HandleFault(fmt.Errorf("panic in API server: %v", r))
			}
		}()
		if err := apiServer.Start(ctx); err != nil {
			coordinator.HandleFault(err)
		}
	}()

	logger.Info("Server is running. Press Ctrl+C to stop.")

	// Blocks until SIGINT/SIGTERM, then the coordinator publishes the stopped
	// status and exits the process
	coordinator.WatchSignals(ctx)

	return nil
}

// startupStatusDocument builds the fields published to the service status
// document once the listener is bound: reachability (ip, port, url) plus the
// started marker.
func startupStatusDocument(port int, url, ip string) docstore.Document {
	return docstore.Document{
		"status": status.StatusStarted,
		"port":   port,
		"ip":     ip,
		"url":    url,
	}
}
