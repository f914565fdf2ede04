package main

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/spf13/cobra"

	"catascii-hq/catascii/pkg/art"
	"catascii-hq/catascii/pkg/cli"
	"catascii-hq/catascii/pkg/config"
	"catascii-hq/catascii/pkg/server"
	"catascii-hq/catascii/pkg/telemetry/health"
	"catascii-hq/catascii/pkg/telemetry/logging"
	"catascii-hq/catascii/pkg/telemetry/metrics"
	"catascii-hq/catascii/pkg/web/handlers"
)

var serveFlags struct {
	listenAddress string
	logLevel      string
	watch         bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. GET / answers with a freshly rendered cat.

The server runs until SIGINT or SIGTERM, then stops accepting connections
and waits for in-flight requests to finish.

Examples:
  # Start with defaults (0.0.0.0:5000)
  catascii serve

  # Override listen address and log level
  catascii serve --listen 127.0.0.1:8080 --log-level debug

  # Reload the log level whenever the config file changes
  catascii serve --config config.yaml --watch`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.listenAddress, "listen", "l", "", "override listen address")
	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVarP(&serveFlags.watch, "watch", "w", false, "watch the config file and apply log level changes")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServeOverrides(cfg); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Writer:    cmd.OutOrStdout(),
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	slog.SetDefault(logger.Slog())

	ctx, stop := cli.SignalContext(cmd.Context())
	defer stop()

	if err := serve(ctx, cfg, logger); err != nil {
		return cli.NewCommandError("serve", err)
	}
	return nil
}

// applyServeOverrides applies command flags and re-validates.
func applyServeOverrides(cfg *config.Config) error {
	if serveFlags.listenAddress != "" {
		cfg.Server.ListenAddress = serveFlags.listenAddress
	}
	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}
	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	return nil
}

// serve wires the pipeline, telemetry and server, and blocks until ctx is
// done or the server fails.
func serve(ctx context.Context, cfg *config.Config, logger *logging.Logger) error {
	log := logger.Slog()

	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)

	conv, err := newConverter(cfg)
	if err != nil {
		return err
	}
	client := art.NewClient(newClientConfig(cfg, collector), log)
	pipeline := art.NewPipeline(client, art.NewDecoder(cfg.Render.MaxPixels), conv)

	srv := server.New(&cfg.Server, handlers.NewArtHandler(pipeline, collector, log), log)

	prober := health.NewProber(health.ProberConfig{
		Schedule: cfg.Telemetry.Health.ProbeSchedule,
		Timeout:  cfg.CatAPI.Timeout,
		Probe: func(ctx context.Context) error {
			_, err := client.RandomImage(ctx)
			return err
		},
		Gauge:  collector,
		Logger: log,
	})
	if err := prober.Start(ctx); err != nil {
		return err
	}
	defer prober.Stop()

	if cfg.Telemetry.Metrics.Enabled {
		admin := metrics.NewMux(collector, cfg.Telemetry.Metrics.Path)
		admin.Handle("GET "+config.HealthPath, prober.StatusHandler())
		srv.SetAdmin(cfg.Telemetry.Metrics.ListenAddress, admin)
	}

	if serveFlags.watch {
		if err := startWatcher(ctx, cfg, logger); err != nil {
			return err
		}
	}

	return srv.Run(ctx)
}

// startWatcher reloads cfgFile on change and applies the new log level.
func startWatcher(ctx context.Context, current *config.Config, logger *logging.Logger) error {
	if cfgFile == "" {
		logger.Slog().Warn("--watch ignored: no config file given")
		return nil
	}

	watcher, err := config.NewWatcher(cfgFile, config.DefaultDebounceInterval, logger.Slog())
	if err != nil {
		return err
	}

	go func() {
		if err := watcher.Watch(ctx, onReload(current, logger)); err != nil {
			logger.Slog().Error("config watcher failed", "error", err)
		}
	}()
	return nil
}

// onReload applies the reloaded log level. Every other setting needs a
// restart, which is logged.
func onReload(current *config.Config, logger *logging.Logger) func(*config.Config) {
	return func(next *config.Config) {
		log := logger.Slog()

		if serveFlags.listenAddress != "" {
			next.Server.ListenAddress = serveFlags.listenAddress
		}
		if serveFlags.logLevel != "" {
			next.Telemetry.Logging.Level = serveFlags.logLevel
		}

		if err := logger.SetLevel(next.Telemetry.Logging.Level); err != nil {
			log.Error("reloaded log level rejected", "error", err)
			return
		}
		log.Info("log level applied", "level", logger.Level().String())

		if restartRequired(current, next) {
			log.Warn("configuration changed; restart required to apply settings other than the log level")
		}
	}
}

func restartRequired(current, next *config.Config) bool {
	a, b := *current, *next
	a.Telemetry.Logging.Level = ""
	b.Telemetry.Logging.Level = ""
	return !reflect.DeepEqual(a, b)
}
