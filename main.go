package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/mediacaps/cmd"
	"github.com/smazurov/mediacaps/internal/api"
	"github.com/smazurov/mediacaps/internal/caps"
	"github.com/smazurov/mediacaps/internal/config"
	"github.com/smazurov/mediacaps/internal/dump"
	"github.com/smazurov/mediacaps/internal/events"
	"github.com/smazurov/mediacaps/internal/logging"
	"github.com/smazurov/mediacaps/internal/metrics"
	"github.com/smazurov/mediacaps/internal/sku"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"mediacaps.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8091" toml:"server.port" env:"SERVER_PORT"`

	// Capability settings
	OverridesFile string `help:"Feature flag override file (TOML or YAML)" default:"" toml:"caps.overrides_file" env:"CAPS_OVERRIDES_FILE"`

	// Dump settings
	DumpConfig string `help:"Diagnostic dump config file" default:"" toml:"dump.config_file" env:"DUMP_CONFIG_FILE"`
	DumpWatch  bool   `help:"Reload the dump config when it changes" default:"true" toml:"dump.watch" env:"DUMP_WATCH"`

	// Metrics settings
	MetricsEnabled bool `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username, empty disables auth" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel  string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCaps   string `help:"Capability logging level" default:"info" toml:"logging.caps" env:"LOGGING_CAPS"`
	LoggingDriver string `help:"Driver session logging level" default:"info" toml:"logging.driver" env:"LOGGING_DRIVER"`
	LoggingDump   string `help:"Dump logging level" default:"info" toml:"logging.dump" env:"LOGGING_DUMP"`
	LoggingAPI    string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		loggingConfig.Modules["caps"] = opts.LoggingCaps
		loggingConfig.Modules["driver"] = opts.LoggingDriver
		loggingConfig.Modules["dump"] = opts.LoggingDump
		loggingConfig.Modules["api"] = opts.LoggingAPI
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")

		registry := caps.NewRegistry(logging.GetLogger("caps"))
		if regErr := caps.RegisterBuiltins(registry); regErr != nil {
			logger.Error("Failed to register capabilities", "error", regErr)
			os.Exit(1)
		}

		var overrides sku.Overrides
		if opts.OverridesFile != "" {
			var loadErr error
			if overrides, loadErr = sku.LoadFile(opts.OverridesFile); loadErr != nil {
				logger.Error("Failed to load feature overrides", "error", loadErr)
				os.Exit(1)
			}
		}

		eventBus := events.New()

		var sink dump.Sink = dump.NopSink{}
		var fileSink *dump.FileSink
		if opts.DumpConfig != "" {
			dumpCfg, loadErr := dump.LoadConfig(opts.DumpConfig)
			if loadErr != nil {
				logger.Error("Failed to load dump config", "error", loadErr)
				os.Exit(1)
			}
			fileSink = dump.NewFileSink(dumpCfg, eventBus)
			sink = fileSink
		}

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Registry:     registry,
			Overrides:    overrides,
			Dump:         sink,
			EventBus:     eventBus,
		}

		var detachMetrics func()
		if opts.MetricsEnabled {
			collector := metrics.New()
			detachMetrics = collector.Attach(eventBus)
			apiOpts.PrometheusHandler = collector.Handler()
		}

		server := api.NewServer(apiOpts)

		ctx, cancel := context.WithCancel(context.Background())
		var stopWatch func() error

		hooks.OnStart(func() {
			if fileSink != nil && opts.DumpWatch {
				var watchErr error
				if stopWatch, watchErr = fileSink.Watch(ctx, opts.DumpConfig); watchErr != nil {
					logger.Warn("Failed to watch dump config", "error", watchErr)
				}
			}

			logger.Info("Starting HTTP server", "port", opts.Port)
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}
			if stopWatch != nil {
				if stopErr := stopWatch(); stopErr != nil {
					logger.Warn("Error stopping dump config watcher", "error", stopErr)
				}
			}
			cancel()
			if detachMetrics != nil {
				detachMetrics()
			}
		})
	})

	for _, c := range cmd.NewCommands() {
		cli.Root().AddCommand(c)
	}

	cli.Run()
}
