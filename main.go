package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2/humacli"

	"github.com/smazurov/relaycoder/cmd"
	"github.com/smazurov/relaycoder/internal/api"
	"github.com/smazurov/relaycoder/internal/config"
	"github.com/smazurov/relaycoder/internal/events"
	"github.com/smazurov/relaycoder/internal/logging"
	"github.com/smazurov/relaycoder/internal/metrics"
	"github.com/smazurov/relaycoder/internal/metrics/exporters"
	"github.com/smazurov/relaycoder/internal/sources/network"
	"github.com/smazurov/relaycoder/internal/store"
	"github.com/smazurov/relaycoder/internal/types"
	"github.com/smazurov/relaycoder/internal/version"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`

	// Store settings
	StoreFile string `help:"Channel and publication store" default:"relaycoder.toml" toml:"store.file" env:"STORE_FILE"`

	// Engine settings
	SkillsFile string `help:"Engine skills file, watched for changes" default:"skills.toml" toml:"engine.skills_file" env:"ENGINE_SKILLS_FILE"`

	// Ingest settings
	ServerConfigFile string `help:"Ingest server addresses, watched for changes" default:"" toml:"ingest.server_config" env:"INGEST_SERVER_CONFIG"`

	// Metrics settings
	MetricsEnabled bool `help:"Serve Prometheus metrics at /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Auth settings
	AuthUsername string `help:"Basic auth username" default:"admin" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"password" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Logging settings
	LoggingLevel       string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat      string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingAPI         string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingPublication string `help:"Publication logging level" default:"info" toml:"logging.publication" env:"LOGGING_PUBLICATION"`
	LoggingConfig      string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
	LoggingHTTP        string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
}

func main() {
	var cli humacli.CLI

	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		// Load configuration automatically
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		// Initialize logging system. Modules configured only in the file keep
		// their level.
		loggingConfig := config.LoadLoggingConfig(opts.Config)
		loggingConfig.Level = opts.LoggingLevel
		loggingConfig.Format = opts.LoggingFormat
		loggingConfig.Modules["api"] = opts.LoggingAPI
		loggingConfig.Modules["publication"] = opts.LoggingPublication
		loggingConfig.Modules["config"] = opts.LoggingConfig
		loggingConfig.Modules["http"] = opts.LoggingHTTP
		logging.Initialize(loggingConfig)

		logger := logging.GetLogger("main")
		logger.Info("Starting relaycoder", "version", version.String())

		// Create event bus for in-process event handling
		eventBus := events.New()
		logging.OnEntry(api.LogEntryPublisher(eventBus))

		backend := store.NewTOML(opts.StoreFile)
		if loadErr := backend.Load(); loadErr != nil {
			logger.Warn("Failed to load store", "file", opts.StoreFile, "error", loadErr)
		}

		serverConfig, cfgErr := config.LoadServerConfig(opts.ServerConfigFile)
		if cfgErr != nil {
			logger.Warn("Failed to load server config, using defaults", "error", cfgErr)
		}

		applySkills := func(skills types.Skills) {
			compatible, checkErr := version.CheckFFmpeg(skills.FFmpeg.Version)
			if checkErr != nil {
				logger.Warn("Failed to check FFmpeg version", "version", skills.FFmpeg.Version, "error", checkErr)
			} else if !compatible {
				logger.Warn("Unsupported FFmpeg version", "version", skills.FFmpeg.Version, "supported", version.Get().FFmpeg)
			}

			if setErr := backend.SetSkills(skills); setErr != nil {
				logger.Error("Failed to store engine skills", "error", setErr)
				return
			}
			metrics.SetEngineSkills(skills, compatible)
			eventBus.Publish(events.SkillsReloadedEvent{
				FFmpegVersion: skills.FFmpeg.Version,
				Compatible:    compatible,
				Timestamp:     time.Now().Format(time.RFC3339),
			})
			logger.Info("Engine skills applied", "ffmpeg", skills.FFmpeg.Version, "compatible", compatible)
		}

		if skills, loadErr := config.LoadSkills(opts.SkillsFile); loadErr != nil {
			logger.Warn("Failed to load engine skills, keeping stored skills", "file", opts.SkillsFile, "error", loadErr)
		} else {
			applySkills(skills)
		}

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			Backend:      backend,
			EventBus:     eventBus,
			ServerConfig: serverConfig,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}

		server := api.NewServer(apiOpts)

		configLogger := logging.GetLogger("config")
		skillsWatcher := config.NewConfigWatcher(opts.SkillsFile, config.LoadSkills, configLogger,
			config.WithErrorHandler[types.Skills](func(err error) {
				logger.Warn("Engine skills reload failed, keeping previous skills", "error", err)
			}),
		)
		skillsWatcher.OnReload(applySkills)

		var serverConfigWatcher *config.Watcher[network.ServerConfig]
		if opts.ServerConfigFile != "" {
			serverConfigWatcher = config.NewConfigWatcher(opts.ServerConfigFile, config.LoadServerConfig, configLogger)
			serverConfigWatcher.OnReload(func(cfg network.ServerConfig) {
				server.SetServerConfig(cfg)
				logger.Info("Ingest server config reloaded", "rtmp", cfg.RTMP.Host, "hls", cfg.HLS.Host)
			})
		}

		hooks.OnStart(func() {
			if startErr := skillsWatcher.Start(); startErr != nil {
				logger.Warn("Failed to watch engine skills", "file", opts.SkillsFile, "error", startErr)
			}
			if serverConfigWatcher != nil {
				if startErr := serverConfigWatcher.Start(); startErr != nil {
					logger.Warn("Failed to watch server config", "file", opts.ServerConfigFile, "error", startErr)
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
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if stopErr := server.Stop(ctx); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			if stopErr := skillsWatcher.Stop(); stopErr != nil {
				logger.Warn("Error stopping skills watcher", "error", stopErr)
			}
			if serverConfigWatcher != nil {
				if stopErr := serverConfigWatcher.Stop(); stopErr != nil {
					logger.Warn("Error stopping server config watcher", "error", stopErr)
				}
			}
		})
	})

	cli.Root().AddCommand(cmd.CreateServicesCmd())
	cli.Root().AddCommand(cmd.CreateEncodersCmd())
	cli.Root().AddCommand(cmd.CreateInputsCmd())
	cli.Root().AddCommand(cmd.CreatePublishCmd())

	// Run the CLI
	cli.Run()
}
