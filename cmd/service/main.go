// Package main is the entry point for the motivational quotes service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http"
	"github.com/jsamuelsen/motivational-quotes/internal/adapters/http/handlers"
	"github.com/jsamuelsen/motivational-quotes/internal/app"
	"github.com/jsamuelsen/motivational-quotes/internal/domain"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/config"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/logging"
	"github.com/jsamuelsen/motivational-quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/motivational-quotes/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("source", cfg.Source.Kind),
		slog.String("permalink_policy", cfg.Navigation.PermalinkPolicy),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Open the configured quote source and register it as a health check
	source, err := openSource(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("opening %s quote source: %w", cfg.Source.Kind, err)
	}

	defer func() {
		if closeErr := source.close(); closeErr != nil {
			logger.Error("closing quote source", slog.Any("error", closeErr))
		}
	}()

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(source.checker); err != nil {
		return fmt.Errorf("registering quote source health check: %w", err)
	}

	// 6. Build the application layer
	resolver, err := domain.NewResolver(domain.PermalinkPolicy(cfg.Navigation.PermalinkPolicy))
	if err != nil {
		return fmt.Errorf("creating resolver: %w", err)
	}

	navMetrics, err := telemetry.NewNavigationMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering navigation metrics: %w", err)
	}

	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Source: source.source,
		Logger: logger,
	})

	navigators := app.NewNavigators(app.NavigatorsConfig{
		Navigator: app.NavigatorConfig{
			Service:    quoteService,
			Resolver:   resolver,
			Transition: cfg.Navigation.Transition,
			Recorder:   navMetrics,
		},
		TTL:    cfg.Navigation.SessionTTL,
		Logger: logger,
	})

	// 7. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime).
		WithQuoteSetup(cfg.Source.Kind, cfg.Navigation.PermalinkPolicy)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(handlers.QuoteHandlerConfig{
		Service:    quoteService,
		Navigators: navigators,
		Resolver:   resolver,
		RenderWait: cfg.Navigation.RenderWait,
		Logger:     logger,
	})

	// 8. Create HTTP server and routes
	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(logger, cfg, healthHandler, quoteHandler)
	if err := http.SetupRouter(server.Engine(), routerCfg); err != nil {
		return fmt.Errorf("setting up router: %w", err)
	}

	// 9. Run the server, the session sweeper and the file watcher until a
	// shutdown signal or the first failure.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error { return server.Run(gctx) })
	g.Go(func() error { return navigators.Run(gctx) })

	if source.watch != nil {
		g.Go(func() error { return source.watch(gctx) })
	}

	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
