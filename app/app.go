// Package app composes the modules into the running service.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/scrim-bot/app/eventbus"
	"github.com/Black-And-White-Club/scrim-bot/app/modules/auth"
	"github.com/Black-And-White-Club/scrim-bot/app/modules/results"
	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/Black-And-White-Club/scrim-bot/app/modules/scrim"
	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/db/bundb"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/ThreeDotsLabs/watermill"
	wmmetrics "github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

const metricsNamespace = "scrim_bot"

// App holds the process-wide resources and the feature modules.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	EventBus *eventbus.EventBus
	Router   *message.Router
	Registry *prometheus.Registry

	Auth    *auth.Module
	Scrim   *scrim.Module
	Results *results.Module

	tracer trace.Tracer
	server *http.Server
}

// Options overrides collaborators, mainly for tests.
type Options struct {
	Logger   *slog.Logger
	Detector resultsservice.TextDetector
}

// NewApp connects the database and event bus, runs migrations and builds the
// modules. Nothing is served until Run is called.
func NewApp(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = observability.Init(cfg.Observability.LogLevel)
	}

	app := &App{
		Config:   cfg,
		Logger:   logger,
		Registry: prometheus.NewRegistry(),
		tracer:   observability.Tracer(),
	}

	if err := app.setup(ctx, opts); err != nil {
		_ = app.Close(ctx)
		return nil, err
	}
	return app, nil
}

func (app *App) setup(ctx context.Context, opts Options) error {
	cfg := app.Config
	logger := app.Logger

	db, err := bundb.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = db

	if err := bundb.MigrateAll(ctx, db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	bus, err := eventbus.New(eventbus.Config{
		URL:        cfg.NATS.URL,
		NKeySeed:   cfg.NATS.NKeySeed,
		QueueGroup: cfg.NATS.QueueGroup,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to create event bus: %w", err)
	}
	app.EventBus = bus

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			Logger:          watermill.NewSlogLogger(logger),
		}.Middleware,
		middleware.Recoverer,
	)
	if !cfg.IsTest() {
		wmmetrics.NewPrometheusMetricsBuilder(app.Registry, metricsNamespace, "events").AddPrometheusRouterMetrics(router)
	}
	app.Router = router

	serviceMetrics, err := metrics.NewPrometheus(app.Registry, metricsNamespace)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	authModule, err := auth.NewModule(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create auth module: %w", err)
	}
	app.Auth = authModule

	app.Scrim = scrim.NewScrimModule(ctx, scrim.Deps{
		DB:         db,
		Router:     router,
		Subscriber: bus.Subscriber(),
		Publisher:  bus.Publisher(),
		Logger:     logger,
		Tracer:     app.tracer,
		Metrics:    serviceMetrics,
	})

	resultsModule, err := results.NewResultsModule(ctx, results.Deps{
		Config:     cfg,
		DB:         db,
		Router:     router,
		Subscriber: bus.Subscriber(),
		Publisher:  bus.Publisher(),
		Events:     bus,
		Scrims:     app.Scrim.Service,
		Logger:     logger,
		Tracer:     app.tracer,
		Metrics:    serviceMetrics,
		Detector:   opts.Detector,
	})
	if err != nil {
		return fmt.Errorf("failed to create results module: %w", err)
	}
	app.Results = resultsModule

	app.server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           app.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.InfoContext(ctx, "Application initialized",
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("nats", cfg.NATS.URL != ""),
		slog.Bool("redis_sessions", cfg.Redis.URL != ""),
		slog.Bool("queue", cfg.Queue.Enabled),
	)
	return nil
}
