package results

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scrim-bot/app/modules/auth"
	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/adapters"
	resultshandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/handlers"
	resultsocr "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/ocr"
	resultsqueue "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/queue"
	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	resultsrouter "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/router"
	resultssessions "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/sessions"
	"github.com/Black-And-White-Club/scrim-bot/config"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module wires the match-result pipeline and leaderboard.
type Module struct {
	Service  resultsservice.Service
	handlers resultshandlers.Handlers
	router   *resultsrouter.ResultsRouter
	queue    *resultsqueue.Service
	redis    *resultssessions.RedisStore
	logger   *slog.Logger
}

// Deps are the shared resources the module is built from.
type Deps struct {
	Config     *config.Config
	DB         *bun.DB
	Router     *message.Router
	Subscriber message.Subscriber
	Publisher  message.Publisher
	// Events publishes the outcome of queued batches.
	Events   resultsqueue.EventPublisher
	Scrims   adapters.ScrimLookup
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  metrics.ResultsMetrics
	Detector resultsservice.TextDetector
}

// NewResultsModule creates the results module and registers its event
// handlers. A nil Detector selects the Cloud Vision client.
func NewResultsModule(ctx context.Context, deps Deps) (*Module, error) {
	deps.Logger.InfoContext(ctx, "results.NewResultsModule called")
	cfg := deps.Config

	detector := deps.Detector
	if detector == nil {
		vision, err := resultsocr.NewVisionClient(ctx, cfg.Vision, deps.Logger)
		if err != nil {
			return nil, fmt.Errorf("results module: %w", err)
		}
		detector = vision
	}

	m := &Module{logger: deps.Logger}
	opts := resultsservice.Options{}

	if cfg.Redis.URL != "" {
		store, err := resultssessions.NewRedisStore(ctx, cfg.Redis.URL, cfg.Redis.SessionTTL)
		if err != nil {
			return nil, fmt.Errorf("results module: %w", err)
		}
		m.redis = store
		opts.Sessions = store
	} else {
		opts.Sessions = resultssessions.NewMemoryStore(cfg.Redis.SessionTTL)
	}

	if cfg.Queue.Enabled {
		queue, err := resultsqueue.NewService(ctx, cfg.Database.DSN, cfg.Queue.MaxWorkers, deps.Events, deps.Logger, deps.Metrics)
		if err != nil {
			m.closeRedis()
			return nil, fmt.Errorf("results module: %w", err)
		}
		m.queue = queue
		opts.Queue = queue
	}

	service := resultsservice.NewResultsService(
		resultsdb.NewRepository(deps.DB),
		adapters.NewScrimDirectoryAdapter(deps.Scrims),
		detector,
		deps.Logger,
		deps.Metrics,
		deps.Tracer,
		deps.DB,
		opts,
	)
	if m.queue != nil {
		m.queue.Bind(service)
	}

	handlers := resultshandlers.NewResultsHandlers(service, deps.Logger, deps.Tracer)
	router := resultsrouter.NewResultsRouter(deps.Logger, deps.Router, deps.Subscriber, deps.Publisher, deps.Tracer)
	router.RegisterHandlers(handlers)

	m.Service = service
	m.handlers = handlers
	m.router = router
	return m, nil
}

// Start starts the background queue when one is configured.
func (m *Module) Start(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.Start(ctx)
}

// Close stops the queue and releases the session store.
func (m *Module) Close(ctx context.Context) error {
	var errs []error
	if m.queue != nil {
		errs = append(errs, m.queue.Stop(ctx))
	}
	errs = append(errs, m.closeRedis())
	return errors.Join(errs...)
}

func (m *Module) closeRedis() error {
	if m.redis == nil {
		return nil
	}
	return m.redis.Close()
}

// Mount registers the admin API routes on r, which already carries the
// viewer-level auth middleware.
func (m *Module) Mount(r chi.Router, authModule *auth.Module) {
	organizer := authModule.Require(authdomain.RoleOrganizer)

	r.Get("/scrims/{scrimID}/leaderboard", m.handlers.HandleHTTPGetLeaderboard)
	r.Get("/scrims/{scrimID}/leaderboard.xlsx", m.handlers.HandleHTTPExportLeaderboardXLSX)
	r.Get("/scrims/{scrimID}/leaderboard.png", m.handlers.HandleHTTPLeaderboardChart)
	r.With(organizer).Put("/scrims/{scrimID}/games/{game}/results", m.handlers.HandleHTTPSubmitManualResults)
	r.With(organizer).Delete("/scrims/{scrimID}/games/{game}/results", m.handlers.HandleHTTPDeleteGame)
	r.With(organizer).Post("/scrims/{scrimID}/games/{game}/ocr", m.handlers.HandleHTTPSubmitScreenshots)
	r.With(organizer).Delete("/scrims/{scrimID}/results", m.handlers.HandleHTTPClearScrim)
}
