package scrim

import (
	"context"
	"log/slog"

	"github.com/Black-And-White-Club/scrim-bot/app/modules/auth"
	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	scrimhandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/handlers"
	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	scrimrouter "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/router"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module wires the scrim registration and settings feature.
type Module struct {
	Service  scrimservice.Service
	handlers scrimhandlers.Handlers
	router   *scrimrouter.ScrimRouter
	logger   *slog.Logger
}

// Deps are the shared resources the module is built from.
type Deps struct {
	DB         *bun.DB
	Router     *message.Router
	Subscriber message.Subscriber
	Publisher  message.Publisher
	Logger     *slog.Logger
	Tracer     trace.Tracer
	Metrics    metrics.Operations
}

// NewScrimModule creates the scrim module and registers its event handlers.
func NewScrimModule(ctx context.Context, deps Deps) *Module {
	deps.Logger.InfoContext(ctx, "scrim.NewScrimModule called")

	repo := scrimdb.NewRepository(deps.DB)
	service := scrimservice.NewScrimService(repo, deps.Logger, deps.Metrics, deps.Tracer, deps.DB, nil)
	handlers := scrimhandlers.NewScrimHandlers(service, deps.Logger, deps.Tracer)

	router := scrimrouter.NewScrimRouter(deps.Logger, deps.Router, deps.Subscriber, deps.Publisher, deps.Tracer)
	router.RegisterHandlers(handlers)

	return &Module{
		Service:  service,
		handlers: handlers,
		router:   router,
		logger:   deps.Logger,
	}
}

// Mount registers the admin API routes on r, which already carries the
// viewer-level auth middleware.
func (m *Module) Mount(r chi.Router, authModule *auth.Module) {
	organizer := authModule.Require(authdomain.RoleOrganizer)
	admin := authModule.Require(authdomain.RoleAdmin)

	r.With(organizer).Post("/scrims", m.handlers.HandleHTTPCreateScrim)
	r.Get("/scrims/{scrimID}", m.handlers.HandleHTTPGetScrim)
	r.Get("/scrims/{scrimID}/teams", m.handlers.HandleHTTPListTeams)
	r.With(organizer).Post("/scrims/{scrimID}/teams/{slot}/confirm", m.handlers.HandleHTTPConfirmTeam)
	r.Get("/scrims/{scrimID}/scoring", m.handlers.HandleHTTPGetScoring)
	r.With(organizer).Put("/scrims/{scrimID}/scoring", m.handlers.HandleHTTPUpdateScoring)
	r.With(admin).Post("/guilds/{guildID}/bans", m.handlers.HandleHTTPBanUser)
	r.With(admin).Delete("/guilds/{guildID}/bans/{userID}", m.handlers.HandleHTTPUnbanUser)
}
