package scrimrouter

import (
	"context"
	"log/slog"

	scrimhandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/handlers"
	scrimevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/scrim"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ScrimRouter handles routing for scrim module events.
type ScrimRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
}

// NewScrimRouter creates a new ScrimRouter.
func NewScrimRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
) *ScrimRouter {
	return &ScrimRouter{
		logger:     logger,
		Router:     router,
		subscriber: subscriber,
		publisher:  publisher,
		tracer:     tracer,
	}
}

type handlerDeps struct {
	router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	logger     *slog.Logger
	tracer     trace.Tracer
}

// registerHandler registers a typed handler whose results are routed by topic.
func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "scrim." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		handlerwrapper.NewTopicPublisher(deps.publisher),
		handlerwrapper.WrapTyped(handlerName, deps.logger, deps.tracer, handler),
	)
}

// RegisterHandlers registers the scrim event handlers on the shared router.
func (r *ScrimRouter) RegisterHandlers(handlers scrimhandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, scrimevents.TeamRegisterRequestedV1, handlers.HandleTeamRegisterRequested)
}
