package resultsrouter

import (
	"context"
	"log/slog"

	resultshandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/handlers"
	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// ResultsRouter handles routing for results module events.
type ResultsRouter struct {
	logger     *slog.Logger
	Router     *message.Router
	subscriber message.Subscriber
	publisher  message.Publisher
	tracer     trace.Tracer
}

// NewResultsRouter creates a new ResultsRouter.
func NewResultsRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	tracer trace.Tracer,
) *ResultsRouter {
	return &ResultsRouter{
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

func registerHandler[T any](
	deps handlerDeps,
	topic string,
	handler func(context.Context, *T) ([]handlerwrapper.Result, error),
) {
	handlerName := "results." + topic

	deps.router.AddHandler(
		handlerName,
		topic,
		deps.subscriber,
		"",
		handlerwrapper.NewTopicPublisher(deps.publisher),
		handlerwrapper.WrapTyped(handlerName, deps.logger, deps.tracer, handler),
	)
}

// RegisterHandlers registers the session and manual-entry handlers.
func (r *ResultsRouter) RegisterHandlers(handlers resultshandlers.Handlers) {
	deps := handlerDeps{
		router:     r.Router,
		subscriber: r.subscriber,
		publisher:  r.publisher,
		logger:     r.logger,
		tracer:     r.tracer,
	}

	registerHandler(deps, resultsevents.MatchSessionBeginV1, handlers.HandleMatchSessionBegin)
	registerHandler(deps, resultsevents.MatchSessionImageV1, handlers.HandleMatchSessionImage)
	registerHandler(deps, resultsevents.MatchSessionFinishV1, handlers.HandleMatchSessionFinish)
	registerHandler(deps, resultsevents.ManualResultsSubmitV1, handlers.HandleManualResultsSubmit)
}
