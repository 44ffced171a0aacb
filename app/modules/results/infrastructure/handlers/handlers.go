package resultshandlers

import (
	"errors"
	"log/slog"
	"net/http"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/Black-And-White-Club/scrim-bot/internal/httpjson"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"go.opentelemetry.io/otel/trace"
)

// ResultsHandlers implements the Handlers interface.
type ResultsHandlers struct {
	service resultsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewResultsHandlers creates a new ResultsHandlers instance.
func NewResultsHandlers(service resultsservice.Service, logger *slog.Logger, tracer trace.Tracer) *ResultsHandlers {
	return &ResultsHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

func failureStatus(err error) int {
	switch {
	case errors.Is(err, resultsservice.ErrScrimNotFound),
		errors.Is(err, resultsservice.ErrNoResults):
		return http.StatusNotFound
	case errors.Is(err, resultsdomain.ErrNoSession):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *ResultsHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Admin API request failed",
		attr.String("path", r.URL.Path),
		attr.Error(err),
	)
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
