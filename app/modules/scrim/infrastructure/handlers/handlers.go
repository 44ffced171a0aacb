package scrimhandlers

import (
	"errors"
	"log/slog"
	"net/http"

	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	"github.com/Black-And-White-Club/scrim-bot/internal/httpjson"
	"go.opentelemetry.io/otel/trace"
)

// ScrimHandlers implements the Handlers interface.
type ScrimHandlers struct {
	service scrimservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewScrimHandlers creates a new ScrimHandlers instance.
func NewScrimHandlers(service scrimservice.Service, logger *slog.Logger, tracer trace.Tracer) *ScrimHandlers {
	return &ScrimHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}

// failureStatus maps a business failure to its HTTP status.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, scrimservice.ErrScrimNotFound),
		errors.Is(err, scrimservice.ErrTeamNotFound),
		errors.Is(err, scrimservice.ErrBanNotFound):
		return http.StatusNotFound
	case errors.Is(err, scrimservice.ErrSlotTaken),
		errors.Is(err, scrimservice.ErrOwnerHasTeam),
		errors.Is(err, scrimservice.ErrTagTaken),
		errors.Is(err, scrimservice.ErrRegistrationClosed):
		return http.StatusConflict
	case errors.Is(err, scrimservice.ErrOwnerBanned):
		return http.StatusForbidden
	default:
		return http.StatusUnprocessableEntity
	}
}

func (h *ScrimHandlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "Admin API request failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	httpjson.Error(w, http.StatusInternalServerError, "internal error")
}
