package scrimhandlers

import (
	"context"
	"net/http"

	scrimevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/scrim"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
)

// Handlers covers the scrim module's event and admin API handlers.
type Handlers interface {
	HandleTeamRegisterRequested(ctx context.Context, payload *scrimevents.TeamRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error)

	HandleHTTPCreateScrim(w http.ResponseWriter, r *http.Request)
	HandleHTTPGetScrim(w http.ResponseWriter, r *http.Request)
	HandleHTTPListTeams(w http.ResponseWriter, r *http.Request)
	HandleHTTPConfirmTeam(w http.ResponseWriter, r *http.Request)
	HandleHTTPGetScoring(w http.ResponseWriter, r *http.Request)
	HandleHTTPUpdateScoring(w http.ResponseWriter, r *http.Request)
	HandleHTTPBanUser(w http.ResponseWriter, r *http.Request)
	HandleHTTPUnbanUser(w http.ResponseWriter, r *http.Request)
}
