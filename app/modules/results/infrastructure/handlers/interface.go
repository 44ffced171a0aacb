package resultshandlers

import (
	"context"
	"net/http"

	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
)

// Handlers covers the results module's event and admin API handlers.
type Handlers interface {
	HandleMatchSessionBegin(ctx context.Context, payload *resultsevents.MatchSessionBeginPayloadV1) ([]handlerwrapper.Result, error)
	HandleMatchSessionImage(ctx context.Context, payload *resultsevents.MatchSessionImagePayloadV1) ([]handlerwrapper.Result, error)
	HandleMatchSessionFinish(ctx context.Context, payload *resultsevents.MatchSessionFinishPayloadV1) ([]handlerwrapper.Result, error)
	HandleManualResultsSubmit(ctx context.Context, payload *resultsevents.ManualResultsSubmitPayloadV1) ([]handlerwrapper.Result, error)

	HandleHTTPGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleHTTPExportLeaderboardXLSX(w http.ResponseWriter, r *http.Request)
	HandleHTTPLeaderboardChart(w http.ResponseWriter, r *http.Request)
	HandleHTTPSubmitManualResults(w http.ResponseWriter, r *http.Request)
	HandleHTTPSubmitScreenshots(w http.ResponseWriter, r *http.Request)
	HandleHTTPDeleteGame(w http.ResponseWriter, r *http.Request)
	HandleHTTPClearScrim(w http.ResponseWriter, r *http.Request)
}
