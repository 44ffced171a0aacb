package resultshandlers

import (
	"fmt"
	"net/http"
	"strconv"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	resultsexport "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/export"
	"github.com/Black-And-White-Club/scrim-bot/internal/httpjson"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type manualResultsRequest struct {
	Entries []resultsservice.ManualEntry `json:"entries"`
}

type screenshotsRequest struct {
	ImageURLs []string `json:"image_urls"`
}

type deleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type savedResponse struct {
	Saved int `json:"saved"`
}

func gameParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	game, err := strconv.Atoi(chi.URLParam(r, "game"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "game must be a number")
		return 0, false
	}
	return game, true
}

// leaderboard loads the scrim's leaderboard, writing the error response
// itself when it cannot.
func (h *ResultsHandlers) leaderboard(w http.ResponseWriter, r *http.Request) (*resultsservice.Leaderboard, bool) {
	result, err := h.service.GetLeaderboard(r.Context(), chi.URLParam(r, "scrimID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return nil, false
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return nil, false
	}
	return *result.Success, true
}

// HandleHTTPGetLeaderboard handles GET /api/scrims/{scrimID}/leaderboard.
func (h *ResultsHandlers) HandleHTTPGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	lb, ok := h.leaderboard(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, lb)
}

// HandleHTTPExportLeaderboardXLSX handles GET /api/scrims/{scrimID}/leaderboard.xlsx.
func (h *ResultsHandlers) HandleHTTPExportLeaderboardXLSX(w http.ResponseWriter, r *http.Request) {
	lb, ok := h.leaderboard(w, r)
	if !ok {
		return
	}
	data, err := resultsexport.LeaderboardXLSX(lb)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="leaderboard-%s.xlsx"`, lb.ScrimID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleHTTPLeaderboardChart handles GET /api/scrims/{scrimID}/leaderboard.png.
func (h *ResultsHandlers) HandleHTTPLeaderboardChart(w http.ResponseWriter, r *http.Request) {
	lb, ok := h.leaderboard(w, r)
	if !ok {
		return
	}
	data, err := resultsexport.LeaderboardChart(lb, resultsexport.DefaultPalette)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleHTTPSubmitManualResults handles PUT /api/scrims/{scrimID}/games/{game}/results.
func (h *ResultsHandlers) HandleHTTPSubmitManualResults(w http.ResponseWriter, r *http.Request) {
	game, ok := gameParam(w, r)
	if !ok {
		return
	}
	var body manualResultsRequest
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req := resultsservice.ManualSubmission{
		ScrimID: chi.URLParam(r, "scrimID"),
		Game:    game,
		Entries: body.Entries,
	}
	if claims, ok := authdomain.ClaimsFromContext(r.Context()); ok {
		req.EnteredBy = claims.UserID
	}

	result, err := h.service.SubmitManualResults(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, savedResponse{Saved: *result.Success})
}

// HandleHTTPSubmitScreenshots handles POST /api/scrims/{scrimID}/games/{game}/ocr.
func (h *ResultsHandlers) HandleHTTPSubmitScreenshots(w http.ResponseWriter, r *http.Request) {
	game, ok := gameParam(w, r)
	if !ok {
		return
	}
	var body screenshotsRequest
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.SubmitBatch(r.Context(), resultsservice.BatchRequest{
		ScrimID: chi.URLParam(r, "scrimID"),
		Game:    game,
		Images:  body.ImageURLs,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}

	sub := *result.Success
	status := http.StatusOK
	if sub.Queued {
		status = http.StatusAccepted
	}
	httpjson.Write(w, status, sub)
}

// HandleHTTPDeleteGame handles DELETE /api/scrims/{scrimID}/games/{game}/results.
func (h *ResultsHandlers) HandleHTTPDeleteGame(w http.ResponseWriter, r *http.Request) {
	game, ok := gameParam(w, r)
	if !ok {
		return
	}
	result, err := h.service.DeleteGame(r.Context(), chi.URLParam(r, "scrimID"), game)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, deleteResponse{Deleted: *result.Success})
}

// HandleHTTPClearScrim handles DELETE /api/scrims/{scrimID}/results.
func (h *ResultsHandlers) HandleHTTPClearScrim(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ClearScrim(r.Context(), chi.URLParam(r, "scrimID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, deleteResponse{Deleted: *result.Success})
}
