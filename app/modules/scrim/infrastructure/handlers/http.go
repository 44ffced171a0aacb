package scrimhandlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	"github.com/Black-And-White-Club/scrim-bot/internal/httpjson"
	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"
)

type teamsResponse struct {
	ScrimID string               `json:"scrim_id"`
	Teams   []resultsdomain.Team `json:"teams"`
}

// HandleHTTPCreateScrim handles POST /api/scrims.
func (h *ScrimHandlers) HandleHTTPCreateScrim(w http.ResponseWriter, r *http.Request) {
	var req scrimservice.CreateScrimRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.CreateScrim(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusCreated, *result.Success)
}

// HandleHTTPGetScrim handles GET /api/scrims/{scrimID}.
func (h *ScrimHandlers) HandleHTTPGetScrim(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetScrim(r.Context(), chi.URLParam(r, "scrimID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, *result.Success)
}

// HandleHTTPListTeams handles GET /api/scrims/{scrimID}/teams.
func (h *ScrimHandlers) HandleHTTPListTeams(w http.ResponseWriter, r *http.Request) {
	scrimID := chi.URLParam(r, "scrimID")
	result, err := h.service.ListTeams(r.Context(), scrimID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}

	resp := teamsResponse{ScrimID: scrimID, Teams: make([]resultsdomain.Team, 0, len(*result.Success))}
	for _, t := range *result.Success {
		resp.Teams = append(resp.Teams, t.ToDomain())
	}
	httpjson.Write(w, http.StatusOK, resp)
}

// HandleHTTPConfirmTeam handles POST /api/scrims/{scrimID}/teams/{slot}/confirm.
func (h *ScrimHandlers) HandleHTTPConfirmTeam(w http.ResponseWriter, r *http.Request) {
	slot, err := strconv.Atoi(chi.URLParam(r, "slot"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "slot must be a number")
		return
	}

	result, err := h.service.ConfirmTeam(r.Context(), chi.URLParam(r, "scrimID"), slot)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleHTTPGetScoring handles GET /api/scrims/{scrimID}/scoring.
func (h *ScrimHandlers) HandleHTTPGetScoring(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.GetScoringConfig(r.Context(), chi.URLParam(r, "scrimID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, *result.Success)
}

// HandleHTTPUpdateScoring handles PUT /api/scrims/{scrimID}/scoring. The body
// is read like a stored config: omitted or unusable fields take their defaults
// and out of range values are clamped. The stored table is echoed back.
func (h *ScrimHandlers) HandleHTTPUpdateScoring(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := httpjson.Decode(r, &raw); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if !gjson.ParseBytes(raw).IsObject() {
		httpjson.Error(w, http.StatusBadRequest, "scoring config must be a JSON object")
		return
	}
	cfg := resultsdomain.LoadScoringConfig(raw)

	result, err := h.service.UpdateScoringConfig(r.Context(), chi.URLParam(r, "scrimID"), cfg)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusOK, *result.Success)
}

type banRequest struct {
	UserID    string     `json:"user_id"`
	Reason    string     `json:"reason"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// HandleHTTPBanUser handles POST /api/guilds/{guildID}/bans. The acting staff
// member is recorded as the issuer.
func (h *ScrimHandlers) HandleHTTPBanUser(w http.ResponseWriter, r *http.Request) {
	var body banRequest
	if err := httpjson.Decode(r, &body); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	req := scrimservice.BanRequest{
		GuildID:   chi.URLParam(r, "guildID"),
		UserID:    body.UserID,
		Reason:    body.Reason,
		ExpiresAt: body.ExpiresAt,
	}
	if claims, ok := authdomain.ClaimsFromContext(r.Context()); ok {
		req.BannedBy = claims.UserID
	}

	result, err := h.service.BanUser(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	httpjson.Write(w, http.StatusCreated, *result.Success)
}

// HandleHTTPUnbanUser handles DELETE /api/guilds/{guildID}/bans/{userID}.
func (h *ScrimHandlers) HandleHTTPUnbanUser(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.UnbanUser(r.Context(), chi.URLParam(r, "guildID"), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsFailure() {
		httpjson.Error(w, failureStatus(*result.Failure), (*result.Failure).Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
