package resultshandlers

import (
	"context"
	"errors"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
)

// HandleManualResultsSubmit stores results typed into the Discord entry form.
func (h *ResultsHandlers) HandleManualResultsSubmit(ctx context.Context, payload *resultsevents.ManualResultsSubmitPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	entries := make([]resultsservice.ManualEntry, len(payload.Entries))
	for i, e := range payload.Entries {
		entries[i] = resultsservice.ManualEntry{Place: e.Place, TeamTag: e.TeamTag, Kills: e.Kills}
	}

	result, err := h.service.SubmitManualResults(ctx, resultsservice.ManualSubmission{
		ScrimID:   payload.ScrimID,
		Game:      payload.Game,
		EnteredBy: payload.EnteredBy,
		Entries:   entries,
	})
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic: resultsevents.ManualResultsFailedV1,
			Payload: &resultsevents.ManualResultsFailedPayloadV1{
				ScrimID: payload.ScrimID,
				Game:    payload.Game,
				Reason:  (*result.Failure).Error(),
			},
		}}, nil
	}

	return []handlerwrapper.Result{{
		Topic: resultsevents.ManualResultsSavedV1,
		Payload: &resultsevents.ManualResultsSavedPayloadV1{
			ScrimID: payload.ScrimID,
			Game:    payload.Game,
			Saved:   *result.Success,
		},
	}}, nil
}
