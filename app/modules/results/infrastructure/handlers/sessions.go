package resultshandlers

import (
	"context"
	"errors"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
)

func sessionFailed(channelID string, err error) []handlerwrapper.Result {
	return []handlerwrapper.Result{{
		Topic: resultsevents.MatchSessionFailedV1,
		Payload: &resultsevents.MatchSessionFailedPayloadV1{
			ChannelID: channelID,
			Reason:    err.Error(),
		},
	}}
}

// HandleMatchSessionBegin opens a screenshot session in a channel.
func (h *ResultsHandlers) HandleMatchSessionBegin(ctx context.Context, payload *resultsevents.MatchSessionBeginPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.BeginSession(ctx, payload.ChannelID, payload.ScrimID, payload.Game)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return sessionFailed(payload.ChannelID, *result.Failure), nil
	}
	return nil, nil
}

// HandleMatchSessionImage adds a posted screenshot to the channel's session.
func (h *ResultsHandlers) HandleMatchSessionImage(ctx context.Context, payload *resultsevents.MatchSessionImagePayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.CollectImage(ctx, payload.ChannelID, payload.ImageURL)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return sessionFailed(payload.ChannelID, *result.Failure), nil
	}
	return nil, nil
}

// HandleMatchSessionFinish closes the session and submits its screenshots.
func (h *ResultsHandlers) HandleMatchSessionFinish(ctx context.Context, payload *resultsevents.MatchSessionFinishPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.FinishSession(ctx, payload.ChannelID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return sessionFailed(payload.ChannelID, *result.Failure), nil
	}

	finished := *result.Success
	return []handlerwrapper.Result{{
		Topic:   resultsevents.ResultsProcessedV1,
		Payload: processedPayload(finished.ChannelID, finished.Session.ScrimID, finished.Session.Game, len(finished.Session.Images), finished.Submission),
	}}, nil
}

func processedPayload(channelID, scrimID string, game, images int, sub resultsservice.BatchSubmission) *resultsevents.ResultsProcessedPayloadV1 {
	p := &resultsevents.ResultsProcessedPayloadV1{
		ChannelID: channelID,
		ScrimID:   scrimID,
		Game:      game,
		BatchID:   sub.BatchID,
		Queued:    sub.Queued,
		Images:    images,
	}
	if sub.Report != nil {
		p.RowsWritten = sub.Report.RowsWritten
		p.FailedImages = sub.Report.FailedImages()
	}
	return p
}
