package scrimhandlers

import (
	"context"
	"errors"

	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	scrimevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/scrim"
	"github.com/Black-And-White-Club/scrim-bot/pkg/handlerwrapper"
)

// HandleTeamRegisterRequested handles a registration submitted from Discord.
func (h *ScrimHandlers) HandleTeamRegisterRequested(ctx context.Context, payload *scrimevents.TeamRegisterRequestedPayloadV1) ([]handlerwrapper.Result, error) {
	if payload == nil {
		return nil, errors.New("payload cannot be nil")
	}

	result, err := h.service.RegisterTeam(ctx, scrimservice.RegisterTeamRequest{
		ScrimID: payload.ScrimID,
		Tag:     payload.Tag,
		Name:    payload.Name,
		Slot:    payload.Slot,
		OwnerID: payload.OwnerID,
	})
	if err != nil {
		return nil, err
	}

	if result.IsFailure() {
		return []handlerwrapper.Result{{
			Topic: scrimevents.TeamRegisterFailedV1,
			Payload: &scrimevents.TeamRegisterFailedPayloadV1{
				ScrimID: payload.ScrimID,
				Slot:    payload.Slot,
				OwnerID: payload.OwnerID,
				Reason:  (*result.Failure).Error(),
			},
		}}, nil
	}

	team := *result.Success
	return []handlerwrapper.Result{{
		Topic: scrimevents.TeamRegisteredV1,
		Payload: &scrimevents.TeamRegisteredPayloadV1{
			ScrimID: team.ScrimID,
			Tag:     team.Tag,
			Name:    team.Name,
			Slot:    team.Slot,
			OwnerID: team.OwnerID,
		},
	}}, nil
}
