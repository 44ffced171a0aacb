package scrimservice

import (
	"context"
	"errors"
	"strings"

	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/google/uuid"
)

const (
	defaultMinSlot = 1
	defaultMaxSlot = 25
)

// CreateScrim validates and stores a new scrim.
func (s *ScrimService) CreateScrim(ctx context.Context, req CreateScrimRequest) (ScrimResult, error) {
	return withTelemetry(s, ctx, "CreateScrim", "", func(ctx context.Context) (ScrimResult, error) {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return results.FailureResult[*scrimdb.Scrim](ErrInvalidName), nil
		}

		minSlot, maxSlot := req.MinSlot, req.MaxSlot
		if minSlot == 0 {
			minSlot = defaultMinSlot
		}
		if maxSlot == 0 {
			maxSlot = defaultMaxSlot
		}
		if minSlot < 1 || minSlot > maxSlot {
			return results.FailureResult[*scrimdb.Scrim](ErrInvalidSlotRange), nil
		}

		scrim := &scrimdb.Scrim{
			ID:      uuid.NewString(),
			GuildID: req.GuildID,
			Name:    name,
			MinSlot: minSlot,
			MaxSlot: maxSlot,
		}

		if strings.TrimSpace(req.StartInput) != "" {
			startsAt, err := s.times.Parse(req.StartInput, req.Timezone, s.clock.Now())
			if err != nil {
				return results.FailureResult[*scrimdb.Scrim](err), nil
			}
			scrim.StartsAt = &startsAt
		}

		if err := s.repo.CreateScrim(ctx, nil, scrim); err != nil {
			return ScrimResult{}, err
		}
		return results.SuccessResult[*scrimdb.Scrim, error](scrim), nil
	})
}

func (s *ScrimService) GetScrim(ctx context.Context, scrimID string) (ScrimResult, error) {
	return withTelemetry(s, ctx, "GetScrim", scrimID, func(ctx context.Context) (ScrimResult, error) {
		scrim, err := s.repo.GetScrim(ctx, nil, scrimID)
		if err != nil {
			if errors.Is(err, scrimdb.ErrNotFound) {
				return results.FailureResult[*scrimdb.Scrim](ErrScrimNotFound), nil
			}
			return ScrimResult{}, err
		}
		return results.SuccessResult[*scrimdb.Scrim, error](scrim), nil
	})
}
