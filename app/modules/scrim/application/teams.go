package scrimservice

import (
	"context"
	"errors"
	"strings"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/uptrace/bun"
)

// RegisterTeam claims a slot for the requesting user's team. A slot, an
// owner and a normalized tag may each appear once per scrim.
func (s *ScrimService) RegisterTeam(ctx context.Context, req RegisterTeamRequest) (TeamResult, error) {
	return withTelemetry(s, ctx, "RegisterTeam", req.ScrimID, func(ctx context.Context) (TeamResult, error) {
		tag := strings.ToUpper(strings.TrimSpace(req.Tag))
		if resultsdomain.NormalizeTag(tag) == "" {
			return results.FailureResult[*scrimdb.Team](ErrInvalidTag), nil
		}
		name := strings.TrimSpace(req.Name)
		if name == "" {
			return results.FailureResult[*scrimdb.Team](ErrInvalidName), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (TeamResult, error) {
			scrim, err := s.repo.GetScrim(ctx, db, req.ScrimID)
			if err != nil {
				if errors.Is(err, scrimdb.ErrNotFound) {
					return results.FailureResult[*scrimdb.Team](ErrScrimNotFound), nil
				}
				return TeamResult{}, err
			}

			now := s.clock.Now()
			if !scrim.RegistrationOpen(now) {
				return results.FailureResult[*scrimdb.Team](ErrRegistrationClosed), nil
			}
			if req.Slot < scrim.MinSlot || req.Slot > scrim.MaxSlot {
				return results.FailureResult[*scrimdb.Team](ErrSlotOutOfRange), nil
			}

			ban, err := s.repo.GetBan(ctx, db, scrim.GuildID, req.OwnerID)
			switch {
			case err == nil && ban.ActiveAt(now):
				return results.FailureResult[*scrimdb.Team](ErrOwnerBanned), nil
			case err != nil && !errors.Is(err, scrimdb.ErrNotFound):
				return TeamResult{}, err
			}

			teams, err := s.repo.ListTeams(ctx, db, req.ScrimID)
			if err != nil {
				return TeamResult{}, err
			}
			if failure := registrationConflict(teams, req.Slot, req.OwnerID, tag); failure != nil {
				return results.FailureResult[*scrimdb.Team](failure), nil
			}

			team := &scrimdb.Team{
				ScrimID: req.ScrimID,
				Slot:    req.Slot,
				OwnerID: req.OwnerID,
				Tag:     tag,
				Name:    name,
			}
			if err := s.repo.InsertTeam(ctx, db, team); err != nil {
				return TeamResult{}, err
			}
			return results.SuccessResult[*scrimdb.Team, error](team), nil
		})
	})
}

func registrationConflict(teams []scrimdb.Team, slot int, ownerID, tag string) error {
	normalized := resultsdomain.NormalizeTag(tag)
	for _, t := range teams {
		switch {
		case t.Slot == slot:
			return ErrSlotTaken
		case t.OwnerID == ownerID:
			return ErrOwnerHasTeam
		case resultsdomain.NormalizeTag(t.Tag) == normalized:
			return ErrTagTaken
		}
	}
	return nil
}

func (s *ScrimService) UnregisterTeam(ctx context.Context, scrimID, ownerID string) (EmptyResult, error) {
	return withTelemetry(s, ctx, "UnregisterTeam", scrimID, func(ctx context.Context) (EmptyResult, error) {
		if err := s.repo.DeleteTeam(ctx, nil, scrimID, ownerID); err != nil {
			if errors.Is(err, scrimdb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}](ErrTeamNotFound), nil
			}
			return EmptyResult{}, err
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
}

// ConfirmTeam marks the team in slot as confirmed for the scrim.
func (s *ScrimService) ConfirmTeam(ctx context.Context, scrimID string, slot int) (EmptyResult, error) {
	return withTelemetry(s, ctx, "ConfirmTeam", scrimID, func(ctx context.Context) (EmptyResult, error) {
		if err := s.repo.ConfirmTeam(ctx, nil, scrimID, slot); err != nil {
			if errors.Is(err, scrimdb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}](ErrTeamNotFound), nil
			}
			return EmptyResult{}, err
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
}

// ListTeams returns the scrim's registrations in slot order.
func (s *ScrimService) ListTeams(ctx context.Context, scrimID string) (TeamsResult, error) {
	return withTelemetry(s, ctx, "ListTeams", scrimID, func(ctx context.Context) (TeamsResult, error) {
		if _, err := s.repo.GetScrim(ctx, nil, scrimID); err != nil {
			if errors.Is(err, scrimdb.ErrNotFound) {
				return results.FailureResult[[]scrimdb.Team](ErrScrimNotFound), nil
			}
			return TeamsResult{}, err
		}
		teams, err := s.repo.ListTeams(ctx, nil, scrimID)
		if err != nil {
			return TeamsResult{}, err
		}
		return results.SuccessResult[[]scrimdb.Team, error](teams), nil
	})
}
