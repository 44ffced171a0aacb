package scrimservice

import (
	"context"
	"errors"
	"strings"

	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
)

// BanUser blocks a user from registering in the guild's scrims, optionally
// until ExpiresAt. Banning again replaces the previous ban.
func (s *ScrimService) BanUser(ctx context.Context, req BanRequest) (BanResult, error) {
	return withTelemetry(s, ctx, "BanUser", "", func(ctx context.Context) (BanResult, error) {
		if strings.TrimSpace(req.GuildID) == "" || strings.TrimSpace(req.UserID) == "" {
			return results.FailureResult[*scrimdb.Ban](ErrInvalidUser), nil
		}
		ban := &scrimdb.Ban{
			GuildID:   req.GuildID,
			UserID:    req.UserID,
			Reason:    strings.TrimSpace(req.Reason),
			BannedBy:  req.BannedBy,
			ExpiresAt: req.ExpiresAt,
		}
		if err := s.repo.UpsertBan(ctx, nil, ban); err != nil {
			return BanResult{}, err
		}
		return results.SuccessResult[*scrimdb.Ban, error](ban), nil
	})
}

func (s *ScrimService) UnbanUser(ctx context.Context, guildID, userID string) (EmptyResult, error) {
	return withTelemetry(s, ctx, "UnbanUser", "", func(ctx context.Context) (EmptyResult, error) {
		if err := s.repo.DeleteBan(ctx, nil, guildID, userID); err != nil {
			if errors.Is(err, scrimdb.ErrNoRowsAffected) {
				return results.FailureResult[struct{}](ErrBanNotFound), nil
			}
			return EmptyResult{}, err
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
}
