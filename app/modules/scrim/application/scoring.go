package scrimservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
)

// GetScoringConfig returns the scrim's points table. A missing or broken
// stored blob yields the defaults.
func (s *ScrimService) GetScoringConfig(ctx context.Context, scrimID string) (ScoringResult, error) {
	return withTelemetry(s, ctx, "GetScoringConfig", scrimID, func(ctx context.Context) (ScoringResult, error) {
		scrim, err := s.repo.GetScrim(ctx, nil, scrimID)
		if err != nil {
			if errors.Is(err, scrimdb.ErrNotFound) {
				return results.FailureResult[resultsdomain.ScoringConfig](ErrScrimNotFound), nil
			}
			return ScoringResult{}, err
		}
		cfg := resultsdomain.LoadScoringConfig([]byte(scrim.ScoringConfig))
		return results.SuccessResult[resultsdomain.ScoringConfig, error](cfg), nil
	})
}

// UpdateScoringConfig clamps cfg and stores it as the scrim's points table.
func (s *ScrimService) UpdateScoringConfig(ctx context.Context, scrimID string, cfg resultsdomain.ScoringConfig) (ScoringResult, error) {
	return withTelemetry(s, ctx, "UpdateScoringConfig", scrimID, func(ctx context.Context) (ScoringResult, error) {
		clamped := cfg.Clamp()
		raw, err := json.Marshal(clamped)
		if err != nil {
			return ScoringResult{}, fmt.Errorf("marshal scoring config: %w", err)
		}
		if err := s.repo.UpdateScoringConfig(ctx, nil, scrimID, string(raw)); err != nil {
			if errors.Is(err, scrimdb.ErrNoRowsAffected) {
				return results.FailureResult[resultsdomain.ScoringConfig](ErrScrimNotFound), nil
			}
			return ScoringResult{}, err
		}
		return results.SuccessResult[resultsdomain.ScoringConfig, error](clamped), nil
	})
}
