package adapters

import (
	"context"
	"errors"
	"fmt"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
)

// ScrimLookup is the part of the scrim service the results module reads.
type ScrimLookup interface {
	ListTeams(ctx context.Context, scrimID string) (scrimservice.TeamsResult, error)
	GetScoringConfig(ctx context.Context, scrimID string) (scrimservice.ScoringResult, error)
}

// ScrimDirectoryAdapter adapts the scrim service to the results service
// ScrimDirectory port.
type ScrimDirectoryAdapter struct {
	scrims ScrimLookup
}

var _ resultsservice.ScrimDirectory = (*ScrimDirectoryAdapter)(nil)

// NewScrimDirectoryAdapter constructs a new adapter.
func NewScrimDirectoryAdapter(scrims ScrimLookup) *ScrimDirectoryAdapter {
	return &ScrimDirectoryAdapter{scrims: scrims}
}

func lookupFailure(failure error) error {
	if errors.Is(failure, scrimservice.ErrScrimNotFound) {
		return resultsservice.ErrScrimNotFound
	}
	return fmt.Errorf("scrim lookup: %w", failure)
}

func (a *ScrimDirectoryAdapter) Teams(ctx context.Context, scrimID string) ([]resultsdomain.Team, error) {
	result, err := a.scrims.ListTeams(ctx, scrimID)
	if err != nil {
		return nil, err
	}
	if result.IsFailure() {
		return nil, lookupFailure(*result.Failure)
	}

	rows := *result.Success
	teams := make([]resultsdomain.Team, 0, len(rows))
	for _, t := range rows {
		teams = append(teams, t.ToDomain())
	}
	return teams, nil
}

func (a *ScrimDirectoryAdapter) ScoringConfig(ctx context.Context, scrimID string) (resultsdomain.ScoringConfig, error) {
	result, err := a.scrims.GetScoringConfig(ctx, scrimID)
	if err != nil {
		return resultsdomain.ScoringConfig{}, err
	}
	if result.IsFailure() {
		return resultsdomain.ScoringConfig{}, lookupFailure(*result.Failure)
	}
	return *result.Success, nil
}
