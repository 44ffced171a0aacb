package resultsservice

import (
	"context"
	"errors"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
)

// GetLeaderboard merges automated and manual results and aggregates them
// under the scrim's current points table. Stored points are ignored.
func (s *ResultsService) GetLeaderboard(ctx context.Context, scrimID string) (LeaderboardResult, error) {
	return withTelemetry(s, ctx, "GetLeaderboard", scrimID, func(ctx context.Context) (LeaderboardResult, error) {
		teams, cfg, err := s.scrimContext(ctx, scrimID)
		if errors.Is(err, ErrScrimNotFound) {
			return results.FailureResult[*Leaderboard](ErrScrimNotFound), nil
		}
		if err != nil {
			return LeaderboardResult{}, err
		}

		automatedRows, err := s.repo.ListMatchResults(ctx, nil, scrimID)
		if err != nil {
			return LeaderboardResult{}, err
		}
		manualRows, err := s.repo.ListManualResults(ctx, nil, scrimID)
		if err != nil {
			return LeaderboardResult{}, err
		}

		automated := make([]resultsdomain.ResultRecord, len(automatedRows))
		for i, r := range automatedRows {
			automated[i] = r.ToDomain()
		}
		manual := make([]resultsdomain.ResultRecord, len(manualRows))
		for i, r := range manualRows {
			manual[i] = r.ToDomain()
		}

		return results.SuccessResult[*Leaderboard, error](&Leaderboard{
			ScrimID: scrimID,
			Scoring: cfg,
			Entries: resultsdomain.BuildLeaderboard(automated, manual, teams, &cfg),
		}), nil
	})
}
