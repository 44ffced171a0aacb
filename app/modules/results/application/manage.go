package resultsservice

import (
	"context"
	"errors"

	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/uptrace/bun"
)

// DeleteGame removes the automated and manual results of one game.
func (s *ResultsService) DeleteGame(ctx context.Context, scrimID string, game int) (DeleteResult, error) {
	return withTelemetry(s, ctx, "DeleteGame", scrimID, func(ctx context.Context) (DeleteResult, error) {
		if game < 1 {
			return results.FailureResult[int64](ErrInvalidGame), nil
		}
		return s.deleteResults(ctx, func(ctx context.Context, db bun.IDB) (int64, error) {
			return s.repo.DeleteGame(ctx, db, scrimID, game)
		})
	})
}

// ClearScrim removes every automated and manual result of the scrim.
func (s *ResultsService) ClearScrim(ctx context.Context, scrimID string) (DeleteResult, error) {
	return withTelemetry(s, ctx, "ClearScrim", scrimID, func(ctx context.Context) (DeleteResult, error) {
		return s.deleteResults(ctx, func(ctx context.Context, db bun.IDB) (int64, error) {
			return s.repo.ClearScrim(ctx, db, scrimID)
		})
	})
}

func (s *ResultsService) deleteResults(ctx context.Context, del func(ctx context.Context, db bun.IDB) (int64, error)) (DeleteResult, error) {
	var removed int64
	err := s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		n, err := del(ctx, db)
		removed = n
		return err
	})
	if errors.Is(err, resultsdb.ErrNoRowsAffected) {
		return results.FailureResult[int64](ErrNoResults), nil
	}
	if err != nil {
		return DeleteResult{}, err
	}

	s.logger.InfoContext(ctx, "Results deleted",
		attr.ExtractCorrelationID(ctx),
		attr.Any("removed", removed),
	)
	return results.SuccessResult[int64, error](removed), nil
}
