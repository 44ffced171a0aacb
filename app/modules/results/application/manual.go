package resultsservice

import (
	"context"
	"errors"
	"strings"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/uptrace/bun"
)

// SubmitManualResults stores staff-entered results for one game. Slots with a
// blank tag are skipped, negative kills count as zero, and tags are stored in
// the roster's spelling when they match a registered team. Existing overrides
// for the same teams are replaced; other teams' overrides are left alone.
func (s *ResultsService) SubmitManualResults(ctx context.Context, req ManualSubmission) (ManualSaveResult, error) {
	return withTelemetry(s, ctx, "SubmitManualResults", req.ScrimID, func(ctx context.Context) (ManualSaveResult, error) {
		if req.Game < 1 {
			return results.FailureResult[int](ErrInvalidGame), nil
		}

		teams, cfg, err := s.scrimContext(ctx, req.ScrimID)
		if errors.Is(err, ErrScrimNotFound) {
			return results.FailureResult[int](ErrScrimNotFound), nil
		}
		if err != nil {
			return ManualSaveResult{}, err
		}

		rows, failure := manualRows(req, teams, &cfg)
		if failure != nil {
			return results.FailureResult[int](failure), nil
		}

		err = s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
			for i := range rows {
				if err := s.repo.UpsertManualResult(ctx, db, &rows[i]); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return ManualSaveResult{}, err
		}

		s.metrics.RecordRowsWritten(ctx, sourceManual, len(rows))
		return results.SuccessResult[int, error](len(rows)), nil
	})
}

func manualRows(req ManualSubmission, teams []resultsdomain.Team, cfg *resultsdomain.ScoringConfig) ([]resultsdb.ManualResult, error) {
	byTag := make(map[string]string, len(teams))
	for _, t := range teams {
		byTag[resultsdomain.NormalizeTag(t.Tag)] = t.Tag
	}

	rows := make([]resultsdb.ManualResult, 0, len(req.Entries))
	for _, e := range req.Entries {
		normalized := resultsdomain.NormalizeTag(e.TeamTag)
		if normalized == "" {
			continue
		}
		if e.Place < 1 || e.Place > MaxManualPlace {
			return nil, ErrInvalidPlace
		}

		tag, ok := byTag[normalized]
		if !ok {
			tag = strings.ToUpper(strings.TrimSpace(e.TeamTag))
		}
		kills := resultsdomain.SanitizeKills(e.Kills)

		rows = append(rows, resultsdb.ManualResult{
			ScrimID:   req.ScrimID,
			Game:      req.Game,
			TeamTag:   tag,
			Place:     e.Place,
			Kills:     kills,
			Points:    resultsdomain.TotalPoints(e.Place, kills, cfg),
			EnteredBy: req.EnteredBy,
		})
	}

	if len(rows) == 0 {
		return nil, ErrNoEntries
	}
	return rows, nil
}
