package resultsservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	sourceAutomated = "automated"
	sourceManual    = "manual"

	discardNoTeam = "no_team"
)

// ProcessScreenshots runs every image of the batch through OCR and the
// scoring pipeline in order. Each image's rows are written in their own
// transaction, so a later screenshot overwrites an earlier one for the same
// team and a failing image never undoes the rows of another.
func (s *ResultsService) ProcessScreenshots(ctx context.Context, req BatchRequest) (BatchResult, error) {
	return withTelemetry(s, ctx, "ProcessScreenshots", req.ScrimID, func(ctx context.Context) (BatchResult, error) {
		if failure := validateBatch(req); failure != nil {
			return results.FailureResult[*BatchReport](failure), nil
		}
		if req.BatchID == "" {
			req.BatchID = uuid.NewString()
		}

		teams, cfg, err := s.scrimContext(ctx, req.ScrimID)
		if errors.Is(err, ErrScrimNotFound) {
			return results.FailureResult[*BatchReport](ErrScrimNotFound), nil
		}
		if err != nil {
			return BatchResult{}, err
		}

		report := &BatchReport{
			BatchID:   req.BatchID,
			ScrimID:   req.ScrimID,
			Game:      req.Game,
			ChannelID: req.ChannelID,
			Outcomes:  make([]ImageOutcome, 0, len(req.Images)),
		}

		for _, image := range req.Images {
			outcome := s.processImage(ctx, req, image, teams, &cfg)
			report.Outcomes = append(report.Outcomes, outcome)
			report.RowsWritten += outcome.RowsWritten
			report.RowsDiscarded += outcome.RowsDiscarded
		}

		s.logger.InfoContext(ctx, "Screenshot batch processed",
			attr.ExtractCorrelationID(ctx),
			attr.ScrimID(req.ScrimID),
			attr.Game(req.Game),
			attr.String("batch_id", req.BatchID),
			attr.Int("images", len(req.Images)),
			attr.Int("failed_images", len(report.FailedImages())),
			attr.Int("rows_written", report.RowsWritten),
			attr.Int("rows_discarded", report.RowsDiscarded),
		)

		return results.SuccessResult[*BatchReport, error](report), nil
	})
}

func (s *ResultsService) processImage(
	ctx context.Context,
	req BatchRequest,
	image string,
	teams []resultsdomain.Team,
	cfg *resultsdomain.ScoringConfig,
) ImageOutcome {
	outcome := ImageOutcome{Image: image}

	fail := func(err error) ImageOutcome {
		s.logger.WarnContext(ctx, "Screenshot skipped",
			attr.ExtractCorrelationID(ctx),
			attr.ScrimID(req.ScrimID),
			attr.Game(req.Game),
			attr.String("image", image),
			attr.Error(err),
		)
		s.metrics.RecordScreenshotProcessed(ctx, false)
		outcome.Error = err.Error()
		return outcome
	}

	text, err := s.detector.DetectText(ctx, image)
	if err != nil {
		return fail(fmt.Errorf("detect text: %w", err))
	}

	scored, discarded := resultsdomain.ScoreText(text, teams, cfg, resultsdomain.DefaultMinTagMatches)

	err = s.runInTx(ctx, func(ctx context.Context, db bun.IDB) error {
		for _, row := range scored {
			rec := row.Record(req.ScrimID, req.Game)
			if err := s.repo.UpsertMatchResult(ctx, db, &resultsdb.MatchResult{
				ScrimID: rec.ScrimID,
				Game:    rec.Game,
				TeamTag: rec.TeamTag,
				Place:   rec.Place,
				Kills:   rec.Kills,
				Points:  rec.Points,
				BatchID: req.BatchID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fail(fmt.Errorf("store results: %w", err))
	}

	s.metrics.RecordScreenshotProcessed(ctx, true)
	s.metrics.RecordRowsWritten(ctx, sourceAutomated, len(scored))
	if discarded > 0 {
		s.metrics.RecordRowsDiscarded(ctx, discardNoTeam, discarded)
	}

	outcome.Success = true
	outcome.RowsWritten = len(scored)
	outcome.RowsDiscarded = discarded
	return outcome
}

// SubmitBatch queues the batch when a queue is configured and processes it
// inline otherwise.
func (s *ResultsService) SubmitBatch(ctx context.Context, req BatchRequest) (SubmissionResult, error) {
	if s.queue == nil {
		processed, err := s.ProcessScreenshots(ctx, req)
		if err != nil {
			return SubmissionResult{}, err
		}
		if processed.IsFailure() {
			return results.FailureResult[*BatchSubmission](*processed.Failure), nil
		}
		report := *processed.Success
		return results.SuccessResult[*BatchSubmission, error](&BatchSubmission{
			BatchID: report.BatchID,
			Report:  report,
		}), nil
	}

	return withTelemetry(s, ctx, "SubmitBatch", req.ScrimID, func(ctx context.Context) (SubmissionResult, error) {
		if failure := validateBatch(req); failure != nil {
			return results.FailureResult[*BatchSubmission](failure), nil
		}
		if req.BatchID == "" {
			req.BatchID = uuid.NewString()
		}
		if err := s.queue.EnqueueBatch(ctx, req); err != nil {
			return SubmissionResult{}, fmt.Errorf("enqueue batch: %w", err)
		}
		return results.SuccessResult[*BatchSubmission, error](&BatchSubmission{
			BatchID: req.BatchID,
			Queued:  true,
		}), nil
	})
}

func validateBatch(req BatchRequest) error {
	switch {
	case strings.TrimSpace(req.ScrimID) == "":
		return ErrScrimNotFound
	case req.Game < 1:
		return ErrInvalidGame
	case len(req.Images) == 0:
		return ErrNoImages
	}
	return nil
}

// scrimContext loads the roster and points table of a scrim.
func (s *ResultsService) scrimContext(ctx context.Context, scrimID string) ([]resultsdomain.Team, resultsdomain.ScoringConfig, error) {
	teams, err := s.scrims.Teams(ctx, scrimID)
	if err != nil {
		return nil, resultsdomain.ScoringConfig{}, fmt.Errorf("load teams: %w", err)
	}
	cfg, err := s.scrims.ScoringConfig(ctx, scrimID)
	if err != nil {
		return nil, resultsdomain.ScoringConfig{}, fmt.Errorf("load scoring config: %w", err)
	}
	return teams, cfg, nil
}
