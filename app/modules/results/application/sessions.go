package resultsservice

import (
	"context"
	"errors"
	"strings"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/google/uuid"
)

// errSessionsDisabled is returned when the service was built without a store.
var errSessionsDisabled = errors.New("match sessions are not configured")

// BeginSession opens a match session in channelID, replacing any open one.
func (s *ResultsService) BeginSession(ctx context.Context, channelID, scrimID string, game int) (SessionResult, error) {
	return withTelemetry(s, ctx, "BeginSession", scrimID, func(ctx context.Context) (SessionResult, error) {
		if s.sessions == nil {
			return SessionResult{}, errSessionsDisabled
		}
		if strings.TrimSpace(channelID) == "" {
			return results.FailureResult[struct{}](ErrInvalidChannel), nil
		}
		if game < 1 {
			return results.FailureResult[struct{}](ErrInvalidGame), nil
		}
		if _, err := s.scrims.Teams(ctx, scrimID); err != nil {
			if errors.Is(err, ErrScrimNotFound) {
				return results.FailureResult[struct{}](ErrScrimNotFound), nil
			}
			return SessionResult{}, err
		}

		err := s.sessions.Begin(ctx, channelID, resultsdomain.MatchSession{
			ScrimID:   scrimID,
			Game:      game,
			Images:    []string{},
			StartedAt: s.now().UTC(),
		})
		if err != nil {
			return SessionResult{}, err
		}
		return results.SuccessResult[struct{}, error](struct{}{}), nil
	})
}

// CollectImage adds a screenshot to the channel's session and returns how
// many it now holds.
func (s *ResultsService) CollectImage(ctx context.Context, channelID, imageURL string) (CollectResult, error) {
	return withTelemetry(s, ctx, "CollectImage", "", func(ctx context.Context) (CollectResult, error) {
		if s.sessions == nil {
			return CollectResult{}, errSessionsDisabled
		}
		count, err := s.sessions.Collect(ctx, channelID, imageURL)
		if errors.Is(err, resultsdomain.ErrNoSession) {
			return results.FailureResult[int](resultsdomain.ErrNoSession), nil
		}
		if err != nil {
			return CollectResult{}, err
		}
		return results.SuccessResult[int, error](count), nil
	})
}

// FinishSession closes the channel's session and submits its screenshots as
// one batch. The session is cleared even when the batch is rejected.
func (s *ResultsService) FinishSession(ctx context.Context, channelID string) (FinishResult, error) {
	return withTelemetry(s, ctx, "FinishSession", "", func(ctx context.Context) (FinishResult, error) {
		if s.sessions == nil {
			return FinishResult{}, errSessionsDisabled
		}
		session, err := s.sessions.Finish(ctx, channelID)
		if errors.Is(err, resultsdomain.ErrNoSession) {
			return results.FailureResult[*FinishedSession](resultsdomain.ErrNoSession), nil
		}
		if err != nil {
			return FinishResult{}, err
		}

		submitted, err := s.SubmitBatch(ctx, BatchRequest{
			BatchID:   uuid.NewString(),
			ScrimID:   session.ScrimID,
			Game:      session.Game,
			Images:    session.Images,
			ChannelID: channelID,
		})
		if err != nil {
			return FinishResult{}, err
		}
		if submitted.IsFailure() {
			return results.FailureResult[*FinishedSession](*submitted.Failure), nil
		}

		return results.SuccessResult[*FinishedSession, error](&FinishedSession{
			ChannelID:  channelID,
			Session:    session,
			Submission: **submitted.Success,
		}), nil
	})
}
