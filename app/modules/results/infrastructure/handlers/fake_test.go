package resultshandlers

import (
	"context"
	"io"
	"log/slog"

	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	"go.opentelemetry.io/otel/trace/noop"
)

// FakeResultsService provides a programmable stub for resultsservice.Service.
type FakeResultsService struct {
	trace []string

	ProcessScreenshotsFunc  func(ctx context.Context, req resultsservice.BatchRequest) (resultsservice.BatchResult, error)
	SubmitBatchFunc         func(ctx context.Context, req resultsservice.BatchRequest) (resultsservice.SubmissionResult, error)
	SubmitManualResultsFunc func(ctx context.Context, req resultsservice.ManualSubmission) (resultsservice.ManualSaveResult, error)
	DeleteGameFunc          func(ctx context.Context, scrimID string, game int) (resultsservice.DeleteResult, error)
	ClearScrimFunc          func(ctx context.Context, scrimID string) (resultsservice.DeleteResult, error)
	GetLeaderboardFunc      func(ctx context.Context, scrimID string) (resultsservice.LeaderboardResult, error)
	BeginSessionFunc        func(ctx context.Context, channelID, scrimID string, game int) (resultsservice.SessionResult, error)
	CollectImageFunc        func(ctx context.Context, channelID, imageURL string) (resultsservice.CollectResult, error)
	FinishSessionFunc       func(ctx context.Context, channelID string) (resultsservice.FinishResult, error)
}

var _ resultsservice.Service = (*FakeResultsService)(nil)

func NewFakeResultsService() *FakeResultsService {
	return &FakeResultsService{trace: []string{}}
}

func (f *FakeResultsService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeResultsService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeResultsService) ProcessScreenshots(ctx context.Context, req resultsservice.BatchRequest) (resultsservice.BatchResult, error) {
	f.record("ProcessScreenshots")
	if f.ProcessScreenshotsFunc != nil {
		return f.ProcessScreenshotsFunc(ctx, req)
	}
	return resultsservice.BatchResult{}, nil
}

func (f *FakeResultsService) SubmitBatch(ctx context.Context, req resultsservice.BatchRequest) (resultsservice.SubmissionResult, error) {
	f.record("SubmitBatch")
	if f.SubmitBatchFunc != nil {
		return f.SubmitBatchFunc(ctx, req)
	}
	return resultsservice.SubmissionResult{}, nil
}

func (f *FakeResultsService) SubmitManualResults(ctx context.Context, req resultsservice.ManualSubmission) (resultsservice.ManualSaveResult, error) {
	f.record("SubmitManualResults")
	if f.SubmitManualResultsFunc != nil {
		return f.SubmitManualResultsFunc(ctx, req)
	}
	return resultsservice.ManualSaveResult{}, nil
}

func (f *FakeResultsService) DeleteGame(ctx context.Context, scrimID string, game int) (resultsservice.DeleteResult, error) {
	f.record("DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, scrimID, game)
	}
	return resultsservice.DeleteResult{}, nil
}

func (f *FakeResultsService) ClearScrim(ctx context.Context, scrimID string) (resultsservice.DeleteResult, error) {
	f.record("ClearScrim")
	if f.ClearScrimFunc != nil {
		return f.ClearScrimFunc(ctx, scrimID)
	}
	return resultsservice.DeleteResult{}, nil
}

func (f *FakeResultsService) GetLeaderboard(ctx context.Context, scrimID string) (resultsservice.LeaderboardResult, error) {
	f.record("GetLeaderboard")
	if f.GetLeaderboardFunc != nil {
		return f.GetLeaderboardFunc(ctx, scrimID)
	}
	return resultsservice.LeaderboardResult{}, nil
}

func (f *FakeResultsService) BeginSession(ctx context.Context, channelID, scrimID string, game int) (resultsservice.SessionResult, error) {
	f.record("BeginSession")
	if f.BeginSessionFunc != nil {
		return f.BeginSessionFunc(ctx, channelID, scrimID, game)
	}
	return resultsservice.SessionResult{}, nil
}

func (f *FakeResultsService) CollectImage(ctx context.Context, channelID, imageURL string) (resultsservice.CollectResult, error) {
	f.record("CollectImage")
	if f.CollectImageFunc != nil {
		return f.CollectImageFunc(ctx, channelID, imageURL)
	}
	return resultsservice.CollectResult{}, nil
}

func (f *FakeResultsService) FinishSession(ctx context.Context, channelID string) (resultsservice.FinishResult, error) {
	f.record("FinishSession")
	if f.FinishSessionFunc != nil {
		return f.FinishSessionFunc(ctx, channelID)
	}
	return resultsservice.FinishResult{}, nil
}

func newTestHandlers(svc resultsservice.Service) *ResultsHandlers {
	return NewResultsHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
}
