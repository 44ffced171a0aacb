package resultsservice

import (
	"context"
	"sync"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	resultsdb "github.com/Black-And-White-Club/scrim-bot/app/modules/results/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Results Repository
// ------------------------

type FakeResultsRepository struct {
	trace []string

	UpsertMatchResultFunc  func(ctx context.Context, db bun.IDB, r *resultsdb.MatchResult) error
	UpsertManualResultFunc func(ctx context.Context, db bun.IDB, r *resultsdb.ManualResult) error
	ListMatchResultsFunc   func(ctx context.Context, db bun.IDB, scrimID string) ([]resultsdb.MatchResult, error)
	ListManualResultsFunc  func(ctx context.Context, db bun.IDB, scrimID string) ([]resultsdb.ManualResult, error)
	DeleteGameFunc         func(ctx context.Context, db bun.IDB, scrimID string, game int) (int64, error)
	ClearScrimFunc         func(ctx context.Context, db bun.IDB, scrimID string) (int64, error)

	Matches []resultsdb.MatchResult
	Manuals []resultsdb.ManualResult
}

func NewFakeResultsRepository() *FakeResultsRepository {
	return &FakeResultsRepository{trace: []string{}}
}

func (f *FakeResultsRepository) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of repository methods called.
func (f *FakeResultsRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeResultsRepository) UpsertMatchResult(ctx context.Context, db bun.IDB, r *resultsdb.MatchResult) error {
	f.record("UpsertMatchResult")
	if f.UpsertMatchResultFunc != nil {
		return f.UpsertMatchResultFunc(ctx, db, r)
	}
	f.Matches = append(f.Matches, *r)
	return nil
}

func (f *FakeResultsRepository) UpsertManualResult(ctx context.Context, db bun.IDB, r *resultsdb.ManualResult) error {
	f.record("UpsertManualResult")
	if f.UpsertManualResultFunc != nil {
		return f.UpsertManualResultFunc(ctx, db, r)
	}
	f.Manuals = append(f.Manuals, *r)
	return nil
}

func (f *FakeResultsRepository) ListMatchResults(ctx context.Context, db bun.IDB, scrimID string) ([]resultsdb.MatchResult, error) {
	f.record("ListMatchResults")
	if f.ListMatchResultsFunc != nil {
		return f.ListMatchResultsFunc(ctx, db, scrimID)
	}
	return f.Matches, nil
}

func (f *FakeResultsRepository) ListManualResults(ctx context.Context, db bun.IDB, scrimID string) ([]resultsdb.ManualResult, error) {
	f.record("ListManualResults")
	if f.ListManualResultsFunc != nil {
		return f.ListManualResultsFunc(ctx, db, scrimID)
	}
	return f.Manuals, nil
}

func (f *FakeResultsRepository) DeleteGame(ctx context.Context, db bun.IDB, scrimID string, game int) (int64, error) {
	f.record("DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, db, scrimID, game)
	}
	return 0, nil
}

func (f *FakeResultsRepository) ClearScrim(ctx context.Context, db bun.IDB, scrimID string) (int64, error) {
	f.record("ClearScrim")
	if f.ClearScrimFunc != nil {
		return f.ClearScrimFunc(ctx, db, scrimID)
	}
	return 0, nil
}

var _ resultsdb.Repository = (*FakeResultsRepository)(nil)

// ------------------------
// Fake collaborators
// ------------------------

// FakeScrimDirectory serves a fixed roster and points table for known scrims.
type FakeScrimDirectory struct {
	Rosters map[string][]resultsdomain.Team
	Configs map[string]resultsdomain.ScoringConfig
	Err     error
}

func (f *FakeScrimDirectory) Teams(_ context.Context, scrimID string) ([]resultsdomain.Team, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	teams, ok := f.Rosters[scrimID]
	if !ok {
		return nil, ErrScrimNotFound
	}
	return teams, nil
}

func (f *FakeScrimDirectory) ScoringConfig(_ context.Context, scrimID string) (resultsdomain.ScoringConfig, error) {
	if f.Err != nil {
		return resultsdomain.ScoringConfig{}, f.Err
	}
	if _, ok := f.Rosters[scrimID]; !ok {
		return resultsdomain.ScoringConfig{}, ErrScrimNotFound
	}
	if cfg, ok := f.Configs[scrimID]; ok {
		return cfg, nil
	}
	return resultsdomain.DefaultScoringConfig(), nil
}

// FakeTextDetector returns canned text per image URL.
type FakeTextDetector struct {
	Texts  map[string]string
	Errors map[string]error
	calls  []string
}

func (f *FakeTextDetector) DetectText(_ context.Context, imageURL string) (string, error) {
	f.calls = append(f.calls, imageURL)
	if err, ok := f.Errors[imageURL]; ok {
		return "", err
	}
	return f.Texts[imageURL], nil
}

// FakeSessionStore is an in-memory SessionStore.
type FakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]resultsdomain.MatchSession
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{sessions: map[string]resultsdomain.MatchSession{}}
}

func (f *FakeSessionStore) Begin(_ context.Context, channelID string, s resultsdomain.MatchSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[channelID] = s
	return nil
}

func (f *FakeSessionStore) Collect(_ context.Context, channelID, imageURL string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[channelID]
	if !ok {
		return 0, resultsdomain.ErrNoSession
	}
	s.Images = append(s.Images, imageURL)
	f.sessions[channelID] = s
	return len(s.Images), nil
}

func (f *FakeSessionStore) Finish(_ context.Context, channelID string) (resultsdomain.MatchSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[channelID]
	if !ok {
		return resultsdomain.MatchSession{}, resultsdomain.ErrNoSession
	}
	delete(f.sessions, channelID)
	return s, nil
}

// FakeBatchQueue records enqueued batches.
type FakeBatchQueue struct {
	Batches []BatchRequest
	Err     error
}

func (f *FakeBatchQueue) EnqueueBatch(_ context.Context, req BatchRequest) error {
	if f.Err != nil {
		return f.Err
	}
	f.Batches = append(f.Batches, req)
	return nil
}

var (
	_ ScrimDirectory = (*FakeScrimDirectory)(nil)
	_ TextDetector   = (*FakeTextDetector)(nil)
	_ SessionStore   = (*FakeSessionStore)(nil)
	_ BatchQueue     = (*FakeBatchQueue)(nil)
)
