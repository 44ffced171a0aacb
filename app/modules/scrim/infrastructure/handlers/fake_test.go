package scrimhandlers

import (
	"context"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
)

// FakeScrimService provides a programmable stub for scrimservice.Service.
type FakeScrimService struct {
	trace []string

	CreateScrimFunc         func(ctx context.Context, req scrimservice.CreateScrimRequest) (scrimservice.ScrimResult, error)
	GetScrimFunc            func(ctx context.Context, scrimID string) (scrimservice.ScrimResult, error)
	RegisterTeamFunc        func(ctx context.Context, req scrimservice.RegisterTeamRequest) (scrimservice.TeamResult, error)
	UnregisterTeamFunc      func(ctx context.Context, scrimID, ownerID string) (scrimservice.EmptyResult, error)
	ConfirmTeamFunc         func(ctx context.Context, scrimID string, slot int) (scrimservice.EmptyResult, error)
	ListTeamsFunc           func(ctx context.Context, scrimID string) (scrimservice.TeamsResult, error)
	BanUserFunc             func(ctx context.Context, req scrimservice.BanRequest) (scrimservice.BanResult, error)
	UnbanUserFunc           func(ctx context.Context, guildID, userID string) (scrimservice.EmptyResult, error)
	GetScoringConfigFunc    func(ctx context.Context, scrimID string) (scrimservice.ScoringResult, error)
	UpdateScoringConfigFunc func(ctx context.Context, scrimID string, cfg resultsdomain.ScoringConfig) (scrimservice.ScoringResult, error)
}

func NewFakeScrimService() *FakeScrimService {
	return &FakeScrimService{trace: []string{}}
}

func (f *FakeScrimService) record(step string) {
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of service methods called.
func (f *FakeScrimService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScrimService) CreateScrim(ctx context.Context, req scrimservice.CreateScrimRequest) (scrimservice.ScrimResult, error) {
	f.record("CreateScrim")
	if f.CreateScrimFunc != nil {
		return f.CreateScrimFunc(ctx, req)
	}
	return scrimservice.ScrimResult{}, nil
}

func (f *FakeScrimService) GetScrim(ctx context.Context, scrimID string) (scrimservice.ScrimResult, error) {
	f.record("GetScrim")
	if f.GetScrimFunc != nil {
		return f.GetScrimFunc(ctx, scrimID)
	}
	return scrimservice.ScrimResult{}, nil
}

func (f *FakeScrimService) RegisterTeam(ctx context.Context, req scrimservice.RegisterTeamRequest) (scrimservice.TeamResult, error) {
	f.record("RegisterTeam")
	if f.RegisterTeamFunc != nil {
		return f.RegisterTeamFunc(ctx, req)
	}
	return scrimservice.TeamResult{}, nil
}

func (f *FakeScrimService) UnregisterTeam(ctx context.Context, scrimID, ownerID string) (scrimservice.EmptyResult, error) {
	f.record("UnregisterTeam")
	if f.UnregisterTeamFunc != nil {
		return f.UnregisterTeamFunc(ctx, scrimID, ownerID)
	}
	return scrimservice.EmptyResult{}, nil
}

func (f *FakeScrimService) ConfirmTeam(ctx context.Context, scrimID string, slot int) (scrimservice.EmptyResult, error) {
	f.record("ConfirmTeam")
	if f.ConfirmTeamFunc != nil {
		return f.ConfirmTeamFunc(ctx, scrimID, slot)
	}
	return scrimservice.EmptyResult{}, nil
}

func (f *FakeScrimService) ListTeams(ctx context.Context, scrimID string) (scrimservice.TeamsResult, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, scrimID)
	}
	return scrimservice.TeamsResult{}, nil
}

func (f *FakeScrimService) BanUser(ctx context.Context, req scrimservice.BanRequest) (scrimservice.BanResult, error) {
	f.record("BanUser")
	if f.BanUserFunc != nil {
		return f.BanUserFunc(ctx, req)
	}
	return scrimservice.BanResult{}, nil
}

func (f *FakeScrimService) UnbanUser(ctx context.Context, guildID, userID string) (scrimservice.EmptyResult, error) {
	f.record("UnbanUser")
	if f.UnbanUserFunc != nil {
		return f.UnbanUserFunc(ctx, guildID, userID)
	}
	return scrimservice.EmptyResult{}, nil
}

func (f *FakeScrimService) GetScoringConfig(ctx context.Context, scrimID string) (scrimservice.ScoringResult, error) {
	f.record("GetScoringConfig")
	if f.GetScoringConfigFunc != nil {
		return f.GetScoringConfigFunc(ctx, scrimID)
	}
	return scrimservice.ScoringResult{}, nil
}

func (f *FakeScrimService) UpdateScoringConfig(ctx context.Context, scrimID string, cfg resultsdomain.ScoringConfig) (scrimservice.ScoringResult, error) {
	f.record("UpdateScoringConfig")
	if f.UpdateScoringConfigFunc != nil {
		return f.UpdateScoringConfigFunc(ctx, scrimID, cfg)
	}
	return scrimservice.ScoringResult{}, nil
}

var _ scrimservice.Service = (*FakeScrimService)(nil)
