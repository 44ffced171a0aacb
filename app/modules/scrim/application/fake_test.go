package scrimservice

import (
	"context"
	"time"

	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// FakeScrimRepository provides a programmable stub for scrimdb.Repository.
type FakeScrimRepository struct {
	trace []string

	CreateScrimFunc         func(ctx context.Context, db bun.IDB, scrim *scrimdb.Scrim) error
	GetScrimFunc            func(ctx context.Context, db bun.IDB, scrimID string) (*scrimdb.Scrim, error)
	UpdateScoringConfigFunc func(ctx context.Context, db bun.IDB, scrimID string, raw string) error
	ListTeamsFunc           func(ctx context.Context, db bun.IDB, scrimID string) ([]scrimdb.Team, error)
	InsertTeamFunc          func(ctx context.Context, db bun.IDB, team *scrimdb.Team) error
	DeleteTeamFunc          func(ctx context.Context, db bun.IDB, scrimID, ownerID string) error
	ConfirmTeamFunc         func(ctx context.Context, db bun.IDB, scrimID string, slot int) error
	GetBanFunc              func(ctx context.Context, db bun.IDB, guildID, userID string) (*scrimdb.Ban, error)
	UpsertBanFunc           func(ctx context.Context, db bun.IDB, ban *scrimdb.Ban) error
	DeleteBanFunc           func(ctx context.Context, db bun.IDB, guildID, userID string) error
}

func NewFakeScrimRepository() *FakeScrimRepository {
	return &FakeScrimRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScrimRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScrimRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScrimRepository) CreateScrim(ctx context.Context, db bun.IDB, scrim *scrimdb.Scrim) error {
	f.record("CreateScrim")
	if f.CreateScrimFunc != nil {
		return f.CreateScrimFunc(ctx, db, scrim)
	}
	return nil
}

func (f *FakeScrimRepository) GetScrim(ctx context.Context, db bun.IDB, scrimID string) (*scrimdb.Scrim, error) {
	f.record("GetScrim")
	if f.GetScrimFunc != nil {
		return f.GetScrimFunc(ctx, db, scrimID)
	}
	return nil, scrimdb.ErrNotFound
}

func (f *FakeScrimRepository) UpdateScoringConfig(ctx context.Context, db bun.IDB, scrimID string, raw string) error {
	f.record("UpdateScoringConfig")
	if f.UpdateScoringConfigFunc != nil {
		return f.UpdateScoringConfigFunc(ctx, db, scrimID, raw)
	}
	return nil
}

func (f *FakeScrimRepository) ListTeams(ctx context.Context, db bun.IDB, scrimID string) ([]scrimdb.Team, error) {
	f.record("ListTeams")
	if f.ListTeamsFunc != nil {
		return f.ListTeamsFunc(ctx, db, scrimID)
	}
	return nil, nil
}

func (f *FakeScrimRepository) InsertTeam(ctx context.Context, db bun.IDB, team *scrimdb.Team) error {
	f.record("InsertTeam")
	if f.InsertTeamFunc != nil {
		return f.InsertTeamFunc(ctx, db, team)
	}
	return nil
}

func (f *FakeScrimRepository) DeleteTeam(ctx context.Context, db bun.IDB, scrimID, ownerID string) error {
	f.record("DeleteTeam")
	if f.DeleteTeamFunc != nil {
		return f.DeleteTeamFunc(ctx, db, scrimID, ownerID)
	}
	return nil
}

func (f *FakeScrimRepository) ConfirmTeam(ctx context.Context, db bun.IDB, scrimID string, slot int) error {
	f.record("ConfirmTeam")
	if f.ConfirmTeamFunc != nil {
		return f.ConfirmTeamFunc(ctx, db, scrimID, slot)
	}
	return nil
}

func (f *FakeScrimRepository) GetBan(ctx context.Context, db bun.IDB, guildID, userID string) (*scrimdb.Ban, error) {
	f.record("GetBan")
	if f.GetBanFunc != nil {
		return f.GetBanFunc(ctx, db, guildID, userID)
	}
	return nil, scrimdb.ErrNotFound
}

func (f *FakeScrimRepository) UpsertBan(ctx context.Context, db bun.IDB, ban *scrimdb.Ban) error {
	f.record("UpsertBan")
	if f.UpsertBanFunc != nil {
		return f.UpsertBanFunc(ctx, db, ban)
	}
	return nil
}

func (f *FakeScrimRepository) DeleteBan(ctx context.Context, db bun.IDB, guildID, userID string) error {
	f.record("DeleteBan")
	if f.DeleteBanFunc != nil {
		return f.DeleteBanFunc(ctx, db, guildID, userID)
	}
	return nil
}

var _ scrimdb.Repository = (*FakeScrimRepository)(nil)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }
