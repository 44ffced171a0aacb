package scrimdb_test

import (
	"context"
	"testing"
	"time"

	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	"github.com/Black-And-White-Club/scrim-bot/db/bundb/bundbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScrim(t *testing.T, repo scrimdb.Repository, id string) {
	t.Helper()
	require.NoError(t, repo.CreateScrim(context.Background(), nil, &scrimdb.Scrim{
		ID: id, GuildID: "g1", Name: "Scrim " + id, MinSlot: 1, MaxSlot: 25,
	}))
}

func TestGetScrim(t *testing.T) {
	ctx := context.Background()
	repo := scrimdb.NewRepository(bundbtest.NewSQLite(t))
	newScrim(t, repo, "s1")

	got, err := repo.GetScrim(ctx, nil, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Scrim s1", got.Name)
	assert.Nil(t, got.StartsAt)

	_, err = repo.GetScrim(ctx, nil, "missing")
	assert.ErrorIs(t, err, scrimdb.ErrNotFound)
}

func TestUpdateScoringConfig(t *testing.T) {
	ctx := context.Background()
	repo := scrimdb.NewRepository(bundbtest.NewSQLite(t))
	newScrim(t, repo, "s1")

	require.NoError(t, repo.UpdateScoringConfig(ctx, nil, "s1", `{"killPoints":2}`))
	got, err := repo.GetScrim(ctx, nil, "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"killPoints":2}`, got.ScoringConfig)

	assert.ErrorIs(t, repo.UpdateScoringConfig(ctx, nil, "missing", `{}`), scrimdb.ErrNoRowsAffected)
}

func TestTeams_SlotAndOwnerAreUniquePerScrim(t *testing.T) {
	ctx := context.Background()
	repo := scrimdb.NewRepository(bundbtest.NewSQLite(t))
	newScrim(t, repo, "s1")
	newScrim(t, repo, "s2")

	require.NoError(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s1", Slot: 2, OwnerID: "o1", Tag: "DS", Name: "Dark Side"}))
	require.NoError(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s1", Slot: 1, OwnerID: "o2", Tag: "TX", Name: "Texas"}))

	assert.Error(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s1", Slot: 2, OwnerID: "o3", Tag: "ZZ", Name: "Slot taken"}))
	assert.Error(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s1", Slot: 3, OwnerID: "o1", Tag: "YY", Name: "Owner taken"}))
	require.NoError(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s2", Slot: 2, OwnerID: "o1", Tag: "DS", Name: "Dark Side"}))

	teams, err := repo.ListTeams(ctx, nil, "s1")
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "TX", teams[0].Tag, "ordered by slot")
	assert.Equal(t, "DS", teams[1].Tag)
	assert.False(t, teams[1].Confirmed)
}

func TestConfirmAndDeleteTeam(t *testing.T) {
	ctx := context.Background()
	repo := scrimdb.NewRepository(bundbtest.NewSQLite(t))
	newScrim(t, repo, "s1")
	require.NoError(t, repo.InsertTeam(ctx, nil, &scrimdb.Team{ScrimID: "s1", Slot: 4, OwnerID: "o1", Tag: "DS", Name: "Dark Side"}))

	require.NoError(t, repo.ConfirmTeam(ctx, nil, "s1", 4))
	assert.ErrorIs(t, repo.ConfirmTeam(ctx, nil, "s1", 5), scrimdb.ErrNoRowsAffected)

	teams, err := repo.ListTeams(ctx, nil, "s1")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.True(t, teams[0].Confirmed)

	require.NoError(t, repo.DeleteTeam(ctx, nil, "s1", "o1"))
	assert.ErrorIs(t, repo.DeleteTeam(ctx, nil, "s1", "o1"), scrimdb.ErrNoRowsAffected)
}

func TestBans(t *testing.T) {
	ctx := context.Background()
	repo := scrimdb.NewRepository(bundbtest.NewSQLite(t))

	_, err := repo.GetBan(ctx, nil, "g1", "u1")
	require.ErrorIs(t, err, scrimdb.ErrNotFound)

	require.NoError(t, repo.UpsertBan(ctx, nil, &scrimdb.Ban{GuildID: "g1", UserID: "u1", Reason: "no-show", BannedBy: "staff-1"}))
	expires := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, repo.UpsertBan(ctx, nil, &scrimdb.Ban{GuildID: "g1", UserID: "u1", Reason: "toxicity", BannedBy: "staff-2", ExpiresAt: &expires}))

	ban, err := repo.GetBan(ctx, nil, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "toxicity", ban.Reason)
	assert.Equal(t, "staff-2", ban.BannedBy)
	require.NotNil(t, ban.ExpiresAt)
	assert.True(t, ban.ActiveAt(time.Now()))
	assert.False(t, ban.ActiveAt(expires.Add(time.Minute)))

	require.NoError(t, repo.DeleteBan(ctx, nil, "g1", "u1"))
	assert.ErrorIs(t, repo.DeleteBan(ctx, nil, "g1", "u1"), scrimdb.ErrNoRowsAffected)
}

func TestScrim_RegistrationOpen(t *testing.T) {
	now := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	assert.True(t, (&scrimdb.Scrim{}).RegistrationOpen(now))
	assert.True(t, (&scrimdb.Scrim{StartsAt: &later}).RegistrationOpen(now))
	assert.False(t, (&scrimdb.Scrim{StartsAt: &earlier}).RegistrationOpen(now))
	assert.False(t, (&scrimdb.Scrim{StartsAt: &now}).RegistrationOpen(now))
}
