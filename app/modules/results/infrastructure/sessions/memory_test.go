package resultssessions

import (
	"context"
	"testing"
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeContract exercises the behavior every session store must share.
func storeContract(t *testing.T, store interface {
	Begin(context.Context, string, resultsdomain.MatchSession) error
	Collect(context.Context, string, string) (int, error)
	Finish(context.Context, string) (resultsdomain.MatchSession, error)
},
) {
	t.Helper()
	ctx := context.Background()
	started := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)

	t.Run("collect without session", func(t *testing.T) {
		_, err := store.Collect(ctx, "chan-none", "https://cdn/x.png")
		assert.ErrorIs(t, err, resultsdomain.ErrNoSession)
	})

	t.Run("finish without session", func(t *testing.T) {
		_, err := store.Finish(ctx, "chan-none")
		assert.ErrorIs(t, err, resultsdomain.ErrNoSession)
	})

	t.Run("begin collect finish", func(t *testing.T) {
		require.NoError(t, store.Begin(ctx, "chan-1", resultsdomain.MatchSession{ScrimID: "s1", Game: 2, StartedAt: started}))

		n, err := store.Collect(ctx, "chan-1", "https://cdn/a.png")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = store.Collect(ctx, "chan-1", "https://cdn/b.png")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		got, err := store.Finish(ctx, "chan-1")
		require.NoError(t, err)
		assert.Equal(t, "s1", got.ScrimID)
		assert.Equal(t, 2, got.Game)
		assert.Equal(t, []string{"https://cdn/a.png", "https://cdn/b.png"}, got.Images)
		assert.True(t, started.Equal(got.StartedAt))

		_, err = store.Finish(ctx, "chan-1")
		assert.ErrorIs(t, err, resultsdomain.ErrNoSession)
	})

	t.Run("begin replaces previous session", func(t *testing.T) {
		require.NoError(t, store.Begin(ctx, "chan-2", resultsdomain.MatchSession{ScrimID: "s1", Game: 1}))
		_, err := store.Collect(ctx, "chan-2", "https://cdn/old.png")
		require.NoError(t, err)

		require.NoError(t, store.Begin(ctx, "chan-2", resultsdomain.MatchSession{ScrimID: "s1", Game: 3}))
		got, err := store.Finish(ctx, "chan-2")
		require.NoError(t, err)
		assert.Equal(t, 3, got.Game)
		assert.Empty(t, got.Images)
		assert.NotNil(t, got.Images)
	})

	t.Run("channels are independent", func(t *testing.T) {
		require.NoError(t, store.Begin(ctx, "chan-a", resultsdomain.MatchSession{ScrimID: "s1", Game: 1}))
		require.NoError(t, store.Begin(ctx, "chan-b", resultsdomain.MatchSession{ScrimID: "s2", Game: 1}))
		_, err := store.Collect(ctx, "chan-a", "https://cdn/a.png")
		require.NoError(t, err)

		b, err := store.Finish(ctx, "chan-b")
		require.NoError(t, err)
		assert.Empty(t, b.Images)

		a, err := store.Finish(ctx, "chan-a")
		require.NoError(t, err)
		assert.Len(t, a.Images, 1)
	})
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore(time.Hour))
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Begin(ctx, "chan", resultsdomain.MatchSession{ScrimID: "s1", Game: 1}))

	now = now.Add(9 * time.Minute)
	_, err := store.Collect(ctx, "chan", "https://cdn/a.png")
	require.NoError(t, err, "collect refreshes the expiry")

	now = now.Add(9 * time.Minute)
	_, err = store.Collect(ctx, "chan", "https://cdn/b.png")
	require.NoError(t, err)

	now = now.Add(11 * time.Minute)
	_, err = store.Finish(ctx, "chan")
	assert.ErrorIs(t, err, resultsdomain.ErrNoSession)
}

func TestMemoryStore_BeginPrunesAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	store := NewMemoryStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Begin(ctx, "chan-gone-1", resultsdomain.MatchSession{ScrimID: "s1", Game: 1}))
	require.NoError(t, store.Begin(ctx, "chan-gone-2", resultsdomain.MatchSession{ScrimID: "s1", Game: 2}))

	now = now.Add(5 * time.Minute)
	require.NoError(t, store.Begin(ctx, "chan-recent", resultsdomain.MatchSession{ScrimID: "s1", Game: 3}))

	now = now.Add(6 * time.Minute)
	require.NoError(t, store.Begin(ctx, "chan-new", resultsdomain.MatchSession{ScrimID: "s2", Game: 1}))

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Len(t, store.sessions, 2)
	assert.Contains(t, store.sessions, "chan-recent")
	assert.Contains(t, store.sessions, "chan-new")
}

func TestMemoryStore_BeginCopiesImages(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	images := []string{"https://cdn/a.png"}

	require.NoError(t, store.Begin(ctx, "chan", resultsdomain.MatchSession{ScrimID: "s1", Game: 1, Images: images}))
	images[0] = "mutated"

	got, err := store.Finish(ctx, "chan")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/a.png"}, got.Images)
}
