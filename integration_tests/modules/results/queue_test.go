//go:build integration

package results_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/auth/domain"
	resultsservice "github.com/Black-And-White-Club/scrim-bot/app/modules/results/application"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	"github.com/Black-And-White-Club/scrim-bot/integration_tests/testutils"
	resultsevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const screenshot = "MATCH RESULT\n#1\nDS|Alice\nDS|Bob\n7 ELIMINATIONS\n#2\nTX.Carl\nTX.Dan\n3 ELIMINATIONS\n#3\nrandom\nplayers\n1 ELIMINATION\n"

func TestQueuedOCR_EndToEnd(t *testing.T) {
	detector := &testutils.StaticDetector{Text: screenshot}
	a := env.NewApp(t, detector)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	created, err := a.Scrim.Service.CreateScrim(ctx, scrimservice.CreateScrimRequest{GuildID: "g1", Name: "Queued Scrim"})
	require.NoError(t, err)
	require.True(t, created.IsSuccess())
	scrimID := (*created.Success).ID

	for i, tag := range []string{"DS", "TX"} {
		res, err := a.Scrim.Service.RegisterTeam(ctx, scrimservice.RegisterTeamRequest{
			ScrimID: scrimID, Tag: tag, Name: tag + " Team", Slot: i + 1, OwnerID: "owner-" + tag,
		})
		require.NoError(t, err)
		require.True(t, res.IsSuccess())
	}

	processed, err := a.EventBus.Subscriber().Subscribe(ctx, resultsevents.ResultsProcessedV1)
	require.NoError(t, err)

	require.NoError(t, a.Results.Start(ctx))

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	tok, err := a.Auth.Provider().GenerateToken(&authdomain.Claims{UserID: "staff-1", GuildID: "g1", Role: authdomain.RoleOrganizer}, time.Hour)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/scrims/"+scrimID+"/games/1/ocr", strings.NewReader(`{"image_urls":["https://cdn/q1.png","https://cdn/q2.png"]}`))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	select {
	case msg := <-processed:
		msg.Ack()
		var got resultsevents.ResultsProcessedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, scrimID, got.ScrimID)
		assert.Equal(t, 2, got.Images)
		assert.Equal(t, 4, got.RowsWritten)
	case <-ctx.Done():
		t.Fatal("timed out waiting for the queued batch")
	}

	assert.ElementsMatch(t, []string{"https://cdn/q1.png", "https://cdn/q2.png"}, detector.Calls())

	lb, err := a.Results.Service.GetLeaderboard(ctx, scrimID)
	require.NoError(t, err)
	require.True(t, lb.IsSuccess())
	board := *lb.Success
	require.Len(t, board.Entries, 2)
	assert.Equal(t, "DS", board.Entries[0].TeamTag)
	assert.Equal(t, 7, board.Entries[0].Kills)
	assert.Equal(t, 1, board.Entries[0].Games, "repeated screenshots of a game upsert one row per team")
	assert.Equal(t, "TX", board.Entries[1].TeamTag)
}

func TestQueuedOCR_UnknownScrimPublishesFailure(t *testing.T) {
	a := env.NewApp(t, &testutils.StaticDetector{Text: screenshot})
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	failed, err := a.EventBus.Subscriber().Subscribe(ctx, resultsevents.MatchSessionFailedV1)
	require.NoError(t, err)
	require.NoError(t, a.Results.Start(ctx))

	res, err := a.Results.Service.SubmitBatch(ctx, resultsservice.BatchRequest{
		ScrimID:   "missing",
		Game:      1,
		Images:    []string{"https://cdn/x.png"},
		ChannelID: "chan-9",
	})
	require.NoError(t, err)
	require.True(t, res.IsSuccess())
	assert.True(t, (*res.Success).Queued)

	select {
	case msg := <-failed:
		msg.Ack()
		var got resultsevents.MatchSessionFailedPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "chan-9", got.ChannelID)
		assert.Equal(t, resultsservice.ErrScrimNotFound.Error(), got.Reason)
	case <-ctx.Done():
		t.Fatal("timed out waiting for the failure event")
	}
}
