package handlerwrapper

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type pingPayload struct {
	ScrimID string `json:"scrim_id"`
}

func newMsg(t *testing.T, body string) *message.Message {
	t.Helper()
	msg := message.NewMessage("m1", []byte(body))
	middleware.SetCorrelationID("corr-9", msg)
	return msg
}

func TestWrapTyped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")

	var seen string
	var seenCorrelation string
	h := WrapTyped("test.ping", logger, tracer, func(ctx context.Context, p *pingPayload) ([]Result, error) {
		seen = p.ScrimID
		seenCorrelation = attr.CorrelationID(ctx)
		return []Result{{Topic: "test.pong", Payload: p, Metadata: map[string]string{"guild_id": "g1"}}}, nil
	})

	out, err := h(newMsg(t, `{"scrim_id":"s1"}`))
	require.NoError(t, err)
	require.Equal(t, "s1", seen)
	require.Equal(t, "corr-9", seenCorrelation)
	require.Len(t, out, 1)
	require.Equal(t, "test.pong", out[0].Metadata.Get(TopicMetadataKey))
	require.Equal(t, "g1", out[0].Metadata.Get("guild_id"))
	require.Equal(t, "corr-9", middleware.MessageCorrelationID(out[0]))

	var echoed pingPayload
	require.NoError(t, json.Unmarshal(out[0].Payload, &echoed))
	require.Equal(t, "s1", echoed.ScrimID)
}

func TestWrapTyped_BadPayloadIsDropped(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	called := false
	h := WrapTyped("test.ping", logger, noop.NewTracerProvider().Tracer("test"), func(context.Context, *pingPayload) ([]Result, error) {
		called = true
		return nil, nil
	})

	out, err := h(newMsg(t, `not json`))
	require.NoError(t, err)
	require.Nil(t, out)
	require.False(t, called)
}

func TestWrapTyped_HandlerErrorIsReturned(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	boom := errors.New("boom")
	h := WrapTyped("test.ping", logger, noop.NewTracerProvider().Tracer("test"), func(context.Context, *pingPayload) ([]Result, error) {
		return nil, boom
	})

	_, err := h(newMsg(t, `{}`))
	require.ErrorIs(t, err, boom)
}

func TestToMessage_RequiresTopic(t *testing.T) {
	_, err := ToMessage("c", Result{Payload: 1})
	require.Error(t, err)
}
