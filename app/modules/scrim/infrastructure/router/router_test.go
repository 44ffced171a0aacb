package scrimrouter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	resultsdomain "github.com/Black-And-White-Club/scrim-bot/app/modules/results/domain"
	scrimservice "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/application"
	scrimhandlers "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/handlers"
	scrimdb "github.com/Black-And-White-Club/scrim-bot/app/modules/scrim/infrastructure/repositories"
	scrimevents "github.com/Black-And-White-Club/scrim-bot/pkg/events/scrim"
	"github.com/Black-And-White-Club/scrim-bot/pkg/results"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

type registeringService struct {
	scrimservice.Service
}

func (registeringService) RegisterTeam(_ context.Context, req scrimservice.RegisterTeamRequest) (scrimservice.TeamResult, error) {
	return results.SuccessResult[*scrimdb.Team, error](&scrimdb.Team{
		ScrimID: req.ScrimID, Slot: req.Slot, OwnerID: req.OwnerID, Tag: req.Tag, Name: req.Name,
	}), nil
}

func (registeringService) GetScoringConfig(context.Context, string) (scrimservice.ScoringResult, error) {
	return results.SuccessResult[resultsdomain.ScoringConfig, error](resultsdomain.DefaultScoringConfig()), nil
}

func TestScrimRouter_RoutesRegistration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	wmLogger := watermill.NewSlogLogger(logger)
	bus := gochannel.NewGoChannel(gochannel.Config{}, wmLogger)
	t.Cleanup(func() { _ = bus.Close() })

	router, err := message.NewRouter(message.RouterConfig{}, wmLogger)
	require.NoError(t, err)

	tracer := noop.NewTracerProvider().Tracer("test")
	r := NewScrimRouter(logger, router, bus, bus, tracer)
	r.RegisterHandlers(scrimhandlers.NewScrimHandlers(registeringService{}, logger, tracer))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	registered, err := bus.Subscribe(ctx, scrimevents.TeamRegisteredV1)
	require.NoError(t, err)

	go func() { _ = router.Run(ctx) }()
	<-router.Running()

	body, err := json.Marshal(scrimevents.TeamRegisterRequestedPayloadV1{
		ScrimID: "s1", Tag: "ALP", Name: "Alpha", Slot: 1, OwnerID: "u1",
	})
	require.NoError(t, err)
	require.NoError(t, bus.Publish(scrimevents.TeamRegisterRequestedV1, message.NewMessage(watermill.NewUUID(), body)))

	select {
	case msg := <-registered:
		msg.Ack()
		var got scrimevents.TeamRegisteredPayloadV1
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		require.Equal(t, "ALP", got.Tag)
		require.Equal(t, 1, got.Slot)
	case <-ctx.Done():
		t.Fatal("timed out waiting for registered event")
	}
}
