// Package eventbus wires the watermill publisher and subscriber used by the
// module routers, over NATS or an in-process channel.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Config selects and configures the transport.
type Config struct {
	// URL of the NATS server. Empty selects the in-process transport.
	URL string
	// NKeySeed authenticates to NATS with an nkey when set.
	NKeySeed string
	// QueueGroup load-balances subscriptions across replicas.
	QueueGroup string
}

// EventBus owns the publisher/subscriber pair for the process.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	logger     *slog.Logger
}

// New connects the bus. With an empty URL messages stay inside the process.
func New(cfg Config, logger *slog.Logger) (*EventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	if cfg.URL == "" {
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, wmLogger)
		logger.Info("Event bus using in-process transport")
		return &EventBus{publisher: ch, subscriber: ch, logger: logger}, nil
	}

	opts := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Name("scrim-bot"),
	}
	if cfg.NKeySeed != "" {
		opt, err := nkeyOption(cfg.NKeySeed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	marshaler := &nats.NATSMarshaler{}
	jsConfig := nats.JetStreamConfig{Disabled: true}

	publisher, err := nats.NewPublisher(nats.PublisherConfig{
		URL:         cfg.URL,
		Marshaler:   marshaler,
		NatsOptions: opts,
		JetStream:   jsConfig,
	}, wmLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(nats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		Unmarshaler:      marshaler,
		NatsOptions:      opts,
		JetStream:        jsConfig,
	}, wmLogger)
	if err != nil {
		_ = publisher.Close()
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	logger.Info("Event bus connected to NATS", slog.String("url", cfg.URL))
	return &EventBus{publisher: publisher, subscriber: subscriber, logger: logger}, nil
}

func nkeyOption(seed string) (nc.Option, error) {
	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("invalid NATS nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive NATS nkey public key: %w", err)
	}
	return nc.Nkey(pub, kp.Sign), nil
}

func (b *EventBus) Publisher() message.Publisher { return b.publisher }

func (b *EventBus) Subscriber() message.Subscriber { return b.subscriber }

// PublishJSON marshals payload and publishes it on topic, carrying the
// correlation ID found on ctx.
func (b *EventBus) PublishJSON(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	b.logger.DebugContext(ctx, "Published event",
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
		attr.ExtractCorrelationID(ctx),
	)
	return nil
}

// NewMessage builds a JSON watermill message for payload.
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	id := attr.CorrelationID(ctx)
	if id == "" {
		id = watermill.NewUUID()
	}
	middleware.SetCorrelationID(id, msg)
	return msg, nil
}

func (b *EventBus) Close() error {
	return errors.Join(b.publisher.Close(), b.subscriber.Close())
}
