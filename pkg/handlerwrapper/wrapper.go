// Package handlerwrapper adapts typed event handlers to watermill handler
// functions: JSON decoding, correlation, tracing and logging live here so the
// handlers only see payload structs.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scrim-bot/internal/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopicMetadataKey carries the destination topic of an outgoing message.
const TopicMetadataKey = "topic"

// Result is one outgoing event produced by a handler.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTyped decodes the message into T, calls handler, and turns its results
// into watermill messages tagged with their topic. Undecodable messages are
// logged and acknowledged so they are not redelivered.
func WrapTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(context.Context, *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		ctx := attr.WithCorrelationID(msg.Context(), correlationID)

		ctx, span := tracer.Start(ctx, handlerName, trace.WithAttributes(
			attribute.String("message_id", msg.UUID),
			attribute.String("correlation_id", correlationID),
		))
		defer span.End()

		start := time.Now()
		logger.InfoContext(ctx, handlerName+" triggered",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_id", msg.UUID),
		)

		payload := new(T)
		if err := json.Unmarshal(msg.Payload, payload); err != nil {
			logger.ErrorContext(ctx, "Dropping undecodable message",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			span.RecordError(err)
			return nil, nil
		}

		out, err := handler(ctx, payload)
		if err != nil {
			logger.ErrorContext(ctx, handlerName+" failed",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
				attr.Duration("duration", time.Since(start)),
			)
			span.RecordError(err)
			return nil, err
		}

		messages := make([]*message.Message, 0, len(out))
		for _, r := range out {
			m, err := ToMessage(correlationID, r)
			if err != nil {
				span.RecordError(err)
				return nil, err
			}
			messages = append(messages, m)
		}

		logger.InfoContext(ctx, handlerName+" completed",
			attr.ExtractCorrelationID(ctx),
			attr.Int("outgoing", len(messages)),
			attr.Duration("duration", time.Since(start)),
		)
		return messages, nil
	}
}

// ToMessage encodes r as a JSON message carrying its topic and correlation ID.
func ToMessage(correlationID string, r Result) (*message.Message, error) {
	if r.Topic == "" {
		return nil, fmt.Errorf("handler result has no topic")
	}
	body, err := json.Marshal(r.Payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", r.Topic, err)
	}

	m := message.NewMessage(watermill.NewUUID(), body)
	for k, v := range r.Metadata {
		m.Metadata.Set(k, v)
	}
	m.Metadata.Set(TopicMetadataKey, r.Topic)
	if correlationID != "" {
		middleware.SetCorrelationID(correlationID, m)
	}
	return m, nil
}
