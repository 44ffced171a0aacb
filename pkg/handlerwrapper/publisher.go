package handlerwrapper

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
)

// TopicPublisher publishes each message to the topic named in its metadata,
// falling back to the topic passed by the router.
type TopicPublisher struct {
	next message.Publisher
}

// NewTopicPublisher wraps next.
func NewTopicPublisher(next message.Publisher) *TopicPublisher {
	return &TopicPublisher{next: next}
}

func (p *TopicPublisher) Publish(topic string, messages ...*message.Message) error {
	for _, msg := range messages {
		dest := msg.Metadata.Get(TopicMetadataKey)
		if dest == "" {
			dest = topic
		}
		if dest == "" {
			return fmt.Errorf("message %s has no destination topic", msg.UUID)
		}
		if err := p.next.Publish(dest, msg); err != nil {
			return fmt.Errorf("publish to %s: %w", dest, err)
		}
	}
	return nil
}

// Close is a no-op; the wrapped publisher is owned by the event bus.
func (p *TopicPublisher) Close() error {
	return nil
}
