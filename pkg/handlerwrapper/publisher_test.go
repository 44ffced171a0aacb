package handlerwrapper

import (
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topics []string
}

func (r *recordingPublisher) Publish(topic string, messages ...*message.Message) error {
	for range messages {
		r.topics = append(r.topics, topic)
	}
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func TestTopicPublisher(t *testing.T) {
	rec := &recordingPublisher{}
	p := NewTopicPublisher(rec)

	a, err := ToMessage("c1", Result{Topic: "scrim.a", Payload: 1})
	require.NoError(t, err)
	b := message.NewMessage("b", []byte("{}"))

	require.NoError(t, p.Publish("fallback", a, b))
	require.Equal(t, []string{"scrim.a", "fallback"}, rec.topics)

	require.Error(t, p.Publish("", message.NewMessage("c", nil)))
}
