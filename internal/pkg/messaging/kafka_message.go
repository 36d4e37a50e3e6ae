package messaging

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// kafkaMessage adapts kafka.Message to the Message interface.
type kafkaMessage struct {
	msg    kafka.Message
	reader *kafka.Reader
}

var _ Message = (*kafkaMessage)(nil)

func (m *kafkaMessage) Body() []byte {
	return m.msg.Value
}

func (m *kafkaMessage) Key() []byte {
	return m.msg.Key
}

func (m *kafkaMessage) Header(key string) string {
	for _, h := range m.msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (m *kafkaMessage) Source() string {
	return m.msg.Topic
}

// Ack commits the message offset. Commits only take effect when the reader
// was created with a consumer group.
func (m *kafkaMessage) Ack(ctx context.Context) error {
	return m.reader.CommitMessages(ctx, m.msg)
}
