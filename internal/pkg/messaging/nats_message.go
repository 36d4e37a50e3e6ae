package messaging

import (
	"context"

	"github.com/nats-io/nats.go"
)

// natsMessage adapts *nats.Msg to the Message interface.
type natsMessage struct {
	msg *nats.Msg
}

var _ Message = (*natsMessage)(nil)

func (m *natsMessage) Body() []byte {
	return m.msg.Data
}

func (m *natsMessage) Key() []byte {
	return nil
}

func (m *natsMessage) Header(key string) string {
	return m.msg.Header.Get(key)
}

func (m *natsMessage) Source() string {
	return m.msg.Subject
}

// Ack is a no-op; core NATS has at-most-once delivery.
func (m *natsMessage) Ack(context.Context) error {
	return nil
}
