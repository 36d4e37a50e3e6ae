// Package messaging is a broker-agnostic publish/consume layer. The OTP
// delivery pipeline publishes through it so deployments can fan codes out via
// NATS or Kafka without touching the auth module.
package messaging

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrUnsupported is returned when the selected broker cannot perform an
// operation.
var ErrUnsupported = errors.New("messaging: unsupported operation")

// Messaging is a broker-agnostic client that can publish and consume.
type Messaging interface {
	io.Closer

	Publisher
	Consumer
}

// Publisher publishes messages to a destination (topic or subject).
type Publisher interface {
	Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error)
}

// Consumer consumes messages from a source. Consume blocks until ctx is
// canceled or the underlying subscription fails.
type Consumer interface {
	Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error
}

// Handler processes one received message. With auto-ack enabled the wrapper
// acks after the handler returns nil.
type Handler func(ctx context.Context, msg Message) error

// OutgoingMessage is a broker-agnostic message to publish.
type OutgoingMessage struct {
	// Body is the message payload.
	Body []byte
	// Key is used by Kafka for partitioning; NATS ignores it.
	Key []byte
	// Headers are propagated when the broker supports them.
	Headers map[string]string
}

// PublishResult carries optional broker-specific publish metadata.
type PublishResult struct {
	// Topic is the destination the message was written to.
	Topic string
	// Partition and Offset are set by Kafka-like brokers.
	Partition int32
	Offset    int64
	// Timestamp is when the client handed the message to the broker.
	Timestamp time.Time
}

// Message is a broker-agnostic received message.
type Message interface {
	// Body returns the message payload.
	Body() []byte
	// Key returns the message key, when the broker has one.
	Key() []byte
	// Header returns the named header value, or "".
	Header(key string) string
	// Source returns the topic or subject the message arrived on.
	Source() string
	// Ack acknowledges successful processing.
	Ack(ctx context.Context) error
}
