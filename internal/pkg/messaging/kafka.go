package messaging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
)

var (
	// ErrKafkaBrokersRequired is returned when no broker addresses are configured.
	ErrKafkaBrokersRequired = errors.New("messaging: kafka brokers are required")
	// ErrKafkaTopicRequired is returned when the topic is empty.
	ErrKafkaTopicRequired = errors.New("messaging: kafka topic is required")
	// ErrKafkaHandlerRequired is returned when Consume is called with a nil handler.
	ErrKafkaHandlerRequired = errors.New("messaging: kafka handler is required")
)

// KafkaConfig configures the Kafka implementation.
type KafkaConfig struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string
}

// Kafka is a messaging implementation backed by Apache Kafka.
type Kafka struct {
	brokers []string

	mu      sync.Mutex
	writers map[string]*kafka.Writer
	readers []*kafka.Reader
	closed  bool
}

// NewKafka returns a Kafka messaging client. Connections are created lazily
// per topic on first publish or consume.
func NewKafka(cfg KafkaConfig) (*Kafka, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrKafkaBrokersRequired
	}

	return &Kafka{
		brokers: cfg.Brokers,
		writers: make(map[string]*kafka.Writer),
	}, nil
}

// Close closes all writers and readers.
func (k *Kafka) Close() error {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return nil
	}
	k.closed = true
	writers := make([]*kafka.Writer, 0, len(k.writers))
	for _, w := range k.writers {
		writers = append(writers, w)
	}
	readers := append([]*kafka.Reader{}, k.readers...)
	k.mu.Unlock()

	var closeErr error
	for _, w := range writers {
		if err := w.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}
	for _, r := range readers {
		if err := r.Close(); err != nil {
			closeErr = errors.Join(closeErr, err)
		}
	}

	return closeErr
}

// Publish writes a message to a Kafka topic.
func (k *Kafka) Publish(ctx context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	if destination == "" {
		return PublishResult{}, ErrKafkaTopicRequired
	}

	writer, err := k.writer(destination)
	if err != nil {
		return PublishResult{}, err
	}

	kmsg := kafka.Message{
		Key:   msg.Key,
		Value: msg.Body,
	}
	for hk, hv := range msg.Headers {
		kmsg.Headers = append(kmsg.Headers, kafka.Header{Key: hk, Value: []byte(hv)})
	}

	if err := writer.WriteMessages(ctx, kmsg); err != nil {
		return PublishResult{}, fmt.Errorf("messaging: kafka publish: %w", err)
	}

	return PublishResult{Topic: destination}, nil
}

// Consume reads messages from a topic and dispatches them to handler until
// ctx is canceled. With autoAck disabled the handler must call Ack to commit
// the offset.
func (k *Kafka) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if source == "" {
		return ErrKafkaTopicRequired
	}
	if handler == nil {
		return ErrKafkaHandlerRequired
	}
	if k.isClosed() {
		return io.ErrClosedPipe
	}

	co := newConsumeOptions(opts...)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: k.brokers,
		Topic:   source,
		GroupID: co.group,
	})

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return errors.Join(io.ErrClosedPipe, reader.Close())
	}
	k.readers = append(k.readers, reader)
	k.mu.Unlock()

	msgCh := make(chan kafka.Message)

	var wg sync.WaitGroup
	for range co.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for m := range msgCh {
				km := &kafkaMessage{msg: m, reader: reader}
				err := callHandlerWithRecover(ctx, "kafka", func() error {
					return handler(ctx, km)
				})
				if err == nil && co.autoAck {
					_ = km.Ack(ctx)
				}
			}
		}()
	}

	var fetchErr error
	for {
		m, err := reader.FetchMessage(ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
				fetchErr = fmt.Errorf("messaging: kafka fetch: %w", err)
			}
			break
		}

		select {
		case msgCh <- m:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
	}

	close(msgCh)
	wg.Wait()

	return errors.Join(fetchErr, reader.Close())
}

func (k *Kafka) writer(topic string) (*kafka.Writer, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.closed {
		return nil, io.ErrClosedPipe
	}
	if w, ok := k.writers[topic]; ok {
		return w, nil
	}

	w := &kafka.Writer{
		Addr:     kafka.TCP(k.brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	k.writers[topic] = w

	return w, nil
}

func (k *Kafka) isClosed() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.closed
}
