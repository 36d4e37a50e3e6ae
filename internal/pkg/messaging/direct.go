package messaging

import (
	"context"
	"errors"
	"io"
	"sync"
)

// ErrDirectHandlerRequired is returned when Consume is called with a nil handler.
var ErrDirectHandlerRequired = errors.New("messaging: direct handler is required")

// Direct is an in-process messaging implementation for single-binary
// deployments: publishers hand messages straight to local consumers, no
// broker involved. Delivery is best effort; a slow consumer drops messages
// rather than blocking the publisher.
type Direct struct {
	mu     sync.Mutex
	subs   map[string][]chan *directMessage
	closed bool
}

// NewDirect returns an in-process messaging client.
func NewDirect() *Direct {
	return &Direct{subs: make(map[string][]chan *directMessage)}
}

// Close stops delivery to all consumers.
func (d *Direct) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	for _, chans := range d.subs {
		for _, ch := range chans {
			close(ch)
		}
	}
	d.subs = make(map[string][]chan *directMessage)

	return nil
}

// Publish hands the message to every consumer of the destination.
func (d *Direct) Publish(_ context.Context, destination string, msg OutgoingMessage) (PublishResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return PublishResult{}, io.ErrClosedPipe
	}

	dm := &directMessage{
		body:    msg.Body,
		key:     msg.Key,
		headers: msg.Headers,
		source:  destination,
	}

	for _, ch := range d.subs[destination] {
		select {
		case ch <- dm:
		default: // consumer backlog full, drop
		}
	}

	return PublishResult{Topic: destination}, nil
}

// Consume dispatches messages published to source until ctx is canceled.
func (d *Direct) Consume(ctx context.Context, source string, handler Handler, opts ...ConsumeOption) error {
	if handler == nil {
		return ErrDirectHandlerRequired
	}

	co := newConsumeOptions(opts...)

	ch := make(chan *directMessage, 64)

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return io.ErrClosedPipe
	}
	d.subs[source] = append(d.subs[source], ch)
	d.mu.Unlock()

	defer d.unsubscribe(source, ch)

	var wg sync.WaitGroup
	done := make(chan struct{})
	for range co.concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				case m, ok := <-ch:
					if !ok {
						return
					}
					_ = callHandlerWithRecover(ctx, "direct", func() error {
						return handler(ctx, m)
					})
				}
			}
		}()
	}

	<-ctx.Done()
	close(done)
	wg.Wait()

	return nil
}

func (d *Direct) unsubscribe(source string, ch chan *directMessage) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	chans := d.subs[source]
	for i, c := range chans {
		if c == ch {
			d.subs[source] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
}

// directMessage adapts an in-process hand-off to the Message interface.
type directMessage struct {
	body    []byte
	key     []byte
	headers map[string]string
	source  string
}

var _ Message = (*directMessage)(nil)

func (m *directMessage) Body() []byte {
	return m.body
}

func (m *directMessage) Key() []byte {
	return m.key
}

func (m *directMessage) Header(key string) string {
	return m.headers[key]
}

func (m *directMessage) Source() string {
	return m.source
}

// Ack is a no-op; there is nothing durable to acknowledge.
func (m *directMessage) Ack(context.Context) error {
	return nil
}
