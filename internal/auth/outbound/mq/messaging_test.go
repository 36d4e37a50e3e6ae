package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/danukusuma/gatekeeper/internal/auth/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/messaging"
	"github.com/danukusuma/gatekeeper/internal/shared/event"
)

type fakePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.destination = destination
	f.msg = msg
	return messaging.PublishResult{Topic: destination}, f.err
}

func TestPublishOtpIssued(t *testing.T) {
	pub := &fakePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())

	expiresAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	ctx := instrument.SetCorrelationID(context.Background(), "corr-1")
	err := m.PublishOtpIssued(ctx, usecase.OtpIssuedEvent{
		EventID:   "evt-1",
		Identity:  "alice",
		Code:      "428913",
		ExpiresAt: expiresAt,
	})
	if err != nil {
		t.Fatalf("PublishOtpIssued() error = %v", err)
	}

	if pub.destination != event.OtpIssuedDestination {
		t.Errorf("destination = %q, want %q", pub.destination, event.OtpIssuedDestination)
	}
	if got := string(pub.msg.Key); got != "alice" {
		t.Errorf("key = %q, want the identity", got)
	}
	if got := pub.msg.Headers["cID"]; got != "corr-1" {
		t.Errorf("cID header = %q, want %q", got, "corr-1")
	}

	var payload event.OtpIssuedMessage
	if err := json.Unmarshal(pub.msg.Body, &payload); err != nil {
		t.Fatalf("body %q: %v", pub.msg.Body, err)
	}
	if payload.EventID != "evt-1" || payload.Identity != "alice" || payload.Code != "428913" || !payload.ExpiresAt.Equal(expiresAt) {
		t.Errorf("payload = %+v, want the event fields", payload)
	}
}

func TestPublishOtpIssuedBrokerError(t *testing.T) {
	wantErr := errors.New("broker down")
	m := NewMessaging(&fakePublisher{err: wantErr}, instrument.NewNoop())

	err := m.PublishOtpIssued(context.Background(), usecase.OtpIssuedEvent{EventID: "evt-1", Identity: "alice", Code: "428913"})
	if !errors.Is(err, wantErr) {
		t.Errorf("PublishOtpIssued() error = %v, want %v", err, wantErr)
	}
}
