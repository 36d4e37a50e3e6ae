package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danukusuma/gatekeeper/internal/notify/usecase"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/mail"
)

type fakeMail struct {
	mu       sync.Mutex
	sent     []mail.Message
	failures int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("smtp: connection reset")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMail) Close() error {
	return nil
}

func TestDeliverSendsCode(t *testing.T) {
	client := &fakeMail{}
	e := New(client, instrument.NewNoop())

	expiresAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	err := e.Deliver(context.Background(), usecase.Delivery{
		Identity:  "alice@example.com",
		Code:      "428913",
		ExpiresAt: expiresAt,
	})
	if err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}

	if len(client.sent) != 1 {
		t.Fatalf("messages sent = %d, want 1", len(client.sent))
	}
	msg := client.sent[0]
	if len(msg.To) != 1 || msg.To[0] != "alice@example.com" {
		t.Errorf("to = %v, want the identity", msg.To)
	}
	if msg.Subject != "Your one-time login code" {
		t.Errorf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "428913") {
		t.Errorf("body %q does not carry the code", msg.Body)
	}
	if !strings.Contains(msg.Body, expiresAt.Format(time.RFC1123)) {
		t.Errorf("body %q does not carry the expiry", msg.Body)
	}
}

func TestDeliverRetriesTransientFailures(t *testing.T) {
	client := &fakeMail{failures: 2}
	e := New(client, instrument.NewNoop())

	if err := e.Deliver(context.Background(), usecase.Delivery{Identity: "alice@example.com", Code: "428913"}); err != nil {
		t.Fatalf("Deliver() error = %v, want success after retries", err)
	}
	if len(client.sent) != 1 {
		t.Errorf("messages sent = %d, want 1", len(client.sent))
	}
}

func TestDeliverGivesUpAfterMaxRetries(t *testing.T) {
	client := &fakeMail{failures: maxSendRetries + 1}
	e := New(client, instrument.NewNoop())

	if err := e.Deliver(context.Background(), usecase.Delivery{Identity: "alice@example.com", Code: "428913"}); err == nil {
		t.Fatal("Deliver() error = nil, want failure after retries are exhausted")
	}
	if len(client.sent) != 0 {
		t.Errorf("messages sent = %d, want 0", len(client.sent))
	}
}
