package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danukusuma/gatekeeper/internal/pkg/config"
	"github.com/danukusuma/gatekeeper/internal/pkg/idempotency"
	"github.com/danukusuma/gatekeeper/internal/pkg/instrument"
	"github.com/danukusuma/gatekeeper/internal/pkg/validator"
)

type fakeDeliverer struct {
	mu         sync.Mutex
	deliveries []Delivery
	err        error
}

func (f *fakeDeliverer) Deliver(_ context.Context, d Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deliveries = append(f.deliveries, d)
	return nil
}

func (f *fakeDeliverer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deliveries)
}

// memDeduper mirrors the redis-backed semantics in process: first run per
// key wins, failed runs release the key.
type memDeduper struct {
	mu   sync.Mutex
	done map[string]bool
}

func (d *memDeduper) Once(ctx context.Context, key string, _ time.Duration, fn func(context.Context) error) error {
	d.mu.Lock()
	if d.done == nil {
		d.done = make(map[string]bool)
	}
	if d.done[key] {
		d.mu.Unlock()
		return idempotency.ErrAlreadyProcessed
	}
	d.done[key] = true
	d.mu.Unlock()

	if err := fn(ctx); err != nil {
		d.mu.Lock()
		delete(d.done, key)
		d.mu.Unlock()
		return err
	}
	return nil
}

func newTestUsecase(t *testing.T, deliverer *fakeDeliverer, dedupe idempotency.Deduper) *Usecase {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  notify:\n    dedupe_ttl_minutes: 10\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	return New(Dependency{
		Deliverer:   deliverer,
		Idempotency: dedupe,
		Validator:   v10,
		Config:      cfg,
		Instrument:  instrument.NewNoop(),
	})
}

func TestConsumeOtpIssuedDelivers(t *testing.T) {
	deliverer := &fakeDeliverer{}
	uc := newTestUsecase(t, deliverer, idempotency.NewNoop())

	expiresAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
	err := uc.ConsumeOtpIssued(context.Background(), ConsumeOtpIssuedInput{
		EventID:   "evt-1",
		Identity:  "alice",
		Code:      "428913",
		ExpiresAt: expiresAt,
	})
	if err != nil {
		t.Fatalf("ConsumeOtpIssued() error = %v", err)
	}

	if deliverer.count() != 1 {
		t.Fatalf("deliveries = %d, want 1", deliverer.count())
	}
	got := deliverer.deliveries[0]
	if got.Identity != "alice" || got.Code != "428913" || !got.ExpiresAt.Equal(expiresAt) {
		t.Errorf("delivery = %+v, want alice/428913/%v", got, expiresAt)
	}
}

func TestConsumeOtpIssuedDedupesByEventID(t *testing.T) {
	deliverer := &fakeDeliverer{}
	uc := newTestUsecase(t, deliverer, &memDeduper{})

	in := ConsumeOtpIssuedInput{EventID: "evt-1", Identity: "alice", Code: "428913"}
	for range 3 {
		if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
			t.Fatalf("ConsumeOtpIssued() error = %v", err)
		}
	}

	if deliverer.count() != 1 {
		t.Errorf("deliveries for one event = %d, want 1", deliverer.count())
	}

	in.EventID = "evt-2"
	if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
		t.Fatalf("ConsumeOtpIssued() error = %v", err)
	}
	if deliverer.count() != 2 {
		t.Errorf("deliveries after a second event = %d, want 2", deliverer.count())
	}
}

func TestConsumeOtpIssuedDeliveryFailureReleasesKey(t *testing.T) {
	deliverer := &fakeDeliverer{err: errors.New("smtp down")}
	uc := newTestUsecase(t, deliverer, &memDeduper{})

	in := ConsumeOtpIssuedInput{EventID: "evt-1", Identity: "alice", Code: "428913"}
	if err := uc.ConsumeOtpIssued(context.Background(), in); err == nil {
		t.Fatal("ConsumeOtpIssued() error = nil, want delivery failure")
	}

	// A redelivery after the failure gets another attempt.
	deliverer.mu.Lock()
	deliverer.err = nil
	deliverer.mu.Unlock()

	if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
		t.Fatalf("ConsumeOtpIssued() retry error = %v", err)
	}
	if deliverer.count() != 1 {
		t.Errorf("deliveries = %d, want 1", deliverer.count())
	}
}

func TestConsumeOtpIssuedInvalidPayloadDropped(t *testing.T) {
	deliverer := &fakeDeliverer{}
	uc := newTestUsecase(t, deliverer, idempotency.NewNoop())

	// A malformed event is logged and dropped, never retried.
	for _, in := range []ConsumeOtpIssuedInput{
		{Identity: "alice", Code: "428913"},
		{EventID: "evt-1", Code: "428913"},
		{EventID: "evt-1", Identity: "alice"},
	} {
		if err := uc.ConsumeOtpIssued(context.Background(), in); err != nil {
			t.Errorf("ConsumeOtpIssued(%+v) error = %v, want nil", in, err)
		}
	}

	if deliverer.count() != 0 {
		t.Errorf("deliveries = %d, want 0", deliverer.count())
	}
}
