package otpledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLedger() (*Memory, *fakeClock) {
	clk := newFakeClock()
	return NewMemory(hash.NewHMACSHA256("ledger-test"), clk), clk
}

func TestMemoryVerifyMatchConsumes(t *testing.T) {
	ctx := context.Background()
	ledger, clk := newTestLedger()

	expiresAt, err := ledger.Issue(ctx, "alice", "428913", 5*time.Minute)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if want := clk.Now().Add(5 * time.Minute); !expiresAt.Equal(want) {
		t.Errorf("Issue() expiry = %v, want %v", expiresAt, want)
	}

	if err := ledger.Verify(ctx, "alice", "428913"); err != nil {
		t.Fatalf("Verify() error = %v, want nil", err)
	}
	if err := ledger.Verify(ctx, "alice", "428913"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Verify() after consume error = %v, want ErrNotFound", err)
	}
}

func TestMemoryVerifyMismatchKeepsEntry(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	_, _ = ledger.Issue(ctx, "alice", "428913", 5*time.Minute)

	if err := ledger.Verify(ctx, "alice", "111111"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("Verify() error = %v, want ErrMismatch", err)
	}
	if err := ledger.Verify(ctx, "alice", "222222"); !errors.Is(err, ErrMismatch) {
		t.Fatalf("second Verify() error = %v, want ErrMismatch", err)
	}
	if err := ledger.Verify(ctx, "alice", "428913"); err != nil {
		t.Errorf("Verify() with the right code after mismatches error = %v, want nil", err)
	}
}

func TestMemoryVerifyExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	ledger, clk := newTestLedger()

	_, _ = ledger.Issue(ctx, "alice", "428913", 5*time.Minute)
	clk.Advance(5*time.Minute + time.Second)

	if err := ledger.Verify(ctx, "alice", "428913"); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify() error = %v, want ErrExpired", err)
	}
	if err := ledger.Verify(ctx, "alice", "428913"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Verify() after expiry consumed error = %v, want ErrNotFound", err)
	}
}

func TestMemoryVerifyUnknownIdentity(t *testing.T) {
	ledger, _ := newTestLedger()

	if err := ledger.Verify(context.Background(), "nobody", "428913"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Verify() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryIssueReplacesPreviousCode(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	_, _ = ledger.Issue(ctx, "alice", "111111", 5*time.Minute)
	_, _ = ledger.Issue(ctx, "alice", "222222", 5*time.Minute)

	if err := ledger.Verify(ctx, "alice", "111111"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() with the replaced code error = %v, want ErrMismatch", err)
	}
	if err := ledger.Verify(ctx, "alice", "222222"); err != nil {
		t.Errorf("Verify() with the latest code error = %v, want nil", err)
	}
}

func TestMemoryIdentitiesIsolated(t *testing.T) {
	ctx := context.Background()
	ledger, _ := newTestLedger()

	_, _ = ledger.Issue(ctx, "alice", "111111", 5*time.Minute)
	_, _ = ledger.Issue(ctx, "bob", "222222", 5*time.Minute)

	if err := ledger.Verify(ctx, "alice", "222222"); !errors.Is(err, ErrMismatch) {
		t.Errorf("Verify() with bob's code for alice error = %v, want ErrMismatch", err)
	}
	if err := ledger.Verify(ctx, "alice", "111111"); err != nil {
		t.Errorf("Verify() for alice error = %v, want nil", err)
	}
	if err := ledger.Verify(ctx, "bob", "222222"); err != nil {
		t.Errorf("Verify() for bob error = %v, want nil", err)
	}
}

func TestMemorySweepDropsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	ledger, clk := newTestLedger()

	_, _ = ledger.Issue(ctx, "stale", "111111", time.Minute)
	_, _ = ledger.Issue(ctx, "fresh", "222222", time.Hour)

	clk.Advance(2 * time.Minute)
	ledger.sweep()

	ledger.mu.Lock()
	_, staleKept := ledger.entries["stale"]
	_, freshKept := ledger.entries["fresh"]
	ledger.mu.Unlock()

	if staleKept {
		t.Error("expired entry survived the sweep")
	}
	if !freshKept {
		t.Error("live entry dropped by the sweep")
	}
}
