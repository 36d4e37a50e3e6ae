package otpledger

import (
	"context"
	"sync"
	"time"

	uatomic "go.uber.org/atomic"

	"github.com/danukusuma/gatekeeper/internal/auth/entity"
	"github.com/danukusuma/gatekeeper/internal/pkg/clock"
	"github.com/danukusuma/gatekeeper/internal/pkg/hash"
)

// Memory is an in-process Ledger. Verification is lazy; Run adds a periodic
// sweep so codes that are never verified do not accumulate.
type Memory struct {
	hasher hash.Hash
	clock  clock.Clocker

	mu      sync.Mutex
	entries map[string]entity.OtpEntry

	sweeping uatomic.Bool
}

// NewMemory returns an empty in-process ledger.
func NewMemory(hasher hash.Hash, clk clock.Clocker) *Memory {
	return &Memory{
		hasher:  hasher,
		clock:   clk,
		entries: make(map[string]entity.OtpEntry),
	}
}

func (m *Memory) Issue(_ context.Context, identity, code string, ttl time.Duration) (time.Time, error) {
	codeHash, err := m.hasher.Hash(code)
	if err != nil {
		return time.Time{}, err
	}

	expiresAt := m.clock.Now().Add(ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[identity] = entity.OtpEntry{
		CodeHash:  string(codeHash),
		ExpiresAt: expiresAt,
	}

	return expiresAt, nil
}

func (m *Memory) Verify(_ context.Context, identity, submitted string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[identity]
	if !ok {
		return ErrNotFound
	}

	if entry.Expired(m.clock.Now()) {
		delete(m.entries, identity)
		return ErrExpired
	}

	if !m.hasher.Verify(entry.CodeHash, submitted) {
		return ErrMismatch
	}

	delete(m.entries, identity)

	return nil
}

// Run sweeps expired entries every interval until ctx is canceled. At most
// one sweeper runs per ledger.
func (m *Memory) Run(ctx context.Context, interval time.Duration) error {
	if !m.sweeping.CompareAndSwap(false, true) {
		return nil
	}
	defer m.sweeping.Store(false)

	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory) sweep() {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	for identity, entry := range m.entries {
		if entry.Expired(now) {
			delete(m.entries, identity)
		}
	}
}
