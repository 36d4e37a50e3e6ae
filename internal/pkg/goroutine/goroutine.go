// Package goroutine runs background work under a bounded concurrency limit,
// collecting errors for inspection at shutdown.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	uatomic "go.uber.org/atomic"

	"github.com/danukusuma/gatekeeper/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine = 100

// Manager schedules functions on goroutines with a fixed concurrency cap.
type Manager struct {
	mu     sync.Mutex
	errs   []error
	wg     sync.WaitGroup
	sema   chan struct{}
	closed uatomic.Bool
}

// NewManager creates a Manager with the given maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine),
	}
}

// Go schedules f on a goroutine if a slot is available. When the manager is
// at capacity or already closed, f is dropped with a warning rather than
// blocking the caller.
func (g *Manager) Go(pCtx context.Context, f func(ctx context.Context) error) {
	if g == nil {
		return
	}

	if g.closed.Load() {
		slog.WarnContext(pCtx, "goroutine manager is closed, skipping new goroutine")
		return
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(pCtx, "maximum goroutine limit reached, dropping task")
		return
	}

	g.wg.Add(1)
	go func() {
		defer func() {
			<-g.sema
			g.wg.Done()

			if rvr := recover(); rvr != nil {
				stack := debug.Stack()
				paths := stacktrace.InternalPaths(stack)
				if len(paths) == 0 {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "because", rvr, "stack", string(stack))
				} else {
					slog.ErrorContext(pCtx, "panic occurred in goroutine", "because", rvr, "stack", paths)
				}
			}
		}()

		select {
		case <-pCtx.Done():
			slog.WarnContext(pCtx, "goroutine canceled before start", "because", pCtx.Err())
		default:
			if err := f(pCtx); err != nil {
				g.mu.Lock()
				g.errs = append(g.errs, err)
				g.mu.Unlock()
			}
		}
	}()
}

// Wait closes the manager to new work, blocks until running goroutines
// finish, and returns any collected errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.closed.Store(true)
	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}
