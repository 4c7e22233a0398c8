package lock

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrBusy is returned when a resource's admission lock cannot be acquired
// within the bounded wait. Callers surface it as a retryable outcome.
var ErrBusy = errors.New("resource admission lock busy")

// Arena hands out one admission lock per resource id. Handles are created on
// first use and never removed, so two goroutines racing on a brand-new
// resource still end up on the same lock. Locks on distinct resources are
// independent.
type Arena struct {
	mu      sync.Mutex
	handles map[string]chan struct{}
}

func NewArena() *Arena {
	return &Arena{
		handles: make(map[string]chan struct{}),
	}
}

func (a *Arena) handle(resourceID string) chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()

	h, ok := a.handles[resourceID]
	if !ok {
		h = make(chan struct{}, 1)
		a.handles[resourceID] = h
	}

	return h
}

// Acquire takes the resource's lock, waiting at most the given duration.
// It returns ErrBusy on timeout and the context error when the caller's
// context ends first.
func (a *Arena) Acquire(ctx context.Context, resourceID string, wait time.Duration) error {
	h := a.handle(resourceID)

	select {
	case h <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case h <- struct{}{}:
		return nil
	case <-timer.C:
		return ErrBusy
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	}
}

// Release frees the resource's lock. Releasing an unheld lock is a no-op.
func (a *Arena) Release(resourceID string) {
	h := a.handle(resourceID)

	select {
	case <-h:
	default:
	}
}
