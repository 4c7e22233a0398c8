package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAcquireRelease(t *testing.T) {
	arena := NewArena()
	ctx := context.Background()

	require.NoError(t, arena.Acquire(ctx, "res-1", 10*time.Millisecond))

	err := arena.Acquire(ctx, "res-1", 10*time.Millisecond)
	assert.ErrorIs(t, err, ErrBusy)

	arena.Release("res-1")

	assert.NoError(t, arena.Acquire(ctx, "res-1", 10*time.Millisecond))
	arena.Release("res-1")
}

func TestArenaLocksAreIndependentPerResource(t *testing.T) {
	arena := NewArena()
	ctx := context.Background()

	require.NoError(t, arena.Acquire(ctx, "res-1", 10*time.Millisecond))
	assert.NoError(t, arena.Acquire(ctx, "res-2", 10*time.Millisecond))

	arena.Release("res-1")
	arena.Release("res-2")
}

func TestArenaAcquireHonorsContext(t *testing.T) {
	arena := NewArena()

	require.NoError(t, arena.Acquire(context.Background(), "res-1", time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := arena.Acquire(ctx, "res-1", time.Second)
	assert.ErrorIs(t, err, context.Canceled)

	arena.Release("res-1")
}

func TestArenaReleaseUnheldIsNoop(t *testing.T) {
	arena := NewArena()

	arena.Release("res-1")

	assert.NoError(t, arena.Acquire(context.Background(), "res-1", 10*time.Millisecond))
}

func TestArenaSingleHolderUnderContention(t *testing.T) {
	arena := NewArena()
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired int
	)

	for range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := arena.Acquire(ctx, "res-1", time.Millisecond); err == nil {
				mu.Lock()
				acquired++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()

	// The lock is never released, so exactly one goroutine may hold it.
	assert.Equal(t, 1, acquired)

	arena.Release("res-1")
}
