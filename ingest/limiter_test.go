package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLimiterMinimumCapacity(t *testing.T) {
	assert.Equal(t, 1, NewLimiter(0).Cap())
	assert.Equal(t, 1, NewLimiter(-3).Cap())
	assert.Equal(t, 8, NewLimiter(8).Cap())
}

func TestLimiterAcquireRelease(t *testing.T) {
	limiter := NewLimiter(2)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	limiter.Release()
	require.NoError(t, limiter.Acquire(ctx))
	limiter.Release()
	limiter.Release()
}

func TestLimiterBlocksAtCapacity(t *testing.T) {
	limiter := NewLimiter(1)
	require.NoError(t, limiter.Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := limiter.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	limiter.Release()
	require.NoError(t, limiter.Acquire(context.Background()))
}

func TestLimiterAcquireCancelledContext(t *testing.T) {
	limiter := NewLimiter(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context fails even when a slot is free.
	assert.ErrorIs(t, limiter.Acquire(ctx), context.Canceled)
}
