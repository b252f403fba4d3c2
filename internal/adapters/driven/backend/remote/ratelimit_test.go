package remote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Defaults(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})

	assert.InDelta(t, DefaultRateLimit.RequestsPerSecond, float64(r.limiter.Limit()), 1e-9)
	assert.Equal(t, DefaultRateLimit.BurstSize, r.limiter.Burst())
}

func TestRateLimiter_WaitWithinBurst(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})

	for i := 0; i < 3; i++ {
		require.NoError(t, r.Wait(context.Background()))
	}
}

func TestRateLimiter_BackoffHonoursContext(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{RequestsPerSecond: 100, BurstSize: 10})
	r.RecordRateLimitError(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewRateLimiter(RateLimitConfig{})

	r.RecordRateLimitError(0)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.WithinDuration(t, time.Now().Add(defaultBackoff), r.retryAt, time.Second)
}
