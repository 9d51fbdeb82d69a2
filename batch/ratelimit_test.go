package batch_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/postdoc/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewHostLimiter(10)

		start := time.Now()
		err := limiter.Wait(context.Background(), "x.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewHostLimiter(10) // 100ms between requests

		require.NoError(t, limiter.Wait(context.Background(), "x.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "x.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewHostLimiter(10)

		require.NoError(t, limiter.Wait(context.Background(), "x.com"))

		start := time.Now()
		err := limiter.Wait(context.Background(), "twitter.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "x.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.Error(t, limiter.Wait(ctx, "x.com"), "should fail when context times out")
	})

	t.Run("concurrent requests all complete", func(t *testing.T) {
		t.Parallel()

		limiter := batch.NewHostLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Wait(context.Background(), "x.com") == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load())
	})
}
