package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noDelays = []time.Duration{0, 0, 0}

func TestDefaultRetryDelays(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, batch.DefaultRetryDelays())
}

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := batch.FetchWithRetry(context.Background(), "https://x.com/a/status/1", fetch, nil, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}
		var attempts []int
		onRetry := func(url string, attempt int, err error) {
			attempts = append(attempts, attempt)
		}

		html, err := batch.FetchWithRetry(context.Background(), "u", fetch, onRetry, noDelays)

		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, []int{2, 3}, attempts)
	})

	t.Run("gives up after every delay is used", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("timeout")
		}

		_, err := batch.FetchWithRetry(context.Background(), "u", fetch, nil, noDelays)

		require.EqualError(t, err, "timeout")
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry missing pages", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", postdoc.Errorf(postdoc.ENOTFOUND, "HTTP 404")
		}

		_, err := batch.FetchWithRetry(context.Background(), "u", fetch, nil, noDelays)

		assert.Equal(t, postdoc.ENOTFOUND, postdoc.ErrorCode(err))
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("boom")
		}

		_, err := batch.FetchWithRetry(ctx, "u", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
