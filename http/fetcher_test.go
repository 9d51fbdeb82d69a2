package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/postdoc"
	pdhttp "github.com/fwojciec/postdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Fetcher implements postdoc.Fetcher.
var _ postdoc.Fetcher = (*pdhttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body><div data-testid="tweetText">Hi</div></body></html>`))
		}))
		defer server.Close()

		fetcher := pdhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, `<html><body><div data-testid="tweetText">Hi</div></body></html>`, html)
	})

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		ua := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		fetcher := pdhttp.NewFetcher(pdhttp.WithUserAgent("test-agent/2"))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "test-agent/2", <-ua)
	})

	t.Run("sends the default user agent", func(t *testing.T) {
		t.Parallel()

		ua := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua <- r.Header.Get("User-Agent")
		}))
		defer server.Close()

		_, err := pdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, pdhttp.DefaultUserAgent, <-ua)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := pdhttp.NewFetcher(pdhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := pdhttp.NewFetcher().Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns ENOTFOUND for missing pages", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := pdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, postdoc.ENOTFOUND, postdoc.ErrorCode(err))
		assert.Contains(t, postdoc.ErrorMessage(err), "404")
	})

	t.Run("returns error for other non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := pdhttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
		assert.Equal(t, postdoc.EINTERNAL, postdoc.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed URLs", func(t *testing.T) {
		t.Parallel()

		_, err := pdhttp.NewFetcher().Fetch(context.Background(), "http://bad host/")
		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})
}
