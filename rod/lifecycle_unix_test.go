//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/postdoc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alive reports whether pid exists, using signal 0.
func alive(pid int) bool {
	return syscall.Kill(pid, syscall.Signal(0)) == nil
}

func TestFetcher_Close_Lifecycle(t *testing.T) {
	t.Parallel()

	t.Run("terminates the browser it launched", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)

		pid := fetcher.LauncherPID()
		require.NotZero(t, pid)
		require.True(t, alive(pid))

		require.NoError(t, fetcher.Close())
		time.Sleep(100 * time.Millisecond)

		assert.False(t, alive(pid), "launcher should exit with its fetcher")
	})

	t.Run("leaves a shared browser running", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager()
		require.NoError(t, err)

		fetcher, err := rod.NewFetcher(rod.WithManager(manager))
		require.NoError(t, err)

		pid := manager.LauncherPID()
		require.NoError(t, fetcher.Close())
		time.Sleep(100 * time.Millisecond)
		assert.True(t, alive(pid), "shared browser must outlive the fetcher")

		require.NoError(t, manager.Close())
		time.Sleep(100 * time.Millisecond)
		assert.False(t, alive(pid))
	})
}
