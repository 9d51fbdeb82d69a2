//go:build integration

package rod_test

import (
	"context"
	"testing"

	"github.com/fwojciec/postdoc/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrowserManager_Recycle(t *testing.T) {
	t.Parallel()

	t.Run("relaunches after max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(2))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		manager.IncrementPageCount()
		manager.IncrementPageCount()

		assert.NotSame(t, first, manager.Browser())
	})

	t.Run("keeps the browser below max pages", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
		require.NoError(t, err)
		defer manager.Close()

		first := manager.Browser()
		manager.IncrementPageCount()

		assert.Same(t, first, manager.Browser())
	})

	t.Run("printing counts pages and survives a recycle", func(t *testing.T) {
		t.Parallel()

		manager, err := rod.NewBrowserManager(rod.WithMaxPages(1))
		require.NoError(t, err)
		defer manager.Close()

		printer := rod.NewPrinter(manager)
		first := manager.Browser()

		_, err = printer.Print(context.Background(), "<!DOCTYPE html><p>one</p>")
		require.NoError(t, err)

		pdf, err := printer.Print(context.Background(), "<!DOCTYPE html><p>two</p>")
		require.NoError(t, err)
		assert.NotSame(t, first, manager.Browser())
		assert.Equal(t, "%PDF-", string(pdf[:5]))
	})
}
