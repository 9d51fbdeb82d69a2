package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestSettingsFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields empty settings", func(t *testing.T) {
		t.Parallel()

		store := fs.NewSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))

		s, err := store.LoadSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, postdoc.Settings{}, s)
	})

	for _, name := range []string{"settings.yaml", "settings.toml"} {
		t.Run("round trips "+name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "nested", name)
			store := fs.NewSettingsFile(path)
			want := postdoc.Settings{
				PDFTheme:       ptr(postdoc.ThemeDark),
				IncludeMetrics: ptr(false),
			}

			require.NoError(t, store.SaveSettings(context.Background(), want))
			got, err := store.LoadSettings(context.Background())

			require.NoError(t, err)
			assert.Equal(t, want, got)
			assert.Nil(t, got.IncludeImages, "unset fields stay unset")
		})
	}

	t.Run("reads hand-written YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.yml")
		require.NoError(t, os.WriteFile(path, []byte("pdfTheme: dark\nincludeFrontmatter: false\n"), 0644))

		s, err := fs.NewSettingsFile(path).LoadSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, postdoc.ThemeDark, *s.PDFTheme)
		assert.False(t, *s.IncludeFrontmatter)
	})

	t.Run("reads hand-written TOML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("pdfTheme = \"light\"\nincludeImages = false\n"), 0644))

		s, err := fs.NewSettingsFile(path).LoadSettings(context.Background())

		require.NoError(t, err)
		assert.Equal(t, postdoc.ThemeLight, *s.PDFTheme)
		assert.False(t, *s.IncludeImages)
	})

	t.Run("rejects malformed files", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pdfTheme: [unclosed\n"), 0644))

		_, err := fs.NewSettingsFile(path).LoadSettings(context.Background())

		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})

	t.Run("rejects unknown themes", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "settings.yaml")
		require.NoError(t, os.WriteFile(path, []byte("pdfTheme: sepia\n"), 0644))

		_, err := fs.NewSettingsFile(path).LoadSettings(context.Background())
		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))

		err = fs.NewSettingsFile(path).SaveSettings(context.Background(), postdoc.Settings{PDFTheme: ptr(postdoc.Theme("sepia"))})
		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})
}
