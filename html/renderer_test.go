package html_test

import (
	"testing"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArticle() *postdoc.Article {
	return &postdoc.Article{
		Title: "Tom & Jerry <3",
		Author: postdoc.Author{
			Name:   "Jane Doe",
			Handle: "@jane",
			Avatar: "https://pbs.twimg.com/profile_images/1/jane.jpg",
		},
		PublishedAt: time.Date(2024, 1, 15, 15, 4, 0, 0, time.UTC),
		SourceURL:   "https://x.com/jane/status/123",
		Content: postdoc.Content{
			HTML: `<p>Hello <b>World</b></p><img src="https://pbs.twimg.com/media/in.jpg">`,
			Text: "Hello World",
		},
		Images:  []postdoc.Image{{Src: "https://pbs.twimg.com/media/a.jpg?name=orig", Alt: "Chart"}},
		Metrics: postdoc.Metrics{Likes: 1200, Views: 3_400_000},
	}
}

func newRenderer(t *testing.T) *html.Renderer {
	t.Helper()

	r, err := html.NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders header, content, images and metrics", func(t *testing.T) {
		t.Parallel()

		got, err := newRenderer(t).Render(sampleArticle(), postdoc.DefaultOptions())

		require.NoError(t, err)
		assert.Contains(t, got, "<!DOCTYPE html>")
		assert.Contains(t, got, `<h1 class="article-title">Tom &amp; Jerry &lt;3</h1>`)
		assert.Contains(t, got, `<div class="author-name">Jane Doe</div>`)
		assert.Contains(t, got, `<div class="author-handle">@jane</div>`)
		assert.Contains(t, got, `src="https://pbs.twimg.com/profile_images/1/jane.jpg"`)
		assert.Contains(t, got, `<div class="article-date">January 15, 2024 at 3:04 PM</div>`)
		assert.Contains(t, got, `<p>Hello <b>World</b></p>`)
		assert.Contains(t, got, `src="https://pbs.twimg.com/media/in.jpg"`)
		assert.Contains(t, got, `<img src="https://pbs.twimg.com/media/a.jpg?name=orig" alt="Chart">`)
		assert.Contains(t, got, `<span class="metric-value">3.4M</span><span class="metric-label">Views</span>`)
		assert.Contains(t, got, `<span class="metric-value">1.2K</span><span class="metric-label">Likes</span>`)
		assert.NotContains(t, got, "Reposts")
		assert.Contains(t, got, html.Footer)
	})

	t.Run("applies the light palette by default", func(t *testing.T) {
		t.Parallel()

		got, err := newRenderer(t).Render(sampleArticle(), postdoc.DefaultOptions())

		require.NoError(t, err)
		assert.Contains(t, got, "background: #ffffff")
		assert.Contains(t, got, "color: #0f1419")
		assert.Contains(t, got, "print-color-adjust: exact")
	})

	t.Run("applies the dark palette", func(t *testing.T) {
		t.Parallel()

		opts := postdoc.DefaultOptions()
		opts.Theme = postdoc.ThemeDark

		got, err := newRenderer(t).Render(sampleArticle(), opts)

		require.NoError(t, err)
		assert.Contains(t, got, "background: #000000")
		assert.Contains(t, got, "color: #e7e9ea")
		assert.NotContains(t, got, "#ffffff")
	})

	t.Run("removes images when excluded", func(t *testing.T) {
		t.Parallel()

		opts := postdoc.DefaultOptions()
		opts.IncludeImages = false

		got, err := newRenderer(t).Render(sampleArticle(), opts)

		require.NoError(t, err)
		assert.NotContains(t, got, "media/in.jpg")
		assert.NotContains(t, got, `class="images"`)
		assert.Contains(t, got, "author-avatar")
	})

	t.Run("omits metrics when excluded", func(t *testing.T) {
		t.Parallel()

		opts := postdoc.DefaultOptions()
		opts.IncludeMetrics = false

		got, err := newRenderer(t).Render(sampleArticle(), opts)

		require.NoError(t, err)
		assert.NotContains(t, got, `class="metrics"`)
	})

	t.Run("escapes plain text content", func(t *testing.T) {
		t.Parallel()

		a := sampleArticle()
		a.Content = postdoc.Content{Text: "a <script>alert(1)</script>\nnext"}

		got, err := newRenderer(t).Render(a, postdoc.DefaultOptions())

		require.NoError(t, err)
		assert.Contains(t, got, `<div class="content plain">a &lt;script&gt;alert(1)&lt;/script&gt;`+"\nnext</div>")
	})

	t.Run("returns EINVALID for nil article", func(t *testing.T) {
		t.Parallel()

		_, err := newRenderer(t).Render(nil, postdoc.DefaultOptions())

		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})
}

func TestPaletteFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, html.PaletteFor(postdoc.ThemeLight), html.PaletteFor(postdoc.Theme("sepia")))
	assert.NotEqual(t, html.PaletteFor(postdoc.ThemeLight), html.PaletteFor(postdoc.ThemeDark))
}
