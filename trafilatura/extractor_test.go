package trafilatura_test

import (
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/goquery"
	"github.com/fwojciec/postdoc/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blogHTML is a linked long-read that no post layout recognizes.
const blogHTML = `<!DOCTYPE html>
<html>
<head>
<title>Thread unrolled - Blog</title>
<meta property="og:title" content="Thread unrolled">
</head>
<body>
<nav><a href="/">Home</a><a href="/posts">Posts</a></nav>
<article>
<h1>Thread unrolled</h1>
<p>This is important post content that should be extracted for the export document.</p>
<p>A second paragraph continues the thought with more substantive words for readers.</p>
<p>A third paragraph closes the argument so the extractor has enough text to keep.</p>
</article>
<aside>Sidebar content</aside>
<footer>
<p>Copyright 2024 Example Corp</p>
<nav>Privacy | Terms | Contact</nav>
</footer>
</body>
</html>`

// commentedHTML is blogHTML with a reader comment section below the article.
var commentedHTML = strings.Replace(blogHTML, "<aside>", `<div class="comments-content">
<div class="comment"><p>Reader reply: thanks for collecting the whole thread in one place, it reads much better this way.</p></div>
</div>
<aside>`, 1)

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractContent("")

		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		res, err := trafilatura.NewExtractor().ExtractContent(blogHTML)

		require.NoError(t, err)
		assert.Equal(t, "Thread unrolled", res.Title)
	})

	t.Run("returns main content as HTML and text without boilerplate", func(t *testing.T) {
		t.Parallel()

		res, err := trafilatura.NewExtractor().ExtractContent(blogHTML)

		require.NoError(t, err)
		assert.Contains(t, res.ContentHTML, "important post content")
		assert.Contains(t, res.ContentText, "important post content")
		assert.NotContains(t, res.ContentText, "<p>")
		assert.NotContains(t, res.ContentHTML, "Copyright 2024 Example Corp")
	})

	t.Run("precision mode still finds the article", func(t *testing.T) {
		t.Parallel()

		res, err := trafilatura.NewExtractor(trafilatura.WithPrecision()).ExtractContent(blogHTML)

		require.NoError(t, err)
		assert.Contains(t, res.ContentText, "second paragraph")
	})

	t.Run("appends the comment section when asked", func(t *testing.T) {
		t.Parallel()

		res, err := trafilatura.NewExtractor(trafilatura.WithComments()).ExtractContent(commentedHTML)

		require.NoError(t, err)
		assert.Contains(t, res.ContentText, "important post content")
		assert.Contains(t, res.ContentText, "Reader reply")
		assert.Contains(t, res.ContentHTML, "Reader reply")
		assert.Greater(t, strings.Index(res.ContentText, "Reader reply"), strings.Index(res.ContentText, "important post content"))
	})

	t.Run("returns ENOCONTENT for a page without text", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().ExtractContent(`<html><body><div></div></body></html>`)

		assert.Equal(t, postdoc.ENOCONTENT, postdoc.ErrorCode(err))
	})
}

func TestExtractor_AsScannerFallback(t *testing.T) {
	t.Parallel()

	ext := goquery.NewExtractor(goquery.WithFallback(trafilatura.NewExtractor()))

	a, err := ext.Extract(&postdoc.Snapshot{
		URL:        "https://blog.example.com/thread",
		HTML:       blogHTML,
		CapturedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, postdoc.LayoutFallback, a.Layout)
	assert.Contains(t, a.Content.Text, "important post content")
	assert.Equal(t, a.Content.Text == "", a.Content.HTML == "")
}
