package postdoc_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/postdoc"
	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		ext   string
		want  string
	}{
		{
			name:  "lowercases and joins words with underscores",
			title: "Hello World",
			ext:   "md",
			want:  "hello_world.md",
		},
		{
			name:  "strips unsafe characters",
			title: `Breaking: "News" <today>/now?`,
			ext:   "md",
			want:  "breaking_news_todaynow.md",
		},
		{
			name:  "collapses whitespace runs",
			title: "a \t\n  b",
			ext:   "html",
			want:  "a_b.html",
		},
		{
			name:  "falls back when nothing usable remains",
			title: "???",
			ext:   "pdf",
			want:  "x_article.pdf",
		},
		{
			name:  "empty title",
			title: "",
			ext:   "md",
			want:  "x_article.md",
		},
		{
			name:  "keeps non-ASCII letters",
			title: "Über Café",
			ext:   "md",
			want:  "über_café.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, postdoc.Filename(tt.title, tt.ext))
		})
	}

	t.Run("truncates to 80 characters before the extension", func(t *testing.T) {
		t.Parallel()

		got := postdoc.Filename(strings.Repeat("ab", 60), "md")

		assert.Equal(t, strings.Repeat("ab", 40)+".md", got)
	})
}
