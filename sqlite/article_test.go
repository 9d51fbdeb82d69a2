package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface verification.
var _ postdoc.ArticleService = (*sqlite.ArticleService)(nil)

func ptr[T any](v T) *T { return &v }

func newArticle(url, text string) *postdoc.Article {
	return &postdoc.Article{
		Title:       "Post",
		Author:      postdoc.Author{Name: "Jane Doe", Handle: "@jane", Avatar: "https://pbs.twimg.com/profile_images/1/a.jpg"},
		PublishedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		SourceURL:   url,
		Content:     postdoc.Content{HTML: "<p>" + text + "</p>", Text: text},
		Images: []postdoc.Image{
			{Src: "https://pbs.twimg.com/media/a.jpg?name=orig", Alt: "first"},
			{Src: "https://pbs.twimg.com/media/b.jpg?name=orig"},
		},
		Metrics: postdoc.Metrics{Likes: 1200, Views: 50_000},
		Layout:  postdoc.LayoutThread,
	}
}

// clockDB returns a database whose clock advances one minute per call.
func clockDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := setupTestDB(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	db.Now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return db
}

func TestArticleService_CreateArticle(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID, hash and export time", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(clockDB(t))
		a := newArticle("https://x.com/jane/status/1", "Hello")

		require.NoError(t, svc.CreateArticle(context.Background(), a))

		assert.NotEmpty(t, a.ID)
		assert.Equal(t, sqlite.HashContent(a.Content), a.ContentHash)
		assert.Equal(t, time.Date(2025, 3, 1, 12, 1, 0, 0, time.UTC), a.ExportedAt)
	})

	t.Run("round trips every field", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(clockDB(t))
		ctx := context.Background()
		a := newArticle("https://x.com/jane/status/1", "Hello")
		a.Layout = postdoc.LayoutFeed
		a.ItemCount = 3
		require.NoError(t, svc.CreateArticle(ctx, a))

		got, err := svc.FindArticleByID(ctx, a.ID)

		require.NoError(t, err)
		assert.Equal(t, a.Title, got.Title)
		assert.Equal(t, a.Author, got.Author)
		assert.True(t, a.PublishedAt.Equal(got.PublishedAt))
		assert.Equal(t, a.SourceURL, got.SourceURL)
		assert.Equal(t, a.Content, got.Content)
		assert.Equal(t, a.Images, got.Images)
		assert.Equal(t, a.Metrics, got.Metrics)
		assert.Equal(t, postdoc.LayoutFeed, got.Layout)
		assert.Equal(t, 3, got.ItemCount)
		assert.Equal(t, a.ContentHash, got.ContentHash)
		assert.True(t, a.ExportedAt.Equal(got.ExportedAt))
	})

	t.Run("returns the stored record for unchanged content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(clockDB(t))
		ctx := context.Background()
		first := newArticle("https://x.com/jane/status/1", "Hello")
		require.NoError(t, svc.CreateArticle(ctx, first))

		again := newArticle("https://x.com/jane/status/1", "Hello")
		require.NoError(t, svc.CreateArticle(ctx, again))

		assert.Equal(t, first.ID, again.ID)
		assert.True(t, first.ExportedAt.Equal(again.ExportedAt))

		all, err := svc.FindArticles(ctx, postdoc.ArticleFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("stores a new record when content changed", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(clockDB(t))
		ctx := context.Background()
		first := newArticle("https://x.com/jane/status/1", "Hello")
		require.NoError(t, svc.CreateArticle(ctx, first))

		edited := newArticle("https://x.com/jane/status/1", "Hello, edited")
		require.NoError(t, svc.CreateArticle(ctx, edited))

		assert.NotEqual(t, first.ID, edited.ID)
	})

	t.Run("rejects articles without content", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))
		a := newArticle("https://x.com/jane/status/1", "")
		a.Content = postdoc.Content{}

		err := svc.CreateArticle(context.Background(), a)

		assert.Equal(t, postdoc.ENOCONTENT, postdoc.ErrorCode(err))
	})

	t.Run("rejects articles without source URL", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))

		err := svc.CreateArticle(context.Background(), newArticle("", "Hello"))

		assert.Equal(t, postdoc.EINVALID, postdoc.ErrorCode(err))
	})
}

func TestArticleService_FindArticleByID(t *testing.T) {
	t.Parallel()

	svc := sqlite.NewArticleService(setupTestDB(t))

	_, err := svc.FindArticleByID(context.Background(), "missing")

	assert.Equal(t, postdoc.ENOTFOUND, postdoc.ErrorCode(err))
}

func TestArticleService_FindArticles(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) (*sqlite.ArticleService, []*postdoc.Article) {
		t.Helper()

		svc := sqlite.NewArticleService(clockDB(t))
		articles := []*postdoc.Article{
			newArticle("https://x.com/jane/status/1", "one"),
			newArticle("https://x.com/jane/status/2", "two"),
			newArticle("https://x.com/bob/status/3", "three"),
		}
		articles[2].Author = postdoc.Author{Name: "Bob", Handle: "@bob"}
		articles[2].Layout = postdoc.LayoutLongform
		for _, a := range articles {
			require.NoError(t, svc.CreateArticle(context.Background(), a))
		}
		return svc, articles
	}

	ids := func(articles []*postdoc.Article) []string {
		out := make([]string, len(articles))
		for i, a := range articles {
			out[i] = a.ID
		}
		return out
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		svc, seeded := seed(t)

		got, err := svc.FindArticles(context.Background(), postdoc.ArticleFilter{})

		require.NoError(t, err)
		assert.Equal(t, []string{seeded[2].ID, seeded[1].ID, seeded[0].ID}, ids(got))
		assert.Len(t, got[0].Images, 2)
	})

	t.Run("filters by handle with or without @", func(t *testing.T) {
		t.Parallel()

		svc, seeded := seed(t)

		got, err := svc.FindArticles(context.Background(), postdoc.ArticleFilter{Handle: ptr("jane")})

		require.NoError(t, err)
		assert.Equal(t, []string{seeded[1].ID, seeded[0].ID}, ids(got))
	})

	t.Run("filters by source URL and layout", func(t *testing.T) {
		t.Parallel()

		svc, seeded := seed(t)
		ctx := context.Background()

		got, err := svc.FindArticles(ctx, postdoc.ArticleFilter{SourceURL: ptr("https://x.com/jane/status/2")})
		require.NoError(t, err)
		assert.Equal(t, []string{seeded[1].ID}, ids(got))

		got, err = svc.FindArticles(ctx, postdoc.ArticleFilter{Layout: ptr(postdoc.LayoutLongform)})
		require.NoError(t, err)
		assert.Equal(t, []string{seeded[2].ID}, ids(got))
	})

	t.Run("filters by export time", func(t *testing.T) {
		t.Parallel()

		svc, seeded := seed(t)

		got, err := svc.FindArticles(context.Background(), postdoc.ArticleFilter{ExportedAfter: &seeded[0].ExportedAt})

		require.NoError(t, err)
		assert.Equal(t, []string{seeded[2].ID, seeded[1].ID}, ids(got))
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc, seeded := seed(t)
		ctx := context.Background()

		got, err := svc.FindArticles(ctx, postdoc.ArticleFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{seeded[1].ID}, ids(got))

		got, err = svc.FindArticles(ctx, postdoc.ArticleFilter{Offset: 2})
		require.NoError(t, err)
		assert.Equal(t, []string{seeded[0].ID}, ids(got))
	})
}

func TestArticleService_DeleteArticle(t *testing.T) {
	t.Parallel()

	t.Run("removes the article and its images", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewArticleService(db)
		ctx := context.Background()
		a := newArticle("https://x.com/jane/status/1", "Hello")
		require.NoError(t, svc.CreateArticle(ctx, a))

		require.NoError(t, svc.DeleteArticle(ctx, a.ID))

		_, err := svc.FindArticleByID(ctx, a.ID)
		assert.Equal(t, postdoc.ENOTFOUND, postdoc.ErrorCode(err))

		var images int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM article_images").Scan(&images))
		assert.Zero(t, images)
	})

	t.Run("returns ENOTFOUND for unknown IDs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewArticleService(setupTestDB(t))

		err := svc.DeleteArticle(context.Background(), "missing")

		assert.Equal(t, postdoc.ENOTFOUND, postdoc.ErrorCode(err))
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	a := sqlite.HashContent(postdoc.Content{HTML: "<p>x</p>", Text: "x"})
	b := sqlite.HashContent(postdoc.Content{HTML: "<p>x</p>", Text: "y"})

	assert.Len(t, a, 16)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, sqlite.HashContent(postdoc.Content{HTML: "<p>x</p>", Text: "x"}))
}
