package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/postdoc"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ postdoc.ArticleService = (*ArticleService)(nil)

// ArticleService implements postdoc.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// HashContent returns the hex xxHash of the article body.
func HashContent(c postdoc.Content) string {
	d := xxhash.New()
	_, _ = d.WriteString(c.HTML)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(c.Text)
	return hex.EncodeToString(d.Sum(nil))
}

const articleColumns = `id, source_url, title, author_name, author_handle, author_avatar,
	published_at, content_html, content_text, content_hash, layout, item_count,
	likes, reposts, replies, bookmarks, views, exported_at`

// CreateArticle archives a. Re-exporting unchanged content from the same
// URL returns the stored record instead of creating a duplicate.
func (s *ArticleService) CreateArticle(ctx context.Context, a *postdoc.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	hash := HashContent(a.Content)

	existing, err := findArticles(ctx, tx, postdoc.ArticleFilter{SourceURL: &a.SourceURL}, hash)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		*a = *existing[0]
		return nil
	}

	a.ID = uuid.New().String()
	a.ContentHash = hash
	a.ExportedAt = s.db.Now().UTC()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.SourceURL, a.Title, a.Author.Name, a.Author.Handle, a.Author.Avatar,
		formatTime(a.PublishedAt), a.Content.HTML, a.Content.Text, a.ContentHash,
		string(a.Layout), a.ItemCount,
		a.Metrics.Likes, a.Metrics.Reposts, a.Metrics.Replies, a.Metrics.Bookmarks, a.Metrics.Views,
		formatTime(a.ExportedAt)); err != nil {
		return err
	}

	for i, img := range a.Images {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO article_images (article_id, position, src, alt)
			VALUES (?, ?, ?, ?)
		`, a.ID, i, img.Src, img.Alt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*postdoc.Article, error) {
	articles, err := findArticles(ctx, s.db.db, postdoc.ArticleFilter{ID: &id}, "")
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, postdoc.Errorf(postdoc.ENOTFOUND, "article not found")
	}
	return articles[0], nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter postdoc.ArticleFilter) ([]*postdoc.Article, error) {
	return findArticles(ctx, s.db.db, filter, "")
}

// DeleteArticle permanently removes an article and its images.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return postdoc.Errorf(postdoc.ENOTFOUND, "article not found")
	}
	return nil
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func findArticles(ctx context.Context, q querier, filter postdoc.ArticleFilter, hash string) ([]*postdoc.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}
	if filter.Handle != nil {
		query.WriteString(" AND author_handle = ?")
		args = append(args, postdoc.NormalizeHandle(*filter.Handle))
	}
	if filter.Layout != nil {
		query.WriteString(" AND layout = ?")
		args = append(args, string(*filter.Layout))
	}
	if filter.ExportedAfter != nil {
		query.WriteString(" AND exported_at > ?")
		args = append(args, formatTime(*filter.ExportedAfter))
	}
	if hash != "" {
		query.WriteString(" AND content_hash = ?")
		args = append(args, hash)
	}

	query.WriteString(" ORDER BY exported_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := q.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var articles []*postdoc.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Images are loaded after the article cursor is closed; the pool holds
	// a single connection.
	for _, a := range articles {
		if a.Images, err = findImages(ctx, q, a.ID); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

func scanArticle(rows *sql.Rows) (*postdoc.Article, error) {
	var a postdoc.Article
	var layout, publishedAt, exportedAt string

	if err := rows.Scan(&a.ID, &a.SourceURL, &a.Title, &a.Author.Name, &a.Author.Handle, &a.Author.Avatar,
		&publishedAt, &a.Content.HTML, &a.Content.Text, &a.ContentHash, &layout, &a.ItemCount,
		&a.Metrics.Likes, &a.Metrics.Reposts, &a.Metrics.Replies, &a.Metrics.Bookmarks, &a.Metrics.Views,
		&exportedAt); err != nil {
		return nil, err
	}
	a.Layout = postdoc.Layout(layout)

	var err error
	if a.PublishedAt, err = parseTime(publishedAt, "published_at"); err != nil {
		return nil, err
	}
	if a.ExportedAt, err = parseTime(exportedAt, "exported_at"); err != nil {
		return nil, err
	}
	return &a, nil
}

func findImages(ctx context.Context, q querier, articleID string) ([]postdoc.Image, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT src, alt FROM article_images
		WHERE article_id = ?
		ORDER BY position ASC
	`, articleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []postdoc.Image{}
	for rows.Next() {
		var img postdoc.Image
		if err := rows.Scan(&img.Src, &img.Alt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
