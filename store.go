package postdoc

import (
	"context"
	"time"
)

// Export is a rendered document ready to be persisted.
type Export struct {
	Name   string // file name including extension
	Format Format
	Body   []byte
}

// ExportStore persists exports with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type ExportStore interface {
	// Save stages the export and returns the path it will have after Commit.
	Save(ctx context.Context, export *Export) (string, error)
	Commit() error
	Abort() error
}

// ArticleService represents a service for managing archived articles.
type ArticleService interface {
	// CreateArticle archives an article, assigning ID, ContentHash and
	// ExportedAt. If an article with the same source URL and content hash
	// already exists, its fields are copied into a instead.
	CreateArticle(ctx context.Context, a *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article and its images.
	// Returns ENOTFOUND if article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID        *string `json:"id"`
	SourceURL *string `json:"sourceUrl"`
	Handle    *string `json:"handle"`
	Layout    *Layout `json:"layout"`

	ExportedAfter *time.Time `json:"exportedAfter"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
