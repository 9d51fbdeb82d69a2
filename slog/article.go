package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   postdoc.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next postdoc.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

// CreateArticle delegates to the wrapped service.
func (s *LoggingArticleService) CreateArticle(ctx context.Context, a *postdoc.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create article",
			"url", a.SourceURL,
			"id", a.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, a)
}

// FindArticleByID delegates to the wrapped service.
func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (a *postdoc.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, id)
}

// FindArticles delegates to the wrapped service.
func (s *LoggingArticleService) FindArticles(ctx context.Context, filter postdoc.ArticleFilter) (articles []*postdoc.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Info("find articles",
			"count", len(articles),
			"limit", filter.Limit,
			"offset", filter.Offset,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

// DeleteArticle delegates to the wrapped service.
func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
