package mock

import (
	"context"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.ExportStore = (*ExportStore)(nil)

// ExportStore is a mock implementation of postdoc.ExportStore.
type ExportStore struct {
	SaveFn   func(ctx context.Context, export *postdoc.Export) (string, error)
	CommitFn func() error
	AbortFn  func() error
}

func (s *ExportStore) Save(ctx context.Context, export *postdoc.Export) (string, error) {
	return s.SaveFn(ctx, export)
}

func (s *ExportStore) Commit() error {
	return s.CommitFn()
}

func (s *ExportStore) Abort() error {
	return s.AbortFn()
}

var _ postdoc.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of postdoc.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, a *postdoc.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*postdoc.Article, error)
	FindArticlesFn    func(ctx context.Context, filter postdoc.ArticleFilter) ([]*postdoc.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, a *postdoc.Article) error {
	return s.CreateArticleFn(ctx, a)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*postdoc.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter postdoc.ArticleFilter) ([]*postdoc.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}

var _ postdoc.SettingsStore = (*SettingsStore)(nil)

// SettingsStore is a mock implementation of postdoc.SettingsStore.
type SettingsStore struct {
	LoadSettingsFn func(ctx context.Context) (postdoc.Settings, error)
	SaveSettingsFn func(ctx context.Context, s postdoc.Settings) error
}

func (s *SettingsStore) LoadSettings(ctx context.Context) (postdoc.Settings, error) {
	return s.LoadSettingsFn(ctx)
}

func (s *SettingsStore) SaveSettings(ctx context.Context, settings postdoc.Settings) error {
	return s.SaveSettingsFn(ctx, settings)
}
