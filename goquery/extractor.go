package goquery

import (
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.Extractor = (*Extractor)(nil)

// Extractor implements postdoc.Extractor by running a prioritized chain of
// layout strategies over the parsed snapshot.
type Extractor struct {
	strategies []Strategy
	fallback   postdoc.FallbackExtractor
	logger     *slog.Logger
	now        func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for strategy tracing at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithFallback appends a generic content extractor to the end of the chain.
func WithFallback(f postdoc.FallbackExtractor) Option {
	return func(e *Extractor) {
		e.fallback = f
	}
}

// WithStrategies replaces the built-in strategy chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Extractor) {
		e.strategies = strategies
	}
}

// WithNow sets the clock used when a snapshot has no capture time.
func WithNow(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor with the default strategy chain.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		strategies: DefaultStrategies(),
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.fallback != nil {
		e.strategies = append(e.strategies, &FallbackStrategy{Extractor: e.fallback})
	}
	return e
}

// Extract scans the snapshot and assembles an Article.
func (e *Extractor) Extract(snap *postdoc.Snapshot) (*postdoc.Article, error) {
	if snap == nil || strings.TrimSpace(snap.HTML) == "" {
		return nil, postdoc.Errorf(postdoc.EINVALID, "empty HTML input")
	}

	p, err := NewPage(snap, e.now)
	if err != nil {
		return nil, err
	}

	scan := e.scan(p)
	if scan == nil {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "could not extract content")
	}

	var a *postdoc.Article
	if scan.Layout == postdoc.LayoutFeed {
		a = feedArticle(p, scan)
	} else {
		a = e.article(p, scan)
	}

	if a.Content.IsEmpty() {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "could not extract content")
	}
	return a, nil
}

// scan runs the strategy chain and returns the first match.
func (e *Extractor) scan(p *Page) *Scan {
	for _, s := range e.strategies {
		scan, ok := s.TryExtract(p)
		if !ok {
			e.logger.Debug("strategy skipped", "strategy", s.Name(), "url", p.RawURL)
			continue
		}
		e.logger.Debug("strategy matched",
			"strategy", s.Name(),
			"url", p.RawURL,
			"parts", len(scan.Parts),
			"items", len(scan.Items),
		)
		return scan
	}
	return nil
}

func (e *Extractor) article(p *Page, scan *Scan) *postdoc.Article {
	author := extractAuthor(p)
	date, found := extractDate(p)
	title := extractTitle(p)

	if meta := scan.Meta; meta != nil {
		if title == DefaultTitle && meta.Title != "" {
			title = meta.Title
		}
		if !found && !meta.PublishedAt.IsZero() {
			date = meta.PublishedAt.UTC()
		}
		if author.Name == "" {
			author.Name = strings.TrimSpace(meta.Byline)
		}
	}

	return &postdoc.Article{
		Title:       title,
		Author:      author,
		PublishedAt: date,
		SourceURL:   p.RawURL,
		Content:     joinParts(scan.Layout, scan.Parts),
		Images:      extractImages(p, handleFromURL(p)),
		Metrics:     extractMetrics(p),
		Layout:      scan.Layout,
	}
}

// feedArticle builds the merged home timeline record. Feed records carry no
// metrics or images regardless of page content.
func feedArticle(p *Page, scan *Scan) *postdoc.Article {
	return &postdoc.Article{
		Title: FeedTitle,
		Author: postdoc.Author{
			Name:   FeedAuthorName,
			Handle: FeedHandle,
		},
		PublishedAt: p.Now,
		SourceURL:   p.RawURL,
		Content:     joinFeed(scan.Items),
		Images:      []postdoc.Image{},
		Layout:      postdoc.LayoutFeed,
		ItemCount:   len(scan.Items),
	}
}
