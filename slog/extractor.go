package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   postdoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next postdoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the layout and size of the extracted article.
func (e *LoggingExtractor) Extract(snap *postdoc.Snapshot) (a *postdoc.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{"duration", time.Since(begin), "err", err}
		if snap != nil {
			attrs = append(attrs, "url", snap.URL)
		}
		if a != nil {
			attrs = append(attrs,
				"layout", a.Layout,
				"title", a.Title,
				"chars", len([]rune(a.Content.Text)),
				"images", len(a.Images),
			)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(snap)
}
