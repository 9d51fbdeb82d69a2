package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/postdoc"
)

var (
	_ postdoc.Renderer = (*LoggingRenderer)(nil)
	_ postdoc.Printer  = (*LoggingPrinter)(nil)
)

// LoggingRenderer wraps a Renderer with logging. Format only labels the
// log line.
type LoggingRenderer struct {
	next   postdoc.Renderer
	format postdoc.Format
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next postdoc.Renderer, format postdoc.Format, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, format: format, logger: logger}
}

// Render delegates to the wrapped renderer.
func (r *LoggingRenderer) Render(a *postdoc.Article, opts postdoc.Options) (doc string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"format", r.format,
			"theme", opts.Theme,
			"bytes", len(doc),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(a, opts)
}

// LoggingPrinter wraps a Printer with logging.
type LoggingPrinter struct {
	next   postdoc.Printer
	logger *slog.Logger
}

// NewLoggingPrinter creates a new LoggingPrinter.
func NewLoggingPrinter(next postdoc.Printer, logger *slog.Logger) *LoggingPrinter {
	return &LoggingPrinter{next: next, logger: logger}
}

// Print delegates to the wrapped printer.
func (p *LoggingPrinter) Print(ctx context.Context, html string) (pdf []byte, err error) {
	defer func(begin time.Time) {
		p.logger.Info("print",
			"input_bytes", len(html),
			"bytes", len(pdf),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Print(ctx, html)
}
