package mock

import (
	"context"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of postdoc.Renderer.
type Renderer struct {
	RenderFn func(a *postdoc.Article, opts postdoc.Options) (string, error)
}

func (r *Renderer) Render(a *postdoc.Article, opts postdoc.Options) (string, error) {
	return r.RenderFn(a, opts)
}

var _ postdoc.Printer = (*Printer)(nil)

// Printer is a mock implementation of postdoc.Printer.
type Printer struct {
	PrintFn func(ctx context.Context, html string) ([]byte, error)
}

func (p *Printer) Print(ctx context.Context, html string) ([]byte, error) {
	return p.PrintFn(ctx, html)
}
