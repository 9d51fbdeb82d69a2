// Package trafilatura provides a last-resort content strategy backed by
// go-trafilatura, for pages none of the post layouts recognize.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/postdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

var _ postdoc.FallbackExtractor = (*Extractor)(nil)

// Extractor extracts the main body of an arbitrary page.
type Extractor struct {
	opts trafilatura.Options
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithComments appends the page's comment section after the main content.
// Comments are dropped by default.
func WithComments() Option {
	return func(e *Extractor) {
		e.opts.ExcludeComments = false
	}
}

// WithPrecision trades recall for less boilerplate in the result.
func WithPrecision() Option {
	return func(e *Extractor) {
		e.opts.Focus = trafilatura.FavorPrecision
	}
}

// NewExtractor returns an Extractor that keeps images and links, so the
// image collector and converter see them, and drops reply sections.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		opts: trafilatura.Options{
			EnableFallback:  true,
			ExcludeComments: true,
			IncludeImages:   true,
			IncludeLinks:    true,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractContent returns the main content of rawHTML. Content HTML and text
// are either both set or the call fails with ENOCONTENT.
func (e *Extractor) ExtractContent(rawHTML string) (*postdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, postdoc.Errorf(postdoc.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), e.opts)
	if err != nil {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "trafilatura: %v", err)
	}

	text := strings.TrimSpace(result.ContentText)
	if result.ContentNode == nil || text == "" {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "trafilatura found no main content")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, postdoc.Errorf(postdoc.EINTERNAL, "render content: %v", err)
	}
	if comments := strings.TrimSpace(result.CommentsText); comments != "" && result.CommentsNode != nil {
		buf.WriteString("<hr>")
		if err := html.Render(&buf, result.CommentsNode); err != nil {
			return nil, postdoc.Errorf(postdoc.EINTERNAL, "render comments: %v", err)
		}
		text += "\n\n" + comments
	}

	res := &postdoc.ExtractResult{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: strings.TrimSpace(buf.String()),
		ContentText: text,
		Byline:      strings.TrimSpace(result.Metadata.Author),
	}
	if !result.Metadata.Date.IsZero() {
		res.PublishedAt = result.Metadata.Date.UTC()
	}
	return res, nil
}
