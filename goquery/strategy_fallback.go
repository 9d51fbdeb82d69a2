package goquery

import (
	"strings"

	"github.com/fwojciec/postdoc"
)

var _ Strategy = (*FallbackStrategy)(nil)

// FallbackStrategy hands the whole document to a generic content extractor.
// It runs last, for pages none of the layout strategies recognize.
type FallbackStrategy struct {
	Extractor postdoc.FallbackExtractor
}

// Name returns the strategy identifier.
func (s *FallbackStrategy) Name() string { return string(postdoc.LayoutFallback) }

// TryExtract reports false when the extractor fails or finds no text.
func (s *FallbackStrategy) TryExtract(p *Page) (*Scan, bool) {
	if s.Extractor == nil {
		return nil, false
	}

	res, err := s.Extractor.ExtractContent(p.HTML)
	if err != nil || res == nil {
		return nil, false
	}

	text := strings.TrimSpace(res.ContentText)
	html := strings.TrimSpace(res.ContentHTML)
	if text == "" {
		return nil, false
	}
	if html == "" {
		html = "<p>" + escapeText(text) + "</p>"
	}

	return &Scan{
		Layout: postdoc.LayoutFallback,
		Parts:  []postdoc.ContentPart{{Text: text, HTML: html}},
		Meta:   res,
	}, true
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\n", "<br>")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
