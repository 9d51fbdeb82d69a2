// Package readability provides a last-resort content strategy backed by
// go-readability, for pages none of the post layouts recognize.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/postdoc"
	"github.com/go-shiori/go-readability"
)

var _ postdoc.FallbackExtractor = (*Extractor)(nil)

// Extractor extracts the main body of an arbitrary page.
type Extractor struct {
	// BaseURL resolves relative links and image sources. Optional.
	BaseURL *url.URL
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the main content of rawHTML. Content HTML and text
// are either both set or the call fails with ENOCONTENT.
func (e *Extractor) ExtractContent(rawHTML string) (*postdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, postdoc.Errorf(postdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.BaseURL)
	if err != nil {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "readability: %v", err)
	}

	contentHTML := strings.TrimSpace(article.Content)
	text := strings.TrimSpace(article.TextContent)
	if contentHTML == "" || text == "" {
		return nil, postdoc.Errorf(postdoc.ENOCONTENT, "readability found no main content")
	}

	res := &postdoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: contentHTML,
		ContentText: text,
		Byline:      strings.TrimSpace(article.Byline),
	}
	if article.PublishedTime != nil {
		res.PublishedAt = article.PublishedTime.UTC()
	}
	return res, nil
}
