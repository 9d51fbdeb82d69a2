package mock

import "github.com/fwojciec/postdoc"

var _ postdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of postdoc.Extractor.
type Extractor struct {
	ExtractFn func(snap *postdoc.Snapshot) (*postdoc.Article, error)
}

func (e *Extractor) Extract(snap *postdoc.Snapshot) (*postdoc.Article, error) {
	return e.ExtractFn(snap)
}

var _ postdoc.FallbackExtractor = (*FallbackExtractor)(nil)

// FallbackExtractor is a mock implementation of postdoc.FallbackExtractor.
type FallbackExtractor struct {
	ExtractContentFn func(html string) (*postdoc.ExtractResult, error)
}

func (e *FallbackExtractor) ExtractContent(html string) (*postdoc.ExtractResult, error) {
	return e.ExtractContentFn(html)
}
