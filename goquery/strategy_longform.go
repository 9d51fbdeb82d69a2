package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

var _ Strategy = (*LongformStrategy)(nil)

// longformSelectors are tried in order until enough text is collected.
var longformSelectors = []string{
	`[class*="longform-unstyled"]`,
	`[class*="longform"]`,
	`[data-testid="article-content"]`,
	`article [class*="RichText"]`,
	`article [lang]`,
}

const (
	longformMinElement   = 20
	longformLinkOnlyMax  = 100
	longformEnough       = 500
	longformParagraphMin = 30
)

// LongformStrategy extracts legacy long-form articles that predate the block
// editor.
type LongformStrategy struct{}

// Name returns the strategy identifier.
func (s *LongformStrategy) Name() string { return string(postdoc.LayoutLongform) }

// TryExtract matches when a long-form container is present and the block
// editor is not.
func (s *LongformStrategy) TryExtract(p *Page) (*Scan, bool) {
	if p.Doc.Find(".public-DraftEditor-content").Length() > 0 {
		return nil, false
	}
	if p.Doc.Find(`[class*="longform"]`).Length() == 0 {
		return nil, false
	}

	var ps parts
	for _, selector := range longformSelectors {
		p.Doc.Find(selector).Each(func(_ int, el *goquery.Selection) {
			n := utf8.RuneCountInString(innerText(el))
			if n < longformMinElement {
				return
			}
			if el.Find(`a[href*="/status/"]`).Length() > 0 && n < longformLinkOnlyMax {
				return
			}

			clone := cleanClone(el)
			replaceImagesWithAlt(clone, false)
			text := innerText(clone)
			if utf8.RuneCountInString(text) <= longformMinElement {
				return
			}
			ps.add(text, "<div>"+innerHTML(clone)+"</div>")
		})

		if ps.size > longformEnough {
			break
		}
	}

	if len(ps.list) == 0 {
		p.Doc.Find(`article p, article [class*="text"], article span[class]`).Each(func(_ int, el *goquery.Selection) {
			text := innerText(el)
			if utf8.RuneCountInString(text) <= longformParagraphMin {
				return
			}
			ps.add(text, "<div>"+innerHTML(el)+"</div>")
		})
	}

	return &Scan{Layout: postdoc.LayoutLongform, Parts: ps.list}, true
}
