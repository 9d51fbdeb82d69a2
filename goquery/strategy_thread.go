package goquery

import (
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

var _ Strategy = (*ThreadStrategy)(nil)

const langTextMin = 10

// ThreadStrategy extracts a single post or a thread of posts.
type ThreadStrategy struct{}

// Name returns the strategy identifier.
func (s *ThreadStrategy) Name() string { return string(postdoc.LayoutThread) }

// TryExtract collects every post text in document order. It falls back to
// language-tagged elements inside articles and reports false when neither
// yields text.
func (s *ThreadStrategy) TryExtract(p *Page) (*Scan, bool) {
	var ps parts

	p.Doc.Find(`[data-testid="tweetText"]`).Each(func(_ int, el *goquery.Selection) {
		clone := cleanClone(el)
		replaceImagesWithAlt(clone, true)
		ps.add(innerText(clone), innerHTML(clone))
	})

	if len(ps.list) == 0 {
		p.Doc.Find("article [lang]").Each(func(_ int, el *goquery.Selection) {
			text := innerText(el)
			if utf8.RuneCountInString(text) <= langTextMin {
				return
			}
			ps.add(text, innerHTML(el))
		})
	}

	if len(ps.list) == 0 {
		return nil, false
	}
	return &Scan{Layout: postdoc.LayoutThread, Parts: ps.list}, true
}
