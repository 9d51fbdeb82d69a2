package goquery

import (
	"strings"

	"github.com/fwojciec/postdoc"
)

// Strategy recognizes one page layout and collects its content.
//
// TryExtract reports false when the layout is not present, letting the next
// strategy in the chain run. A strategy that reports true ends the chain even
// if it found no parts.
type Strategy interface {
	Name() string
	TryExtract(p *Page) (*Scan, bool)
}

// Scan is the result of a successful strategy.
type Scan struct {
	Layout postdoc.Layout
	Parts  []postdoc.ContentPart
	Items  []postdoc.FeedItem

	// Meta carries metadata reported by generic fallback extractors.
	Meta *postdoc.ExtractResult
}

// DefaultStrategies returns the built-in chain in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		&BlockEditorStrategy{},
		&LongformStrategy{},
		&FeedStrategy{},
		&ThreadStrategy{},
	}
}

// parts accumulates content parts, rejecting duplicates.
type parts struct {
	list []postdoc.ContentPart
	size int
}

// add appends a part unless its text equals, contains or is contained in the
// text of an already accepted part. It reports whether the part was added.
func (ps *parts) add(text, html string) bool {
	if text == "" || isDuplicate(ps.list, text) {
		return false
	}
	ps.list = append(ps.list, postdoc.ContentPart{
		Index: len(ps.list),
		Text:  text,
		HTML:  html,
	})
	ps.size += len([]rune(text))
	return true
}

func isDuplicate(accepted []postdoc.ContentPart, text string) bool {
	for _, p := range accepted {
		if p.Text == text || strings.Contains(p.Text, text) || strings.Contains(text, p.Text) {
			return true
		}
	}
	return false
}

// joinParts builds the article content for a non-feed layout.
func joinParts(layout postdoc.Layout, ps []postdoc.ContentPart) postdoc.Content {
	if len(ps) == 0 {
		return postdoc.Content{}
	}

	texts := make([]string, len(ps))
	htmls := make([]string, len(ps))
	for i, p := range ps {
		texts[i] = p.Text
		htmls[i] = p.HTML
	}

	if layout == postdoc.LayoutThread {
		for i, h := range htmls {
			htmls[i] = `<div class="thread-part">` + h + `</div>`
		}
		return postdoc.Content{
			Text: strings.Join(texts, "\n\n---\n\n"),
			HTML: strings.Join(htmls, "<hr>"),
		}
	}

	return postdoc.Content{
		Text: strings.Join(texts, "\n\n"),
		HTML: strings.Join(htmls, "\n"),
	}
}
