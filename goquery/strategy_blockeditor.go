package goquery

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

var _ Strategy = (*BlockEditorStrategy)(nil)

// BlockEditorStrategy extracts long-form articles written in the rich-text
// block editor. Each editor block becomes one part tagged by its block type.
type BlockEditorStrategy struct{}

// Name returns the strategy identifier.
func (s *BlockEditorStrategy) Name() string { return string(postdoc.LayoutBlockEditor) }

// TryExtract matches whenever the editor container is present.
func (s *BlockEditorStrategy) TryExtract(p *Page) (*Scan, bool) {
	container := p.Doc.Find(".public-DraftEditor-content").First()
	if container.Length() == 0 {
		return nil, false
	}

	var ps parts
	blocks := container.Find(`[data-block="true"]`)
	if blocks.Length() == 0 {
		ps.add(innerText(container), innerHTML(container))
		return &Scan{Layout: postdoc.LayoutBlockEditor, Parts: ps.list}, true
	}

	blocks.Each(func(_ int, block *goquery.Selection) {
		text := innerText(block)
		if text == "" {
			return
		}
		tag := blockTag(block, text)
		// Editor blocks are not deduplicated.
		ps.list = append(ps.list, postdoc.ContentPart{
			Index: len(ps.list),
			Text:  text,
			HTML:  fmt.Sprintf(`<%s class="article-block">%s</%s>`, tag, innerHTML(block), tag),
		})
	})

	return &Scan{Layout: postdoc.LayoutBlockEditor, Parts: ps.list}, true
}

// blockTag maps an editor block to the HTML element that preserves its role.
func blockTag(block *goquery.Selection, text string) string {
	class, _ := block.Attr("class")
	class = strings.ToLower(class)

	switch {
	case strings.Contains(class, "header-one"):
		return "h1"
	case strings.Contains(class, "header-two"):
		return "h2"
	case strings.Contains(class, "header-three"):
		return "h3"
	case strings.Contains(class, "blockquote"):
		return "blockquote"
	}

	if looksLikeHeading(text) {
		return "h3"
	}
	return "p"
}

// looksLikeHeading reports whether a short line without terminal
// punctuation is likely a section heading.
func looksLikeHeading(text string) bool {
	n := utf8.RuneCountInString(text)
	if n == 0 || n >= 80 {
		return false
	}
	last, _ := utf8.DecodeLastRuneInString(text)
	return !strings.ContainsRune(".!?。！？", last)
}
