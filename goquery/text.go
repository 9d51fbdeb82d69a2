package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// blockElements start and end on their own line when rendered as text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figcaption": true,
	"figure": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "tr": true, "ul": true,
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// innerText approximates the rendered text of a selection: block elements
// and <br> produce line breaks, scripts and styles are skipped.
func innerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n)
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text := strings.Join(lines, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template", "img":
			return
		case "br":
			b.WriteString("\n")
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteString("\n")
	}
}

// firstLine returns the first non-empty line of text.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// innerHTML returns the inner HTML of the first node in sel, or "" when it
// cannot be serialized.
func innerHTML(sel *goquery.Selection) string {
	s, err := sel.Html()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

// replaceImagesWithAlt swaps <img alt> elements inside sel for a text node
// holding the alt text. With emojiOnly set, only images whose src mentions
// "emoji" are replaced. sel is modified in place, so callers pass a clone.
func replaceImagesWithAlt(sel *goquery.Selection, emojiOnly bool) {
	sel.Find("img[alt]").Each(func(_ int, img *goquery.Selection) {
		if emojiOnly {
			src, _ := img.Attr("src")
			if !strings.Contains(src, "emoji") {
				return
			}
		}
		alt, _ := img.Attr("alt")
		img.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: alt})
	})
}

// cleanClone returns a detached copy of sel with scripts and styles removed.
func cleanClone(sel *goquery.Selection) *goquery.Selection {
	clone := sel.Clone()
	clone.Find("script, style").Remove()
	return clone
}
