package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/strikethrough"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
	nethtml "golang.org/x/net/html"
)

// Ensure Converter implements postdoc.Converter at compile time.
var _ postdoc.Converter = (*Converter)(nil)

var anyTag = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)

// Converter wraps html-to-markdown to convert article HTML to Markdown.
// It is the library-backed alternative to the rule-table converter.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			strikethrough.NewStrikethroughPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown. Emoji images are replaced
// by their alt text first. Input without tags is returned trimmed.
func (c *Converter) Convert(html string) (string, error) {
	if !anyTag.MatchString(html) {
		return strings.TrimSpace(html), nil
	}

	html, err := replaceEmoji(html)
	if err != nil {
		return "", err
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", postdoc.Errorf(postdoc.EINTERNAL, "convert HTML: %v", err)
	}

	return strings.TrimSpace(result), nil
}

// replaceEmoji swaps emoji images for their alt text.
func replaceEmoji(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", postdoc.Errorf(postdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	found := false
	doc.Find("img[alt]").Each(func(_ int, img *goquery.Selection) {
		if !strings.Contains(img.AttrOr("src", ""), "emoji") {
			return
		}
		found = true
		img.ReplaceWithNodes(&nethtml.Node{Type: nethtml.TextNode, Data: img.AttrOr("alt", "")})
	})
	if !found {
		return html, nil
	}

	return doc.Find("body").Html()
}
