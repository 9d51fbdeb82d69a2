package goquery

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

var _ Strategy = (*FeedStrategy)(nil)

var feedURL = regexp.MustCompile(`^https://(?:www\.)?(?:x\.com|twitter\.com)/home`)

// Feed records use fixed metadata.
const (
	FeedTitle      = "X Home Feed Export"
	FeedAuthorName = "Feed Export"
	FeedHandle     = "@home_feed"
	unknownAuthor  = "Unknown"
)

// FeedStrategy merges every post visible on the home timeline into one
// record.
type FeedStrategy struct{}

// Name returns the strategy identifier.
func (s *FeedStrategy) Name() string { return string(postdoc.LayoutFeed) }

// IsFeedURL reports whether rawURL points at the home timeline.
func IsFeedURL(rawURL string) bool {
	return feedURL.MatchString(rawURL)
}

// TryExtract matches on the home timeline URL.
func (s *FeedStrategy) TryExtract(p *Page) (*Scan, bool) {
	if !IsFeedURL(p.RawURL) {
		return nil, false
	}

	var items []postdoc.FeedItem
	p.Doc.Find(`article[data-testid="tweet"]`).Each(func(i int, el *goquery.Selection) {
		textEl := el.Find(`[data-testid="tweetText"]`).First()
		if textEl.Length() == 0 {
			return
		}

		author := firstLine(innerText(el.Find(`[data-testid="User-Name"]`).First()))
		if author == "" {
			author = unknownAuthor
		}

		date, ok := parseTimestamp(el.Find("time[datetime]").First().AttrOr("datetime", ""))
		if !ok {
			date = p.Now
		}

		items = append(items, postdoc.FeedItem{
			Index:  i + 1,
			Author: author,
			Date:   date,
			Text:   innerText(textEl),
			HTML:   innerHTML(textEl),
		})
	})

	return &Scan{Layout: postdoc.LayoutFeed, Items: items}, true
}

// joinFeed builds the merged feed content.
func joinFeed(items []postdoc.FeedItem) postdoc.Content {
	if len(items) == 0 {
		return postdoc.Content{}
	}

	texts := make([]string, len(items))
	htmls := make([]string, len(items))
	for i, it := range items {
		texts[i] = fmt.Sprintf("--- Tweet %d by %s ---\n%s", it.Index, it.Author, it.Text)
		htmls[i] = fmt.Sprintf(`<div class="feed-item"><h3>%s</h3>%s</div>`, html.EscapeString(it.Author), it.HTML)
	}

	return postdoc.Content{
		Text: strings.Join(texts, "\n\n"),
		HTML: strings.Join(htmls, "<hr>"),
	}
}
