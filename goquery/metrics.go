package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

// Patterns run against lowercased aria-labels such as "1.2K Likes. Like".
var (
	likesLabel     = regexp.MustCompile(`([\d,.]+[kmb]?)\s*like`)
	repostsLabel   = regexp.MustCompile(`([\d,.]+[kmb]?)\s*(?:repost|retweet)`)
	repliesLabel   = regexp.MustCompile(`([\d,.]+[kmb]?)\s*repl`)
	bookmarksLabel = regexp.MustCompile(`([\d,.]+[kmb]?)\s*bookmark`)
	viewsLabel     = regexp.MustCompile(`([\d,.]+[kmb]?)\s*view`)

	viewsText = regexp.MustCompile(`\b([\d,.]+[KMB]?)\s*[Vv]iews?\b`)
)

// extractMetrics scans accessibility labels and the visible body text.
// When several sources report the same counter the largest value wins.
func extractMetrics(p *Page) postdoc.Metrics {
	var m postdoc.Metrics

	p.Doc.Find("[aria-label]").Each(func(_ int, el *goquery.Selection) {
		label := strings.ToLower(el.AttrOr("aria-label", ""))
		m = m.Max(postdoc.Metrics{
			Likes:     labelCount(likesLabel, label),
			Reposts:   labelCount(repostsLabel, label),
			Replies:   labelCount(repliesLabel, label),
			Bookmarks: labelCount(bookmarksLabel, label),
			Views:     labelCount(viewsLabel, label),
		})
	})

	for _, match := range viewsText.FindAllStringSubmatch(innerText(p.Doc.Find("body")), -1) {
		m = m.Max(postdoc.Metrics{Views: postdoc.ParseCount(match[1])})
	}

	return m
}

func labelCount(re *regexp.Regexp, label string) int {
	match := re.FindStringSubmatch(label)
	if match == nil {
		return 0
	}
	return postdoc.ParseCount(match[1])
}
