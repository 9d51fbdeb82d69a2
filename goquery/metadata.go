package goquery

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/fwojciec/postdoc"
)

// DefaultTitle is used when a page offers no title at all.
const DefaultTitle = "X Post"

const titleMaxRunes = 100

var (
	titleSiteSuffix  = regexp.MustCompile(`\s*[/|]\s*X$`)
	titleQuotePrefix = regexp.MustCompile(`^.+?:\s*"`)
	titleQuoteSuffix = regexp.MustCompile(`"$`)
)

// extractTitle prefers the article title, then the first line of the first
// post, then the cleaned document title.
func extractTitle(p *Page) string {
	if el := p.Doc.Find(`[data-testid="twitter-article-title"]`).First(); el.Length() > 0 {
		if t := strings.TrimSpace(innerText(el)); t != "" {
			return t
		}
	}

	if el := p.Doc.Find(`[data-testid="tweetText"]`).First(); el.Length() > 0 {
		clone := el.Clone()
		replaceImagesWithAlt(clone, true)
		if line := firstLine(innerText(clone)); line != "" {
			return truncateRunes(line, titleMaxRunes)
		}
	}

	if t := strings.TrimSpace(p.Doc.Find("title").First().Text()); t != "" {
		t = titleSiteSuffix.ReplaceAllString(t, "")
		t = titleQuotePrefix.ReplaceAllString(t, "")
		t = titleQuoteSuffix.ReplaceAllString(t, "")
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}

	return DefaultTitle
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}

// extractAuthor reads the first author block on the page, falling back to
// the handle in the URL path.
func extractAuthor(p *Page) postdoc.Author {
	var author postdoc.Author

	p.Doc.Find(`[data-testid="User-Name"]`).First().Find("span").Each(func(_ int, span *goquery.Selection) {
		text := strings.TrimSpace(span.Text())
		switch {
		case strings.HasPrefix(text, "@"):
			if author.Handle == "" {
				author.Handle = text
			}
		case author.Name == "" && utf8.RuneCountInString(text) > 1 && !strings.Contains(text, "·"):
			author.Name = text
		}
	})

	if author.Handle == "" {
		author.Handle = handleFromURL(p)
	}
	author.Handle = postdoc.NormalizeHandle(author.Handle)
	author.Avatar = extractAvatar(p)

	return author
}

// handleFromURL returns the first path segment of a post URL such as
// /jane/status/1. A single-segment path is not treated as a handle.
func handleFromURL(p *Page) string {
	segs := p.pathSegments()
	if len(segs) < 2 {
		return ""
	}
	return segs[0]
}

var avatarSelectors = []string{
	`[data-testid="Tweet-User-Avatar"] img`,
	`article img[src*="profile_images"]`,
}

func extractAvatar(p *Page) string {
	for _, selector := range avatarSelectors {
		if src := p.Doc.Find(selector).First().AttrOr("src", ""); src != "" {
			return src
		}
	}
	return ""
}

var dateSelectors = []string{
	"article time[datetime]",
	"time[datetime]",
}

// extractDate returns the first parseable timestamp on the page and whether
// one was found. Unparseable candidates are skipped; the capture time is
// returned when none parse.
func extractDate(p *Page) (time.Time, bool) {
	var found time.Time
	for _, selector := range dateSelectors {
		p.Doc.Find(selector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			t, ok := parseTimestamp(el.AttrOr("datetime", ""))
			if ok {
				found = t
			}
			return !ok
		})
		if !found.IsZero() {
			return found, true
		}
	}
	return p.Now, false
}

// parseTimestamp parses RFC 3339 strictly, then retries leniently.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := dateparse.ParseStrict(raw); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}
