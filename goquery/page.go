package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/postdoc"
)

// Page is a parsed snapshot shared by the strategies and metadata helpers.
type Page struct {
	Doc *goquery.Document

	// URL is the parsed page URL. It is never nil; an unparseable source
	// URL yields an empty URL.
	URL *url.URL

	// RawURL is the page URL as captured.
	RawURL string

	// HTML is the serialized document the page was parsed from.
	HTML string

	// Now is the instant used for every date fallback.
	Now time.Time
}

// NewPage parses a snapshot. A zero capture time is replaced by now.
func NewPage(snap *postdoc.Snapshot, now func() time.Time) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snap.HTML))
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	u, err := url.Parse(snap.URL)
	if err != nil {
		u = &url.URL{}
	}

	captured := snap.CapturedAt
	if captured.IsZero() {
		captured = now()
	}

	return &Page{
		Doc:    doc,
		URL:    u,
		RawURL: snap.URL,
		HTML:   snap.HTML,
		Now:    captured.UTC(),
	}, nil
}

// pathSegments returns the non-empty segments of the page URL path.
func (p *Page) pathSegments() []string {
	var segs []string
	for _, s := range strings.Split(p.URL.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}
