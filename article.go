package postdoc

import (
	"strings"
	"time"
)

// Layout identifies the page layout an Article was extracted from.
type Layout string

// Layout constants, in scanner priority order.
const (
	LayoutBlockEditor Layout = "block-editor"
	LayoutLongform    Layout = "longform"
	LayoutFeed        Layout = "feed"
	LayoutThread      Layout = "thread"
	LayoutFallback    Layout = "fallback"
)

// Article is the canonical record produced by a single extraction.
// It is never mutated after construction.
type Article struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Author      Author    `json:"author"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceURL   string    `json:"sourceUrl"`
	Content     Content   `json:"content"`
	Images      []Image   `json:"images"`
	Metrics     Metrics   `json:"metrics"`
	Layout      Layout    `json:"layout"`

	// ItemCount is the number of feed items merged into Content.
	// Only set for LayoutFeed.
	ItemCount int `json:"itemCount,omitempty"`

	// Set by the archive.
	ContentHash string    `json:"contentHash,omitempty"`
	ExportedAt  time.Time `json:"exportedAt,omitempty"`
}

// Validate returns an error if the article cannot be rendered or archived.
func (a *Article) Validate() error {
	if a.SourceURL == "" {
		return Errorf(EINVALID, "article source URL required")
	}
	if a.Content.IsEmpty() {
		return Errorf(ENOCONTENT, "article has no content")
	}
	return nil
}

// Author identifies who wrote the post. Empty strings mean unknown.
type Author struct {
	Name   string `json:"name"`
	Handle string `json:"handle"`
	Avatar string `json:"avatar"`
}

// Byline returns "Name (@handle)", or whichever half is known.
func (a Author) Byline() string {
	switch {
	case a.Name != "" && a.Handle != "":
		return a.Name + " (" + a.Handle + ")"
	case a.Name != "":
		return a.Name
	default:
		return a.Handle
	}
}

// NormalizeHandle returns the handle with exactly one leading "@",
// or the empty string when h is blank.
func NormalizeHandle(h string) string {
	h = strings.TrimLeft(strings.TrimSpace(h), "@")
	if h == "" {
		return ""
	}
	return "@" + h
}

// Content holds the article body. Text is the plain-text projection of HTML.
type Content struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// IsEmpty reports whether the content has neither text nor HTML.
func (c Content) IsEmpty() bool {
	return c.HTML == "" && c.Text == ""
}

// Image is a content image. Src is unique within an Article.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Metrics holds engagement counters. Zero means no signal was found.
type Metrics struct {
	Likes     int `json:"likes"`
	Reposts   int `json:"reposts"`
	Replies   int `json:"replies"`
	Bookmarks int `json:"bookmarks"`
	Views     int `json:"views"`
}

// Any reports whether at least one counter is non-zero.
func (m Metrics) Any() bool {
	return m.Likes > 0 || m.Reposts > 0 || m.Replies > 0 || m.Bookmarks > 0 || m.Views > 0
}

// Max returns the field-wise maximum of m and o.
func (m Metrics) Max(o Metrics) Metrics {
	return Metrics{
		Likes:     max(m.Likes, o.Likes),
		Reposts:   max(m.Reposts, o.Reposts),
		Replies:   max(m.Replies, o.Replies),
		Bookmarks: max(m.Bookmarks, o.Bookmarks),
		Views:     max(m.Views, o.Views),
	}
}

// Metric is a single named counter.
type Metric struct {
	Key   string
	Label string
	Value int
}

// NonZero returns the non-zero counters in display order:
// views, likes, reposts, replies, bookmarks.
func (m Metrics) NonZero() []Metric {
	all := []Metric{
		{Key: "views", Label: "Views", Value: m.Views},
		{Key: "likes", Label: "Likes", Value: m.Likes},
		{Key: "reposts", Label: "Reposts", Value: m.Reposts},
		{Key: "replies", Label: "Replies", Value: m.Replies},
		{Key: "bookmarks", Label: "Bookmarks", Value: m.Bookmarks},
	}
	out := all[:0]
	for _, metric := range all {
		if metric.Value > 0 {
			out = append(out, metric)
		}
	}
	return out
}

// ContentPart is one structurally distinct content block found while
// scanning: a thread post, an article block or a paragraph.
type ContentPart struct {
	Index int
	Text  string
	HTML  string
}

// FeedItem is one post of a home-feed export.
type FeedItem struct {
	Index  int
	Author string
	Date   time.Time
	Text   string
	HTML   string
}
