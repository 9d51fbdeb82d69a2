package postdoc

import "time"

// Snapshot is a page as seen at the instant of extraction: its serialized
// DOM and URL. CapturedAt stands in for "now" in every fallback, which
// keeps extraction deterministic for a given snapshot.
type Snapshot struct {
	URL        string
	HTML       string
	CapturedAt time.Time
}

// Extractor turns a page snapshot into an Article.
type Extractor interface {
	// Extract scans the snapshot and returns a fresh Article.
	// Returns ENOCONTENT if no strategy finds any content.
	Extract(snap *Snapshot) (*Article, error)
}

// ExtractResult holds content found by a generic main-content extractor.
type ExtractResult struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string

	// ContentText is the plain-text projection of ContentHTML.
	ContentText string

	// Byline and PublishedAt are filled when the page metadata has them.
	Byline      string
	PublishedAt time.Time
}

// FallbackExtractor extracts main content from arbitrary HTML. It serves as
// the optional last resort when no page-specific strategy matches.
type FallbackExtractor interface {
	// ExtractContent processes raw HTML and returns the main content.
	ExtractContent(html string) (*ExtractResult, error)
}
