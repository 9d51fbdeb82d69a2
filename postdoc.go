// Package postdoc exports social-media posts, threads and long-form articles
// as portable documents. It extracts a canonical Article record from a page
// snapshot and renders it as Markdown with YAML frontmatter, as a printable
// HTML document, or as a PDF printed from that HTML.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package postdoc
