package postdoc

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	// Input without any tags is returned trimmed and otherwise unchanged.
	Convert(html string) (string, error)
}
