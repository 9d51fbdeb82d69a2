package postdoc

import (
	"context"
	"strings"
)

// Format is an output document format.
type Format string

// Format constants.
const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormats parses a comma-separated list such as "md,pdf".
// "all" and "both" are accepted as shorthands.
func ParseFormats(s string) ([]Format, error) {
	var formats []Format
	seen := make(map[Format]bool)
	add := func(f Format) {
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}

	for _, field := range strings.Split(s, ",") {
		switch f := strings.ToLower(strings.TrimSpace(field)); f {
		case "":
		case "md", "markdown":
			add(FormatMarkdown)
		case "html":
			add(FormatHTML)
		case "pdf":
			add(FormatPDF)
		case "both":
			add(FormatPDF)
			add(FormatMarkdown)
		case "all":
			add(FormatMarkdown)
			add(FormatHTML)
			add(FormatPDF)
		default:
			return nil, Errorf(EINVALID, "unknown format %q", field)
		}
	}
	if len(formats) == 0 {
		return nil, Errorf(EINVALID, "at least one format required")
	}
	return formats, nil
}

// Renderer assembles an Article into a text document.
type Renderer interface {
	Render(a *Article, opts Options) (string, error)
}

// Printer turns a standalone HTML document into a PDF.
type Printer interface {
	// Print renders the HTML document and returns the PDF bytes.
	// Failures are reported with the EPRINT code.
	Print(ctx context.Context, html string) ([]byte, error)
}
