package markdown

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.Renderer = (*Renderer)(nil)

// Renderer assembles a Markdown document with optional YAML frontmatter.
type Renderer struct {
	Converter postdoc.Converter

	// Now returns the export timestamp written to the frontmatter.
	Now func() time.Time
}

// NewRenderer returns a Renderer using conv for the article body.
func NewRenderer(conv postdoc.Converter) *Renderer {
	return &Renderer{Converter: conv, Now: time.Now}
}

// Render returns the Markdown document for a.
func (r *Renderer) Render(a *postdoc.Article, opts postdoc.Options) (string, error) {
	if a == nil {
		return "", postdoc.Errorf(postdoc.EINVALID, "article required")
	}

	source := a.Content.HTML
	if source == "" {
		source = a.Content.Text
	}
	body, err := r.Converter.Convert(source)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	metrics := opts.IncludeMetrics && a.Metrics.Any()

	if opts.IncludeFrontmatter {
		r.writeFrontmatter(&b, a, metrics)
	}

	fmt.Fprintf(&b, "# %s\n\n", a.Title)
	if byline := a.Author.Byline(); byline != "" {
		fmt.Fprintf(&b, "**Author:** %s\n", byline)
	}
	fmt.Fprintf(&b, "**Date:** %s\n", postdoc.FormatDate(a.PublishedAt))
	fmt.Fprintf(&b, "**URL:** %s\n\n", a.SourceURL)
	b.WriteString("---\n\n")
	b.WriteString(body)
	b.WriteString("\n\n")

	if opts.IncludeImages && len(a.Images) > 0 {
		b.WriteString("## Images\n\n")
		for i, img := range a.Images {
			alt := img.Alt
			if alt == "" {
				alt = fmt.Sprintf("Image %d", i+1)
			}
			fmt.Fprintf(&b, "![%s](%s)\n\n", alt, img.Src)
		}
	}

	if metrics {
		b.WriteString("---\n\n## Engagement\n\n")
		for _, m := range a.Metrics.NonZero() {
			fmt.Fprintf(&b, "- **%s:** %s\n", m.Label, postdoc.FormatCount(m.Value))
		}
	}

	return b.String(), nil
}

func (r *Renderer) writeFrontmatter(b *strings.Builder, a *postdoc.Article, metrics bool) {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}

	b.WriteString("---\n")
	fmt.Fprintf(b, "title: %s\n", Scalar(a.Title))
	fmt.Fprintf(b, "author: %s\n", Scalar(a.Author.Name))
	fmt.Fprintf(b, "handle: %s\n", Scalar(a.Author.Handle))
	fmt.Fprintf(b, "date: %s\n", dateScalar(a.PublishedAt))
	fmt.Fprintf(b, "url: %s\n", Scalar(a.SourceURL))
	fmt.Fprintf(b, "exported: %s\n", Scalar(now().UTC().Format(time.RFC3339)))
	if metrics {
		b.WriteString("metrics:\n")
		for _, m := range a.Metrics.NonZero() {
			fmt.Fprintf(b, "  %s: %d\n", m.Key, m.Value)
		}
	}
	b.WriteString("---\n\n")
}

var scalarEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// Scalar renders s as a YAML string scalar, double-quoting it when it contains
// characters YAML treats specially or would resolve to a non-string plain
// scalar (a number, boolean, null or timestamp). Empty strings are quoted.
func Scalar(s string) string {
	if s == "" {
		return `""`
	}
	if !needsQuotes(s) {
		return s
	}
	return `"` + scalarEscaper.Replace(s) + `"`
}

// dateScalar leaves the calendar date plain so YAML reads it as a date.
func dateScalar(t time.Time) string {
	if t.IsZero() {
		return `""`
	}
	return postdoc.FormatDate(t)
}

var nonStringScalar = regexp.MustCompile(`^(?i:` +
	`~|null|true|false|yes|no|on|off|y|n` +
	`|[-+]?(?:\.inf|\.nan)` +
	`|[-+]?[0-9][0-9_]*(?:\.[0-9_]*)?(?:e[-+]?[0-9]+)?` +
	`|[-+]?\.[0-9]+(?:e[-+]?[0-9]+)?` +
	`|0x[0-9a-f_]+|0o[0-7_]+|0b[01_]+` +
	`|[0-9]{4}-[0-9]{1,2}-[0-9]{1,2}(?:[tT ].*)?` +
	`)$`)

func needsQuotes(s string) bool {
	if nonStringScalar.MatchString(s) {
		return true
	}
	if strings.ContainsAny(s, ":#[]{}|>&*!?,\n") {
		return true
	}
	if strings.ContainsAny(s[:1], "@`'\"%- \t") {
		return true
	}
	return strings.HasSuffix(s, " ") || strings.HasSuffix(s, "\t")
}
