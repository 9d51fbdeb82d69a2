// Package html renders articles as standalone, print-ready HTML documents.
package html

import (
	"bytes"
	"embed"
	"html/template"
	"regexp"

	"github.com/fwojciec/postdoc"
)

var _ postdoc.Renderer = (*Renderer)(nil)

//go:embed templates/*.html
var templatesFS embed.FS

// Footer is printed at the bottom of every document.
const Footer = "Exported with postdoc"

const linkColor = template.CSS("#1d9bf0")

// Palette is the set of colors a theme applies to the document.
type Palette struct {
	Background template.CSS
	Text       template.CSS
	Muted      template.CSS
	Border     template.CSS
}

var palettes = map[postdoc.Theme]Palette{
	postdoc.ThemeLight: {Background: "#ffffff", Text: "#0f1419", Muted: "#536471", Border: "#eff3f4"},
	postdoc.ThemeDark:  {Background: "#000000", Text: "#e7e9ea", Muted: "#71767b", Border: "#2f3336"},
}

// PaletteFor returns the palette of theme. Unknown themes use the light
// palette.
func PaletteFor(theme postdoc.Theme) Palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[postdoc.ThemeLight]
}

var imgTag = regexp.MustCompile(`(?i)<img\b[^>]*>`)

// Renderer implements postdoc.Renderer for printable HTML.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded document template.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, postdoc.Errorf(postdoc.EINTERNAL, "parse print template: %v", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type metricView struct {
	Value string
	Label string
}

type document struct {
	Palette Palette
	Link    template.CSS
	Title   string
	Name    string
	Handle  string
	Avatar  string
	Date    string
	URL     string
	HTML    template.HTML
	Text    string
	Images  []postdoc.Image
	Metrics []metricView
	Footer  string
}

// Render returns the standalone HTML document for a.
func (r *Renderer) Render(a *postdoc.Article, opts postdoc.Options) (string, error) {
	if a == nil {
		return "", postdoc.Errorf(postdoc.EINVALID, "article required")
	}

	content := a.Content.HTML
	if !opts.IncludeImages {
		content = imgTag.ReplaceAllString(content, "")
	}

	doc := document{
		Palette: PaletteFor(opts.Theme),
		Link:    linkColor,
		Title:   a.Title,
		Name:    a.Author.Name,
		Handle:  a.Author.Handle,
		Avatar:  a.Author.Avatar,
		Date:    postdoc.FormatLongDate(a.PublishedAt),
		URL:     a.SourceURL,
		// Content HTML comes from the scanned page and is embedded as is.
		HTML:   template.HTML(content),
		Text:   a.Content.Text,
		Footer: Footer,
	}
	if opts.IncludeImages {
		doc.Images = a.Images
	}
	if opts.IncludeMetrics {
		for _, m := range a.Metrics.NonZero() {
			doc.Metrics = append(doc.Metrics, metricView{Value: postdoc.FormatCount(m.Value), Label: m.Label})
		}
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "print.html", doc); err != nil {
		return "", postdoc.Errorf(postdoc.EINTERNAL, "render print template: %v", err)
	}
	return buf.String(), nil
}
