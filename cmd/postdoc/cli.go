package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/postdoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *slog.Logger

	Extractor postdoc.Extractor
	Renderers map[postdoc.Format]postdoc.Renderer
	Articles  postdoc.ArticleService
	Settings  postdoc.SettingsStore

	// NewFetcher opens the fetcher named by --fetcher. The caller closes it.
	NewFetcher func(kind string, timeout time.Duration) (postdoc.Fetcher, error)

	// NewPrinter returns the PDF printer, launching a browser on first use.
	NewPrinter func() (postdoc.Printer, error)

	Now func() time.Time
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose   bool   `short:"v" help:"Log pipeline steps to stderr"`
	Fallback  string `enum:"none,readability,trafilatura" default:"none" help:"Generic extractor for pages no post strategy matches (${enum})"`
	Converter string `enum:"rules,library" default:"rules" help:"HTML to Markdown converter (${enum})"`

	FallbackComments  bool `help:"Keep the page's comment section (trafilatura fallback only)"`
	FallbackPrecision bool `help:"Prefer less boilerplate over complete text (trafilatura fallback only)"`

	Export   ExportCmd   `cmd:"" help:"Export posts from live URLs"`
	Convert  ConvertCmd  `cmd:"" help:"Export a saved page snapshot"`
	History  HistoryCmd  `cmd:"" help:"List archived articles"`
	Show     ShowCmd     `cmd:"" help:"Re-render an archived article"`
	Delete   DeleteCmd   `cmd:"" help:"Delete an archived article"`
	Settings SettingsCmd `cmd:"" help:"Show or change saved settings"`
}

// OptionFlags override saved settings for a single run.
type OptionFlags struct {
	Theme         string `help:"PDF/HTML color theme (light or dark)"`
	Metrics       bool   `xor:"metrics" help:"Include engagement metrics"`
	NoMetrics     bool   `xor:"metrics" help:"Omit engagement metrics"`
	Images        bool   `xor:"images" help:"Include images"`
	NoImages      bool   `xor:"images" help:"Omit images"`
	Frontmatter   bool   `xor:"frontmatter" help:"Include Markdown frontmatter"`
	NoFrontmatter bool   `xor:"frontmatter" help:"Omit Markdown frontmatter"`
}

// OutputFlags select formats and where documents go.
type OutputFlags struct {
	Format string `short:"f" default:"md" help:"Comma-separated formats: md, html, pdf, both or all"`
	Output string `short:"o" default:"." help:"Output directory"`
	Stdout bool   `help:"Write documents to stdout instead of files"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	URLs []string `arg:"" name:"url" help:"Post URLs"`

	OptionFlags `embed:""`
	OutputFlags `embed:""`

	Fetcher     string        `enum:"rod,http" default:"rod" help:"Page fetcher (${enum})"`
	Timeout     time.Duration `default:"30s" help:"Per-page fetch timeout"`
	Concurrency int           `short:"c" default:"2" help:"Concurrent fetch limit"`
	RateLimit   float64       `default:"1" help:"Requests per second per host"`
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	File string `arg:"" help:"Saved HTML snapshot, or - for stdin"`
	URL  string `required:"" help:"URL the snapshot was taken from"`

	OptionFlags `embed:""`
	OutputFlags `embed:""`

	Archive bool `help:"Also archive the extracted article"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Handle string `help:"Only articles by this author handle"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of articles"`
	Offset int    `help:"Skip this many articles"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Article ID"`
	Format string `short:"f" enum:"md,html" default:"md" help:"Document format (${enum})"`

	OptionFlags `embed:""`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID string `arg:"" help:"Article ID"`
}

// SettingsCmd is the "settings" subcommand.
type SettingsCmd struct {
	Show SettingsShowCmd `cmd:"" default:"1" help:"Print effective options"`
	Set  SettingsSetCmd  `cmd:"" help:"Update a saved setting"`
}

// SettingsShowCmd is the "settings show" subcommand.
type SettingsShowCmd struct{}

// SettingsSetCmd is the "settings set" subcommand.
type SettingsSetCmd struct {
	Key   string `arg:"" help:"pdfTheme, includeMetrics, includeImages or includeFrontmatter"`
	Value string `arg:"" help:"New value"`
}
