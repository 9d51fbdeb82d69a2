package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/fs"
	"github.com/fwojciec/postdoc/goquery"
	"github.com/fwojciec/postdoc/html"
	"github.com/fwojciec/postdoc/htmltomarkdown"
	pdhttp "github.com/fwojciec/postdoc/http"
	"github.com/fwojciec/postdoc/markdown"
	"github.com/fwojciec/postdoc/readability"
	"github.com/fwojciec/postdoc/rod"
	pdslog "github.com/fwojciec/postdoc/slog"
	"github.com/fwojciec/postdoc/sqlite"
	"github.com/fwojciec/postdoc/trafilatura"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing .env is fine; real environment variables always win.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Paths of the archive database and the settings file. Set before
	// calling Run().
	DBPath       string
	SettingsPath string

	// Stdin is read by "convert -". Defaults to os.Stdin.
	Stdin io.Reader

	// SQLite database used by the archive. Opened by Run when needed.
	DB *sqlite.DB

	// Browser is shared by the rod fetcher and the PDF printer. Launched
	// on first use.
	Browser *rod.BrowserManager

	// Fetcher and Printer replace the browser-backed implementations in
	// end-to-end tests.
	Fetcher postdoc.Fetcher
	Printer postdoc.Printer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:       defaultDBPath(),
		SettingsPath: defaultSettingsPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var err error
	if m.Browser != nil {
		err = m.Browser.Close()
		m.Browser = nil
	}
	if m.DB != nil {
		if cerr := m.DB.Close(); err == nil {
			err = cerr
		}
		m.DB = nil
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stdin:  m.Stdin,
		Now:    time.Now,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("postdoc"),
		kong.Description("Export posts, threads and long-form articles as Markdown, HTML or PDF."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'postdoc --help' to see available commands")
	}

	switch args[0] {
	case "help", "--help", "-h":
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Settings = fs.NewSettingsFile(m.SettingsPath)

	if err := m.wirePipeline(deps, cli); err != nil {
		return err
	}

	if needsArchive(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set POSTDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		var articles postdoc.ArticleService = sqlite.NewArticleService(m.DB)
		if cli.Verbose {
			articles = pdslog.NewLoggingArticleService(articles, deps.Logger)
		}
		deps.Articles = articles
	}

	return kongCtx.Run(deps)
}

// fallbackExtractor returns the generic extractor selected by --fallback, or
// nil when none is.
func fallbackExtractor(cli *CLI) postdoc.FallbackExtractor {
	switch cli.Fallback {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		var opts []trafilatura.Option
		if cli.FallbackComments {
			opts = append(opts, trafilatura.WithComments())
		}
		if cli.FallbackPrecision {
			opts = append(opts, trafilatura.WithPrecision())
		}
		return trafilatura.NewExtractor(opts...)
	}
	return nil
}

// wirePipeline builds the extractor, renderers and the lazily started
// browser services from the global flags.
func (m *Main) wirePipeline(deps *Dependencies, cli *CLI) error {
	extractorOpts := []goquery.Option{goquery.WithLogger(deps.Logger)}
	if fb := fallbackExtractor(cli); fb != nil {
		extractorOpts = append(extractorOpts, goquery.WithFallback(fb))
	}
	var extractor postdoc.Extractor = goquery.NewExtractor(extractorOpts...)

	var converter postdoc.Converter = markdown.NewConverter()
	if cli.Converter == "library" {
		converter = htmltomarkdown.NewConverter()
	}

	htmlRenderer, err := html.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load html template: %w", err)
	}
	renderers := map[postdoc.Format]postdoc.Renderer{
		postdoc.FormatMarkdown: markdown.NewRenderer(converter),
		postdoc.FormatHTML:     htmlRenderer,
	}

	if cli.Verbose {
		extractor = pdslog.NewLoggingExtractor(extractor, deps.Logger)
		for f, r := range renderers {
			renderers[f] = pdslog.NewLoggingRenderer(r, f, deps.Logger)
		}
	}

	deps.Extractor = extractor
	deps.Renderers = renderers

	deps.NewFetcher = func(kind string, timeout time.Duration) (postdoc.Fetcher, error) {
		fetcher, err := m.newFetcher(kind, timeout, deps.Stderr)
		if err != nil {
			return nil, err
		}
		if cli.Verbose {
			fetcher = pdslog.NewLoggingFetcher(fetcher, deps.Logger)
		}
		return fetcher, nil
	}

	deps.NewPrinter = func() (postdoc.Printer, error) {
		printer := m.Printer
		if printer == nil {
			bm, err := m.browser(deps.Stderr)
			if err != nil {
				return nil, err
			}
			printer = rod.NewPrinter(bm)
		}
		if cli.Verbose {
			printer = pdslog.NewLoggingPrinter(printer, deps.Logger)
		}
		return printer, nil
	}

	return nil
}

func (m *Main) newFetcher(kind string, timeout time.Duration, stderr io.Writer) (postdoc.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	switch kind {
	case "http":
		return pdhttp.NewFetcher(pdhttp.WithTimeout(timeout)), nil
	default:
		bm, err := m.browser(stderr)
		if err != nil {
			return nil, err
		}
		fetcher, err := rod.NewFetcher(rod.WithManager(bm), rod.WithFetchTimeout(timeout))
		if err != nil {
			return nil, err
		}
		return fetcher, nil
	}
}

// browser returns the shared browser, launching it on first use.
func (m *Main) browser(stderr io.Writer) (*rod.BrowserManager, error) {
	if m.Browser != nil {
		return m.Browser, nil
	}
	bm, err := rod.NewBrowserManager()
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}
	m.Browser = bm
	return bm, nil
}

func needsArchive(cmd string, cli *CLI) bool {
	switch cmd {
	case "export", "history", "show", "delete":
		return true
	case "convert":
		return cli.Convert.Archive
	}
	return false
}

// newLogger logs to stderr at debug level when verbose and discards
// everything otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func defaultDBPath() string {
	if path := os.Getenv("POSTDOC_DB"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "postdoc.db")
}

func defaultSettingsPath() string {
	if path := os.Getenv("POSTDOC_SETTINGS"); path != "" {
		return path
	}
	return filepath.Join(configDir(), "settings.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	dir := filepath.Join(home, ".postdoc")
	_ = os.MkdirAll(dir, 0755)
	return dir
}
