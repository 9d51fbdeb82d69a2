// Package batch exports many post URLs in one run: fetch, extract, render
// every requested format, stage the files and archive the records.
package batch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/postdoc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of URLs processed at once.
const DefaultConcurrency = 2

// Exporter orchestrates multi-URL exports.
type Exporter struct {
	Fetcher   postdoc.Fetcher
	Extractor postdoc.Extractor

	// Renderers holds the text renderers by format. PDF is produced by
	// printing the FormatHTML rendering with Printer.
	Renderers map[postdoc.Format]postdoc.Renderer
	Printer   postdoc.Printer

	Store postdoc.ExportStore

	// Articles archives every extracted record. Optional.
	Articles postdoc.ArticleService

	// RateLimiter throttles fetches per host. Optional.
	RateLimiter RateLimiter

	Concurrency int
	RetryDelays []time.Duration

	// OnRetry is called before each fetch retry. Optional.
	OnRetry RetryFunc

	// Now returns the snapshot capture time. Defaults to time.Now.
	Now func() time.Time
}

// Item is the outcome of exporting one URL.
type Item struct {
	URL     string
	Article *postdoc.Article
	Paths   []string // staged paths, in format order

	// Err joins every failure. An item can have both Paths and Err when
	// some formats failed.
	Err error
}

// Result holds the outcome of an export run.
type Result struct {
	Items []Item

	Saved  int // files staged and committed
	Failed int // URLs with an error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressEvent reports progress during an export run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressFunc is a callback for reporting export progress.
type ProgressFunc func(event ProgressEvent)

type exportResult struct {
	position int
	article  *postdoc.Article
	exports  []*postdoc.Export
	err      error
}

// Export processes urls and stages their documents in Store. Per-URL
// failures are recorded in the result and do not stop the run. Store is
// committed when at least one file was staged and aborted otherwise.
// Cancelling ctx aborts the store and returns ctx.Err().
func (e *Exporter) Export(ctx context.Context, urls []string, opts postdoc.Options, formats []postdoc.Format, progress ProgressFunc) (*Result, error) {
	if len(urls) == 0 {
		return nil, postdoc.Errorf(postdoc.EINVALID, "at least one URL required")
	}
	if len(formats) == 0 {
		return nil, postdoc.Errorf(postdoc.EINVALID, "at least one format required")
	}
	if err := e.checkFormats(formats); err != nil {
		return nil, err
	}

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(urls)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	resultCh := make(chan exportResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			g.Go(func() error {
				resultCh <- e.processURL(gctx, i, u, opts, formats)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]exportResult, total)
	for r := range resultCh {
		results[r.position] = r
		n := int(completed.Add(1))

		if progress == nil {
			continue
		}
		ev := ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: urls[r.position]}
		if r.err != nil {
			ev.Type = ProgressFailed
			ev.Error = r.err
		}
		progress(ev)
	}

	if err := ctx.Err(); err != nil {
		_ = e.Store.Abort()
		return nil, err
	}

	res := &Result{Items: make([]Item, total)}
	for i, r := range results {
		item := Item{URL: urls[i], Article: r.article, Err: r.err}

		// Saved in input order so colliding names get stable suffixes.
		for _, exp := range r.exports {
			path, err := e.Store.Save(ctx, exp)
			if err != nil {
				item.Err = errors.Join(item.Err, err)
				continue
			}
			item.Paths = append(item.Paths, path)
			res.Saved++
		}

		if r.article != nil && e.Articles != nil {
			if err := e.Articles.CreateArticle(ctx, r.article); err != nil {
				item.Err = errors.Join(item.Err, err)
			}
		}

		if item.Err != nil {
			res.Failed++
		}
		res.Items[i] = item
	}

	if res.Saved == 0 {
		if err := e.Store.Abort(); err != nil {
			return res, err
		}
	} else if err := e.Store.Commit(); err != nil {
		return res, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return res, nil
}

func (e *Exporter) checkFormats(formats []postdoc.Format) error {
	for _, f := range formats {
		switch f {
		case postdoc.FormatPDF:
			if e.Printer == nil || e.Renderers[postdoc.FormatHTML] == nil {
				return postdoc.Errorf(postdoc.EINVALID, "pdf export requires an html renderer and a printer")
			}
		default:
			if e.Renderers[f] == nil {
				return postdoc.Errorf(postdoc.EINVALID, "no renderer for format %q", f)
			}
		}
	}
	return nil
}

// processURL fetches, extracts and renders a single URL.
func (e *Exporter) processURL(ctx context.Context, position int, rawURL string, opts postdoc.Options, formats []postdoc.Format) exportResult {
	result := exportResult{position: position}

	if e.RateLimiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			result.err = postdoc.Errorf(postdoc.EINVALID, "invalid url %q", rawURL)
			return result
		}
		if err := e.RateLimiter.Wait(ctx, u.Host); err != nil {
			result.err = err
			return result
		}
	}

	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, rawURL, e.Fetcher.Fetch, e.OnRetry, delays)
	if err != nil {
		result.err = err
		return result
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	article, err := e.Extractor.Extract(&postdoc.Snapshot{URL: rawURL, HTML: html, CapturedAt: now()})
	if err != nil {
		result.err = err
		return result
	}
	result.article = article

	result.exports, result.err = e.Render(ctx, article, opts, formats)
	return result
}

// Render produces one export per format. A failing format does not prevent
// the others; the returned error joins every failure.
func (e *Exporter) Render(ctx context.Context, a *postdoc.Article, opts postdoc.Options, formats []postdoc.Format) ([]*postdoc.Export, error) {
	if err := e.checkFormats(formats); err != nil {
		return nil, err
	}

	var exports []*postdoc.Export
	var errs []error

	var html string
	renderHTML := func() (string, error) {
		if html != "" {
			return html, nil
		}
		doc, err := e.Renderers[postdoc.FormatHTML].Render(a, opts)
		if err != nil {
			return "", err
		}
		html = doc
		return html, nil
	}

	for _, f := range formats {
		var body []byte
		switch f {
		case postdoc.FormatPDF:
			doc, err := renderHTML()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f, err))
				continue
			}
			pdf, err := e.Printer.Print(ctx, doc)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f, err))
				continue
			}
			body = pdf
		case postdoc.FormatHTML:
			doc, err := renderHTML()
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f, err))
				continue
			}
			body = []byte(doc)
		default:
			doc, err := e.Renderers[f].Render(a, opts)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", f, err))
				continue
			}
			body = []byte(doc)
		}

		exports = append(exports, &postdoc.Export{
			Name:   postdoc.Filename(a.Title, string(f)),
			Format: f,
			Body:   body,
		})
	}
	return exports, errors.Join(errs...)
}
