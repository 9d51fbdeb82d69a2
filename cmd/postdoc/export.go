package main

import (
	"fmt"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/batch"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	formats, err := c.formats()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	opts, err := effectiveOptions(deps.Ctx, deps.Settings, c.OptionFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	printer, err := printerFor(deps, formats)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	fetcher, err := deps.NewFetcher(c.Fetcher, c.Timeout)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}
	defer fetcher.Close()

	exporter := &batch.Exporter{
		Fetcher:     fetcher,
		Extractor:   deps.Extractor,
		Renderers:   deps.Renderers,
		Printer:     printer,
		Store:       c.store(deps.Stdout),
		Articles:    deps.Articles,
		Concurrency: c.Concurrency,
		OnRetry: func(url string, attempt int, err error) {
			fmt.Fprintf(deps.Stderr, "  retry %s (attempt %d): %v\n", url, attempt, err)
		},
		Now: deps.Now,
	}
	if c.RateLimit > 0 {
		exporter.RateLimiter = batch.NewHostLimiter(c.RateLimit)
	}

	// Progress goes to stderr so --stdout output stays clean.
	progress := func(event batch.ProgressEvent) {
		switch event.Type {
		case batch.ProgressStarted:
			if event.Total > 1 {
				fmt.Fprintf(deps.Stderr, "Exporting %d URLs\n", event.Total)
			}
		case batch.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, postdoc.ErrorMessage(event.Error))
		}
	}

	result, err := exporter.Export(deps.Ctx, c.URLs, opts, formats, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	if !c.Stdout {
		for _, item := range result.Items {
			reportPaths(deps.Stdout, item.Paths)
		}
		fmt.Fprintf(deps.Stdout, "Saved %d files to %s\n", result.Saved, c.Output)
	}

	if result.Failed > 0 {
		return postdoc.Errorf(postdoc.EINTERNAL, "%d of %d URLs failed", result.Failed, len(c.URLs))
	}
	return nil
}
