package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/batch"
)

// Run executes the convert command.
func (c *ConvertCmd) Run(deps *Dependencies) error {
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

	html, err := c.readSnapshot(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	article, err := deps.Extractor.Extract(&postdoc.Snapshot{URL: c.URL, HTML: html, CapturedAt: now()})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	printer, err := printerFor(deps, formats)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
		return err
	}

	exporter := &batch.Exporter{Renderers: deps.Renderers, Printer: printer}
	exports, renderErr := exporter.Render(deps.Ctx, article, opts, formats)
	if renderErr != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(renderErr))
	}

	store := c.store(deps.Stdout)
	var paths []string
	for _, exp := range exports {
		path, err := store.Save(deps.Ctx, exp)
		if err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
			return err
		}
		paths = append(paths, path)
	}
	if len(paths) > 0 {
		if err := store.Commit(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
			return err
		}
	}

	if c.Archive && deps.Articles != nil {
		if err := deps.Articles.CreateArticle(deps.Ctx, article); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", postdoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Archived %s\n", article.ID)
	}

	if !c.Stdout {
		reportPaths(deps.Stdout, paths)
	}
	return renderErr
}

// readSnapshot reads the snapshot file, or stdin for "-".
func (c *ConvertCmd) readSnapshot(stdin io.Reader) (string, error) {
	if c.File == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(c.File)
	if os.IsNotExist(err) {
		return "", postdoc.Errorf(postdoc.ENOTFOUND, "snapshot %q not found", c.File)
	} else if err != nil {
		return "", err
	}
	return string(data), nil
}
