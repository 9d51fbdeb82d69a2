package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/fwojciec/postdoc"
	"github.com/fwojciec/postdoc/fs"
)

// settings converts the flags that were given into a partial Settings.
func (f OptionFlags) settings() (postdoc.Settings, error) {
	var s postdoc.Settings
	if f.Theme != "" {
		theme, err := postdoc.ParseTheme(f.Theme)
		if err != nil {
			return s, err
		}
		s.PDFTheme = &theme
	}
	s.IncludeMetrics = toggle(f.Metrics, f.NoMetrics)
	s.IncludeImages = toggle(f.Images, f.NoImages)
	s.IncludeFrontmatter = toggle(f.Frontmatter, f.NoFrontmatter)
	return s, nil
}

func toggle(on, off bool) *bool {
	switch {
	case on:
		v := true
		return &v
	case off:
		v := false
		return &v
	}
	return nil
}

// effectiveOptions layers defaults, saved settings and flags, in that order.
func effectiveOptions(ctx context.Context, store postdoc.SettingsStore, flags OptionFlags) (postdoc.Options, error) {
	opts := postdoc.DefaultOptions()
	if store != nil {
		saved, err := store.LoadSettings(ctx)
		if err != nil {
			return opts, err
		}
		opts = saved.Apply(opts)
	}

	override, err := flags.settings()
	if err != nil {
		return opts, err
	}
	return override.Apply(opts), nil
}

// formats parses the requested formats. PDF cannot go to stdout.
func (f OutputFlags) formats() ([]postdoc.Format, error) {
	formats, err := postdoc.ParseFormats(f.Format)
	if err != nil {
		return nil, err
	}
	if f.Stdout && slices.Contains(formats, postdoc.FormatPDF) {
		return nil, postdoc.Errorf(postdoc.EINVALID, "pdf cannot be written to stdout")
	}
	return formats, nil
}

// store returns where the documents of one run are staged.
func (f OutputFlags) store(stdout io.Writer) postdoc.ExportStore {
	if f.Stdout {
		return &writerStore{w: stdout}
	}
	return fs.NewFileStore(f.Output)
}

// printerFor returns a printer when formats include pdf.
func printerFor(deps *Dependencies, formats []postdoc.Format) (postdoc.Printer, error) {
	if !slices.Contains(formats, postdoc.FormatPDF) {
		return nil, nil
	}
	if deps.NewPrinter == nil {
		return nil, postdoc.Errorf(postdoc.EINVALID, "pdf export is not available")
	}
	return deps.NewPrinter()
}

// reportPaths prints each written path with its size.
func reportPaths(w io.Writer, paths []string) {
	for _, p := range paths {
		if p == stdoutPath {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			fmt.Fprintf(w, "  wrote %s\n", p)
			continue
		}
		fmt.Fprintf(w, "  wrote %s (%s)\n", p, humanize.Bytes(uint64(info.Size())))
	}
}

const stdoutPath = "-"

// writerStore stages documents in memory and writes them to w on Commit,
// separated by a blank line.
type writerStore struct {
	w       io.Writer
	pending []*postdoc.Export
}

func (s *writerStore) Save(ctx context.Context, export *postdoc.Export) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.pending = append(s.pending, export)
	return stdoutPath, nil
}

func (s *writerStore) Commit() error {
	var errs []error
	for i, exp := range s.pending {
		if i > 0 {
			if _, err := io.WriteString(s.w, "\n"); err != nil {
				errs = append(errs, err)
			}
		}
		if _, err := s.w.Write(exp.Body); err != nil {
			errs = append(errs, err)
		}
	}
	s.pending = nil
	return errors.Join(errs...)
}

func (s *writerStore) Abort() error {
	s.pending = nil
	return nil
}
