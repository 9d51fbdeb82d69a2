// Package rod implements postdoc.Fetcher and postdoc.Printer with a headless
// Chrome browser driven by go-rod.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/postdoc"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements postdoc.Fetcher at compile time.
var _ postdoc.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single fetch, navigation included.
const DefaultFetchTimeout = 30 * time.Second

// DefaultWaitTimeout bounds how long Fetch waits for post content to appear.
const DefaultWaitTimeout = 10 * time.Second

// DefaultSettleDelay gives lazily rendered content a moment after the first
// post element appears.
const DefaultSettleDelay = 750 * time.Millisecond

// DefaultWaitSelectors match the containers the scanner knows how to read.
var DefaultWaitSelectors = []string{
	`[data-testid="tweetText"]`,
	`.public-DraftEditor-content`,
	`[class*="longform"]`,
	`article[data-testid="tweet"]`,
}

// Fetcher retrieves rendered post pages using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	ownsManager bool
	timeout     time.Duration
	waitTimeout time.Duration
	settle      time.Duration
	selectors   []string
	managerOpts []ManagerOption
	closed      atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithFetchTimeout sets the timeout for a single fetch.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithWaitTimeout sets how long to wait for any wait selector to match.
// The page is returned as rendered so far when the wait expires.
func WithWaitTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.waitTimeout = d
	}
}

// WithSettleDelay sets the pause between the first matched element and
// serializing the page.
func WithSettleDelay(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// WithWaitSelectors replaces DefaultWaitSelectors. An empty list skips
// waiting entirely.
func WithWaitSelectors(selectors ...string) FetcherOption {
	return func(f *Fetcher) {
		f.selectors = selectors
	}
}

// WithManager makes the Fetcher use an existing BrowserManager. The caller
// keeps ownership and must close it.
func WithManager(bm *BrowserManager) FetcherOption {
	return func(f *Fetcher) {
		f.manager = bm
	}
}

// WithManagerOptions configures the BrowserManager launched by NewFetcher.
func WithManagerOptions(opts ...ManagerOption) FetcherOption {
	return func(f *Fetcher) {
		f.managerOpts = append(f.managerOpts, opts...)
	}
}

// NewFetcher creates a Fetcher. Unless WithManager is given it launches its
// own headless browser, which Close releases.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		waitTimeout: DefaultWaitTimeout,
		settle:      DefaultSettleDelay,
		selectors:   DefaultWaitSelectors,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.manager == nil {
		bm, err := NewBrowserManager(f.managerOpts...)
		if err != nil {
			return nil, err
		}
		f.manager = bm
		f.ownsManager = true
	}
	return f, nil
}

// Fetch navigates to the URL, waits for post content and returns the
// serialized DOM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", postdoc.Errorf(postdoc.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if err := f.waitForContent(ctx, page); err != nil {
		return "", err
	}

	return page.HTML()
}

// waitForContent blocks until one of the wait selectors matches, the wait
// timeout expires, or ctx is done. An expired wait is not an error.
func (f *Fetcher) waitForContent(ctx context.Context, page *rod.Page) error {
	if len(f.selectors) == 0 {
		return nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, f.waitTimeout)
	defer cancel()

	race := page.Context(waitCtx).Race()
	for _, sel := range f.selectors {
		race = race.Element(sel)
	}
	_, err := race.Do()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(f.settle):
		return nil
	}
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	if f.ownsManager {
		return f.manager.Close()
	}
	return nil
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}
