// Package rod provides a Fetcher that renders pages in headless Chrome, for
// articles that only appear once JavaScript has run.
package rod

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/mdclip"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements mdclip.Fetcher at compile time.
var _ mdclip.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *browser
	timeout time.Duration
	closed  atomic.Bool
}

type options struct {
	timeout  time.Duration
	stealth  bool
	maxPages int
}

// Option configures a Fetcher.
type Option func(*options)

// WithFetchTimeout bounds each Fetch call.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithStealth opens pages with go-rod/stealth evasions, for sites that
// block headless browsers.
func WithStealth(enabled bool) Option {
	return func(o *options) {
		o.stealth = enabled
	}
}

// WithMaxPages sets how many pages the browser renders before recycling.
func WithMaxPages(n int) Option {
	return func(o *options) {
		o.maxPages = n
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	o := options{timeout: DefaultFetchTimeout, maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(&o)
	}

	br, err := newBrowser(o.maxPages, o.stealth)
	if err != nil {
		return nil, err
	}
	return &Fetcher{browser: br, timeout: o.timeout}, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", mdclip.Errorf(mdclip.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.page()
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}
