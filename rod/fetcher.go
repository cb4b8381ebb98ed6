// Package rod provides a headless Chrome implementation of xmd.Fetcher.
// X renders posts client-side, so a page is only useful once the post or
// article container has appeared.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/xmd"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a whole fetch: navigation, load, and render.
const DefaultFetchTimeout = 30 * time.Second

// DefaultRenderWait bounds the wait for post markup after the load event.
// Pages that never render posts are still returned so the extractor can
// report a placeholder.
const DefaultRenderWait = 10 * time.Second

// Selectors that signal a rendered post page.
const (
	selPost        = `article[role="article"]`
	selArticleView = `[data-testid="twitterArticleRichTextView"]`
)

// Ensure Fetcher implements xmd.Fetcher at compile time.
var _ xmd.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from X pages using Chrome browser
// automation. Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager      *BrowserManager
	fetchTimeout time.Duration
	renderWait   time.Duration
	closed       atomic.Bool
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	fetchTimeout time.Duration
	renderWait   time.Duration
	managerOpts  []ManagerOption
}

// WithFetchTimeout sets the timeout for a single fetch.
func WithFetchTimeout(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.fetchTimeout = d
	}
}

// WithRenderWait sets how long to wait for post markup after load.
func WithRenderWait(d time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.renderWait = d
	}
}

// WithManagerOptions passes options through to the BrowserManager.
func WithManagerOptions(opts ...ManagerOption) FetcherOption {
	return func(c *fetcherConfig) {
		c.managerOpts = append(c.managerOpts, opts...)
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	cfg := fetcherConfig{
		fetchTimeout: DefaultFetchTimeout,
		renderWait:   DefaultRenderWait,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	manager, err := NewBrowserManager(cfg.managerOpts...)
	if err != nil {
		return nil, err
	}

	return &Fetcher{
		manager:      manager,
		fetchTimeout: cfg.fetchTimeout,
		renderWait:   cfg.renderWait,
	}, nil
}

// Fetch navigates to the URL, waits for post markup, and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", xmd.Errorf(xmd.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.fetchTimeout)
	defer cancel()

	browser := f.manager.Browser()
	if browser == nil {
		return "", xmd.Errorf(xmd.EINVALID, "fetcher is closed")
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()
	defer f.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", contextErr(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", contextErr(ctx, err)
	}

	if err := f.waitRendered(page); err != nil {
		// The parent deadline is fatal; a render timeout is not.
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", contextErr(ctx, err)
	}

	return html, nil
}

// waitRendered blocks until either a post or an article body is present.
func (f *Fetcher) waitRendered(page *rod.Page) error {
	_, err := page.Timeout(f.renderWait).Race().
		Element(selPost).
		Element(selArticleView).
		Do()
	return err
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.manager.LauncherPID()
}

// contextErr prefers the context's error so callers can match
// context.DeadlineExceeded and context.Canceled.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return ctxErr
	}
	return err
}
