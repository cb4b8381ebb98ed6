// Package batch runs extraction over a list of post URLs. It coordinates
// fetching, extraction, file output, and optional archiving, and reports
// progress in input order.
package batch

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/bloom"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once.
// Browser pages are expensive, so this is lower than a plain HTTP crawler.
const DefaultConcurrency = 4

// Dedupe filter sizing.
const (
	minExpectedURLs   = 1024
	falsePositiveRate = 0.001
)

// Runner extracts a batch of post URLs.
// Writer is required; Store is optional and archives every written document.
type Runner struct {
	Fetcher     xmd.Fetcher
	Extractor   xmd.Extractor
	Writer      xmd.DocumentWriter
	Store       xmd.DocumentStore
	RateLimiter xmd.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
	Log         LogFunc
}

// Result holds the outcome of a batch run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Bytes   int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Path      string
	Kind      xmd.Kind
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressCompleted:
		return "completed"
	case ProgressFailed:
		return "failed"
	case ProgressSkipped:
		return "skipped"
	case ProgressFinished:
		return "finished"
	}
	return "unknown"
}

// ProgressFunc is a callback for reporting batch progress.
// It is always called from the goroutine that called Run.
type ProgressFunc func(event ProgressEvent)

// item is one input URL and, once processed, its outcome.
type item struct {
	position int
	url      string
	skipped  bool
	path     string
	doc      *xmd.Document
	err      error
}

// Run processes urls and writes one Markdown file per post. Blank lines are
// ignored, URLs that are not status pages fail with ENOTPOSTPAGE, and
// repeats of an already queued post are skipped. Events for each URL are
// delivered in input order even though pages are processed concurrently.
//
// Individual failures are counted, not returned. Run returns an error only
// when ctx is canceled.
func (r *Runner) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	items := r.plan(urls)
	total := len(items)

	emit := func(e ProgressEvent) {
		if progress != nil {
			e.Total = total
			progress(e)
		}
	}
	emit(ProgressEvent{Type: ProgressStarted})

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	doneCh := make(chan *item, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, it := range items {
			if it.skipped || it.err != nil {
				doneCh <- it
				continue
			}
			g.Go(func() error {
				r.process(gctx, it)
				doneCh <- it
				return nil
			})
		}
		_ = g.Wait()
		close(doneCh)
	}()

	// Release events in input order as the prefix completes.
	var result Result
	finished := make([]bool, total)
	next := 0
	for it := range doneCh {
		finished[it.position] = true
		for next < total && finished[next] {
			done := items[next]
			next++
			switch {
			case done.skipped:
				result.Skipped++
				emit(ProgressEvent{Type: ProgressSkipped, Completed: next, URL: done.url})
			case done.err != nil:
				result.Failed++
				emit(ProgressEvent{Type: ProgressFailed, Completed: next, URL: done.url, Error: done.err})
			default:
				result.Saved++
				result.Bytes += len(done.doc.Body)
				emit(ProgressEvent{
					Type:      ProgressCompleted,
					Completed: next,
					URL:       done.url,
					Path:      done.path,
					Kind:      done.doc.Kind,
				})
			}
		}
	}

	emit(ProgressEvent{Type: ProgressFinished, Completed: total})

	if err := ctx.Err(); err != nil {
		return &result, err
	}
	return &result, nil
}

// plan trims the input, classifies every URL up front, and marks repeats.
func (r *Runner) plan(urls []string) []*item {
	seen := bloom.NewFilter(uint(max(len(urls), minExpectedURLs)), falsePositiveRate)

	var items []*item
	for _, raw := range urls {
		u := strings.TrimSpace(raw)
		if u == "" || strings.HasPrefix(u, "#") {
			continue
		}
		it := &item{position: len(items), url: u}
		switch {
		case !xmd.IsStatusURL(u):
			it.err = xmd.Errorf(xmd.ENOTPOSTPAGE, "Not on an X.com status page: %s", u)
		case seen.Seen(u):
			it.skipped = true
		}
		items = append(items, it)
	}
	return items
}

// process fetches, extracts, writes, and archives a single post.
func (r *Runner) process(ctx context.Context, it *item) {
	if r.RateLimiter != nil {
		if err := r.RateLimiter.Wait(ctx, hostOf(it.url)); err != nil {
			it.err = err
			return
		}
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, it.url, r.Fetcher.Fetch, r.Log, delays)
	if err != nil {
		it.err = err
		return
	}

	doc, err := r.Extractor.Extract(html, it.url)
	if err != nil {
		it.err = err
		return
	}

	path, err := r.Writer.WriteDocument(ctx, doc)
	if err != nil {
		it.err = err
		return
	}

	if r.Store != nil {
		if _, err := r.Store.SaveDocument(ctx, doc); err != nil {
			it.err = err
			return
		}
	}

	it.doc = doc
	it.path = path
}

// hostOf returns the rate limiting key for a post URL. Aliases of x.com
// share one key.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return xmd.CanonicalHost(u.Host)
}
