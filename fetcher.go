package xmd

import "context"

// Fetcher retrieves rendered HTML from URLs.
// The extraction engine never fetches; fetchers are the host side that
// materializes a page before it is handed to an Extractor.
type Fetcher interface {
	// Fetch loads the URL and returns the rendered HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
