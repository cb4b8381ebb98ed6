package batch

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/xmd"
	"golang.org/x/time/rate"
)

var _ xmd.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces requests per site with one token bucket per canonical
// host. twitter.com, mobile.twitter.com and x.com are the same site and
// share a bucket; media hosts such as pbs.twimg.com get their own.
type DomainLimiter struct {
	mu      sync.Mutex
	buckets map[string]*rate.Limiter
	limit   rate.Limit
}

// NewDomainLimiter returns a limiter allowing perSecond requests to each
// site, with no bursting.
func NewDomainLimiter(perSecond float64) *DomainLimiter {
	return &DomainLimiter{
		buckets: make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := xmd.CanonicalHost(host)
	if err := d.bucket(key).Wait(ctx); err != nil {
		return fmt.Errorf("waiting for %s: %w", key, err)
	}
	return nil
}

func (d *DomainLimiter) bucket(key string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buckets[key]
	if !ok {
		b = rate.NewLimiter(d.limit, 1)
		d.buckets[key] = b
	}
	return b
}
