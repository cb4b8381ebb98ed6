package batch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/xmd"
	"github.com/fwojciec/xmd/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ xmd.DomainLimiter = (*batch.DomainLimiter)(nil)

// elapsed measures one Wait call.
func elapsed(t *testing.T, l *batch.DomainLimiter, host string) time.Duration {
	t.Helper()
	start := time.Now()
	require.NoError(t, l.Wait(context.Background(), host))
	return time.Since(start)
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("first request to a site does not wait", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(10)

		assert.Less(t, elapsed(t, l, "x.com"), 50*time.Millisecond)
	})

	t.Run("second request to the same site waits", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(10)
		elapsed(t, l, "x.com")

		assert.GreaterOrEqual(t, elapsed(t, l, "x.com"), 80*time.Millisecond)
	})

	t.Run("aliases of x.com share one bucket", func(t *testing.T) {
		t.Parallel()

		for _, alias := range []string{"twitter.com", "mobile.twitter.com", "WWW.X.COM"} {
			t.Run(alias, func(t *testing.T) {
				t.Parallel()

				l := batch.NewDomainLimiter(10)
				elapsed(t, l, "x.com")

				assert.GreaterOrEqual(t, elapsed(t, l, alias), 80*time.Millisecond)
			})
		}
	})

	t.Run("other sites are limited independently", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(10)
		elapsed(t, l, "x.com")

		assert.Less(t, elapsed(t, l, "pbs.twimg.com"), 50*time.Millisecond)
	})

	t.Run("returns the context error when canceled", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(1)
		elapsed(t, l, "x.com")

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := l.Wait(ctx, "twitter.com")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "x.com")
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		l := batch.NewDomainLimiter(100)

		var wg sync.WaitGroup
		errs := make([]error, 5)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = l.Wait(context.Background(), "x.com")
			}()
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})
}
