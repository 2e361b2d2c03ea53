package provider

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket. A full bucket lets burst calls through
// back to back, then one more token accrues per interval.
type RateLimiter struct {
	mu       sync.Mutex
	burst    int
	interval time.Duration
	tokens   int
	accrued  time.Time
}

func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		burst:    burst,
		interval: interval,
		tokens:   burst,
		accrued:  time.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		now := time.Now()
		r.credit(now)
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		wait := r.interval - now.Sub(r.accrued)
		r.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// credit converts elapsed time into tokens, capped at the burst size.
func (r *RateLimiter) credit(now time.Time) {
	for r.tokens < r.burst && now.Sub(r.accrued) >= r.interval {
		r.tokens++
		r.accrued = r.accrued.Add(r.interval)
	}
	if r.tokens == r.burst {
		r.accrued = now
	}
}
