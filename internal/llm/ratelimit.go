package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// limitedClient applies a token bucket rate limit in front of a
// provider client. The bucket refills at the configured requests per
// minute; callers block until a token is available.
type limitedClient struct {
	next    Client
	limiter *rateLimiter
}

func newLimitedClient(next Client, requestsPerMinute int) Client {
	return &limitedClient{
		next:    next,
		limiter: newRateLimiter(requestsPerMinute),
	}
}

func (c *limitedClient) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.wait(ctx); err != nil {
		return "", err
	}
	return c.next.Complete(ctx, prompt)
}

// rateLimiter implements a simple token bucket rate limiter.
type rateLimiter struct {
	lastRefill time.Time
	tokens     int
	capacity   int
	refillRate int
	mu         sync.Mutex
}

// newRateLimiter creates a rate limiter with the specified requests
// per minute.
func newRateLimiter(requestsPerMinute int) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}

	return &rateLimiter{
		tokens:     requestsPerMinute,
		capacity:   requestsPerMinute,
		refillRate: requestsPerMinute,
		lastRefill: time.Now(),
	}
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if rl.tryAcquire() {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// tryAcquire refills the bucket for elapsed time and attempts to take
// a token without blocking.
func (rl *rateLimiter) tryAcquire() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(rl.lastRefill)
	refill := int(elapsed / (time.Minute / time.Duration(rl.refillRate)))
	if refill > 0 {
		rl.tokens += refill
		if rl.tokens > rl.capacity {
			rl.tokens = rl.capacity
		}
		rl.lastRefill = now
	}

	if rl.tokens > 0 {
		rl.tokens--
		return true
	}
	return false
}
