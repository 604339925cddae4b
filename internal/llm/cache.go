package llm

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"
)

// cachedClient memoizes completions by prompt hash. Repeated
// classification of identical transaction signatures within the TTL
// skips the provider entirely.
type cachedClient struct {
	next    Client
	entries map[string]cacheEntry
	ttl     time.Duration
	mu      sync.RWMutex
}

type cacheEntry struct {
	expiry  time.Time
	content string
}

func newCachedClient(next Client, ttl time.Duration) Client {
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	return &cachedClient{
		next:    next,
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

func (c *cachedClient) Complete(ctx context.Context, prompt string) (string, error) {
	key := fmt.Sprintf("%x", sha256.Sum256([]byte(prompt)))

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && time.Now().Before(entry.expiry) {
		return entry.content, nil
	}

	content, err := c.next.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{
		content: content,
		expiry:  time.Now().Add(c.ttl),
	}
	// Sweep expired entries opportunistically to bound memory.
	if len(c.entries) > 1024 {
		now := time.Now()
		for k, e := range c.entries {
			if now.After(e.expiry) {
				delete(c.entries, k)
			}
		}
	}
	c.mu.Unlock()

	return content, nil
}
