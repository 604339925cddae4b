// Package llm provides text-completion clients for the external
// classification fallback. Providers are reached over plain HTTP and
// exposed through a single request/response interface: no streaming,
// no multi-turn state, no retry on failure.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sankalpa/khaata/internal/common"
)

// Client is a single-call text-completion service.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for an LLM client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	RateLimit   int
	CacheTTL    time.Duration
}

// NewClient creates a provider client wrapped with rate limiting and
// response caching.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: llm.api_key", common.ErrMissingConfig)
	}

	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider %q", common.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	client = newLimitedClient(client, cfg.RateLimit)
	client = newCachedClient(client, cfg.CacheTTL)
	return client, nil
}
