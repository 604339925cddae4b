// Package engine drives the bulk operations: statement import and
// whole-history recategorization. Both process transactions in small
// concurrent batches so the LLM collaborator is never hit by more than
// a handful of calls at once.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sankalpa/khaata/internal/assets"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/pattern"
	"github.com/sankalpa/khaata/internal/service"
)

const (
	// batchSize bounds concurrent classifier calls per batch.
	batchSize = 10
	// batchDelay paces sequential batches so a shared LLM backend is
	// not overwhelmed when many rows fall through to the fallback.
	batchDelay = 100 * time.Millisecond

	// applyThreshold is the minimum suggestion confidence for
	// recategorization to overwrite an existing category.
	applyThreshold = 0.7
	// learnThreshold is the minimum confidence at which an import
	// records the suggestion as a learnable pattern.
	learnThreshold = 0.8
)

// Engine wires storage, the classifier, the pattern learner, and the
// asset handler into the two bulk operations. learner and assets are
// optional; when nil the corresponding side effects are skipped.
type Engine struct {
	storage    service.Storage
	classifier service.Classifier
	learner    *pattern.Learner
	assets     *assets.Handler
	logger     *slog.Logger
	delay      time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithBatchDelay overrides the inter-batch pacing delay. Tests pass
// zero to avoid sleeping.
func WithBatchDelay(d time.Duration) Option {
	return func(e *Engine) { e.delay = d }
}

// WithLearner enables pattern learning for high-confidence import
// classifications.
func WithLearner(l *pattern.Learner) Option {
	return func(e *Engine) { e.learner = l }
}

// WithAssetHandler enables portfolio side effects on import.
func WithAssetHandler(h *assets.Handler) Option {
	return func(e *Engine) { e.assets = h }
}

// New creates an Engine.
func New(storage service.Storage, classifier service.Classifier, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		storage:    storage,
		classifier: classifier,
		logger:     logger,
		delay:      batchDelay,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// categoryIndex caches a user's categories for one bulk operation.
type categoryIndex struct {
	names  []string
	byName map[string]model.Category
	byID   map[int]model.Category
}

func (e *Engine) loadCategories(ctx context.Context, userID string) (*categoryIndex, error) {
	cats, err := e.storage.GetCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	idx := &categoryIndex{
		names:  make([]string, 0, len(cats)),
		byName: make(map[string]model.Category, len(cats)),
		byID:   make(map[int]model.Category, len(cats)),
	}
	for _, c := range cats {
		idx.names = append(idx.names, c.Name)
		idx.byName[c.Name] = c
		idx.byID[c.ID] = c
	}
	return idx, nil
}

// forEachBatch runs fn concurrently over n items in fixed-size
// batches, waiting for each batch to finish before starting the next.
func (e *Engine) forEachBatch(ctx context.Context, n int, fn func(i int)) {
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				fn(i)
			}(i)
		}
		wg.Wait()

		if end < n && e.delay > 0 {
			select {
			case <-time.After(e.delay):
			case <-ctx.Done():
				return
			}
		}
	}
}
