package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sankalpa/khaata/internal/classify"
	"github.com/sankalpa/khaata/internal/config"
	"github.com/sankalpa/khaata/internal/llm"
	"github.com/sankalpa/khaata/internal/pattern"
	"github.com/sankalpa/khaata/internal/service"
	"github.com/sankalpa/khaata/internal/storage"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(config.DatabasePath())
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// newClassifier builds the full resolution chain. Without an API key
// the LLM step is skipped and classification stops at the quick rules.
func newClassifier(store service.Storage) *classify.Classifier {
	var client llm.Client
	cfg := config.LoadLLMConfig()
	if cfg.APIKey != "" {
		var err error
		client, err = llm.NewClient(cfg)
		if err != nil {
			slog.Warn("llm client unavailable, classification will use rules only", "error", err)
			client = nil
		}
	}
	return classify.NewClassifier(pattern.NewMatcher(store), store, client, slog.Default())
}
