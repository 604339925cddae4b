package pattern

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

// DefaultRetentionDays is the cleanup window for automated patterns.
const DefaultRetentionDays = 90

// Learner records corrections and manages the pattern lifecycle.
type Learner struct {
	storage service.Storage
	logger  *slog.Logger
}

// NewLearner creates a learner backed by the given storage.
func NewLearner(storage service.Storage, logger *slog.Logger) *Learner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Learner{storage: storage, logger: logger}
}

// RecordCorrection upserts a user correction for the given signature.
// Corrections are permanent: they are exempt from cleanup and their
// stored confidence never regresses.
func (l *Learner) RecordCorrection(ctx context.Context, userID, description, merchant string, categoryID int, confidence float64) error {
	if confidence <= 0 {
		confidence = 1.0
	}
	return l.storage.UpsertPattern(ctx, &model.CategoryPattern{
		UserID:           userID,
		Description:      description,
		Merchant:         merchant,
		CategoryID:       categoryID,
		Confidence:       confidence,
		IsUserCorrection: true,
	})
}

// RecordMatch upserts an automated (AI-derived) pattern. If the key
// already holds a user correction the correction flag is preserved.
func (l *Learner) RecordMatch(ctx context.Context, userID, description, merchant string, categoryID int, confidence float64) error {
	return l.storage.UpsertPattern(ctx, &model.CategoryPattern{
		UserID:      userID,
		Description: description,
		Merchant:    merchant,
		CategoryID:  categoryID,
		Confidence:  confidence,
	})
}

// ListPatterns returns a user's patterns, highest confidence first.
func (l *Learner) ListPatterns(ctx context.Context, userID string) ([]model.CategoryPattern, error) {
	return l.storage.GetPatternsByUser(ctx, userID)
}

// Cleanup deletes automated patterns untouched within the retention
// window. User corrections persist indefinitely.
func (l *Learner) Cleanup(ctx context.Context, userID string, retentionDays int) (int, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	deleted, err := l.storage.DeleteStalePatterns(ctx, userID, cutoff)
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		l.logger.Info("cleaned up stale patterns",
			"user_id", userID,
			"deleted", deleted,
			"retention_days", retentionDays)
	}
	return deleted, nil
}

// Stats aggregates a user's learned patterns.
func (l *Learner) Stats(ctx context.Context, userID string) (*model.PatternStats, error) {
	return l.storage.GetPatternStats(ctx, userID)
}

// CorrectTransaction applies a manual category correction: the
// category must belong to the transaction's owner, and the transaction
// update and the learning record land atomically.
func (l *Learner) CorrectTransaction(ctx context.Context, transactionID string, categoryID int) error {
	txn, err := l.storage.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	category, err := l.storage.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidCategory, err)
	}
	if category.UserID != txn.UserID {
		return common.ErrCategoryNotOwned
	}

	txn.SetManualCategory(categoryID)

	tx, err := l.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin correction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return err
	}
	if err := tx.UpsertPattern(ctx, &model.CategoryPattern{
		UserID:           txn.UserID,
		Description:      txn.Description,
		Merchant:         txn.Merchant,
		CategoryID:       categoryID,
		Confidence:       1.0,
		IsUserCorrection: true,
	}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit correction: %w", err)
	}

	l.logger.Info("recorded correction",
		"transaction_id", transactionID,
		"category_id", categoryID,
		"description", txn.Description)
	return nil
}
