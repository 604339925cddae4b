package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sankalpa/khaata/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidPattern     = errors.New("invalid pattern")
	ErrInvalidAsset       = errors.New("invalid asset")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Description == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidTransaction)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: amount must be a non-negative magnitude", ErrInvalidTransaction)
	}
	if txn.LLMCategorized != (txn.LLMConfidence != nil) {
		return fmt.Errorf("%w: llm confidence must be present exactly when llm categorized", ErrInvalidTransaction)
	}
	return nil
}

// validatePattern validates a learned category pattern.
func validatePattern(pattern *model.CategoryPattern) error {
	if pattern == nil {
		return fmt.Errorf("%w: pattern", ErrNilParameter)
	}
	if pattern.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidPattern)
	}
	if strings.TrimSpace(pattern.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidPattern)
	}
	if pattern.CategoryID == 0 {
		return fmt.Errorf("%w: missing category", ErrInvalidPattern)
	}
	if pattern.Confidence < 0 || pattern.Confidence > 1 {
		return fmt.Errorf("%w: confidence must be between 0 and 1", ErrInvalidPattern)
	}
	return nil
}

// validateAsset validates an asset record.
func validateAsset(asset *model.Asset) error {
	if asset == nil {
		return fmt.Errorf("%w: asset", ErrNilParameter)
	}
	if asset.UserID == "" {
		return fmt.Errorf("%w: missing user ID", ErrInvalidAsset)
	}
	if strings.TrimSpace(asset.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidAsset)
	}
	if asset.CurrentValue < 0 {
		return fmt.Errorf("%w: current value cannot be negative", ErrInvalidAsset)
	}
	return nil
}
