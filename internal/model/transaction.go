// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"time"
)

// TransactionType indicates the direction of money movement.
type TransactionType string

const (
	// TypeIncome represents money flowing in (salary, dividends, interest).
	TypeIncome TransactionType = "income"
	// TypeExpense represents money flowing out.
	TypeExpense TransactionType = "expense"
	// TypeAsset represents purchases or sales of portfolio assets.
	TypeAsset TransactionType = "asset"
)

// ParsedTransaction is a single statement row after normalization.
// It is produced by the statement parser and either discarded (preview)
// or converted into a persisted Transaction.
type ParsedTransaction struct {
	Date        time.Time
	OriginalRow map[string]string
	Description string
	Merchant    string
	Source      string
	Type        TransactionType
	Amount      float64
}

// Transaction is a persisted transaction owned by a user.
type Transaction struct {
	Date           time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	CategoryID     *int
	LLMConfidence  *float64
	ID             string
	UserID         string
	Description    string
	Merchant       string
	Source         string
	Notes          string
	Type           TransactionType
	Tags           []string
	Amount         float64
	LLMCategorized bool
}

// DedupKey returns the key used for duplicate detection during import.
func (t *ParsedTransaction) DedupKey() string {
	return fmt.Sprintf("%s:%s:%.2f", t.Date.Format("2006-01-02"), t.Description, t.Amount)
}

// DedupKey returns the key used for duplicate detection during import.
func (t *Transaction) DedupKey() string {
	return fmt.Sprintf("%s:%s:%.2f", t.Date.Format("2006-01-02"), t.Description, t.Amount)
}

// SetManualCategory assigns a category chosen by the user. Manual
// assignment always clears the LLM provenance fields: a correction is
// not itself LLM-categorized.
func (t *Transaction) SetManualCategory(categoryID int) {
	t.CategoryID = &categoryID
	t.LLMCategorized = false
	t.LLMConfidence = nil
}

// SetAutoCategory assigns a category produced by the classifier along
// with the confidence it was assigned at.
func (t *Transaction) SetAutoCategory(categoryID int, confidence float64) {
	t.CategoryID = &categoryID
	t.LLMCategorized = true
	t.LLMConfidence = &confidence
}
