// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/sankalpa/khaata/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Source    string
	Limit     int
	Offset    int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// User operations
	CreateUser(ctx context.Context, name string) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	DeleteUser(ctx context.Context, id string) error

	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	CountTransactionsByCategory(ctx context.Context, categoryID int) (int, error)

	// Category operations
	GetCategories(ctx context.Context, userID string) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*model.Category, error)
	GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int) error

	// Learned pattern operations
	UpsertPattern(ctx context.Context, pattern *model.CategoryPattern) error
	GetPatternByKey(ctx context.Context, userID, description, merchant string) (*model.CategoryPattern, error)
	GetPatternsByUser(ctx context.Context, userID string) ([]model.CategoryPattern, error)
	DeleteStalePatterns(ctx context.Context, userID string, olderThan time.Time) (int, error)
	GetPatternStats(ctx context.Context, userID string) (*model.PatternStats, error)

	// Asset operations
	GetAsset(ctx context.Context, userID, name, category, subcategory string) (*model.Asset, error)
	SaveAsset(ctx context.Context, asset *model.Asset) error
	GetAssetsByUser(ctx context.Context, userID string) ([]model.Asset, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx represents a database transaction scoped to the operations that
// must be atomic from the caller's perspective.
type Tx interface {
	Commit() error
	Rollback() error

	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	UpsertPattern(ctx context.Context, pattern *model.CategoryPattern) error
}

// Classifier suggests a category for a transaction's textual signature.
// Implementations must degrade gracefully: a classification failure is
// reported through a low-confidence suggestion, never an error.
type Classifier interface {
	Categorize(ctx context.Context, description, merchant string, amount float64, available []string, userID string) model.CategorySuggestion
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
