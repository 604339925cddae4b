package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

// SaveTransactions persists a batch of transactions in one database
// transaction. Transactions without an ID are assigned one.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			id, user_id, date, description, merchant, amount, type, source,
			category_id, llm_categorized, llm_confidence, notes, tags
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i := range transactions {
		txn := &transactions[i]
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}
		txn.CreatedAt = now

		if _, err := stmt.ExecContext(ctx,
			txn.ID, txn.UserID, txn.Date, txn.Description, txn.Merchant,
			txn.Amount, string(txn.Type), txn.Source,
			txn.CategoryID, txn.LLMCategorized, txn.LLMConfidence,
			txn.Notes, strings.Join(txn.Tags, ","),
		); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", txn.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}
	return nil
}

// GetTransactionByID retrieves a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectTransaction+` WHERE id = ?`, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

// GetTransactionsByUser retrieves a user's transactions, newest first.
func (s *SQLiteStorage) GetTransactionsByUser(ctx context.Context, userID string, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	query := selectTransaction + ` WHERE user_id = ?`
	args := []any{userID}

	if filter.StartDate != nil {
		query += ` AND date >= ?`
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		query += ` AND date <= ?`
		args = append(args, *filter.EndDate)
	}
	if filter.Source != "" {
		query += ` AND source = ?`
		args = append(args, filter.Source)
	}
	query += ` ORDER BY date DESC, created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	return transactions, rows.Err()
}

// UpdateTransaction persists category, provenance, notes, and tags
// changes for an existing transaction.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}
	return updateTransaction(ctx, s.db, txn)
}

// CountTransactionsByCategory returns how many transactions reference a
// category.
func (s *SQLiteStorage) CountTransactionsByCategory(ctx context.Context, categoryID int) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ?`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

const selectTransaction = `
	SELECT id, user_id, date, description, merchant, amount, type, source,
		category_id, llm_categorized, llm_confidence, notes, tags,
		created_at, updated_at
	FROM transactions`

func updateTransaction(ctx context.Context, q dbtx, txn *model.Transaction) error {
	result, err := q.ExecContext(ctx, `
		UPDATE transactions
		SET category_id = ?, llm_categorized = ?, llm_confidence = ?,
			notes = ?, tags = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, txn.CategoryID, txn.LLMCategorized, txn.LLMConfidence,
		txn.Notes, strings.Join(txn.Tags, ","), txn.ID)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transaction %s: %w", txn.ID, common.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var txnType string
	var tags string
	if err := row.Scan(
		&txn.ID, &txn.UserID, &txn.Date, &txn.Description, &txn.Merchant,
		&txn.Amount, &txnType, &txn.Source,
		&txn.CategoryID, &txn.LLMCategorized, &txn.LLMConfidence,
		&txn.Notes, &tags, &txn.CreatedAt, &txn.UpdatedAt,
	); err != nil {
		return nil, err
	}
	txn.Type = model.TransactionType(txnType)
	if tags != "" {
		txn.Tags = strings.Split(tags, ",")
	}
	return &txn, nil
}
