package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
)

// CreateUser creates a user and seeds the default category set.
func (s *SQLiteStorage) CreateUser(ctx context.Context, name string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, name, created_at) VALUES (?, ?, ?)`,
		user.ID, user.Name, user.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	for _, cat := range model.DefaultCategories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (user_id, name, type, color, icon, is_default)
			 VALUES (?, ?, ?, ?, ?, 1)`,
			user.ID, cat.Name, string(cat.Type), cat.Color, cat.Icon); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", cat.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *SQLiteStorage) GetUser(ctx context.Context, id string) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var user model.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM users WHERE id = ?`, id).
		Scan(&user.ID, &user.Name, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// DeleteUser removes a user. Categories, transactions, patterns, and
// assets cascade through foreign keys.
func (s *SQLiteStorage) DeleteUser(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("user %s: %w", id, common.ErrNotFound)
	}
	return nil
}
