package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
)

// GetCategories retrieves all of a user's categories (seeded defaults
// included), ordered by type then name.
func (s *SQLiteStorage) GetCategories(ctx context.Context, userID string) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectCategory+`
		WHERE user_id = ? ORDER BY type, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, *cat)
	}
	return categories, rows.Err()
}

// GetCategoryByID retrieves a category by ID.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectCategory+` WHERE id = ?`, id)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}

// GetCategoryByName retrieves a user's category by case-insensitive
// name match.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, userID, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectCategory+`
		WHERE user_id = ? AND name = ? COLLATE NOCASE`, userID, name)
	cat, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("category %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return cat, nil
}

// CreateCategory creates a user category. The two-level hierarchy is
// enforced here: a category whose parent already has a parent is
// rejected.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, category *model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if category == nil {
		return fmt.Errorf("%w: category", ErrNilParameter)
	}
	if err := validateString(category.UserID, "userID"); err != nil {
		return err
	}
	if err := validateString(category.Name, "name"); err != nil {
		return err
	}
	switch category.Type {
	case model.CategoryTypeIncome, model.CategoryTypeExpense, model.CategoryTypeAsset:
	default:
		return fmt.Errorf("%w: unknown type %q", common.ErrInvalidCategory, category.Type)
	}

	if category.ParentID != nil {
		parent, err := s.GetCategoryByID(ctx, *category.ParentID)
		if err != nil {
			return fmt.Errorf("parent category: %w", err)
		}
		if parent.UserID != category.UserID {
			return common.ErrCategoryNotOwned
		}
		if parent.ParentID != nil {
			return common.ErrCategoryTooDeep
		}
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type, color, icon, is_default, parent_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, category.UserID, category.Name, string(category.Type),
		category.Color, category.Icon, category.IsDefault, category.ParentID)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get category ID: %w", err)
	}
	category.ID = int(id)
	return nil
}

// DeleteCategory removes a non-default category with no associated
// transactions and no children.
func (s *SQLiteStorage) DeleteCategory(ctx context.Context, id int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	cat, err := s.GetCategoryByID(ctx, id)
	if err != nil {
		return err
	}
	if cat.IsDefault {
		return common.ErrDefaultCategory
	}

	count, err := s.CountTransactionsByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d transactions", common.ErrCategoryInUse, count)
	}

	var children int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM categories WHERE parent_id = ?`, id).Scan(&children); err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if children > 0 {
		return fmt.Errorf("%w: %d children", common.ErrCategoryInUse, children)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}

const selectCategory = `
	SELECT id, user_id, name, type, color, icon, is_default, parent_id, created_at
	FROM categories`

func scanCategory(row rowScanner) (*model.Category, error) {
	var cat model.Category
	var catType string
	if err := row.Scan(
		&cat.ID, &cat.UserID, &cat.Name, &catType, &cat.Color, &cat.Icon,
		&cat.IsDefault, &cat.ParentID, &cat.CreatedAt,
	); err != nil {
		return nil, err
	}
	cat.Type = model.NormalizeCategoryType(catType)
	return &cat, nil
}
