package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sankalpa/khaata/internal/model"
)

// GetAsset retrieves an asset by its (user, name, category,
// subcategory) identity, or nil when none exists.
func (s *SQLiteStorage) GetAsset(ctx context.Context, userID, name, category, subcategory string) (*model.Asset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectAsset+`
		WHERE user_id = ? AND name = ? AND category = ? AND subcategory = ?`,
		userID, name, category, subcategory)
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return asset, nil
}

// SaveAsset inserts or updates an asset by its identity key.
func (s *SQLiteStorage) SaveAsset(ctx context.Context, asset *model.Asset) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAsset(asset); err != nil {
		return err
	}

	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO assets (
			id, user_id, name, category, subcategory,
			current_value, quantity, purchase_count, is_active
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, name, category, subcategory) DO UPDATE SET
			current_value = excluded.current_value,
			quantity = excluded.quantity,
			purchase_count = excluded.purchase_count,
			is_active = excluded.is_active,
			updated_at = CURRENT_TIMESTAMP
	`, asset.ID, asset.UserID, asset.Name, asset.Category, asset.Subcategory,
		asset.CurrentValue, asset.Quantity, asset.PurchaseCount, asset.IsActive)
	if err != nil {
		return fmt.Errorf("failed to save asset: %w", err)
	}
	return nil
}

// GetAssetsByUser retrieves all of a user's assets.
func (s *SQLiteStorage) GetAssetsByUser(ctx context.Context, userID string) ([]model.Asset, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectAsset+`
		WHERE user_id = ? ORDER BY category, name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var assets []model.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, *asset)
	}
	return assets, rows.Err()
}

const selectAsset = `
	SELECT id, user_id, name, category, subcategory, current_value,
		quantity, purchase_count, is_active, created_at, updated_at
	FROM assets`

func scanAsset(row rowScanner) (*model.Asset, error) {
	var asset model.Asset
	if err := row.Scan(
		&asset.ID, &asset.UserID, &asset.Name, &asset.Category, &asset.Subcategory,
		&asset.CurrentValue, &asset.Quantity, &asset.PurchaseCount, &asset.IsActive,
		&asset.CreatedAt, &asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}
