package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sankalpa/khaata/internal/model"
)

// UpsertPattern inserts or updates a learned pattern by its natural
// key (user, case-insensitive description, merchant). Stored
// confidence never regresses, and the user-correction flag is sticky:
// once any correction has touched a key it stays a correction.
func (s *SQLiteStorage) UpsertPattern(ctx context.Context, pattern *model.CategoryPattern) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validatePattern(pattern); err != nil {
		return err
	}
	return upsertPattern(ctx, s.db, pattern)
}

func upsertPattern(ctx context.Context, q dbtx, pattern *model.CategoryPattern) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO category_patterns (
			user_id, description, merchant, category_id, confidence, is_user_correction
		) VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, description, merchant) DO UPDATE SET
			category_id = excluded.category_id,
			confidence = MAX(confidence, excluded.confidence),
			is_user_correction = MAX(is_user_correction, excluded.is_user_correction),
			updated_at = CURRENT_TIMESTAMP
	`, pattern.UserID, pattern.Description, pattern.Merchant,
		pattern.CategoryID, pattern.Confidence, pattern.IsUserCorrection)
	if err != nil {
		return fmt.Errorf("failed to upsert pattern: %w", err)
	}
	return nil
}

// GetPatternByKey retrieves the pattern for an exact natural key, or
// nil when none exists.
func (s *SQLiteStorage) GetPatternByKey(ctx context.Context, userID, description, merchant string) (*model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}
	if err := validateString(description, "description"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, selectPattern+`
		WHERE user_id = ? AND description = ? AND merchant = ?`,
		userID, description, merchant)
	pattern, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}
	return pattern, nil
}

// GetPatternsByUser retrieves a user's patterns ordered by confidence
// descending, then recency descending. The pattern matcher depends on
// this ordering for deterministic tie-breaking.
func (s *SQLiteStorage) GetPatternsByUser(ctx context.Context, userID string) ([]model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, selectPattern+`
		WHERE user_id = ?
		ORDER BY confidence DESC, updated_at DESC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var patterns []model.CategoryPattern
	for rows.Next() {
		pattern, err := scanPattern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", err)
		}
		patterns = append(patterns, *pattern)
	}
	return patterns, rows.Err()
}

// DeleteStalePatterns removes automated patterns not touched since the
// cutoff. User corrections are never deleted regardless of age.
func (s *SQLiteStorage) DeleteStalePatterns(ctx context.Context, userID string, olderThan time.Time) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM category_patterns
		WHERE user_id = ? AND is_user_correction = 0 AND updated_at < ?
	`, userID, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to delete stale patterns: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}
	return int(affected), nil
}

// GetPatternStats aggregates a user's learned patterns.
func (s *SQLiteStorage) GetPatternStats(ctx context.Context, userID string) (*model.PatternStats, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(userID, "userID"); err != nil {
		return nil, err
	}

	var stats model.PatternStats
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(SUM(is_user_correction), 0),
			AVG(confidence)
		FROM category_patterns WHERE user_id = ?
	`, userID).Scan(&stats.Total, &stats.UserCorrections, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to get pattern stats: %w", err)
	}

	stats.AIPatterns = stats.Total - stats.UserCorrections
	if avg.Valid {
		stats.AvgConfidence = avg.Float64
	}
	return &stats, nil
}

const selectPattern = `
	SELECT id, user_id, description, merchant, category_id, confidence,
		is_user_correction, created_at, updated_at
	FROM category_patterns`

func scanPattern(row rowScanner) (*model.CategoryPattern, error) {
	var pattern model.CategoryPattern
	if err := row.Scan(
		&pattern.ID, &pattern.UserID, &pattern.Description, &pattern.Merchant,
		&pattern.CategoryID, &pattern.Confidence, &pattern.IsUserCorrection,
		&pattern.CreatedAt, &pattern.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pattern, nil
}
