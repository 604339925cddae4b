package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the
// application expects.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Users, categories, and transactions",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS users (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS categories (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					type TEXT NOT NULL,
					color TEXT DEFAULT '',
					icon TEXT DEFAULT '',
					is_default INTEGER NOT NULL DEFAULT 0,
					parent_id INTEGER REFERENCES categories(id) ON DELETE CASCADE,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_categories_user ON categories(user_id)`,

				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					date DATETIME NOT NULL,
					description TEXT NOT NULL,
					merchant TEXT DEFAULT '',
					amount REAL NOT NULL,
					type TEXT NOT NULL,
					source TEXT DEFAULT '',
					category_id INTEGER REFERENCES categories(id) ON DELETE SET NULL,
					llm_categorized INTEGER NOT NULL DEFAULT 0,
					llm_confidence REAL,
					notes TEXT DEFAULT '',
					tags TEXT DEFAULT '',
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_transactions_user_date ON transactions(user_id, date)`,
				`CREATE INDEX idx_transactions_category ON transactions(category_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Learned category patterns",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS category_patterns (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					description TEXT NOT NULL COLLATE NOCASE,
					merchant TEXT NOT NULL DEFAULT '',
					category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
					confidence REAL NOT NULL DEFAULT 0,
					is_user_correction INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, description, merchant)
				)`,
				`CREATE INDEX idx_patterns_user_confidence ON category_patterns(user_id, confidence DESC, updated_at DESC)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Portfolio assets",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS assets (
					id TEXT PRIMARY KEY,
					user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					category TEXT NOT NULL,
					subcategory TEXT NOT NULL DEFAULT '',
					current_value REAL NOT NULL DEFAULT 0,
					quantity REAL NOT NULL DEFAULT 0,
					purchase_count INTEGER NOT NULL DEFAULT 0,
					is_active INTEGER NOT NULL DEFAULT 1,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					UNIQUE(user_id, name, category, subcategory)
				)
			`)
			return err
		},
	},
}

// SchemaVersion reports the highest applied migration version, or 0
// for a fresh database.
func (s *SQLiteStorage) SchemaVersion(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_migrations'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return current, nil
}

// Migrate applies any pending schema migrations.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}

		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}

		slog.Info("Applied migration", "version", m.Version, "description", m.Description)
	}

	return nil
}
