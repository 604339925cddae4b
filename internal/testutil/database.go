// Package testutil provides shared helpers for tests that need a real
// storage layer.
package testutil

import (
	"context"
	"testing"

	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/storage"
)

// TestDB is an in-memory database with a seeded user.
type TestDB struct {
	Storage *storage.SQLiteStorage
	User    *model.User
	t       *testing.T
}

// SetupTestDB creates a migrated in-memory SQLite database and one
// user with the default category set. Cleanup is registered
// automatically.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	user, err := store.CreateUser(ctx, "test user")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		User:    user,
		t:       t,
	}
}

// MustCategory returns the seeded category with the given name or
// fails the test.
func (db *TestDB) MustCategory(name string) *model.Category {
	db.t.Helper()

	cat, err := db.Storage.GetCategoryByName(context.Background(), db.User.ID, name)
	if err != nil {
		db.t.Fatalf("category %q not found: %v", name, err)
	}
	return cat
}

// CategoryNames returns the names of every category the user has.
func (db *TestDB) CategoryNames() []string {
	db.t.Helper()

	cats, err := db.Storage.GetCategories(context.Background(), db.User.ID)
	if err != nil {
		db.t.Fatalf("failed to list categories: %v", err)
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}
