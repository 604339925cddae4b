package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

func newTestStorage(t *testing.T) (*SQLiteStorage, *model.User) {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	user, err := store.CreateUser(ctx, "asha")
	require.NoError(t, err)
	return store, user
}

func mustCategory(t *testing.T, s *SQLiteStorage, userID, name string) *model.Category {
	t.Helper()
	cat, err := s.GetCategoryByName(context.Background(), userID, name)
	require.NoError(t, err)
	return cat
}

func sampleTransaction(userID string, date time.Time, description string, amount float64) model.Transaction {
	return model.Transaction{
		Date:        date,
		UserID:      userID,
		Description: description,
		Merchant:    "SWIGGY",
		Source:      "sbi",
		Type:        model.TypeExpense,
		Amount:      amount,
	}
}

func TestCreateUserSeedsDefaults(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	cats, err := store.GetCategories(ctx, user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, cats)

	names := make(map[string]model.CategoryType, len(cats))
	for _, c := range cats {
		assert.True(t, c.IsDefault)
		names[c.Name] = c.Type
	}
	assert.Equal(t, model.CategoryTypeExpense, names["Groceries & Food"])
	assert.Equal(t, model.CategoryTypeIncome, names["Salary"])
	assert.Equal(t, model.CategoryTypeAsset, names["Stock Purchase"])
}

func TestCategoryHierarchyEnforcement(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	root := &model.Category{UserID: user.ID, Name: "Household", Type: model.CategoryTypeExpense}
	require.NoError(t, store.CreateCategory(ctx, root))
	require.NotZero(t, root.ID)

	child := &model.Category{UserID: user.ID, Name: "Maid", Type: model.CategoryTypeExpense, ParentID: &root.ID}
	require.NoError(t, store.CreateCategory(ctx, child))

	grandchild := &model.Category{UserID: user.ID, Name: "Too deep", Type: model.CategoryTypeExpense, ParentID: &child.ID}
	err := store.CreateCategory(ctx, grandchild)
	assert.ErrorIs(t, err, common.ErrCategoryTooDeep)

	other, err := store.CreateUser(ctx, "ravi")
	require.NoError(t, err)
	stolen := &model.Category{UserID: other.ID, Name: "Not yours", Type: model.CategoryTypeExpense, ParentID: &root.ID}
	err = store.CreateCategory(ctx, stolen)
	assert.ErrorIs(t, err, common.ErrCategoryNotOwned)
}

func TestDeleteCategoryGuards(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	groceries := mustCategory(t, store, user.ID, "Groceries & Food")
	assert.ErrorIs(t, store.DeleteCategory(ctx, groceries.ID), common.ErrDefaultCategory)

	used := &model.Category{UserID: user.ID, Name: "Subscriptions", Type: model.CategoryTypeExpense}
	require.NoError(t, store.CreateCategory(ctx, used))

	txn := sampleTransaction(user.ID, time.Now(), "NETFLIX.COM", 649)
	txn.CategoryID = &used.ID
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{txn}))
	assert.ErrorIs(t, store.DeleteCategory(ctx, used.ID), common.ErrCategoryInUse)

	parent := &model.Category{UserID: user.ID, Name: "Household", Type: model.CategoryTypeExpense}
	require.NoError(t, store.CreateCategory(ctx, parent))
	child := &model.Category{UserID: user.ID, Name: "Maid", Type: model.CategoryTypeExpense, ParentID: &parent.ID}
	require.NoError(t, store.CreateCategory(ctx, child))
	assert.ErrorIs(t, store.DeleteCategory(ctx, parent.ID), common.ErrCategoryInUse)

	require.NoError(t, store.DeleteCategory(ctx, child.ID))
	_, err := store.GetCategoryByID(ctx, child.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTransactionsRoundTrip(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	older := sampleTransaction(user.ID, time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC), "UPI-SWIGGY-1", 250)
	newer := sampleTransaction(user.ID, time.Date(2023, 1, 20, 0, 0, 0, 0, time.UTC), "UPI-SWIGGY-2", 450)
	newer.Source = "hdfc"
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{older, newer}))

	txns, err := store.GetTransactionsByUser(ctx, user.ID, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "UPI-SWIGGY-2", txns[0].Description, "newest first")

	bySource, err := store.GetTransactionsByUser(ctx, user.ID, service.TransactionFilter{Source: "hdfc"})
	require.NoError(t, err)
	require.Len(t, bySource, 1)
	assert.Equal(t, "UPI-SWIGGY-2", bySource[0].Description)

	got, err := store.GetTransactionByID(ctx, txns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 450.0, got.Amount)
	assert.Equal(t, model.TypeExpense, got.Type)
	assert.Nil(t, got.CategoryID)

	groceries := mustCategory(t, store, user.ID, "Groceries & Food")
	got.SetManualCategory(groceries.ID)
	got.Notes = "office lunch"
	got.Tags = []string{"food", "work"}
	require.NoError(t, store.UpdateTransaction(ctx, got))

	updated, err := store.GetTransactionByID(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, updated.CategoryID)
	assert.Equal(t, groceries.ID, *updated.CategoryID)
	assert.False(t, updated.LLMCategorized)
	assert.Nil(t, updated.LLMConfidence)
	assert.Equal(t, "office lunch", updated.Notes)
	assert.Equal(t, []string{"food", "work"}, updated.Tags)

	count, err := store.CountTransactionsByCategory(ctx, groceries.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveTransactionsValidation(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	negative := sampleTransaction(user.ID, time.Now(), "BAD ROW", -100)
	err := store.SaveTransactions(ctx, []model.Transaction{negative})
	assert.ErrorIs(t, err, ErrInvalidTransaction)

	// Confidence without the categorized flag breaks the provenance
	// invariant.
	conf := 0.9
	inconsistent := sampleTransaction(user.ID, time.Now(), "BAD PROVENANCE", 100)
	inconsistent.LLMConfidence = &conf
	err = store.SaveTransactions(ctx, []model.Transaction{inconsistent})
	assert.ErrorIs(t, err, ErrInvalidTransaction)

	err = store.SaveTransactions(ctx, []model.Transaction{})
	assert.ErrorIs(t, err, ErrEmptySlice)
}

func TestUpsertPatternSemantics(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	groceries := mustCategory(t, store, user.ID, "Groceries & Food")
	salary := mustCategory(t, store, user.ID, "Salary")

	require.NoError(t, store.UpsertPattern(ctx, &model.CategoryPattern{
		UserID: user.ID, Description: "UPI-SWIGGY-1", Merchant: "SWIGGY",
		CategoryID: groceries.ID, Confidence: 0.9, IsUserCorrection: true,
	}))

	// A later lower-confidence automated update changes the category
	// but can lower neither the confidence nor the correction flag.
	require.NoError(t, store.UpsertPattern(ctx, &model.CategoryPattern{
		UserID: user.ID, Description: "upi-swiggy-1", Merchant: "SWIGGY",
		CategoryID: salary.ID, Confidence: 0.4, IsUserCorrection: false,
	}))

	p, err := store.GetPatternByKey(ctx, user.ID, "UPI-SWIGGY-1", "SWIGGY")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, salary.ID, p.CategoryID)
	assert.InDelta(t, 0.9, p.Confidence, 0.001)
	assert.True(t, p.IsUserCorrection)

	stats, err := store.GetPatternStats(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.UserCorrections)
	assert.Equal(t, 0, stats.AIPatterns)
}

func TestDeleteStalePatternsRespectsCorrections(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()
	groceries := mustCategory(t, store, user.ID, "Groceries & Food")

	patterns := []model.CategoryPattern{
		{UserID: user.ID, Description: "OLD AUTO", CategoryID: groceries.ID, Confidence: 0.8},
		{UserID: user.ID, Description: "OLD CORRECTION", CategoryID: groceries.ID, Confidence: 1.0, IsUserCorrection: true},
		{UserID: user.ID, Description: "FRESH AUTO", CategoryID: groceries.ID, Confidence: 0.8},
	}
	for i := range patterns {
		require.NoError(t, store.UpsertPattern(ctx, &patterns[i]))
	}

	// Backdate everything except the fresh pattern past the cutoff.
	_, err := store.db.ExecContext(ctx, `
		UPDATE category_patterns
		SET updated_at = datetime('now', '-120 days')
		WHERE description IN ('OLD AUTO', 'OLD CORRECTION')
	`)
	require.NoError(t, err)

	deleted, err := store.DeleteStalePatterns(ctx, user.ID, time.Now().AddDate(0, 0, -90))
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	remaining, err := store.GetPatternsByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	for _, p := range remaining {
		assert.NotEqual(t, "OLD AUTO", p.Description)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()
	groceries := mustCategory(t, store, user.ID, "Groceries & Food")

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		sampleTransaction(user.ID, time.Now(), "UPI-SWIGGY-1", 100),
	}))
	require.NoError(t, store.UpsertPattern(ctx, &model.CategoryPattern{
		UserID: user.ID, Description: "UPI-SWIGGY-1", CategoryID: groceries.ID, Confidence: 0.9,
	}))
	require.NoError(t, store.SaveAsset(ctx, &model.Asset{
		UserID: user.ID, Name: "ZERODHA", Category: "equity", Subcategory: "stocks",
		CurrentValue: 1000, Quantity: 1, PurchaseCount: 1, IsActive: true,
	}))

	require.NoError(t, store.DeleteUser(ctx, user.ID))

	_, err := store.GetUser(ctx, user.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	var count int
	for _, table := range []string{"categories", "transactions", "category_patterns", "assets"} {
		require.NoError(t, store.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM `+table+` WHERE user_id = ?`, user.ID).Scan(&count))
		assert.Zero(t, count, table)
	}
}

func TestLegacyInvestmentTypeNormalized(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()

	result, err := store.db.ExecContext(ctx, `
		INSERT INTO categories (user_id, name, type) VALUES (?, 'Old Portfolio', 'investment')
	`, user.ID)
	require.NoError(t, err)
	id, err := result.LastInsertId()
	require.NoError(t, err)

	cat, err := store.GetCategoryByID(ctx, int(id))
	require.NoError(t, err)
	assert.Equal(t, model.CategoryTypeAsset, cat.Type)
}

func TestTxCommitAndRollback(t *testing.T) {
	store, user := newTestStorage(t)
	ctx := context.Background()
	groceries := mustCategory(t, store, user.ID, "Groceries & Food")

	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{
		sampleTransaction(user.ID, time.Now(), "UPI-SWIGGY-1", 100),
	}))
	txns, err := store.GetTransactionsByUser(ctx, user.ID, service.TransactionFilter{})
	require.NoError(t, err)
	txn := txns[0]

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	txn.SetManualCategory(groceries.ID)
	require.NoError(t, tx.UpdateTransaction(ctx, &txn))
	require.NoError(t, tx.Rollback())

	got, err := store.GetTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID, "rolled back update must not persist")

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdateTransaction(ctx, &txn))
	require.NoError(t, tx.UpsertPattern(ctx, &model.CategoryPattern{
		UserID: user.ID, Description: txn.Description, Merchant: txn.Merchant,
		CategoryID: groceries.ID, Confidence: 1.0, IsUserCorrection: true,
	}))
	require.NoError(t, tx.Commit())

	got, err = store.GetTransactionByID(ctx, txn.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, groceries.ID, *got.CategoryID)
}
