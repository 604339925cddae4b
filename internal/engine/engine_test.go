package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankalpa/khaata/internal/assets"
	"github.com/sankalpa/khaata/internal/classify"
	"github.com/sankalpa/khaata/internal/engine"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/pattern"
	"github.com/sankalpa/khaata/internal/service"
	"github.com/sankalpa/khaata/internal/testutil"
)

func newEngine(db *testutil.TestDB, opts ...engine.Option) *engine.Engine {
	classifier := classify.NewClassifier(
		pattern.NewMatcher(db.Storage), db.Storage, nil, nil)
	opts = append([]engine.Option{engine.WithBatchDelay(0)}, opts...)
	return engine.New(db.Storage, classifier, nil, opts...)
}

func parsedRows() []model.ParsedTransaction {
	return []model.ParsedTransaction{
		{
			Date:        time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			Description: "UPI-SWIGGY-1234567890-paytm",
			Merchant:    "SWIGGY",
			Source:      "sbi",
			Type:        model.TypeExpense,
			Amount:      450,
		},
		{
			Date:        time.Date(2023, 1, 16, 0, 0, 0, 0, time.UTC),
			Description: "CHQ DEP 0045 CLEARING",
			Source:      "sbi",
			Type:        model.TypeIncome,
			Amount:      9000,
		},
	}
}

func TestImportClassifiesAndPersists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	e := newEngine(db)

	res, err := e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 0, res.Duplicates)
	assert.Equal(t, 2, res.Categorized)

	txns, err := db.Storage.GetTransactionsByUser(ctx, db.User.ID, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 2)

	groceries := db.MustCategory("Groceries & Food")
	for _, txn := range txns {
		if txn.Merchant == "SWIGGY" {
			require.NotNil(t, txn.CategoryID)
			assert.Equal(t, groceries.ID, *txn.CategoryID)
			assert.True(t, txn.LLMCategorized)
			require.NotNil(t, txn.LLMConfidence)
			assert.InDelta(t, 0.95, *txn.LLMConfidence, 0.001)
		}
	}
}

func TestImportSkipsDuplicates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	e := newEngine(db)

	res, err := e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	res, err = e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Imported)
	assert.Equal(t, 2, res.Duplicates)

	txns, err := db.Storage.GetTransactionsByUser(ctx, db.User.ID, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}

func TestImportDeduplicatesWithinBatch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := newEngine(db)

	rows := parsedRows()
	rows = append(rows, rows[0])

	res, err := e.Import(context.Background(), db.User.ID, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, 1, res.Duplicates)
}

func TestImportRecordsHighConfidencePatterns(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	learner := pattern.NewLearner(db.Storage, nil)
	e := newEngine(db, engine.WithLearner(learner))

	_, err := e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)

	p, err := db.Storage.GetPatternByKey(ctx, db.User.ID, "UPI-SWIGGY-1234567890-paytm", "SWIGGY")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.False(t, p.IsUserCorrection)
	assert.InDelta(t, 0.95, p.Confidence, 0.001)

	// The low-confidence fallback row must not be learned.
	p, err = db.Storage.GetPatternByKey(ctx, db.User.ID, "CHQ DEP 0045 CLEARING", "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestImportTriggersAssetSideEffect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	e := newEngine(db, engine.WithAssetHandler(assets.NewHandler(db.Storage, nil)))

	rows := []model.ParsedTransaction{{
		Date:        time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		Description: "ZERODHA BROKING LTD",
		Merchant:    "ZERODHA BROKING",
		Source:      "hdfc",
		Type:        model.TypeAsset,
		Amount:      10000,
	}}

	_, err := e.Import(ctx, db.User.ID, rows)
	require.NoError(t, err)

	asset, err := db.Storage.GetAsset(ctx, db.User.ID, "ZERODHA BROKING", "equity", "stocks")
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, 10000.0, asset.CurrentValue)
}

func TestImportUnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	e := newEngine(db)

	_, err := e.Import(context.Background(), "no-such-user", parsedRows())
	assert.Error(t, err)
}

func TestRecategorizeAllAppliesCorrections(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	e := newEngine(db)

	_, err := e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)

	// The user teaches that SWIGGY on this description is salary.
	learner := pattern.NewLearner(db.Storage, nil)
	salary := db.MustCategory("Salary")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID,
		"UPI-SWIGGY-1234567890-paytm", "SWIGGY", salary.ID, 1.0))

	var ticks int
	res, err := e.RecategorizeAll(ctx, db.User.ID, func() { ticks++ })
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 1, res.Updated)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 2, ticks)

	// Idempotence: a second pass with no intervening corrections
	// changes nothing.
	res, err = e.RecategorizeAll(ctx, db.User.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Updated)
}

func TestRecategorizeOne(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	e := newEngine(db)

	_, err := e.Import(ctx, db.User.ID, parsedRows())
	require.NoError(t, err)

	txns, err := db.Storage.GetTransactionsByUser(ctx, db.User.ID, service.TransactionFilter{})
	require.NoError(t, err)

	var swiggy model.Transaction
	for _, txn := range txns {
		if txn.Merchant == "SWIGGY" {
			swiggy = txn
		}
	}
	require.NotEmpty(t, swiggy.ID)

	// Already in the right category, so nothing changes.
	updated, err := e.RecategorizeOne(ctx, swiggy.ID)
	require.NoError(t, err)
	assert.False(t, updated)

	learner := pattern.NewLearner(db.Storage, nil)
	salary := db.MustCategory("Salary")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID,
		swiggy.Description, swiggy.Merchant, salary.ID, 1.0))

	updated, err = e.RecategorizeOne(ctx, swiggy.ID)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := db.Storage.GetTransactionByID(ctx, swiggy.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, salary.ID, *got.CategoryID)
}
