package pattern_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/pattern"
	"github.com/sankalpa/khaata/internal/testutil"
)

func TestFindBestMatch_Exact(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	learner := pattern.NewLearner(db.Storage, nil)
	matcher := pattern.NewMatcher(db.Storage)

	salary := db.MustCategory("Salary")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID, "ACME CORP PAYMENT", "ACME", salary.ID, 1.0))

	// Description match is case-insensitive; merchant must be equal.
	match, err := matcher.FindBestMatch(ctx, db.User.ID, "acme corp payment", "ACME")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, model.MatchExact, match.MatchType)
	assert.Equal(t, 1.0, match.Confidence)
	assert.Equal(t, salary.ID, match.Pattern.CategoryID)
}

func TestFindBestMatch_DescriptionSimilarity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	learner := pattern.NewLearner(db.Storage, nil)
	matcher := pattern.NewMatcher(db.Storage)

	food := db.MustCategory("Groceries & Food")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID, "SWIGGY ORDER FOOD", "", food.ID, 1.0))

	// Keywords {swiggy, order, food, 999} vs {swiggy, order, food}:
	// Jaccard 3/4 = 0.75, above the 0.7 threshold.
	match, err := matcher.FindBestMatch(ctx, db.User.ID, "SWIGGY ORDER FOOD 999", "somewhere else")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, model.MatchDescription, match.MatchType)
	assert.InDelta(t, 0.75, match.Confidence, 1e-9)
}

func TestFindBestMatch_BelowSimilarityThreshold(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	learner := pattern.NewLearner(db.Storage, nil)
	matcher := pattern.NewMatcher(db.Storage)

	food := db.MustCategory("Groceries & Food")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID, "SWIGGY ORDER", "", food.ID, 1.0))

	// Jaccard 1/3; a description match must never fire at or below 0.7.
	match, err := matcher.FindBestMatch(ctx, db.User.ID, "SWIGGY ZOMATO", "")
	require.NoError(t, err)
	assert.Nil(t, match)
}

func TestFindBestMatch_Merchant(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	learner := pattern.NewLearner(db.Storage, nil)
	matcher := pattern.NewMatcher(db.Storage)

	food := db.MustCategory("Groceries & Food")
	other := db.MustCategory("Entertainment")
	require.NoError(t, learner.RecordCorrection(ctx, db.User.ID, "some dinner order", "Swiggy", food.ID, 0.9))
	require.NoError(t, learner.RecordMatch(ctx, db.User.ID, "another order entirely", "Swiggy Instamart", other.ID, 0.5))

	match, err := matcher.FindBestMatch(ctx, db.User.ID, "completely unrelated text here", "SWIGGY BANGALORE")
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, model.MatchMerchant, match.MatchType)
	// Highest-confidence merchant match wins, scaled by 0.8.
	assert.Equal(t, food.ID, match.Pattern.CategoryID)
	assert.InDelta(t, 0.9*0.8, match.Confidence, 1e-9)
}

func TestFindBestMatch_NoPatterns(t *testing.T) {
	db := testutil.SetupTestDB(t)

	matcher := pattern.NewMatcher(db.Storage)
	match, err := matcher.FindBestMatch(context.Background(), db.User.ID, "anything", "anyone")
	require.NoError(t, err)
	assert.Nil(t, match)
}
