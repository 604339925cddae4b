package engine

import (
	"context"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

// ImportResult summarizes one statement import.
type ImportResult struct {
	Imported    int
	Duplicates  int
	Categorized int
}

// Import persists parsed statement rows for a user. Duplicates
// (same date, description, and amount as an already-stored or
// earlier-in-batch transaction) are skipped using an in-memory lookup
// set built once per call. Each new transaction is classified; the
// suggested category is attached when it resolves to one of the
// user's categories.
func (e *Engine) Import(ctx context.Context, userID string, parsed []model.ParsedTransaction) (*ImportResult, error) {
	if _, err := e.storage.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	idx, err := e.loadCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(idx.names) == 0 {
		return nil, common.ErrNoCategories
	}

	seen, err := e.buildDedupSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	txns := make([]model.Transaction, 0, len(parsed))
	for i := range parsed {
		p := &parsed[i]
		key := p.DedupKey()
		if seen[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true
		txns = append(txns, model.Transaction{
			Date:        p.Date,
			UserID:      userID,
			Description: p.Description,
			Merchant:    p.Merchant,
			Source:      p.Source,
			Type:        p.Type,
			Amount:      p.Amount,
		})
	}

	suggestions := make([]model.CategorySuggestion, len(txns))
	e.forEachBatch(ctx, len(txns), func(i int) {
		t := &txns[i]
		suggestions[i] = e.classifier.Categorize(ctx,
			t.Description, t.Merchant, t.Amount, idx.names, userID)
	})

	for i := range txns {
		s := suggestions[i]
		cat, ok := idx.byName[s.Category]
		if !ok {
			continue
		}
		txns[i].SetAutoCategory(cat.ID, s.Confidence)
		result.Categorized++
	}

	if len(txns) > 0 {
		// Another process may hold the database file briefly; the
		// batch write is retried with backoff before giving up.
		err := common.WithRetry(ctx, func() error {
			return e.storage.SaveTransactions(ctx, txns)
		}, service.RetryOptions{MaxAttempts: 3})
		if err != nil {
			return nil, err
		}
	}
	result.Imported = len(txns)

	e.recordLearnedPatterns(ctx, userID, txns, suggestions)
	e.applyAssetEffects(ctx, txns, idx)

	e.logger.Info("import complete",
		"user_id", userID,
		"imported", result.Imported,
		"duplicates", result.Duplicates,
		"categorized", result.Categorized)
	return result, nil
}

func (e *Engine) buildDedupSet(ctx context.Context, userID string) (map[string]bool, error) {
	existing, err := e.storage.GetTransactionsByUser(ctx, userID, service.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].DedupKey()] = true
	}
	return seen, nil
}

// recordLearnedPatterns stores confident classifications so future
// imports can skip the classifier. Failures are logged and swallowed.
func (e *Engine) recordLearnedPatterns(ctx context.Context, userID string, txns []model.Transaction, suggestions []model.CategorySuggestion) {
	if e.learner == nil {
		return
	}
	for i := range txns {
		t := &txns[i]
		if t.CategoryID == nil || suggestions[i].Confidence < learnThreshold {
			continue
		}
		err := e.learner.RecordMatch(ctx, userID, t.Description, t.Merchant,
			*t.CategoryID, suggestions[i].Confidence)
		if err != nil {
			e.logger.Warn("pattern record failed",
				"description", t.Description, "error", err)
		}
	}
}

// applyAssetEffects is best-effort: the handler logs its own failures
// and nothing here can fail the import.
func (e *Engine) applyAssetEffects(ctx context.Context, txns []model.Transaction, idx *categoryIndex) {
	if e.assets == nil {
		return
	}
	for i := range txns {
		t := &txns[i]
		if t.CategoryID == nil {
			continue
		}
		cat, ok := idx.byID[*t.CategoryID]
		if !ok {
			continue
		}
		e.assets.Apply(ctx, t, cat.Name)
	}
}
