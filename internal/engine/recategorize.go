package engine

import (
	"context"
	"sync"

	"github.com/sankalpa/khaata/internal/common"
	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

// RecategorizeResult summarizes a bulk recategorization pass.
type RecategorizeResult struct {
	Total   int
	Updated int
	Failed  int
}

// RecategorizeAll re-runs the classifier over every transaction the
// user has, including already-categorized ones. A suggestion is
// applied only when it names a different category than the current
// one and its confidence clears the apply threshold. Per-transaction
// failures are counted and skipped, never fatal to the pass. progress
// may be nil; otherwise it is called once per completed transaction.
func (e *Engine) RecategorizeAll(ctx context.Context, userID string, progress func()) (*RecategorizeResult, error) {
	idx, err := e.loadCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(idx.names) == 0 {
		return nil, common.ErrNoCategories
	}

	txns, err := e.storage.GetTransactionsByUser(ctx, userID, service.TransactionFilter{})
	if err != nil {
		return nil, err
	}

	result := &RecategorizeResult{Total: len(txns)}
	var mu sync.Mutex

	e.forEachBatch(ctx, len(txns), func(i int) {
		updated, err := e.recategorize(ctx, userID, &txns[i], idx)

		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			result.Failed++
			e.logger.Warn("recategorization failed",
				"transaction_id", txns[i].ID, "error", err)
		} else if updated {
			result.Updated++
		}
		if progress != nil {
			progress()
		}
	})

	e.logger.Info("recategorization complete",
		"user_id", userID,
		"total", result.Total,
		"updated", result.Updated,
		"failed", result.Failed)
	return result, nil
}

// RecategorizeOne re-classifies a single transaction, applying the
// suggestion under the same rules as RecategorizeAll. It reports
// whether the transaction changed.
func (e *Engine) RecategorizeOne(ctx context.Context, transactionID string) (bool, error) {
	txn, err := e.storage.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return false, err
	}
	idx, err := e.loadCategories(ctx, txn.UserID)
	if err != nil {
		return false, err
	}
	if len(idx.names) == 0 {
		return false, common.ErrNoCategories
	}
	return e.recategorize(ctx, txn.UserID, txn, idx)
}

func (e *Engine) recategorize(ctx context.Context, userID string, txn *model.Transaction, idx *categoryIndex) (bool, error) {
	s := e.classifier.Categorize(ctx,
		txn.Description, txn.Merchant, txn.Amount, idx.names, userID)
	if s.Confidence <= applyThreshold {
		return false, nil
	}
	cat, ok := idx.byName[s.Category]
	if !ok {
		return false, nil
	}
	if txn.CategoryID != nil && *txn.CategoryID == cat.ID {
		return false, nil
	}

	txn.SetAutoCategory(cat.ID, s.Confidence)
	if err := e.storage.UpdateTransaction(ctx, txn); err != nil {
		return false, err
	}
	return true, nil
}
