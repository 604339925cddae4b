// Package assets maintains portfolio holdings as a best-effort side
// effect of categorized transactions. Nothing in here may fail the
// transaction write that triggered it.
package assets

import (
	"context"
	"log/slog"
	"strings"

	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
	"github.com/sankalpa/khaata/internal/statement"
)

type direction int

const (
	purchase direction = iota
	sale
)

type mapping struct {
	Category    string
	Subcategory string
	Direction   direction
}

// categoryMappings keys transaction category names (the default asset
// categories) to the ledger slot they mutate. Categories absent from
// the table are ignored.
var categoryMappings = map[string]mapping{
	"Stock Purchase":         {Category: "equity", Subcategory: "stocks", Direction: purchase},
	"Stock Sale":             {Category: "equity", Subcategory: "stocks", Direction: sale},
	"Mutual Fund Purchase":   {Category: "equity", Subcategory: "mutual_funds", Direction: purchase},
	"Mutual Fund Redemption": {Category: "equity", Subcategory: "mutual_funds", Direction: sale},
	"PPF Contribution":       {Category: "debt", Subcategory: "ppf", Direction: purchase},
	"NPS Contribution":       {Category: "debt", Subcategory: "nps", Direction: purchase},
	"Gold Purchase":          {Category: "commodity", Subcategory: "gold", Direction: purchase},
	"Fixed Deposit":          {Category: "debt", Subcategory: "fixed_deposit", Direction: purchase},
	"Farm Asset Purchase":    {Category: "farm", Subcategory: "equipment", Direction: purchase},
}

// Result reports what a single Apply call did. Callers may log it but
// must never fail their own operation because of it.
type Result struct {
	Applied   bool
	AssetName string
	Err       error
}

// Handler applies asset-ledger mutations for categorized transactions.
type Handler struct {
	storage service.Storage
	logger  *slog.Logger
}

func NewHandler(storage service.Storage, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{storage: storage, logger: logger}
}

// Apply inspects the transaction's category name and, when it maps to
// an asset ledger slot, creates or updates the matching asset record.
func (h *Handler) Apply(ctx context.Context, txn *model.Transaction, categoryName string) Result {
	m, ok := categoryMappings[categoryName]
	if !ok {
		return Result{}
	}

	name := deriveAssetName(txn)
	amount := txn.Amount
	if amount < 0 {
		amount = -amount
	}

	var err error
	switch m.Direction {
	case purchase:
		err = h.applyPurchase(ctx, txn.UserID, name, m, amount)
	case sale:
		err = h.applySale(ctx, txn.UserID, name, m, amount)
	}
	if err != nil {
		h.logger.Warn("asset side effect failed",
			"user_id", txn.UserID,
			"asset", name,
			"category", categoryName,
			"error", err)
		return Result{AssetName: name, Err: err}
	}
	return Result{Applied: true, AssetName: name}
}

func (h *Handler) applyPurchase(ctx context.Context, userID, name string, m mapping, amount float64) error {
	asset, err := h.storage.GetAsset(ctx, userID, name, m.Category, m.Subcategory)
	if err != nil {
		return err
	}
	if asset == nil {
		asset = &model.Asset{
			UserID:        userID,
			Name:          name,
			Category:      m.Category,
			Subcategory:   m.Subcategory,
			CurrentValue:  amount,
			Quantity:      1,
			PurchaseCount: 1,
			IsActive:      true,
		}
		return h.storage.SaveAsset(ctx, asset)
	}

	asset.CurrentValue += amount
	asset.PurchaseCount++
	asset.IsActive = true
	return h.storage.SaveAsset(ctx, asset)
}

// applySale only adjusts existing holdings; a sale against an unknown
// asset is a no-op.
func (h *Handler) applySale(ctx context.Context, userID, name string, m mapping, amount float64) error {
	asset, err := h.storage.GetAsset(ctx, userID, name, m.Category, m.Subcategory)
	if err != nil {
		return err
	}
	if asset == nil {
		return nil
	}

	asset.CurrentValue -= amount
	if asset.CurrentValue <= 0 {
		asset.CurrentValue = 0
		asset.IsActive = false
	}
	return h.storage.SaveAsset(ctx, asset)
}

// deriveAssetName prefers the extracted merchant, falling back to a
// merchant re-extraction from the description, then the raw
// description itself.
func deriveAssetName(txn *model.Transaction) string {
	if txn.Merchant != "" {
		return txn.Merchant
	}
	if name := statement.ExtractMerchant(txn.Description); name != "" {
		return name
	}
	return strings.TrimSpace(txn.Description)
}
