package statement

import (
	"strings"

	"github.com/sankalpa/khaata/internal/model"
)

// Keyword families for transaction type classification. Asset patterns
// take precedence over income patterns; the three sets are checked in
// declaration order. The category-to-asset mapping in internal/assets
// must stay consistent with these families.
var (
	assetPurchaseKeywords = []string{
		"zerodha", "groww", "upstox", "angel broking", "icici direct",
		"mutual fund", "sip instal", "ppf", "nps", "sovereign gold",
		"gold bond", "etf purchase", "demat", "stock purchase",
		"share purchase", "fixed deposit", "recurring deposit",
		"tractor", "irrigation", "farm equipment", "land purchase",
	}

	assetSaleKeywords = []string{
		"redemption", "redeem", "stock sale", "share sale",
		"mf sale", "fd closure", "fd maturity", "units sold",
	}

	incomeKeywords = []string{
		"salary", "dividend", "interest credit", "interest paid",
		"capital gain", "cashback", "refund", "bonus credited",
		"crop sale", "mandi payment", "produce sale", "rent received",
	}
)

// ClassifyType determines a transaction's type from its description and
// signed amount. Keyword families are consulted first; when none match,
// the sign decides: non-negative is income, negative is expense.
func ClassifyType(description string, signedAmount float64) model.TransactionType {
	desc := strings.ToLower(description)

	for _, kw := range assetPurchaseKeywords {
		if strings.Contains(desc, kw) {
			return model.TypeAsset
		}
	}
	for _, kw := range assetSaleKeywords {
		if strings.Contains(desc, kw) {
			return model.TypeAsset
		}
	}
	for _, kw := range incomeKeywords {
		if strings.Contains(desc, kw) {
			return model.TypeIncome
		}
	}

	if signedAmount >= 0 {
		return model.TypeIncome
	}
	return model.TypeExpense
}
