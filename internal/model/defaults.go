package model

// DefaultCategories returns the category set seeded for every new
// user. Names here are referenced by the quick-match rule table and
// the asset side-effect mapping; renaming one means updating those
// tables too.
func DefaultCategories() []Category {
	return []Category{
		// Income
		{Name: "Salary", Type: CategoryTypeIncome, Color: "#4ECDC4", Icon: "briefcase", IsDefault: true},
		{Name: "Interest Income", Type: CategoryTypeIncome, Color: "#45B7D1", Icon: "percent", IsDefault: true},
		{Name: "Dividends", Type: CategoryTypeIncome, Color: "#96CEB4", Icon: "trending-up", IsDefault: true},
		{Name: "Capital Gains", Type: CategoryTypeIncome, Color: "#88D8B0", Icon: "bar-chart", IsDefault: true},
		{Name: "Farm Income", Type: CategoryTypeIncome, Color: "#A8E6CF", Icon: "sun", IsDefault: true},
		{Name: "Miscellaneous Income", Type: CategoryTypeIncome, Color: "#DCEDC1", Icon: "plus-circle", IsDefault: true},

		// Expense
		{Name: "Groceries & Food", Type: CategoryTypeExpense, Color: "#FF6B6B", Icon: "shopping-cart", IsDefault: true},
		{Name: "Utilities", Type: CategoryTypeExpense, Color: "#FFD93D", Icon: "zap", IsDefault: true},
		{Name: "Mobile & Internet", Type: CategoryTypeExpense, Color: "#6BCB77", Icon: "wifi", IsDefault: true},
		{Name: "Transport & Fuel", Type: CategoryTypeExpense, Color: "#4D96FF", Icon: "truck", IsDefault: true},
		{Name: "Rent", Type: CategoryTypeExpense, Color: "#B983FF", Icon: "home", IsDefault: true},
		{Name: "Healthcare", Type: CategoryTypeExpense, Color: "#FF8FAB", Icon: "heart", IsDefault: true},
		{Name: "Education", Type: CategoryTypeExpense, Color: "#FFAB76", Icon: "book", IsDefault: true},
		{Name: "Entertainment", Type: CategoryTypeExpense, Color: "#C780FA", Icon: "film", IsDefault: true},
		{Name: "Banking Fees", Type: CategoryTypeExpense, Color: "#A0A0A0", Icon: "credit-card", IsDefault: true},
		{Name: "Farm Expenses", Type: CategoryTypeExpense, Color: "#D4A373", Icon: "cloud-rain", IsDefault: true},
		{Name: "Miscellaneous Expenses", Type: CategoryTypeExpense, Color: "#CCCCCC", Icon: "more-horizontal", IsDefault: true},

		// Asset
		{Name: "Stock Purchase", Type: CategoryTypeAsset, Color: "#2D9CDB", Icon: "trending-up", IsDefault: true},
		{Name: "Stock Sale", Type: CategoryTypeAsset, Color: "#2D9CDB", Icon: "trending-down", IsDefault: true},
		{Name: "Mutual Fund Purchase", Type: CategoryTypeAsset, Color: "#27AE60", Icon: "pie-chart", IsDefault: true},
		{Name: "Mutual Fund Redemption", Type: CategoryTypeAsset, Color: "#27AE60", Icon: "pie-chart", IsDefault: true},
		{Name: "PPF Contribution", Type: CategoryTypeAsset, Color: "#F2994A", Icon: "shield", IsDefault: true},
		{Name: "NPS Contribution", Type: CategoryTypeAsset, Color: "#F2C94C", Icon: "umbrella", IsDefault: true},
		{Name: "Gold Purchase", Type: CategoryTypeAsset, Color: "#E1B12C", Icon: "star", IsDefault: true},
		{Name: "Fixed Deposit", Type: CategoryTypeAsset, Color: "#9B59B6", Icon: "lock", IsDefault: true},
		{Name: "Farm Asset Purchase", Type: CategoryTypeAsset, Color: "#16A085", Icon: "anchor", IsDefault: true},
	}
}
