package model

import "time"

// CategoryType indicates whether a category applies to income, expense,
// or asset transactions.
type CategoryType string

const (
	// CategoryTypeIncome represents categories for income transactions.
	CategoryTypeIncome CategoryType = "income"
	// CategoryTypeExpense represents categories for expense transactions.
	CategoryTypeExpense CategoryType = "expense"
	// CategoryTypeAsset represents categories for asset purchases and sales.
	CategoryTypeAsset CategoryType = "asset"
)

// NormalizeCategoryType maps stored category type values onto the
// current set. Older databases used "investment" where "asset" is now
// written; it is accepted on read and never written back.
func NormalizeCategoryType(raw string) CategoryType {
	switch raw {
	case "investment":
		return CategoryTypeAsset
	case string(CategoryTypeIncome), string(CategoryTypeExpense), string(CategoryTypeAsset):
		return CategoryType(raw)
	default:
		return CategoryTypeExpense
	}
}

// Category represents a transaction category belonging to a user.
// Categories form a two-level hierarchy: a category may have a parent,
// but a parent may not itself have one.
type Category struct {
	CreatedAt time.Time
	ParentID  *int
	Name      string
	UserID    string
	Color     string
	Icon      string
	Type      CategoryType
	ID        int
	IsDefault bool
}

// CategoryNode is a category with its direct children, built by a
// single grouping pass over a flat category list.
type CategoryNode struct {
	Category
	Children []Category
}

// BuildCategoryTree groups a flat category list into root nodes with
// children. Categories whose parent is missing from the input are
// treated as roots.
func BuildCategoryTree(categories []Category) []CategoryNode {
	byID := make(map[int]bool, len(categories))
	for _, c := range categories {
		byID[c.ID] = true
	}

	children := make(map[int][]Category)
	var roots []CategoryNode
	for _, c := range categories {
		if c.ParentID != nil && byID[*c.ParentID] {
			children[*c.ParentID] = append(children[*c.ParentID], c)
			continue
		}
		roots = append(roots, CategoryNode{Category: c})
	}

	for i := range roots {
		roots[i].Children = children[roots[i].ID]
	}
	return roots
}
