package model

import "time"

// Asset is a portfolio holding maintained as a side effect of
// categorized asset transactions. Identity is (user, name, category,
// subcategory).
type Asset struct {
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ID            string
	UserID        string
	Name          string
	Category      string
	Subcategory   string
	CurrentValue  float64
	Quantity      float64
	PurchaseCount int
	IsActive      bool
}

// User owns categories, transactions, patterns, and assets. Deleting a
// user cascades to all of them.
type User struct {
	CreatedAt time.Time
	ID        string
	Name      string
}
