// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound = errors.New("not found")

	// Category errors.
	ErrInvalidCategory  = errors.New("invalid category")
	ErrCategoryInUse    = errors.New("category has associated transactions or children")
	ErrDefaultCategory  = errors.New("default categories cannot be deleted")
	ErrCategoryTooDeep  = errors.New("categories may only nest one level deep")
	ErrCategoryNotOwned = errors.New("category does not belong to user")

	// Statement errors.
	ErrNoRowsParsed  = errors.New("no parseable rows in statement")
	ErrMissingHeader = errors.New("statement has no header row")

	// Classification errors.
	ErrNoCategories = errors.New("no categories available for classification")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)
