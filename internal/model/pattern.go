package model

import "time"

// CategoryPattern is a learned association between a transaction's
// textual signature and a category. Patterns created from user
// corrections are permanent; patterns created from automated matches
// are subject to retention cleanup.
//
// For a given (user, description, merchant) key there is at most one
// pattern: corrections update in place, and an update never lowers the
// stored confidence.
type CategoryPattern struct {
	CreatedAt        time.Time
	UpdatedAt        time.Time
	UserID           string
	Description      string
	Merchant         string // empty means no merchant recorded
	ID               int64
	CategoryID       int
	Confidence       float64
	IsUserCorrection bool
}

// PatternMatchType identifies which step of the match ladder produced
// a pattern match.
type PatternMatchType string

const (
	// MatchExact is a case-insensitive description + merchant equality match.
	MatchExact PatternMatchType = "exact"
	// MatchDescription is a Jaccard keyword-similarity match.
	MatchDescription PatternMatchType = "description"
	// MatchMerchant is a merchant substring match.
	MatchMerchant PatternMatchType = "merchant"
)

// PatternMatch is the result of a pattern store lookup.
type PatternMatch struct {
	Pattern    CategoryPattern
	MatchType  PatternMatchType
	Confidence float64
}

// PatternStats summarizes a user's learned patterns.
type PatternStats struct {
	Total           int
	UserCorrections int
	AIPatterns      int
	AvgConfidence   float64
}
