package model

// CategorySuggestion is the classifier's answer for a single
// transaction. It is consumed immediately to set Transaction fields
// and never persisted on its own.
type CategorySuggestion struct {
	Category   string
	Reasoning  string
	Confidence float64
}
