package pattern

import (
	"context"
	"fmt"
	"strings"

	"github.com/sankalpa/khaata/internal/model"
	"github.com/sankalpa/khaata/internal/service"
)

// similarityThreshold is the minimum Jaccard similarity for a
// description match.
const similarityThreshold = 0.7

// merchantConfidenceScale discounts merchant-only matches relative to
// the stored pattern confidence.
const merchantConfidenceScale = 0.8

// Matcher finds the best stored pattern for a transaction signature.
type Matcher struct {
	storage service.Storage
}

// NewMatcher creates a pattern matcher backed by the given storage.
func NewMatcher(storage service.Storage) *Matcher {
	return &Matcher{storage: storage}
}

// FindBestMatch tries, in order: an exact (description, merchant) key
// match, a keyword-similarity match over the user's patterns, and a
// merchant substring match. Returns nil when nothing matches.
func (m *Matcher) FindBestMatch(ctx context.Context, userID, description, merchant string) (*model.PatternMatch, error) {
	exact, err := m.storage.GetPatternByKey(ctx, userID, description, merchant)
	if err != nil {
		return nil, fmt.Errorf("exact pattern lookup: %w", err)
	}
	if exact != nil {
		return &model.PatternMatch{
			Pattern:    *exact,
			MatchType:  model.MatchExact,
			Confidence: exact.Confidence,
		}, nil
	}

	patterns, err := m.storage.GetPatternsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("pattern scan: %w", err)
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	// Patterns arrive ordered by confidence then recency, so the first
	// pattern over the similarity threshold is the deterministic winner.
	queryKeywords := ExtractKeywords(description)
	for i := range patterns {
		similarity := Jaccard(queryKeywords, ExtractKeywords(patterns[i].Description))
		if similarity > similarityThreshold {
			return &model.PatternMatch{
				Pattern:    patterns[i],
				MatchType:  model.MatchDescription,
				Confidence: patterns[i].Confidence * similarity,
			}, nil
		}
	}

	if merchant != "" {
		var best *model.CategoryPattern
		for i := range patterns {
			p := &patterns[i]
			if p.Merchant == "" {
				continue
			}
			if !merchantContains(p.Merchant, merchant) {
				continue
			}
			if best == nil || p.Confidence > best.Confidence {
				best = p
			}
		}
		if best != nil {
			return &model.PatternMatch{
				Pattern:    *best,
				MatchType:  model.MatchMerchant,
				Confidence: best.Confidence * merchantConfidenceScale,
			}, nil
		}
	}

	return nil, nil
}

// merchantContains reports a case-insensitive substring match in
// either direction.
func merchantContains(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
