// Package pattern implements the learned-pattern store: recording user
// corrections, fuzzy lookup against stored patterns, statistics, and
// retention cleanup.
//
// Similarity lookup is a linear scan over all of a user's patterns per
// call. That is acceptable at personal-finance volumes; it is the known
// scaling bound of this package.
package pattern

import "strings"

// maxKeywords caps the keyword set extracted from one description.
const maxKeywords = 10

// stopWords are banking filler terms and prepositions that carry no
// categorization signal.
var stopWords = map[string]struct{}{
	"upi": {}, "imps": {}, "neft": {}, "rtgs": {}, "pos": {}, "atm": {},
	"txn": {}, "ref": {}, "payment": {}, "transfer": {}, "credit": {},
	"debit": {}, "the": {}, "and": {}, "for": {}, "from": {}, "with": {},
	"via": {}, "into": {}, "ltd": {}, "pvt": {}, "bank": {},
}

// ExtractKeywords produces the keyword set for a description:
// lowercased, non-alphanumerics stripped, stop words and short tokens
// dropped, capped at maxKeywords unique tokens.
func ExtractKeywords(description string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(description))

	seen := make(map[string]struct{})
	var keywords []string
	for _, tok := range strings.Fields(cleaned) {
		if len(tok) <= 2 {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

// Jaccard computes |A∩B| / |A∪B| over two keyword sets. Two empty
// sets have zero similarity.
func Jaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(a))
	for _, k := range a {
		setA[k] = struct{}{}
	}

	intersection := 0
	setB := make(map[string]struct{}, len(b))
	for _, k := range b {
		if _, dup := setB[k]; dup {
			continue
		}
		setB[k] = struct{}{}
		if _, ok := setA[k]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
