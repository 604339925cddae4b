package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Suggestion is the JSON object a completion is expected to embed.
type Suggestion struct {
	Category   string  `json:"category"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
}

// ParseSuggestion extracts the first JSON object found in a completion
// and decodes it. Models tend to wrap the object in prose or code
// fences; everything around the object is ignored.
func ParseSuggestion(content string) (*Suggestion, error) {
	for start := strings.IndexByte(content, '{'); start >= 0; {
		candidate, ok := balancedObject(content[start:])
		if ok {
			var s Suggestion
			if err := json.Unmarshal([]byte(candidate), &s); err == nil && s.Category != "" {
				if s.Confidence == 0 {
					s.Confidence = 0.5
				}
				if s.Confidence < 0 {
					s.Confidence = 0
				}
				if s.Confidence > 1 {
					s.Confidence = 1
				}
				return &s, nil
			}
		}

		next := strings.IndexByte(content[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}

	return nil, fmt.Errorf("no JSON object found in response")
}

// balancedObject returns the shortest brace-balanced prefix of s,
// tracking JSON string literals so braces inside strings don't count.
func balancedObject(s string) (string, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}
	return "", false
}
