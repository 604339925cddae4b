package statement

import (
	"regexp"
	"strings"
)

// Banking transaction prefixes stripped before merchant extraction.
var merchantPrefixes = []string{
	"UPI-", "UPI/", "IMPS-", "IMPS/", "NEFT-", "NEFT/", "RTGS-", "RTGS/",
	"ACH-", "ACH/", "ECS-", "ECS/", "INB-", "INB ", "POS ", "ATM ", "ATW-",
	"MMT/", "BIL/", "VPS ", "TO TRANSFER-", "BY TRANSFER-",
}

var longDigitRun = regexp.MustCompile(`\d{6,}`)

// ExtractMerchant derives a merchant guess from a transaction
// description when the statement has no merchant column. It strips
// known banking prefixes and reference numbers, then takes the first
// up-to-three meaningful tokens. Returns "" when nothing useful
// remains.
func ExtractMerchant(description string) string {
	s := strings.TrimSpace(description)

	stripped := true
	for stripped {
		stripped = false
		for _, prefix := range merchantPrefixes {
			if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
				s = strings.TrimSpace(s[len(prefix):])
				stripped = true
			}
		}
	}

	// Account and reference numbers carry no merchant signal.
	s = longDigitRun.ReplaceAllString(s, " ")

	s = strings.Map(func(r rune) rune {
		switch r {
		case '-', '/', '_', ':', '*', '@':
			return ' '
		}
		return r
	}, s)

	var tokens []string
	for _, tok := range strings.Fields(s) {
		if len(tok) <= 2 || isNumeric(tok) {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == 3 {
			break
		}
	}

	return strings.Join(tokens, " ")
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
