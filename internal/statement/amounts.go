package statement

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseAmount normalizes a raw amount cell into a signed value.
// It strips currency markers (₹, Rs, INR), quotes and thousands
// separators; interprets parentheses and trailing Dr/Cr suffixes as
// sign indicators; and understands the internal DEBIT:/CREDIT: markers
// produced by debit/credit column resolution.
func parseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	sign := 1.0

	switch {
	case strings.HasPrefix(s, "DEBIT:"):
		sign = -1.0
		s = strings.TrimPrefix(s, "DEBIT:")
	case strings.HasPrefix(s, "CREDIT:"):
		s = strings.TrimPrefix(s, "CREDIT:")
	}

	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		sign = -sign
		s = s[1 : len(s)-1]
	}

	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(upper, "DR"):
		sign = -sign
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "CR"):
		s = s[:len(s)-2]
	}

	for _, marker := range []string{"₹", "Rs.", "Rs", "INR", "\"", "'", ","} {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("unparseable amount %q: %w", raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("non-finite amount %q", raw)
	}

	// An explicitly negative cell keeps its own sign under a Dr marker.
	if value < 0 {
		value = -value
		sign = -sign
	}

	return sign * value, nil
}

// resolveAmount produces the raw amount string for a row, preferring a
// populated debit column (outflow) over a populated credit column when
// the format splits the amount in two. Single-amount formats may carry
// a separate Dr/Cr column whose value becomes a suffix for parseAmount.
func resolveAmount(row rowReader, f Format) (string, error) {
	if len(f.DebitColumns) > 0 || len(f.CreditColumns) > 0 {
		if debit := row.resolve(f.DebitColumns); validPositiveNumber(debit) {
			return "DEBIT:" + debit, nil
		}
		if credit := row.resolve(f.CreditColumns); validPositiveNumber(credit) {
			return "CREDIT:" + credit, nil
		}
		if len(f.AmountColumns) == 0 {
			return "", fmt.Errorf("no debit or credit value")
		}
	}

	amount := row.resolve(f.AmountColumns)
	if amount == "" {
		return "", fmt.Errorf("no amount value")
	}
	if drcr := row.resolve(f.DrCrColumns); drcr != "" {
		amount = amount + " " + drcr
	}
	return amount, nil
}

// validPositiveNumber reports whether a debit/credit cell holds a
// usable positive magnitude once currency markers are stripped.
func validPositiveNumber(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	v, err := parseAmount(s)
	return err == nil && v > 0
}
