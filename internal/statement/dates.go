package statement

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseDate parses the date formats seen across Indian bank exports.
// Formats are tried in priority order: "D MMM YYYY", "DD/MM/YY" with
// century inference, then generic numeric patterns attempting DD/MM/YYYY
// first, MM/DD/YYYY second, and YYYY/MM/DD last.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range []string{"2 Jan 2006", "2 Jan 06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	parts := splitDateParts(s)
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
		}
		nums[i] = n
	}

	// DD/MM/YY with automatic century inference.
	if len(parts[2]) == 2 && len(parts[0]) <= 2 {
		year := nums[2]
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
		if t, ok := makeDate(year, nums[1], nums[0]); ok {
			return t, nil
		}
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}

	// DD/MM/YYYY, then MM/DD/YYYY, then YYYY/MM/DD as a last resort.
	candidates := [][3]int{
		{nums[2], nums[1], nums[0]},
		{nums[2], nums[0], nums[1]},
		{nums[0], nums[1], nums[2]},
	}
	for _, c := range candidates {
		if t, ok := makeDate(c[0], c[1], c[2]); ok {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// makeDate validates year/month/day and returns the corresponding UTC
// midnight. time.Date normalizes out-of-range components, so the
// round-trip check rejects dates like Feb 30.
func makeDate(year, month, day int) (time.Time, bool) {
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func splitDateParts(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '/' || r == '-' || r == '.'
	})
}
