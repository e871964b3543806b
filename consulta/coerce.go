package consulta

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// VALUE COERCION - Loosely-typed record values to engine types
// =============================================================================

// AsText renders a record value as a string. Numbers keep their decimal
// representation; nil becomes "".
func AsText(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case decimal.Decimal:
		return t.String()
	case float64:
		return decimal.NewFromFloat(t).String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// AsNumber parses a record value as a decimal. String values are trimmed
// first; anything unparseable reports false rather than an error, matching
// the guard-and-skip behavior callers rely on.
func AsNumber(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case float64:
		return decimal.NewFromFloat(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero, false
		}
		return d, true
	}
	return decimal.Zero, false
}

// ParseAnyDate parses the date spellings found across the historical record
// collections: "dd/mm/yyyy", ISO dates and timestamps ("2006-01-02",
// RFC 3339 with or without zone), and time.Time values passed through.
// Returns false when nothing parses; an absent date never matches a filter.
func ParseAnyDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return time.Time{}, false
		}
		if strings.Contains(s, "/") {
			if d, err := time.Parse("2/1/2006", s); err == nil {
				return d, true
			}
			if d, err := time.Parse("2006/01/02, 15:04", s); err == nil {
				return d, true
			}
			return time.Time{}, false
		}
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
		} {
			if d, err := time.Parse(layout, s); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}

// FormatDateForDisplay turns an ISO "yyyy-mm-dd" input into "dd/mm/yyyy"
// for period summaries. Inputs that are not ISO dates pass through.
func FormatDateForDisplay(iso string) string {
	parts := strings.Split(iso, "-")
	if len(parts) != 3 {
		return iso
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}
