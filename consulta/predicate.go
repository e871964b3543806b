package consulta

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// OPERATOR VOCABULARY
// =============================================================================

// Op is a comparison operator. The historical screens used two vocabularies
// for the same four order comparisons; ParseOp unifies them so the aliases
// exist only at the parsing edge.
type Op string

const (
	OpEquals   Op = "equals"
	OpContains Op = "contains"
	OpGT       Op = "gt"
	OpGTE      Op = "gte"
	OpLT       Op = "lt"
	OpLTE      Op = "lte"
)

// ParseOp maps an operator spelling (including the greater/greaterOrEqual/
// less/lessOrEqual aliases) onto the unified vocabulary. Unknown spellings
// fall back to equals, matching the screens' default switch case.
func ParseOp(s string) Op {
	switch strings.TrimSpace(s) {
	case "contains":
		return OpContains
	case "gt", "greater":
		return OpGT
	case "gte", "greaterOrEqual":
		return OpGTE
	case "lt", "less":
		return OpLT
	case "lte", "lessOrEqual":
		return OpLTE
	}
	return OpEquals
}

// =============================================================================
// PREDICATE EVALUATION
// =============================================================================

// Epsilon used for tolerant numeric equality on currency and quantity
// fields. Identifier comparisons pass decimal.Zero instead.
var Epsilon = decimal.NewFromFloat(0.0001)

// CompareNumber evaluates a numeric comparison. eps is the tolerance for
// equals; order comparisons are always exact.
func CompareNumber(value decimal.Decimal, op Op, operand decimal.Decimal, eps decimal.Decimal) bool {
	switch op {
	case OpGT:
		return value.GreaterThan(operand)
	case OpGTE:
		return value.GreaterThanOrEqual(operand)
	case OpLT:
		return value.LessThan(operand)
	case OpLTE:
		return value.LessThanOrEqual(operand)
	default:
		if eps.IsZero() {
			return value.Equal(operand)
		}
		return value.Sub(operand).Abs().LessThanOrEqual(eps)
	}
}

// CompareText evaluates a case-insensitive text comparison. Only equals and
// contains apply to text; anything else defaults to contains, the screens'
// fallback.
func CompareText(value string, op Op, operand string) bool {
	v := strings.ToLower(value)
	o := strings.ToLower(operand)
	if op == OpEquals {
		return v == o
	}
	return strings.Contains(v, o)
}

// MatchesAny is the membership operator: the field value, lower-cased,
// matches when it contains or equals any one of the selected set.
func MatchesAny(value string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	v := strings.ToLower(value)
	for _, s := range selected {
		s = strings.ToLower(s)
		if v == s || strings.Contains(v, s) {
			return true
		}
	}
	return false
}
