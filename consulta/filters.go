package consulta

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FILTER BUILDING BLOCKS
// =============================================================================
// Criteria are immutable value objects built per query run and passed into
// an executor; there is no ambient filter state. A criterion that cannot be
// interpreted (non-numeric text in a numeric field) is inactive: the filter
// is skipped, the query is not aborted.

// NumberFilter is a numeric criterion with a raw operand as typed by the
// user. Exact controls equality tolerance: true for identifiers, false for
// currency/quantity fields.
type NumberFilter struct {
	Raw   string `json:"value"`
	Op    Op     `json:"op"`
	Exact bool   `json:"-"`
}

// Active reports whether the criterion should be applied: a non-empty,
// parseable operand.
func (f NumberFilter) Active() bool {
	_, ok := f.operand()
	return ok
}

func (f NumberFilter) operand() (decimal.Decimal, bool) {
	s := strings.TrimSpace(f.Raw)
	if s == "" {
		return decimal.Zero, false
	}
	return AsNumber(s)
}

// Match evaluates the criterion against a field value. Inactive criteria
// match everything; a field value that is not a number never matches an
// active criterion.
func (f NumberFilter) Match(value any) bool {
	operand, ok := f.operand()
	if !ok {
		return true
	}
	v, ok := AsNumber(value)
	if !ok {
		return false
	}
	eps := Epsilon
	if f.Exact {
		eps = decimal.Zero
	}
	return CompareNumber(v, f.Op, operand, eps)
}

// TextFilter is a substring/equality criterion, case-insensitive.
type TextFilter struct {
	Value string `json:"value"`
	Op    Op     `json:"op"`
}

func (f TextFilter) Active() bool { return strings.TrimSpace(f.Value) != "" }

func (f TextFilter) Match(value string) bool {
	if !f.Active() {
		return true
	}
	return CompareText(value, f.Op, strings.TrimSpace(f.Value))
}

// SetFilter is a multi-select membership criterion (OR across the set).
type SetFilter []string

func (f SetFilter) Active() bool { return len(f) > 0 }

func (f SetFilter) Match(value string) bool { return MatchesAny(value, f) }

// QuantityFilter is a unit-aware numeric criterion: the operand is expressed
// in the user's chosen unit and compared against the record's stored base
// quantity. Records whose unit has no conversion path to the filter unit are
// excluded, not errored.
type QuantityFilter struct {
	Raw  string `json:"value"`
	Unit string `json:"unit"`
	Op   Op     `json:"op"`
}

func (f QuantityFilter) Active() bool {
	s := strings.TrimSpace(f.Raw)
	if s == "" {
		return false
	}
	_, ok := AsNumber(s)
	return ok
}

// Match converts the record quantity from its own unit into the filter unit
// before comparing.
func (f QuantityFilter) Match(quantity any, recordUnit Unit) bool {
	if !f.Active() {
		return true
	}
	operand, _ := AsNumber(strings.TrimSpace(f.Raw))
	qty, ok := AsNumber(quantity)
	if !ok {
		return false
	}
	converted, err := Normalize(qty, recordUnit, ParseUnit(f.Unit))
	if err != nil {
		return false
	}
	return CompareNumber(converted, f.Op, operand, Epsilon)
}

// =============================================================================
// SHARED DATE CONSTRAINTS
// =============================================================================

// DateRange is the standard start/end date pair present on every query
// screen, as ISO "yyyy-mm-dd" strings. Both must be set for the range to
// apply; Validate rejects start after end.
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

func (r DateRange) Active() bool { return r.Start != "" && r.End != "" }

// Validate checks orderedness and parseability of a set pair.
func (r DateRange) Validate() error {
	if !r.Active() {
		return nil
	}
	start, okS := ParseAnyDate(r.Start)
	end, okE := ParseAnyDate(r.End)
	if !okS || !okE {
		return ErrBadDate
	}
	if start.After(end) {
		return ErrDateOrder
	}
	return nil
}

// Match reports whether a candidate date value falls inside the range.
// Inactive ranges match everything; with an active range, an unparseable
// candidate never matches.
func (r DateRange) Match(value any) bool {
	if !r.Active() {
		return true
	}
	d, ok := ParseAnyDate(value)
	if !ok {
		return false
	}
	start, _ := ParseAnyDate(r.Start)
	end, _ := ParseAnyDate(r.End)
	return !d.Before(start) && !d.After(end)
}

// Period renders the range for summaries: "dd/mm/yyyy - dd/mm/yyyy", or
// "Todos los períodos" when unset.
func (r DateRange) Period() string {
	if !r.Active() {
		return "Todos los períodos"
	}
	return FormatDateForDisplay(r.Start) + " - " + FormatDateForDisplay(r.End)
}

// GranularRange pairs the two granular date specs.
type GranularRange struct {
	From DateSpec `json:"from"`
	To   DateSpec `json:"to"`
}

func (g GranularRange) Active() bool { return !g.From.IsZero() || !g.To.IsZero() }

func (g GranularRange) Match(value any) bool {
	if !g.Active() {
		return true
	}
	d, ok := ParseAnyDate(value)
	return MatchesDate(d, ok, g.From, g.To)
}
