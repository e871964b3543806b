package consulta_test

import (
	"errors"
	"testing"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// NUMBER FILTER
// =============================================================================

func TestNumberFilter_UnparseableOperandIsInactive(t *testing.T) {
	// GIVEN: the user typed text into a numeric control
	// THEN:  the criterion is skipped, not an error; everything matches

	f := consulta.NumberFilter{Raw: "mucho", Op: consulta.OpGT}
	if f.Active() {
		t.Error("unparseable operand should leave the filter inactive")
	}
	if !f.Match(3) || !f.Match("no es un número") {
		t.Error("inactive filters must match everything")
	}
}

func TestNumberFilter_ActiveAgainstNonNumericField(t *testing.T) {
	f := consulta.NumberFilter{Raw: "10", Op: consulta.OpGTE}
	if !f.Active() {
		t.Fatal("numeric operand should be active")
	}
	if f.Match("sin precio") {
		t.Error("a non-numeric field value must fail an active criterion")
	}
	if !f.Match(12.5) {
		t.Error("12.5 >= 10 should match")
	}
	if f.Match(9) {
		t.Error("9 >= 10 should not match")
	}
}

func TestNumberFilter_ExactIdentifiers(t *testing.T) {
	f := consulta.NumberFilter{Raw: "12", Exact: true}
	if !f.Match(12) {
		t.Error("id 12 should match operand 12")
	}
	if f.Match(12.00004) {
		t.Error("identifier equality must not be tolerant")
	}
}

// =============================================================================
// TEXT AND SET FILTERS
// =============================================================================

func TestTextFilter_BlankIsInactive(t *testing.T) {
	f := consulta.TextFilter{Value: "   ", Op: consulta.OpContains}
	if f.Active() {
		t.Error("whitespace-only value should be inactive")
	}
	if !f.Match("cualquiera") {
		t.Error("inactive text filters match everything")
	}
}

func TestSetFilter(t *testing.T) {
	f := consulta.SetFilter{"Efectivo"}
	if !f.Match("efectivo") {
		t.Error("membership should ignore case")
	}
	if f.Match("Tarjeta") {
		t.Error("values outside the set should not match")
	}
	if consulta.SetFilter(nil).Active() {
		t.Error("empty set should be inactive")
	}
}

// =============================================================================
// QUANTITY FILTER
// =============================================================================

func TestQuantityFilter_ConvertsIntoFilterUnit(t *testing.T) {
	// GIVEN: a record storing 500 g and a filter asking for 0.5 Kg
	// THEN:  they are equal after conversion

	f := consulta.QuantityFilter{Raw: "0.5", Unit: "Kg", Op: consulta.OpEquals}
	if !f.Match(500, consulta.UnitGram) {
		t.Error("500 g should equal 0.5 kg")
	}
	if f.Match(600, consulta.UnitGram) {
		t.Error("600 g should not equal 0.5 kg")
	}
}

func TestQuantityFilter_IncompatibleUnitsExclude(t *testing.T) {
	// A mass filter against a count record excludes the record; it is not an
	// engine failure.
	f := consulta.QuantityFilter{Raw: "2", Unit: "kg", Op: consulta.OpLTE}
	if f.Match(1, consulta.UnitCount) {
		t.Error("count records must not satisfy a mass criterion")
	}
}

// =============================================================================
// STANDARD DATE RANGE
// =============================================================================

func TestDateRange_Validate(t *testing.T) {
	if err := (consulta.DateRange{}).Validate(); err != nil {
		t.Errorf("empty range should validate: %v", err)
	}

	err := consulta.DateRange{Start: "2024-06-30", End: "2024-01-01"}.Validate()
	if !errors.Is(err, consulta.ErrDateOrder) {
		t.Errorf("inverted range: got %v, want ErrDateOrder", err)
	}

	err = consulta.DateRange{Start: "ayer", End: "2024-01-01"}.Validate()
	if !errors.Is(err, consulta.ErrBadDate) {
		t.Errorf("unparseable start: got %v, want ErrBadDate", err)
	}
}

func TestDateRange_Match(t *testing.T) {
	r := consulta.DateRange{Start: "2024-01-01", End: "2024-06-30"}

	if !r.Match("2024-03-15") {
		t.Error("a date inside the range should match")
	}
	if !r.Match("2024-01-01") || !r.Match("2024-06-30") {
		t.Error("range bounds are inclusive")
	}
	if r.Match("2024-07-01") {
		t.Error("a date after the range should not match")
	}
	if r.Match("sin fecha") {
		t.Error("an unparseable candidate must not match an active range")
	}
	if !(consulta.DateRange{}).Match("sin fecha") {
		t.Error("an inactive range matches everything")
	}
}

func TestDateRange_Period(t *testing.T) {
	r := consulta.DateRange{Start: "2024-01-01", End: "2024-06-30"}
	if got := r.Period(); got != "01/01/2024 - 30/06/2024" {
		t.Errorf("Period() = %q", got)
	}
	if got := (consulta.DateRange{}).Period(); got != "Todos los períodos" {
		t.Errorf("empty Period() = %q", got)
	}
}
