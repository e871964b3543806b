package consulta_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// OPERATOR PARSING
// =============================================================================

func TestParseOp_UnifiesBothVocabularies(t *testing.T) {
	cases := map[string]consulta.Op{
		"equals":         consulta.OpEquals,
		"contains":       consulta.OpContains,
		"gt":             consulta.OpGT,
		"greater":        consulta.OpGT,
		"gte":            consulta.OpGTE,
		"greaterOrEqual": consulta.OpGTE,
		"lt":             consulta.OpLT,
		"less":           consulta.OpLT,
		"lte":            consulta.OpLTE,
		"lessOrEqual":    consulta.OpLTE,
		"":               consulta.OpEquals,
		"algo-raro":      consulta.OpEquals,
	}
	for in, want := range cases {
		if got := consulta.ParseOp(in); got != want {
			t.Errorf("ParseOp(%q) = %q, want %q", in, got, want)
		}
	}
}

// =============================================================================
// NUMERIC COMPARISON
// =============================================================================

func TestCompareNumber_OrderOperators(t *testing.T) {
	ten := decimal.NewFromInt(10)
	nine := decimal.NewFromInt(9)

	if !consulta.CompareNumber(ten, consulta.OpGT, nine, consulta.Epsilon) {
		t.Error("10 > 9 should hold")
	}
	if consulta.CompareNumber(ten, consulta.OpGT, ten, consulta.Epsilon) {
		t.Error("10 > 10 should not hold")
	}
	if !consulta.CompareNumber(ten, consulta.OpGTE, ten, consulta.Epsilon) {
		t.Error("10 >= 10 should hold")
	}
	if !consulta.CompareNumber(nine, consulta.OpLT, ten, consulta.Epsilon) {
		t.Error("9 < 10 should hold")
	}
	if !consulta.CompareNumber(ten, consulta.OpLTE, ten, consulta.Epsilon) {
		t.Error("10 <= 10 should hold")
	}
}

func TestCompareNumber_TolerantVersusExactEquality(t *testing.T) {
	// GIVEN: a value a hair away from the operand
	// THEN:  currency comparison accepts it, identifier comparison does not

	value := decimal.NewFromFloat(10.00004)
	operand := decimal.NewFromInt(10)

	if !consulta.CompareNumber(value, consulta.OpEquals, operand, consulta.Epsilon) {
		t.Error("10.00004 should equal 10 within the currency tolerance")
	}
	if consulta.CompareNumber(value, consulta.OpEquals, operand, decimal.Zero) {
		t.Error("10.00004 must not equal 10 exactly")
	}
	if consulta.CompareNumber(decimal.NewFromFloat(10.1), consulta.OpEquals, operand, consulta.Epsilon) {
		t.Error("10.1 should be outside the tolerance")
	}
}

// =============================================================================
// TEXT COMPARISON
// =============================================================================

func TestCompareText_CaseInsensitive(t *testing.T) {
	if !consulta.CompareText("Harina 000", consulta.OpContains, "harina") {
		t.Error("contains should ignore case")
	}
	if !consulta.CompareText("EFECTIVO", consulta.OpEquals, "efectivo") {
		t.Error("equals should ignore case")
	}
	if consulta.CompareText("Harina", consulta.OpEquals, "harina 000") {
		t.Error("equals should not match a superstring")
	}
	// Unknown ops fall back to contains.
	if !consulta.CompareText("Harina 000", consulta.Op("gt"), "000") {
		t.Error("non-text ops should fall back to contains")
	}
}

func TestMatchesAny_Membership(t *testing.T) {
	selected := []string{"Entregado", "Listo"}

	if !consulta.MatchesAny("entregado al cliente", selected) {
		t.Error("a value containing a selected entry should match")
	}
	if !consulta.MatchesAny("Listo", selected) {
		t.Error("an exact selected entry should match")
	}
	if consulta.MatchesAny("Pendiente", selected) {
		t.Error("a value outside the set should not match")
	}
	if !consulta.MatchesAny("cualquier cosa", nil) {
		t.Error("an empty set matches everything")
	}
}
