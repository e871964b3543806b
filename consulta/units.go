package consulta

import (
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// UNITS - Families and conversion
// =============================================================================

// Unit is a measurement unit as stored on records ("g", "kg", "ml", "l",
// "unidades"/"u"). Quantities are stored in the small base unit of their
// family (grams, milliliters, plain counts).
type Unit string

const (
	UnitGram       Unit = "g"
	UnitKilogram   Unit = "kg"
	UnitMilliliter Unit = "ml"
	UnitLiter      Unit = "l"
	UnitCount      Unit = "unidades"
)

// Family is a set of mutually convertible units.
type Family int

const (
	FamilyNone Family = iota
	FamilyMass
	FamilyVolume
	FamilyCount
)

var thousand = decimal.NewFromInt(1000)

// ParseUnit normalizes the unit spellings seen on records and filters.
func ParseUnit(s string) Unit {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gr", "gramos":
		return UnitGram
	case "kg", "kilos", "kilogramos":
		return UnitKilogram
	case "ml", "mililitros":
		return UnitMilliliter
	case "l", "lt", "litros":
		return UnitLiter
	case "u", "un", "unidad", "unidades":
		return UnitCount
	}
	return Unit(strings.ToLower(strings.TrimSpace(s)))
}

// UnitFamily returns the family a unit belongs to, or FamilyNone for
// unknown units.
func UnitFamily(u Unit) Family {
	switch u {
	case UnitGram, UnitKilogram:
		return FamilyMass
	case UnitMilliliter, UnitLiter:
		return FamilyVolume
	case UnitCount:
		return FamilyCount
	}
	return FamilyNone
}

// Normalize converts a quantity between compatible units. Conversion across
// families (or involving an unknown unit) returns ErrIncompatibleUnits;
// callers must treat the comparison as non-matching, not as a failure.
func Normalize(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	ff, tf := UnitFamily(from), UnitFamily(to)
	if ff == FamilyNone || tf == FamilyNone || ff != tf {
		return decimal.Zero, ErrIncompatibleUnits
	}
	if from == to {
		return qty, nil
	}
	// Within a family the only scale is base-unit x1000 (g->kg, ml->l).
	switch {
	case (from == UnitGram && to == UnitKilogram) || (from == UnitMilliliter && to == UnitLiter):
		return qty.Div(thousand), nil
	case (from == UnitKilogram && to == UnitGram) || (from == UnitLiter && to == UnitMilliliter):
		return qty.Mul(thousand), nil
	}
	return qty, nil
}

// DisplayUnit returns the human label used in displayed quantities: mass and
// volume in their large unit, counts as "U".
func DisplayUnit(u Unit) string {
	switch UnitFamily(u) {
	case FamilyMass:
		return "Kg"
	case FamilyVolume:
		return "L"
	case FamilyCount:
		return "U"
	}
	return string(u)
}

// FormatQuantity renders a stored base-unit quantity as a human string
// favoring the large unit of the family: 500 g -> "0.5Kg", 1500 g ->
// "1.5Kg", 3 unidades -> "3U". Trailing zeros are trimmed; the stored
// numeric value is never altered.
func FormatQuantity(qty decimal.Decimal, unit Unit) string {
	return displayValue(qty, unit).String() + DisplayUnit(unit)
}

// FormatQuantityFixed is FormatQuantity with two fixed decimals for mass and
// volume, as used in summary aggregates ("12.50Kg"). Counts stay integral.
func FormatQuantityFixed(qty decimal.Decimal, unit Unit) string {
	v := displayValue(qty, unit)
	if UnitFamily(unit) == FamilyCount {
		return v.String() + DisplayUnit(unit)
	}
	return v.StringFixed(2) + DisplayUnit(unit)
}

func displayValue(qty decimal.Decimal, unit Unit) decimal.Decimal {
	switch unit {
	case UnitGram:
		v, _ := Normalize(qty, UnitGram, UnitKilogram)
		return v
	case UnitMilliliter:
		v, _ := Normalize(qty, UnitMilliliter, UnitLiter)
		return v
	}
	return qty
}
