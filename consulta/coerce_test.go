package consulta_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

func TestParseAnyDate_HistoricalSpellings(t *testing.T) {
	cases := []struct {
		in   any
		want time.Time
	}{
		{"15/3/2024", ts(2024, 3, 15, 0, 0)},
		{"2024/03/15, 18:30", ts(2024, 3, 15, 18, 30)},
		{"2024-03-15", ts(2024, 3, 15, 0, 0)},
		{"2024-03-15T18:30:00", ts(2024, 3, 15, 18, 30)},
		{"2024-03-15T18:30:00Z", ts(2024, 3, 15, 18, 30)},
		{"2024-03-15 18:30", ts(2024, 3, 15, 18, 30)},
		{ts(2024, 3, 15, 18, 30), ts(2024, 3, 15, 18, 30)},
	}
	for _, c := range cases {
		got, ok := consulta.ParseAnyDate(c.in)
		if !ok {
			t.Errorf("ParseAnyDate(%v) failed to parse", c.in)
			continue
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseAnyDate(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseAnyDate_Rejections(t *testing.T) {
	for _, in := range []any{"", "  ", "mañana", 42, nil, time.Time{}} {
		if _, ok := consulta.ParseAnyDate(in); ok {
			t.Errorf("ParseAnyDate(%v) should not parse", in)
		}
	}
}

func TestFormatDateForDisplay(t *testing.T) {
	if got := consulta.FormatDateForDisplay("2024-03-15"); got != "15/03/2024" {
		t.Errorf("got %q, want 15/03/2024", got)
	}
	// Non-ISO inputs pass through untouched.
	if got := consulta.FormatDateForDisplay("15/03/2024"); got != "15/03/2024" {
		t.Errorf("got %q, want passthrough", got)
	}
}

func TestAsNumber(t *testing.T) {
	if v, ok := consulta.AsNumber(" 12.50 "); !ok || !v.Equal(decimal.NewFromFloat(12.5)) {
		t.Errorf("AsNumber(\" 12.50 \") = %v, %v", v, ok)
	}
	if _, ok := consulta.AsNumber("doce"); ok {
		t.Error("text should not parse as a number")
	}
	if _, ok := consulta.AsNumber(nil); ok {
		t.Error("nil should not parse as a number")
	}
}
