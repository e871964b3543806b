package consulta

import "github.com/shopspring/decimal"

// =============================================================================
// RESULT PROJECTION - Executor output to the uniform envelope
// =============================================================================

// Project packages an executor's output into the envelope consumed
// identically by rendering and export. Row order is preserved exactly as
// produced (cash movements re-sort before projecting, that ordering is
// theirs to make).
func Project(t QueryType, title string, summary Summary, columns []string, rows []Row) *QueryResult {
	if rows == nil {
		rows = []Row{}
	}
	return &QueryResult{
		Type:    t,
		Title:   title,
		Summary: summary,
		Columns: columns,
		Data:    rows,
	}
}

// Money renders a monetary summary value with two fixed decimals, the
// screens' safeToFixed behavior.
func Money(d decimal.Decimal) string { return d.StringFixed(2) }
