package reportes

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// STOCK EXECUTOR
// =============================================================================

// stockSchema resolves the historical spellings of the inventory collection.
var stockSchema = consulta.Schema{
	{Name: "id", Aliases: []string{"id"}, Kind: consulta.KindNumber},
	{Name: "name", Aliases: []string{"name", "nombre", "product_name"}, Kind: consulta.KindText},
	{Name: "stock", Aliases: []string{"stock", "quantity", "cantidad"}, Kind: consulta.KindNumber},
	{Name: "unit", Aliases: []string{"unit", "unidad"}, Kind: consulta.KindText},
	{Name: "price", Aliases: []string{"price", "precio"}, Kind: consulta.KindNumber},
	{Name: "category", Aliases: []string{"type", "category", "tipo", "categoria"}, Kind: consulta.KindText},
	{Name: "threshold", Aliases: []string{"low_stock_threshold", "lowStockThreshold"}, Kind: consulta.KindNumber},
}

// StockQuery filters the inventory collection. Quantity is unit-aware: the
// operand is expressed in the user's unit and compared against the stored
// base-unit stock; unit-incompatible items are excluded from the result.
type StockQuery struct {
	ID       consulta.NumberFilter
	Name     consulta.TextFilter
	Quantity consulta.QuantityFilter
	Price    consulta.NumberFilter
	Category consulta.SetFilter
	Status   consulta.SetFilter
	Dates    consulta.DateRange
}

func (q StockQuery) Type() consulta.QueryType  { return consulta.TypeStock }
func (q StockQuery) Range() consulta.DateRange { return q.Dates }

func (q StockQuery) HasFilters() bool {
	return q.ID.Active() || q.Name.Active() || q.Quantity.Active() ||
		q.Price.Active() || q.Category.Active() || q.Status.Active()
}

func (q StockQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypeStock)
	if err != nil {
		return nil, err
	}

	type categoryTotals map[consulta.Family]decimal.Decimal
	totals := map[string]categoryTotals{}
	var rows []consulta.Row
	lowCount := 0

	q.ID.Exact = true
	for _, raw := range stockSchema.NormalizeAll(records) {
		unit := consulta.ParseUnit(raw.Text("unit"))
		status := stockStatus(raw)

		if !q.ID.Match(raw["id"]) {
			continue
		}
		if !q.Name.Match(raw.Text("name")) {
			continue
		}
		if !q.Quantity.Match(raw["stock"], unit) {
			continue
		}
		if !q.Price.Match(raw["price"]) {
			continue
		}
		if !q.Category.Match(raw.Text("category")) {
			continue
		}
		if !q.Status.Match(status) {
			continue
		}

		stock, _ := raw.Number("stock")
		if status == StockBajo {
			lowCount++
		}
		category := normalizeStockCategory(raw.Text("category"))
		fam := consulta.UnitFamily(unit)
		// Totals accumulate in the family's base unit so mixed g/kg items sum.
		if base, ok := familyBaseUnit(fam); ok {
			if converted, err := consulta.Normalize(stock, unit, base); err == nil {
				if totals[category] == nil {
					totals[category] = categoryTotals{}
				}
				totals[category][fam] = totals[category][fam].Add(converted)
			}
		}

		rows = append(rows, consulta.Row{
			"id":     raw["id"],
			"name":   raw.Text("name"),
			"stock":  consulta.FormatQuantity(stock, unit),
			"type":   raw.Text("category"),
			"price":  raw["price"],
			"status": status,
		})
	}

	breakdown := map[string]string{}
	for category, perFamily := range totals {
		breakdown[category] = formatFamilyTotals(perFamily)
	}

	summary := consulta.Summary{
		{Key: "totalProducts", Value: len(rows)},
		{Key: "lowStockItems", Value: lowCount},
		{Key: "stockPorCategoria", Breakdown: breakdown},
	}
	columns := []string{"id", "name", "stock", "type", "price", "status"}
	return consulta.Project(consulta.TypeStock, "Estado del Stock", summary, columns, rows), nil
}

// stockStatus derives the display status from the stored quantity and the
// item's low-stock threshold: below it "Stock Bajo", below twice it
// "Stock Medio", otherwise "Stock Alto".
func stockStatus(r consulta.Record) string {
	stock, _ := r.Number("stock")
	threshold, ok := r.Number("threshold")
	if !ok {
		threshold = decimal.NewFromInt(defaultLowStockThreshold)
	}
	switch {
	case stock.LessThan(threshold):
		return StockBajo
	case stock.LessThan(threshold.Mul(decimal.NewFromInt(2))):
		return StockMedio
	default:
		return StockAlto
	}
}

func normalizeStockCategory(raw string) string {
	switch {
	case consulta.CompareText(raw, consulta.OpContains, "insumo"):
		return "insumo"
	default:
		return "producto"
	}
}

// familyBaseUnit returns the small stored unit of a family.
func familyBaseUnit(f consulta.Family) (consulta.Unit, bool) {
	switch f {
	case consulta.FamilyMass:
		return consulta.UnitGram, true
	case consulta.FamilyVolume:
		return consulta.UnitMilliliter, true
	case consulta.FamilyCount:
		return consulta.UnitCount, true
	}
	return "", false
}

// formatFamilyTotals renders per-family sums as "12.50Kg + 3U", in the
// stable mass/volume/count order, omitting zero components.
func formatFamilyTotals(perFamily map[consulta.Family]decimal.Decimal) string {
	out := ""
	for _, fam := range []consulta.Family{consulta.FamilyMass, consulta.FamilyVolume, consulta.FamilyCount} {
		total, ok := perFamily[fam]
		if !ok || total.IsZero() {
			continue
		}
		base, _ := familyBaseUnit(fam)
		if out != "" {
			out += " + "
		}
		out += consulta.FormatQuantityFixed(total, base)
	}
	return out
}
