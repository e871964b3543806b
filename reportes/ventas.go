package reportes

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// SALES EXECUTOR
// =============================================================================

var (
	saleDateAliases    = []string{"timestamp", "created_at", "date", "fecha"}
	itemNameAliases    = []string{"product_name", "productName", "product", "name"}
	itemQtyAliases     = []string{"quantity", "qty", "cantidad"}
	itemPriceAliases   = []string{"price", "unitPrice", "unit_price"}
	itemTotalAliases   = []string{"total", "totalAmount", "total_amount"}
	saleItemsAliases   = []string{"sale_items", "items"}
	saleUserAliases    = []string{"user", "user_username", "user_name"}
	saleTotalAliases   = []string{"total_amount", "total", "amount"}
	saleProductAliases = []string{"product_name", "product"}
)

// saleRow is one flattened (sale, item) pair.
type saleRow struct {
	id       any
	date     any
	product  string
	quantity decimal.Decimal
	total    decimal.Decimal
	user     string
}

// VentasQuery filters the sales collection, flattened to one row per line
// item. Sales without itemized detail contribute a single pseudo-item
// carrying the aggregate total so legacy sales aren't lost.
type VentasQuery struct {
	ID       consulta.NumberFilter
	Product  consulta.TextFilter
	User     consulta.TextFilter
	Total    consulta.NumberFilter
	Quantity consulta.NumberFilter
	Granular consulta.GranularRange
	Dates    consulta.DateRange
}

func (q VentasQuery) Type() consulta.QueryType  { return consulta.TypeVentas }
func (q VentasQuery) Range() consulta.DateRange { return q.Dates }

func (q VentasQuery) HasFilters() bool {
	return q.ID.Active() || q.Product.Active() || q.User.Active() ||
		q.Total.Active() || q.Quantity.Active() || q.Granular.Active()
}

func (q VentasQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypeVentas)
	if err != nil {
		return nil, err
	}

	q.ID.Exact = true
	var rows []consulta.Row
	revenue := decimal.Zero
	for _, sale := range records {
		for _, r := range flattenSale(sale) {
			if !q.ID.Match(r.id) {
				continue
			}
			if !q.Dates.Match(r.date) || !q.Granular.Match(r.date) {
				continue
			}
			if !q.Product.Match(r.product) {
				continue
			}
			if !q.User.Match(r.user) {
				continue
			}
			if !q.Total.Match(r.total) {
				continue
			}
			if !q.Quantity.Match(r.quantity) {
				continue
			}
			revenue = revenue.Add(r.total)
			rows = append(rows, consulta.Row{
				"id":       r.id,
				"date":     r.date,
				"product":  r.product,
				"quantity": r.quantity,
				"total":    r.total,
				"user":     r.user,
			})
		}
	}

	summary := consulta.Summary{
		{Key: "totalSales", Value: len(rows)},
		{Key: "totalRevenue", Value: consulta.Money(revenue)},
		{Key: "period", Value: q.Dates.Period()},
	}
	columns := []string{"id", "date", "product", "quantity", "total", "user"}
	return consulta.Project(consulta.TypeVentas, "Reporte de Ventas", summary, columns, rows), nil
}

// flattenSale expands one sale record into saleRows, tolerating the two
// historical item list spellings and synthesizing a pseudo-item for sales
// that predate itemized detail.
func flattenSale(sale consulta.Record) []saleRow {
	user := sale.Text(saleUserAliases...)
	if user == "" {
		user = "Sistema"
	}
	date, _ := sale.Get(saleDateAliases...)
	id, _ := sale.Get("id")

	items := sale.List(saleItemsAliases...)
	var out []saleRow
	for _, it := range items {
		qty, _ := it.Number(itemQtyAliases...)
		total, ok := it.Number(itemTotalAliases...)
		if !ok {
			price, _ := it.Number(itemPriceAliases...)
			total = qty.Mul(price)
		}
		out = append(out, saleRow{
			id:       id,
			date:     date,
			product:  it.Text(itemNameAliases...),
			quantity: qty,
			total:    total,
			user:     user,
		})
	}
	if len(out) > 0 {
		return out
	}

	// Fallback row synthesis for sales without detail.
	if product := sale.Text(saleProductAliases...); product != "" {
		qty, ok := sale.Number(itemQtyAliases...)
		if !ok {
			qty = decimal.NewFromInt(1)
		}
		total, _ := sale.Number(saleTotalAliases...)
		return []saleRow{{id: id, date: date, product: product, quantity: qty, total: total, user: user}}
	}
	if total, ok := sale.Number(saleTotalAliases...); ok {
		return []saleRow{{
			id: id, date: date,
			product:  "Venta (sin items detallados)",
			quantity: decimal.NewFromInt(1),
			total:    total,
			user:     user,
		}}
	}
	return nil
}
