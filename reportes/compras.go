package reportes

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// PURCHASES EXECUTOR
// =============================================================================

var (
	purchaseDateAliases     = []string{"date", "created_at", "timestamp"}
	purchaseSupplierAliases = []string{"supplierName", "supplier", "proveedor"}
	itemCategoryAliases     = []string{"category", "type", "productCategory", "product_category"}
)

// purchaseItem is one normalized line item.
type purchaseItem struct {
	productName string
	quantity    decimal.Decimal
	unitPrice   decimal.Decimal
	total       decimal.Decimal
	category    string
}

// ComprasQuery filters the purchase collection. A purchase's type
// (Producto/Insumo/Mixto) derives from its items' categories; items without
// one are looked up by product name in the stock collection.
type ComprasQuery struct {
	ID       consulta.NumberFilter
	Supplier consulta.TextFilter
	Total    consulta.NumberFilter
	Product  consulta.TextFilter
	Tipo     consulta.SetFilter
	Granular consulta.GranularRange
	Dates    consulta.DateRange
}

func (q ComprasQuery) Type() consulta.QueryType  { return consulta.TypeCompras }
func (q ComprasQuery) Range() consulta.DateRange { return q.Dates }

func (q ComprasQuery) HasFilters() bool {
	return q.ID.Active() || q.Supplier.Active() || q.Total.Active() ||
		q.Product.Active() || q.Tipo.Active() || q.Granular.Active()
}

func (q ComprasQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypeCompras)
	if err != nil {
		return nil, err
	}
	// Category fallback lookups read the stock collection once per run.
	inventory, err := provider.Records(ctx, consulta.TypeStock)
	if err != nil {
		inventory = nil
	}
	categoryByName := stockCategoryIndex(inventory)

	q.ID.Exact = true
	var rows []consulta.Row
	amount := decimal.Zero
	for _, purchase := range records {
		items := normalizePurchaseItems(purchase, categoryByName)
		date, _ := purchase.Get(purchaseDateAliases...)
		total, _ := purchase.Number("totalAmount", "total_amount", "total")
		tipo := InferPurchaseType(itemCategories(items))
		names := itemNames(items)

		if !q.ID.Match(purchase["id"]) {
			continue
		}
		if !q.Dates.Match(date) || !q.Granular.Match(date) {
			continue
		}
		if !q.Supplier.Match(purchase.Text(purchaseSupplierAliases...)) {
			continue
		}
		if !q.Total.Match(total) {
			continue
		}
		if !q.Tipo.Match(tipo) {
			continue
		}
		if q.Product.Active() && !anyMatches(names, q.Product) {
			continue
		}

		status := purchase.Text("status", "estado")
		if status == "" {
			status = "Completada"
		}
		amount = amount.Add(total)
		rows = append(rows, consulta.Row{
			"id":       purchase["id"],
			"date":     date,
			"supplier": purchase.Text(purchaseSupplierAliases...),
			"items":    joined(names),
			"total":    total,
			"status":   status,
			"type":     tipo,
		})
	}

	summary := consulta.Summary{
		{Key: "totalPurchases", Value: len(rows)},
		{Key: "totalAmount", Value: consulta.Money(amount)},
		{Key: "period", Value: q.Dates.Period()},
	}
	columns := []string{"id", "date", "supplier", "items", "total", "status", "type"}
	return consulta.Project(consulta.TypeCompras, "Reporte de Compras", summary, columns, rows), nil
}

// normalizePurchaseItems resolves the heterogeneous item shapes seen across
// purchase history versions into purchaseItems.
func normalizePurchaseItems(purchase consulta.Record, categoryByName map[string]string) []purchaseItem {
	var out []purchaseItem
	for _, it := range purchase.List("items") {
		qty, _ := it.Number(itemQtyAliases...)
		unitPrice, _ := it.Number("unitPrice", "unit_price", "price")
		total, ok := it.Number(itemTotalAliases...)
		if !ok {
			total = qty.Mul(unitPrice)
		}
		name := it.Text(itemNameAliases...)
		category := it.Text(itemCategoryAliases...)
		if strings.TrimSpace(category) == "" && name != "" {
			category = categoryByName[strings.ToLower(name)]
		}
		out = append(out, purchaseItem{
			productName: name,
			quantity:    qty,
			unitPrice:   unitPrice,
			total:       total,
			category:    category,
		})
	}
	return out
}

// stockCategoryIndex maps lowercase product names to their stock category.
func stockCategoryIndex(inventory []consulta.Record) map[string]string {
	idx := make(map[string]string, len(inventory))
	for _, p := range inventory {
		name := p.Text("name", "nombre")
		if name == "" {
			continue
		}
		if c := p.Text("type", "category"); c != "" {
			idx[strings.ToLower(name)] = c
		}
	}
	return idx
}

func itemCategories(items []purchaseItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.category)
	}
	return out
}

func itemNames(items []purchaseItem) []string {
	var out []string
	for _, it := range items {
		if it.productName != "" {
			out = append(out, it.productName)
		}
	}
	return out
}

// anyMatches reports whether any name satisfies the text criterion.
func anyMatches(names []string, f consulta.TextFilter) bool {
	for _, n := range names {
		if f.Match(n) {
			return true
		}
	}
	return false
}
