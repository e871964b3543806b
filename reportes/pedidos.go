package reportes

import (
	"context"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// ORDERS EXECUTOR
// =============================================================================

var (
	orderDateAliases     = []string{"fecha_de_orden_del_pedido", "date", "created_at"}
	orderCustomerAliases = []string{"customerName", "customer_name", "cliente"}
	orderPaymentAliases  = []string{"paymentMethod", "payment_method"}
)

// PedidosQuery filters the customer-order collection. Status values are
// normalized into the fixed vocabulary before matching; the units filter
// matches when any line item satisfies the numeric comparison.
type PedidosQuery struct {
	ID            consulta.NumberFilter
	Customer      consulta.TextFilter
	Product       consulta.TextFilter
	Units         consulta.NumberFilter
	PaymentMethod consulta.SetFilter
	Status        consulta.SetFilter
	Granular      consulta.GranularRange
	Dates         consulta.DateRange
}

func (q PedidosQuery) Type() consulta.QueryType  { return consulta.TypePedidos }
func (q PedidosQuery) Range() consulta.DateRange { return q.Dates }

func (q PedidosQuery) HasFilters() bool {
	return q.ID.Active() || q.Customer.Active() || q.Product.Active() ||
		q.Units.Active() || q.PaymentMethod.Active() || q.Status.Active() ||
		q.Granular.Active()
}

func (q PedidosQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypePedidos)
	if err != nil {
		return nil, err
	}

	q.ID.Exact = true
	var rows []consulta.Row
	statusCounts := map[string]int{}
	for _, order := range records {
		date, _ := order.Get(orderDateAliases...)
		status := NormalizeOrderStatus(order.Text("status", "estado"))
		items := order.List("items")

		if !q.ID.Match(order["id"]) {
			continue
		}
		if !q.Dates.Match(date) || !q.Granular.Match(date) {
			continue
		}
		if !q.Customer.Match(order.Text(orderCustomerAliases...)) {
			continue
		}
		if !q.PaymentMethod.Match(order.Text(orderPaymentAliases...)) {
			continue
		}
		if !q.Status.Match(status) {
			continue
		}
		if q.Product.Active() && !anyItemName(items, q.Product) {
			continue
		}
		if q.Units.Active() && !anyItemQuantity(items, q.Units) {
			continue
		}

		var products, units []string
		for _, it := range items {
			if n := it.Text(itemNameAliases...); n != "" {
				products = append(products, n)
			}
			if qty, ok := it.Number(itemQtyAliases...); ok {
				units = append(units, qty.String())
			}
		}
		statusCounts[status]++
		rows = append(rows, consulta.Row{
			"id":            order["id"],
			"date":          date,
			"customerName":  order.Text(orderCustomerAliases...),
			"paymentMethod": order.Text(orderPaymentAliases...),
			"status":        status,
			"products":      joined(products),
			"units":         joined(units),
		})
	}

	breakdown := map[string]string{}
	for _, s := range OrderStatuses {
		if n := statusCounts[s]; n > 0 {
			breakdown[s] = consulta.AsText(n)
		}
	}
	summary := consulta.Summary{
		{Key: "totalOrders", Value: len(rows)},
		{Key: "statusBreakdown", Breakdown: breakdown},
		{Key: "period", Value: q.Dates.Period()},
	}
	columns := []string{"id", "date", "customerName", "paymentMethod", "status", "products", "units"}
	return consulta.Project(consulta.TypePedidos, "Reporte de Pedidos", summary, columns, rows), nil
}

func anyItemName(items []consulta.Record, f consulta.TextFilter) bool {
	for _, it := range items {
		if f.Match(it.Text(itemNameAliases...)) {
			return true
		}
	}
	return false
}

func anyItemQuantity(items []consulta.Record, f consulta.NumberFilter) bool {
	for _, it := range items {
		if qty, ok := it.Number(itemQtyAliases...); ok && f.Match(qty) {
			return true
		}
	}
	return false
}
