package reportes_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen/consulta-engine/consulta"
	"github.com/almacen/consulta-engine/reportes"
	"github.com/almacen/consulta-engine/store/memory"
)

func pedidosFixture() *memory.Store {
	m := memory.New()
	m.Seed(consulta.TypePedidos, []consulta.Record{
		{
			"id": 1, "fecha_de_orden_del_pedido": "2024-05-02T09:00:00",
			"customerName": "López", "paymentMethod": "Efectivo",
			"status": "entregado al cliente",
			"items": []any{
				map[string]any{"product_name": "Pan", "quantity": 6.0},
				map[string]any{"product_name": "Facturas", "quantity": 12.0},
			},
		},
		{
			"id": 2, "date": "2024-05-03T11:00:00",
			"customer_name": "Martínez", "payment_method": "Tarjeta",
			"status": "pendiente de retiro",
			"items": []any{map[string]any{"product_name": "Torta", "quantity": 1.0}},
		},
		{
			"id": 3, "created_at": "2024-05-04T15:00:00",
			"customerName": "Gómez", "paymentMethod": "Efectivo",
			"status": "CANCELADO",
			"items": []any{},
		},
	})
	return m
}

func TestPedidosQuery_StatusNormalizedBeforeMatching(t *testing.T) {
	// GIVEN: an order whose stored status is the free text
	//        "entregado al cliente"
	// WHEN:  the user selects the canonical "Entregado"
	// THEN:  the order matches and the row shows the canonical value

	q := reportes.PedidosQuery{Status: consulta.SetFilter{reportes.StatusEntregado}}
	res, err := q.Execute(context.Background(), pedidosFixture())
	require.NoError(t, err)
	require.Len(t, res.Data, 1)

	row := res.Data[0]
	assert.Equal(t, "López", row["customerName"])
	assert.Equal(t, reportes.StatusEntregado, row["status"])
	assert.Equal(t, "Pan, Facturas", row["products"])
	assert.Equal(t, "6, 12", row["units"])
}

func TestPedidosQuery_UnitsMatchesAnyLineItem(t *testing.T) {
	// The units criterion holds when any line item satisfies it.
	q := reportes.PedidosQuery{Units: consulta.NumberFilter{Raw: "10", Op: consulta.OpGTE}}
	res, err := q.Execute(context.Background(), pedidosFixture())
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "López", res.Data[0]["customerName"])
}

func TestPedidosQuery_ProductAcrossItems(t *testing.T) {
	q := reportes.PedidosQuery{Product: consulta.TextFilter{Value: "torta", Op: consulta.OpContains}}
	res, err := q.Execute(context.Background(), pedidosFixture())
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Martínez", res.Data[0]["customerName"])
}

func TestPedidosQuery_StatusBreakdown(t *testing.T) {
	q := reportes.PedidosQuery{Dates: consulta.DateRange{Start: "2024-05-01", End: "2024-05-31"}}
	res, err := q.Execute(context.Background(), pedidosFixture())
	require.NoError(t, err)
	require.Len(t, res.Data, 3)

	total, _ := res.Summary.Get("totalOrders")
	assert.Equal(t, 3, total)

	breakdown, ok := res.Summary.Get("statusBreakdown")
	require.True(t, ok)
	counts := breakdown.(map[string]string)
	assert.Equal(t, "1", counts[reportes.StatusEntregado])
	assert.Equal(t, "1", counts[reportes.StatusPendiente])
	assert.Equal(t, "1", counts[reportes.StatusCancelado])
	assert.NotContains(t, counts, reportes.StatusListo, "zero-count statuses stay out")
}

func TestNormalizeOrderStatus(t *testing.T) {
	cases := map[string]string{
		"entregado al cliente": reportes.StatusEntregado,
		"CANCELADO":            reportes.StatusCancelado,
		"listo para retirar":   reportes.StatusListo,
		"en preparación":       reportes.StatusPreparacion,
		"pendiente":            reportes.StatusPendiente,
		"extraviado":           "extraviado",
	}
	for in, want := range cases {
		assert.Equal(t, want, reportes.NormalizeOrderStatus(in), "input %q", in)
	}
}
