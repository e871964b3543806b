package factory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen/consulta-engine/consulta"
	"github.com/almacen/consulta-engine/factory"
	"github.com/almacen/consulta-engine/reportes"
)

func TestParse_BuildsPedidosQuery(t *testing.T) {
	raw := []byte(`{
		"query_type": "pedidos",
		"start_date": "2024-01-01",
		"end_date": "2024-06-30",
		"filters": {
			"id": {"value": "12", "op": "equals"},
			"customer": {"value": "lopez", "op": "contains"},
			"units": {"value": "3", "op": "greaterOrEqual"},
			"status": ["Entregado", "Listo"],
			"payment_method": ["Efectivo"],
			"date_from": {"year": 2024, "month": 1},
			"date_to": {"year": 2024, "month": 6}
		}
	}`)

	f := factory.NewQueryFactory()
	q, err := f.Parse(raw)
	require.NoError(t, err)

	pedidos, ok := q.(reportes.PedidosQuery)
	require.True(t, ok, "expected a PedidosQuery, got %T", q)

	assert.Equal(t, consulta.TypePedidos, pedidos.Type())
	assert.True(t, pedidos.HasFilters())
	assert.Equal(t, consulta.DateRange{Start: "2024-01-01", End: "2024-06-30"}, pedidos.Range())

	// The alias vocabulary is unified at this edge.
	assert.Equal(t, consulta.OpGTE, pedidos.Units.Op)
	assert.Equal(t, consulta.OpContains, pedidos.Customer.Op)
	assert.Equal(t, consulta.SetFilter{"Entregado", "Listo"}, pedidos.Status)

	require.NotNil(t, pedidos.Granular.From.Year)
	assert.Equal(t, 2024, *pedidos.Granular.From.Year)
	require.NotNil(t, pedidos.Granular.To.Month)
	assert.Equal(t, 6, *pedidos.Granular.To.Month)
}

func TestBuild_StockQuantityCarriesUnit(t *testing.T) {
	req := factory.RequestJSON{
		QueryType: "stock",
		Filters: factory.FiltersJSON{
			Quantity: &factory.ScalarJSON{Value: "0.5", Op: "equals", Unit: "kg"},
			Category: []string{"producto"},
		},
	}
	q, err := factory.NewQueryFactory().Build(req)
	require.NoError(t, err)

	stock := q.(reportes.StockQuery)
	assert.Equal(t, "kg", stock.Quantity.Unit)
	assert.True(t, stock.HasFilters())
}

func TestBuild_CajaSortOrder(t *testing.T) {
	q, err := factory.NewQueryFactory().Build(factory.RequestJSON{
		QueryType: "movimientos_caja",
		Filters:   factory.FiltersJSON{SortOrder: "asc"},
	})
	require.NoError(t, err)
	assert.Equal(t, reportes.SortAsc, q.(reportes.CajaQuery).Sort)

	q, err = factory.NewQueryFactory().Build(factory.RequestJSON{QueryType: "movimientos_caja"})
	require.NoError(t, err)
	assert.Equal(t, reportes.SortDesc, q.(reportes.CajaQuery).Sort, "descending is the default")
}

func TestBuild_UnknownTypeRejected(t *testing.T) {
	_, err := factory.NewQueryFactory().Build(factory.RequestJSON{QueryType: "recetas"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, consulta.ErrNoQueryType))
	assert.True(t, consulta.IsValidation(err))
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := factory.NewQueryFactory().Parse([]byte(`{"query_type":`))
	require.Error(t, err)
}
