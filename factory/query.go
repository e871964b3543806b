/*
Package factory provides JSON to Go query conversion.

PURPOSE:
  Converts a JSON query request (as submitted by the consultation screens)
  into the per-category query value the engine executes. This keeps the
  wire vocabulary - operator alias spellings, granular date components,
  multi-select sets - at the edge; executors only ever see the unified
  forms.

JSON SCHEMA:
  {
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
  }

KEY FEATURES:
  - Unknown query types are rejected with the user-visible message
  - Operator aliases (greater/greaterOrEqual/...) are unified here
  - Unknown filter keys are ignored, matching the screens' tolerance

SEE ALSO:
  - consulta/engine.go: Query interface and validation
  - reportes/: The concrete query types built here
*/
package factory

import (
	"encoding/json"

	"github.com/almacen/consulta-engine/consulta"
	"github.com/almacen/consulta-engine/reportes"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// ScalarJSON is one typed criterion: value, operator, optional unit.
type ScalarJSON struct {
	Value string `json:"value"`
	Op    string `json:"op"`
	Unit  string `json:"unit,omitempty"`
}

// FiltersJSON is the union of every category's filter controls; each
// category reads only the keys it declares.
type FiltersJSON struct {
	ID            *ScalarJSON       `json:"id,omitempty"`
	Name          *ScalarJSON       `json:"name,omitempty"`
	Product       *ScalarJSON       `json:"product,omitempty"`
	Customer      *ScalarJSON       `json:"customer,omitempty"`
	Supplier      *ScalarJSON       `json:"supplier,omitempty"`
	User          *ScalarJSON       `json:"user,omitempty"`
	Description   *ScalarJSON       `json:"description,omitempty"`
	CUIT          *ScalarJSON       `json:"cuit,omitempty"`
	Phone         *ScalarJSON       `json:"phone,omitempty"`
	Address       *ScalarJSON       `json:"address,omitempty"`
	Quantity      *ScalarJSON       `json:"quantity,omitempty"`
	Units         *ScalarJSON       `json:"units,omitempty"`
	Price         *ScalarJSON       `json:"price,omitempty"`
	Total         *ScalarJSON       `json:"total,omitempty"`
	Amount        *ScalarJSON       `json:"amount,omitempty"`
	Category      []string          `json:"category,omitempty"`
	Status        []string          `json:"status,omitempty"`
	Tipo          []string          `json:"tipo,omitempty"`
	PaymentMethod []string          `json:"payment_method,omitempty"`
	DateFrom      consulta.DateSpec `json:"date_from,omitempty"`
	DateTo        consulta.DateSpec `json:"date_to,omitempty"`
	SortOrder     string            `json:"sort_order,omitempty"`
}

// RequestJSON is the wire representation of one query run.
type RequestJSON struct {
	QueryType string      `json:"query_type"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Filters   FiltersJSON `json:"filters"`
}

// =============================================================================
// FACTORY
// =============================================================================

type QueryFactory struct{}

func NewQueryFactory() *QueryFactory { return &QueryFactory{} }

// Parse converts a raw JSON request into an executable query.
func (f *QueryFactory) Parse(raw []byte) (consulta.Query, error) {
	var req RequestJSON
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, err
	}
	return f.Build(req)
}

// Build converts an already-decoded request into an executable query.
func (f *QueryFactory) Build(req RequestJSON) (consulta.Query, error) {
	dates := consulta.DateRange{Start: req.StartDate, End: req.EndDate}
	granular := consulta.GranularRange{From: req.Filters.DateFrom, To: req.Filters.DateTo}
	fl := req.Filters

	switch consulta.QueryType(req.QueryType) {
	case consulta.TypeStock:
		return reportes.StockQuery{
			ID:       number(fl.ID),
			Name:     text(fl.Name),
			Quantity: quantity(fl.Quantity),
			Price:    number(fl.Price),
			Category: fl.Category,
			Status:   fl.Status,
			Dates:    dates,
		}, nil
	case consulta.TypeProveedores:
		return reportes.ProveedoresQuery{
			ID:       number(fl.ID),
			Name:     text(fl.Name),
			CUIT:     text(fl.CUIT),
			Phone:    text(fl.Phone),
			Address:  text(fl.Address),
			Products: text(fl.Product),
			Dates:    dates,
		}, nil
	case consulta.TypeVentas:
		return reportes.VentasQuery{
			ID:       number(fl.ID),
			Product:  text(fl.Product),
			User:     text(fl.User),
			Total:    number(fl.Total),
			Quantity: number(fl.Quantity),
			Granular: granular,
			Dates:    dates,
		}, nil
	case consulta.TypeCompras:
		return reportes.ComprasQuery{
			ID:       number(fl.ID),
			Supplier: text(fl.Supplier),
			Total:    number(fl.Total),
			Product:  text(fl.Product),
			Tipo:     fl.Tipo,
			Granular: granular,
			Dates:    dates,
		}, nil
	case consulta.TypePedidos:
		return reportes.PedidosQuery{
			ID:            number(fl.ID),
			Customer:      text(fl.Customer),
			Product:       text(fl.Product),
			Units:         number(fl.Units),
			PaymentMethod: fl.PaymentMethod,
			Status:        fl.Status,
			Granular:      granular,
			Dates:         dates,
		}, nil
	case consulta.TypeCaja:
		sortOrder := reportes.SortDesc
		if fl.SortOrder == "asc" {
			sortOrder = reportes.SortAsc
		}
		return reportes.CajaQuery{
			ID:            number(fl.ID),
			Amount:        number(fl.Amount),
			Description:   text(fl.Description),
			User:          text(fl.User),
			Tipo:          fl.Tipo,
			PaymentMethod: fl.PaymentMethod,
			Granular:      granular,
			Dates:         dates,
			Sort:          sortOrder,
		}, nil
	}
	return nil, consulta.ErrNoQueryType
}

func number(s *ScalarJSON) consulta.NumberFilter {
	if s == nil {
		return consulta.NumberFilter{}
	}
	return consulta.NumberFilter{Raw: s.Value, Op: consulta.ParseOp(s.Op)}
}

func text(s *ScalarJSON) consulta.TextFilter {
	if s == nil {
		return consulta.TextFilter{}
	}
	return consulta.TextFilter{Value: s.Value, Op: consulta.ParseOp(s.Op)}
}

func quantity(s *ScalarJSON) consulta.QuantityFilter {
	if s == nil {
		return consulta.QuantityFilter{}
	}
	return consulta.QuantityFilter{Raw: s.Value, Unit: s.Unit, Op: consulta.ParseOp(s.Op)}
}
