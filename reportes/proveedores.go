package reportes

import (
	"context"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// SUPPLIERS EXECUTOR
// =============================================================================

var proveedorSchema = consulta.Schema{
	{Name: "id", Aliases: []string{"id"}, Kind: consulta.KindNumber},
	{Name: "name", Aliases: []string{"name", "nombre"}, Kind: consulta.KindText},
	{Name: "cuit", Aliases: []string{"cuit"}, Kind: consulta.KindText},
	{Name: "phone", Aliases: []string{"phone", "telefono"}, Kind: consulta.KindText},
	{Name: "address", Aliases: []string{"address", "direccion"}, Kind: consulta.KindText},
	{Name: "products", Aliases: []string{"products", "productos"}, Kind: consulta.KindText},
}

// ProveedoresQuery filters the supplier collection. Every text field carries
// its own contains/equals toggle; the products filter tolerates both the
// array-of-objects and the comma-joined-string representations.
type ProveedoresQuery struct {
	ID       consulta.NumberFilter
	Name     consulta.TextFilter
	CUIT     consulta.TextFilter
	Phone    consulta.TextFilter
	Address  consulta.TextFilter
	Products consulta.TextFilter
	Dates    consulta.DateRange
}

func (q ProveedoresQuery) Type() consulta.QueryType  { return consulta.TypeProveedores }
func (q ProveedoresQuery) Range() consulta.DateRange { return q.Dates }

func (q ProveedoresQuery) HasFilters() bool {
	return q.ID.Active() || q.Name.Active() || q.CUIT.Active() ||
		q.Phone.Active() || q.Address.Active() || q.Products.Active()
}

func (q ProveedoresQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypeProveedores)
	if err != nil {
		return nil, err
	}

	q.ID.Exact = true
	var rows []consulta.Row
	for i, raw := range proveedorSchema.NormalizeAll(records) {
		products := offeredProducts(records[i])
		if !q.ID.Match(raw["id"]) {
			continue
		}
		if !q.Name.Match(raw.Text("name")) {
			continue
		}
		if !q.CUIT.Match(raw.Text("cuit")) {
			continue
		}
		if !q.Phone.Match(raw.Text("phone")) {
			continue
		}
		if !q.Address.Match(raw.Text("address")) {
			continue
		}
		if !q.Products.Match(products) {
			continue
		}
		rows = append(rows, consulta.Row{
			"id":       raw["id"],
			"name":     raw.Text("name"),
			"cuit":     raw.Text("cuit"),
			"phone":    raw.Text("phone"),
			"address":  raw.Text("address"),
			"products": products,
		})
	}

	summary := consulta.Summary{
		{Key: "totalSuppliers", Value: len(rows)},
		{Key: "activeSuppliers", Value: len(rows)},
	}
	columns := []string{"id", "name", "cuit", "phone", "address", "products"}
	return consulta.Project(consulta.TypeProveedores, "Información de Proveedores", summary, columns, rows), nil
}

// offeredProducts renders the supplier's product list as a comma-joined
// string regardless of whether it arrived as objects or as a string.
func offeredProducts(supplier consulta.Record) string {
	if items := supplier.List("products", "productos"); items != nil {
		var names []string
		for _, it := range items {
			if n := it.Text(itemNameAliases...); n != "" {
				names = append(names, n)
			}
		}
		return joined(names)
	}
	return supplier.Text("products", "productos")
}
