package consulta_test

import (
	"encoding/json"
	"testing"

	"github.com/almacen/consulta-engine/consulta"
)

func TestSummary_MarshalPreservesOrder(t *testing.T) {
	s := consulta.Summary{
		{Key: "totalSales", Value: 3},
		{Key: "totalRevenue", Value: "1250.00"},
		{Key: "statusBreakdown", Breakdown: map[string]string{"Entregado": "2"}},
		{Key: "period", Value: "Todos los períodos"},
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"totalSales":3,"totalRevenue":"1250.00","statusBreakdown":{"Entregado":"2"},"period":"Todos los períodos"}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestSummary_RoundTrip(t *testing.T) {
	// Snapshots store the summary as JSON; reading it back must keep the
	// entry order and the breakdown structure.
	in := consulta.Summary{
		{Key: "totalOrders", Value: 2},
		{Key: "statusBreakdown", Breakdown: map[string]string{"Listo": "1", "Entregado": "1"}},
		{Key: "period", Value: "01/01/2024 - 30/06/2024"},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out consulta.Summary
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(out))
	}
	for i, key := range []string{"totalOrders", "statusBreakdown", "period"} {
		if out[i].Key != key {
			t.Errorf("entry %d key = %q, want %q", i, out[i].Key, key)
		}
	}
	if out[1].Breakdown["Listo"] != "1" {
		t.Errorf("breakdown lost: %#v", out[1])
	}
}

func TestRecord_GetAliasOrder(t *testing.T) {
	r := consulta.Record{"product_name": "Harina", "name": "otro"}
	if got := r.Text("productName", "product_name", "name"); got != "Harina" {
		t.Errorf("alias resolution picked %q, want Harina", got)
	}
}

func TestRecord_ListToleratesShapes(t *testing.T) {
	fromJSON := consulta.Record{"items": []any{
		map[string]any{"product_name": "Pan"},
		"ruido",
	}}
	items := fromJSON.List("items")
	if len(items) != 1 || items[0].Text("product_name") != "Pan" {
		t.Errorf("[]any shape: got %#v", items)
	}

	typed := consulta.Record{"items": []map[string]any{{"name": "Leche"}}}
	if got := typed.List("items"); len(got) != 1 {
		t.Errorf("[]map shape: got %#v", got)
	}
}
