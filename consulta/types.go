/*
Package consulta provides the core ad-hoc query engine.

PURPOSE:
  This package contains category-agnostic types and algorithms for filtering
  in-memory record collections and aggregating the matches into a uniform
  result envelope. Whether the records are stock items, sales rows, or cash
  movements, the same engine handles predicate evaluation, granular date
  matching, unit conversion and projection.

KEY CONCEPTS IN THIS FILE (types.go):
  - Record: A loosely-typed record supplied by the data layer
  - QueryType: One of the six supported record categories
  - Row: A flat mapping produced for tabular rendering
  - QueryResult: The uniform {title, summary, data} envelope
  - Snapshot: The persisted "active query" of a user

DESIGN PRINCIPLES:
  1. Purity: query execution never mutates the source records
  2. Precision: uses decimal.Decimal for quantities and money
  3. Alias tolerance: records may spell the same logical field several
     historical ways; access goes through explicit alias lists
  4. Ordering: summary entries and data rows keep insertion order

USAGE:
  rows := collection.Records()
  res, err := runner.Run(ctx, consulta.TypeVentas, state)

SEE ALSO:
  - predicate.go: Operator vocabulary and evaluation
  - datespec.go: Granular date-range matching
  - units.go: Unit families and conversion
  - projection.go: Envelope construction
*/
package consulta

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// QUERY TYPES - The six record categories
// =============================================================================

type QueryType string

const (
	TypeStock       QueryType = "stock"
	TypeProveedores QueryType = "proveedores"
	TypeVentas      QueryType = "ventas"
	TypeCompras     QueryType = "compras"
	TypePedidos     QueryType = "pedidos"
	TypeCaja        QueryType = "movimientos_caja"
)

// KnownType reports whether t is one of the six supported categories.
func KnownType(t QueryType) bool {
	switch t {
	case TypeStock, TypeProveedores, TypeVentas, TypeCompras, TypePedidos, TypeCaja:
		return true
	}
	return false
}

// =============================================================================
// RECORD - Loosely-typed input owned by the data layer
// =============================================================================

// Record is one record of a collection as supplied by the data layer.
// The engine treats it as read-only for the duration of a query and never
// assumes a canonical field spelling; access goes through Get with an alias
// list (e.g. "productName", "product_name", "product").
type Record map[string]any

// Get returns the first non-nil value among the given field aliases.
func (r Record) Get(aliases ...string) (any, bool) {
	for _, a := range aliases {
		if v, ok := r[a]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Text returns the first alias value rendered as a string, or "".
func (r Record) Text(aliases ...string) string {
	v, ok := r.Get(aliases...)
	if !ok {
		return ""
	}
	return AsText(v)
}

// Number returns the first alias value parsed as a decimal.
// The second return is false when no alias holds a parseable number.
func (r Record) Number(aliases ...string) (decimal.Decimal, bool) {
	v, ok := r.Get(aliases...)
	if !ok {
		return decimal.Zero, false
	}
	return AsNumber(v)
}

// List returns the first alias value that is a list of records.
// Tolerates []Record, []map[string]any and []any of maps.
func (r Record) List(aliases ...string) []Record {
	v, ok := r.Get(aliases...)
	if !ok {
		return nil
	}
	switch items := v.(type) {
	case []Record:
		return items
	case []map[string]any:
		out := make([]Record, len(items))
		for i, m := range items {
			out[i] = Record(m)
		}
		return out
	case []any:
		var out []Record
		for _, it := range items {
			if m, ok := it.(map[string]any); ok {
				out = append(out, Record(m))
			}
		}
		return out
	}
	return nil
}

// =============================================================================
// RESULT ENVELOPE - Uniform output of every executor
// =============================================================================

// Row is one flat output row, suitable for tabular rendering. Column order
// for renderers comes from QueryResult.Columns, not from the map itself.
type Row map[string]any

// SummaryEntry is one ordered summary line. Scalar entries carry Value;
// grouped breakdowns (e.g. totals per status) carry Breakdown instead so
// renderers can special-case them rather than receiving a flattened blob.
type SummaryEntry struct {
	Key       string
	Value     any
	Breakdown map[string]string
}

// Summary is an ordered sequence of summary entries. It marshals to a JSON
// object preserving insertion order.
type Summary []SummaryEntry

func (s Summary) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for i, e := range s {
		if i > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		var v []byte
		if e.Breakdown != nil {
			v, err = json.Marshal(e.Breakdown)
		} else {
			v, err = json.Marshal(e.Value)
		}
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// UnmarshalJSON reads the summary object back preserving key order, so a
// persisted snapshot round-trips byte-for-byte.
func (s *Summary) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("summary: expected object, got %v", tok)
	}
	var out Summary
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		entry := SummaryEntry{Key: key}
		var breakdown map[string]string
		if json.Unmarshal(raw, &breakdown) == nil && len(raw) > 0 && raw[0] == '{' {
			entry.Breakdown = breakdown
		} else {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return err
			}
			entry.Value = v
		}
		out = append(out, entry)
	}
	*s = out
	return nil
}

// Get returns the value of the entry with the given key, for tests and
// renderers that address single entries.
func (s Summary) Get(key string) (any, bool) {
	for _, e := range s {
		if e.Key == key {
			if e.Breakdown != nil {
				return e.Breakdown, true
			}
			return e.Value, true
		}
	}
	return nil, false
}

// QueryResult is the normalized result envelope every executor produces.
type QueryResult struct {
	Type    QueryType `json:"query_type"`
	Title   string    `json:"title"`
	Summary Summary   `json:"summary"`
	Columns []string  `json:"columns"`
	Data    []Row     `json:"data"`
}

// =============================================================================
// ACTIVE QUERY SNAPSHOT - The only backend-durable entity
// =============================================================================

// Snapshot is the persisted record of a user's last-run query. At most one
// exists per query type; it is overwritten on each successful run and
// cleared explicitly.
type Snapshot struct {
	ID        string       `json:"id"`
	QueryType QueryType    `json:"query_type"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
	Results   *QueryResult `json:"results_data"`
}
