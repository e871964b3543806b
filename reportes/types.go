/*
Package reportes implements the six per-category query executors.

PURPOSE:
  Each executor is configuration over the consulta engine: a field
  descriptor table (with the historical alias spellings of its record
  collection), the filterable fields with their operators, and the
  category's summary aggregation. The engine supplies predicate evaluation,
  granular date matching, unit conversion and projection; this package
  supplies what is specific to stock, proveedores, ventas, compras, pedidos
  and movimientos de caja.

NORMALIZATION VOCABULARIES:
  Order status:    Pendiente, En Preparación, Listo, Entregado, Cancelado
                   (free-text statuses are sniffed by substring; unrecognized
                   values are logged and kept verbatim)
  Movement type:   Entrada / Salida (prefix/substring sniffing)
  Purchase type:   Producto / Insumo / Mixto (derived from item categories)

SEE ALSO:
  - consulta/: The engine this package configures
  - factory/: JSON request to query conversion
*/
package reportes

import (
	"log"
	"strings"
)

// =============================================================================
// ORDER STATUS VOCABULARY
// =============================================================================

const (
	StatusPendiente   = "Pendiente"
	StatusPreparacion = "En Preparación"
	StatusListo       = "Listo"
	StatusEntregado   = "Entregado"
	StatusCancelado   = "Cancelado"
)

// OrderStatuses is the fixed vocabulary in display order.
var OrderStatuses = []string{StatusPendiente, StatusPreparacion, StatusListo, StatusEntregado, StatusCancelado}

// NormalizeOrderStatus maps free-text status values onto the fixed
// vocabulary by substring sniffing ("entregado al cliente" -> Entregado).
// Unrecognized values are logged and returned verbatim.
func NormalizeOrderStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return raw
	case strings.Contains(s, "cancel"):
		return StatusCancelado
	case strings.Contains(s, "entreg"):
		return StatusEntregado
	case strings.Contains(s, "listo"):
		return StatusListo
	case strings.Contains(s, "prepar"):
		return StatusPreparacion
	case strings.Contains(s, "pend"):
		return StatusPendiente
	}
	log.Printf("Warning: estado de pedido no reconocido: %q", raw)
	return raw
}

// =============================================================================
// CASH MOVEMENT TYPE VOCABULARY
// =============================================================================

const (
	MovEntrada = "Entrada"
	MovSalida  = "Salida"
)

// NormalizeMovementType maps raw movement types onto Entrada/Salida via the
// prefix/substring sniffing the cash screens used. Unrecognized values pass
// through.
func NormalizeMovementType(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return raw
	case strings.HasPrefix(s, "e"), strings.Contains(s, "entrada"), s == "in":
		return MovEntrada
	case strings.HasPrefix(s, "s"), strings.Contains(s, "salida"), s == "out":
		return MovSalida
	}
	return raw
}

// =============================================================================
// PURCHASE TYPE VOCABULARY
// =============================================================================

const (
	TipoProducto = "Producto"
	TipoInsumo   = "Insumo"
	TipoMixto    = "Mixto"
)

// InferPurchaseType derives a purchase's type from the distinct lowercase
// categories of its line items.
func InferPurchaseType(categories []string) string {
	distinct := map[string]bool{}
	for _, c := range categories {
		c = strings.ToLower(strings.TrimSpace(c))
		if c != "" {
			distinct[c] = true
		}
	}
	if len(distinct) == 0 {
		return TipoProducto
	}
	if len(distinct) > 1 {
		return TipoMixto
	}
	for c := range distinct {
		if strings.Contains(c, "insumo") {
			return TipoInsumo
		}
	}
	return TipoProducto
}

// =============================================================================
// STOCK STATUS VOCABULARY
// =============================================================================

const (
	StockBajo  = "Stock Bajo"
	StockMedio = "Stock Medio"
	StockAlto  = "Stock Alto"
)

// defaultLowStockThreshold applies when an item carries no threshold, the
// historical default of the console.
const defaultLowStockThreshold = 10

// joined renders a list of names as the comma-joined cell value.
func joined(values []string) string { return strings.Join(values, ", ") }
