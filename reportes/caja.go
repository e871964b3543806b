package reportes

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/almacen/consulta-engine/consulta"
)

// =============================================================================
// CASH MOVEMENTS EXECUTOR
// =============================================================================

var movementDateAliases = []string{"date", "timestamp", "created_at", "date_iso"}

// SortOrder is the user-chosen date ordering of the final set. Sorting is
// part of the contract for cash movements, not incidental.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// CajaQuery filters the cash-movement collection. Movement types are
// normalized to Entrada/Salida before matching; string amounts that don't
// parse count as zero, the tolerance the screens had.
type CajaQuery struct {
	ID            consulta.NumberFilter
	Amount        consulta.NumberFilter
	Description   consulta.TextFilter
	User          consulta.TextFilter
	Tipo          consulta.SetFilter
	PaymentMethod consulta.SetFilter
	Granular      consulta.GranularRange
	Dates         consulta.DateRange
	Sort          SortOrder
}

func (q CajaQuery) Type() consulta.QueryType  { return consulta.TypeCaja }
func (q CajaQuery) Range() consulta.DateRange { return q.Dates }

func (q CajaQuery) HasFilters() bool {
	return q.ID.Active() || q.Amount.Active() || q.Description.Active() ||
		q.User.Active() || q.Tipo.Active() || q.PaymentMethod.Active() ||
		q.Granular.Active()
}

func (q CajaQuery) Execute(ctx context.Context, provider consulta.DataProvider) (*consulta.QueryResult, error) {
	records, err := provider.Records(ctx, consulta.TypeCaja)
	if err != nil {
		return nil, err
	}

	q.ID.Exact = true
	var rows []consulta.Row
	income, expenses := decimal.Zero, decimal.Zero
	for _, m := range records {
		date, _ := m.Get(movementDateAliases...)
		tipo := NormalizeMovementType(m.Text("type", "tipo"))
		amount, ok := m.Number("amount", "monto")
		if !ok {
			amount = decimal.Zero
		}
		user := m.Text("user", "user_username", "user_name")
		if user == "" {
			user = "Sistema"
		}

		if !q.ID.Match(m["id"]) {
			continue
		}
		if !q.Dates.Match(date) || !q.Granular.Match(date) {
			continue
		}
		if !q.Amount.Match(amount) {
			continue
		}
		if !q.Description.Match(m.Text("description", "descripcion")) {
			continue
		}
		if !q.User.Match(user) {
			continue
		}
		if !q.Tipo.Match(tipo) {
			continue
		}
		if !q.PaymentMethod.Match(m.Text("payment_method", "paymentMethod")) {
			continue
		}

		switch tipo {
		case MovEntrada:
			income = income.Add(amount)
		case MovSalida:
			expenses = expenses.Add(amount)
		}
		rows = append(rows, consulta.Row{
			"id":             m["id"],
			"date":           date,
			"type":           tipo,
			"amount":         amount,
			"payment_method": m.Text("payment_method", "paymentMethod"),
			"description":    m.Text("description", "descripcion"),
			"user":           user,
		})
	}

	sortMovements(rows, q.Sort)

	summary := consulta.Summary{
		{Key: "totalMovements", Value: len(rows)},
		{Key: "totalIncome", Value: consulta.Money(income)},
		{Key: "totalExpenses", Value: consulta.Money(expenses)},
		{Key: "period", Value: q.Dates.Period()},
	}
	columns := []string{"id", "date", "type", "amount", "payment_method", "description", "user"}
	return consulta.Project(consulta.TypeCaja, "Reporte de Movimientos de Caja", summary, columns, rows), nil
}

// sortMovements orders rows by date. Default is descending, the screens'
// initial state; rows with unparseable dates sort last either way.
func sortMovements(rows []consulta.Row, order SortOrder) {
	asc := order == SortAsc
	sort.SliceStable(rows, func(i, j int) bool {
		di, okI := consulta.ParseAnyDate(rows[i]["date"])
		dj, okJ := consulta.ParseAnyDate(rows[j]["date"])
		if !okI || !okJ {
			return okI && !okJ
		}
		if asc {
			return di.Before(dj)
		}
		return dj.Before(di)
	})
}

// MovementDate exposes the parsed date of a projected row for callers that
// verify ordering.
func MovementDate(r consulta.Row) (time.Time, bool) {
	return consulta.ParseAnyDate(r["date"])
}
