/*
errors.go - Centralized error types for the query engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Validation errors carry the user-visible (Spanish) message the screens
  display; they abort execution before any data is touched and are never
  panics.

ERROR CATEGORIES:
  1. Validation errors - Bad query input (no type, no constraint, bad dates)
  2. Unit errors       - Incompatible unit comparison (record excluded)
  3. Runner errors     - Reentrancy guard rejections

USAGE:
  Handlers classify with the helpers:

    if consulta.IsValidation(err) {
        respondError(w, http.StatusBadRequest, err.Error())
    }

SEE ALSO:
  - engine.go: Where validation runs
  - units.go: Where ErrIncompatibleUnits originates
*/
package consulta

import "errors"

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrIncompatibleUnits is returned when two quantities have no
	// conversion path. Callers treat the comparison as non-matching.
	ErrIncompatibleUnits = errors.New("incompatible units")

	// ErrQueryInFlight is returned when a query arrives while another is
	// running; the new request is dropped, not queued.
	ErrQueryInFlight = errors.New("query already in flight")
)

// =============================================================================
// VALIDATION ERRORS - User-visible, pre-data
// =============================================================================

// ValidationError carries the message shown to the user. Message text stays
// in Spanish because the screens render it verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoQueryType = &ValidationError{Message: "Debe seleccionar un tipo de consulta."}
	ErrNoFilters   = &ValidationError{Message: "Debe especificar al menos un filtro o una fecha de inicio y fin."}
	ErrDateOrder   = &ValidationError{Message: "La fecha de inicio no puede ser posterior a la fecha de fin."}
	ErrBadDate     = &ValidationError{Message: "La fecha ingresada no es válida."}
)

// IsValidation reports whether err is a user-input validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
