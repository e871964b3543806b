/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Defines the JSON shapes exchanged with clients. Keeping them here, apart
  from the domain types, lets the wire format evolve without touching the
  engine.

CONVENTIONS:
  - Field names are camelCase on the wire, matching the console frontend
  - Query results are returned as the consulta.QueryResult envelope itself;
    it already has a stable JSON shape
  - Errors use ErrorResponse with a user-visible Spanish message

SEE ALSO:
  - handlers.go: Where these are produced and consumed
  - factory/query.go: The query request shape (RequestJSON)
*/
package api

import "github.com/almacen/consulta-engine/consulta"

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ActiveQueryDTO is the stored active query returned by the gateway.
type ActiveQueryDTO struct {
	ID        string                `json:"id"`
	QueryType string                `json:"queryType"`
	StartDate string                `json:"startDate,omitempty"`
	EndDate   string                `json:"endDate,omitempty"`
	Results   *consulta.QueryResult `json:"results"`
}

// ExportRequest asks for a downloadable artifact. When Results is omitted
// the stored active query for QueryType is exported instead.
type ExportRequest struct {
	QueryType string                `json:"query_type"`
	Format    string                `json:"format"`
	Results   *consulta.QueryResult `json:"data,omitempty"`
}

// ExportResponse reports where the artifact was written.
type ExportResponse struct {
	File   string `json:"file"`
	Format string `json:"format"`
}

// SeedRequest replaces or appends records in one category.
type SeedRequest struct {
	Records []map[string]any `json:"records"`
	Replace bool             `json:"replace,omitempty"`
}
