/*
handlers.go - HTTP API handlers for the reporting console backend

PURPOSE:
  Exposes the query engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine and the store.

ENDPOINTS:
  Queries:
    POST   /api/consultas                Run an ad-hoc query
    GET    /api/user-queries/active      Latest stored active query
    GET    /api/user-queries/{type}      Stored active query for one category
    POST   /api/user-queries/clear       Drop all stored active queries

  Export:
    POST   /api/export                   Write a JSON/CSV artifact

  Records:
    GET    /api/records/{category}       List a record collection
    POST   /api/records/{category}       Seed records (append or replace)

  Admin:
    POST   /api/reset                    Database reset (dev only)

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access
  - Factory: JSON to query conversion
  - Runner: Validation, reentrancy guard, snapshot persistence
  - Cached record collections for repeated runs

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input (Spanish user-visible message)
  - 404: No stored active query, unknown category
  - 409: A query is already in flight
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - consulta/engine.go: The execution flow behind RunQuery
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/almacen/consulta-engine/consulta"
	"github.com/almacen/consulta-engine/export"
	"github.com/almacen/consulta-engine/factory"
	"github.com/almacen/consulta-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.QueryFactory
	Runner  *consulta.Runner

	// Where export artifacts are written.
	ExportDir string

	collections *collectionCache
}

// NewHandler creates a new handler backed by the given store.
func NewHandler(store *sqlite.Store, exportDir string) *Handler {
	cache := &collectionCache{
		store:  store,
		loaded: make(map[consulta.QueryType][]consulta.Record),
	}
	return &Handler{
		Store:       store,
		Factory:     factory.NewQueryFactory(),
		Runner:      consulta.NewRunner(cache, store),
		ExportDir:   exportDir,
		collections: cache,
	}
}

// =============================================================================
// COLLECTION CACHE
// =============================================================================

// collectionCache serves record collections to the engine. A category whose
// cached collection is empty gets one reload from the store per request; the
// engine itself never re-asks.
type collectionCache struct {
	store  *sqlite.Store
	mu     sync.RWMutex
	loaded map[consulta.QueryType][]consulta.Record
}

func (c *collectionCache) Records(ctx context.Context, t consulta.QueryType) ([]consulta.Record, error) {
	c.mu.RLock()
	records, ok := c.loaded[t]
	c.mu.RUnlock()
	if ok && len(records) > 0 {
		return records, nil
	}

	records, err := c.store.ListRecords(ctx, t)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.loaded[t] = records
	c.mu.Unlock()
	return records, nil
}

// Invalidate drops the cached collection for a category after a seed.
func (c *collectionCache) Invalidate(t consulta.QueryType) {
	c.mu.Lock()
	delete(c.loaded, t)
	c.mu.Unlock()
}

// =============================================================================
// QUERY HANDLERS
// =============================================================================

// RunQuery parses a query request, executes it and returns the result
// envelope. The active query is upserted as a side effect of a successful
// run.
func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	var req factory.RequestJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida", err)
		return
	}

	q, err := h.Factory.Build(req)
	if err != nil {
		if consulta.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error(), nil)
		} else {
			writeError(w, http.StatusBadRequest, "Solicitud inválida", err)
		}
		return
	}

	result, err := h.Runner.Run(r.Context(), q)
	if err != nil {
		switch {
		case consulta.IsValidation(err):
			writeError(w, http.StatusBadRequest, err.Error(), nil)
		case errors.Is(err, consulta.ErrQueryInFlight):
			writeError(w, http.StatusConflict, "Ya hay una consulta en ejecución.", nil)
		default:
			writeError(w, http.StatusInternalServerError, "No se pudo ejecutar la consulta", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetActiveQuery returns the most recently stored active query. Absence is
// a 404, not an engine error.
func (h *Handler) GetActiveQuery(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.GetActiveSnapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo leer la consulta activa", err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "No hay una consulta activa", nil)
		return
	}
	writeJSON(w, http.StatusOK, snapshotDTO(snap))
}

// GetActiveQueryByType returns the stored active query for one category.
func (h *Handler) GetActiveQueryByType(w http.ResponseWriter, r *http.Request) {
	t := consulta.QueryType(chi.URLParam(r, "type"))
	if !consulta.KnownType(t) {
		writeError(w, http.StatusNotFound, "Tipo de consulta desconocido", nil)
		return
	}

	snap, err := h.Store.GetSnapshotByType(r.Context(), t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo leer la consulta activa", err)
		return
	}
	if snap == nil {
		writeError(w, http.StatusNotFound, "No hay una consulta activa", nil)
		return
	}
	writeJSON(w, http.StatusOK, snapshotDTO(snap))
}

// ClearActiveQueries drops all stored active queries.
func (h *Handler) ClearActiveQueries(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearSnapshots(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudieron limpiar las consultas activas", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cleared": true})
}

func snapshotDTO(snap *consulta.Snapshot) ActiveQueryDTO {
	return ActiveQueryDTO{
		ID:        snap.ID,
		QueryType: string(snap.QueryType),
		StartDate: snap.StartDate,
		EndDate:   snap.EndDate,
		Results:   snap.Results,
	}
}

// =============================================================================
// EXPORT HANDLER
// =============================================================================

// Export encodes a result as a downloadable artifact and writes it to the
// export directory. A failed export reports a message and leaves whatever
// the client is displaying untouched.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida", err)
		return
	}

	enc, err := export.For(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	result := req.Results
	if result == nil {
		// No inline data: fall back to the stored active query.
		t := consulta.QueryType(req.QueryType)
		if !consulta.KnownType(t) {
			writeError(w, http.StatusBadRequest, "Debe indicar el tipo de consulta a exportar.", nil)
			return
		}
		snap, err := h.Store.GetSnapshotByType(r.Context(), t)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "No se pudo leer la consulta activa", err)
			return
		}
		if snap == nil || snap.Results == nil {
			writeError(w, http.StatusNotFound, "No hay resultados para exportar", nil)
			return
		}
		result = snap.Results
	}

	path, err := export.Writer{Dir: h.ExportDir}.Write(result, enc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo generar el archivo de exportación", err)
		return
	}

	writeJSON(w, http.StatusOK, ExportResponse{File: path, Format: enc.Ext()})
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// ListRecords returns one record collection.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	t := consulta.QueryType(chi.URLParam(r, "category"))
	if !consulta.KnownType(t) {
		writeError(w, http.StatusNotFound, "Categoría desconocida", nil)
		return
	}

	records, err := h.Store.ListRecords(r.Context(), t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudieron listar los registros", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records, "count": len(records)})
}

// SeedRecords appends or replaces records in one category and invalidates
// the cached collection.
func (h *Handler) SeedRecords(w http.ResponseWriter, r *http.Request) {
	t := consulta.QueryType(chi.URLParam(r, "category"))
	if !consulta.KnownType(t) {
		writeError(w, http.StatusNotFound, "Categoría desconocida", nil)
		return
	}

	var req SeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Solicitud inválida", err)
		return
	}
	if len(req.Records) == 0 {
		writeError(w, http.StatusBadRequest, "No se recibieron registros", nil)
		return
	}

	if req.Replace {
		if err := h.Store.ReplaceRecords(r.Context(), t, req.Records); err != nil {
			writeError(w, http.StatusInternalServerError, "No se pudieron guardar los registros", err)
			return
		}
	} else {
		for _, doc := range req.Records {
			if _, err := h.Store.SaveRecord(r.Context(), t, doc); err != nil {
				writeError(w, http.StatusInternalServerError, "No se pudieron guardar los registros", err)
				return
			}
		}
	}

	h.collections.Invalidate(t)
	writeJSON(w, http.StatusCreated, map[string]any{"seeded": len(req.Records), "category": t})
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// ResetDatabase wipes all records and snapshots. Dev only.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "No se pudo reiniciar la base de datos", err)
		return
	}
	for _, t := range []consulta.QueryType{
		consulta.TypeStock, consulta.TypeProveedores, consulta.TypeVentas,
		consulta.TypeCompras, consulta.TypePedidos, consulta.TypeCaja,
	} {
		h.collections.Invalidate(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"reset": true})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
