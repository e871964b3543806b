/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the console frontend

ROUTE GROUPS:
  /api/consultas         Run ad-hoc queries
  /api/user-queries/*    Active-query gateway
  /api/export            Artifact export
  /api/records/*         Record collections (seed/list)
  /api/reset             Database reset (dev only)

SECURITY NOTE:
  No authentication middleware. The console runs on a trusted LAN; all
  endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/consultas", h.RunQuery)

		// Active-query gateway
		r.Route("/user-queries", func(r chi.Router) {
			r.Get("/active", h.GetActiveQuery)
			r.Post("/clear", h.ClearActiveQueries)
			r.Get("/{type}", h.GetActiveQueryByType)
		})

		r.Post("/export", h.Export)

		// Record collections
		r.Route("/records", func(r chi.Router) {
			r.Get("/{category}", h.ListRecords)
			r.Post("/{category}", h.SeedRecords)
		})

		r.Post("/reset", h.ResetDatabase)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
