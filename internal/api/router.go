package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Health check (no auth required)
		r.Get("/health", s.handleHealth)

		// Protected routes (pass-through when auth is disabled)
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			// Attribute names contain slashes (cpu/realtime_temperature),
			// so the item routes use a wildcard rather than a URL param.
			r.Get("/attributes", s.handleListAttributes)
			r.Get("/attributes/*", s.handleGetAttribute)
			r.Put("/attributes/*", s.handleSetAttribute)

			r.Get("/firmware", s.handleFirmware)
			r.Get("/telemetry", s.handleTelemetry)
			r.Get("/history", s.handleHistory)

			// Raw register access, mounted only in debug mode
			if s.debug != nil {
				r.Route("/debug", func(r chi.Router) {
					r.Get("/dump", s.handleDebugDump)
					r.Get("/register", s.handleDebugGet)
					r.Post("/register", s.handleDebugSet)
				})
			}

			// WebSocket telemetry and state stream
			r.Get("/ws", s.handleWebSocket)
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"profile": s.prof.Name,
	})
}
