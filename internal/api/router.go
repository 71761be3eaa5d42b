package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"

	"github.com/judahn02/Professional-Development/internal/auth"
	"github.com/judahn02/Professional-Development/internal/sessions"
)

// NewRouter creates the Chi router with all routes and middleware.
func NewRouter(
	svc SessionService,
	dialer sessions.Dialer,
	verifier auth.Verifier,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware (runs on ALL routes including /health)
	r.Use(CORS)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))

	healthH := NewHealthHandler(dialer)
	sessionH := NewSessionHandler(svc)

	// Unauthenticated routes
	r.Get("/health", healthH.Health)

	// Every session route clears the nonce/capability gate first.
	r.Group(func(r chi.Router) {
		r.Use(NonceGate(verifier, auth.CapabilityManageSessions))

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", sessionH.List)
			r.Post("/", sessionH.Create)
			r.Get("/{id}", sessionH.Get)
			r.Patch("/{id}", sessionH.Update)
		})
	})

	return r
}
