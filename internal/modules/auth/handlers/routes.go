package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/modules/auth"
)

// RegisterRoutes registers all authentication routes. The /me endpoint
// requires a valid token; the rest are public.
func (h *Handler) RegisterRoutes(r chi.Router, tokens *auth.TokenIssuer, log zerolog.Logger) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.HandleRegister)
		r.Post("/login", h.HandleLogin)
		r.Get("/logout", h.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens, log))
			r.Get("/me", h.HandleMe)
		})
	})
}
