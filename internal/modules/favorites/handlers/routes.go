package handlers

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/modules/auth"
)

// RegisterRoutes registers all bookmark routes behind authentication.
func (h *Handler) RegisterRoutes(r chi.Router, tokens *auth.TokenIssuer, log zerolog.Logger) {
	r.Route("/etf-collect", func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens, log))
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleAdd)
		r.Delete("/{cid}", h.HandleRemove)
	})
}
