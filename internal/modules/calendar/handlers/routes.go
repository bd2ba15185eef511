package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all trading-calendar routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/trading-days", func(r chi.Router) {
		r.Get("/previous", h.HandlePreviousTradingDays)
	})
}
