package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all return-rate routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/etf", func(r chi.Router) {
		r.Post("/etf-return-rate", h.HandleReturnRateByCodes)
		r.Post("/sector-return-rate", h.HandleReturnRateBySectors)
		r.Get("/available-sectors", h.HandleAvailableSectors)
		r.Get("/sector-return-history", h.HandleSectorHistory)
		r.Get("/sectors/batch", h.HandleBatchHistory)
	})
}
