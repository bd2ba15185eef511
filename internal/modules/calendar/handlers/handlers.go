// Package handlers provides HTTP handlers for trading-calendar lookups.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/api"
	"github.com/PersonNoName/NextPanel/internal/apperrors"
	"github.com/PersonNoName/NextPanel/internal/modules/calendar"
)

// Handler handles trading-calendar HTTP requests
type Handler struct {
	service *calendar.Service
	log     zerolog.Logger
}

// NewHandler creates a new calendar handler
func NewHandler(service *calendar.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "calendar").Logger(),
	}
}

// HandlePreviousTradingDays handles GET /api/trading-days/previous
func (h *Handler) HandlePreviousTradingDays(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	nStr := r.URL.Query().Get("n")
	if nStr == "" {
		api.Error(w, r, h.log, apperrors.BadRequest("missing required parameters: date and n"))
		return
	}
	n, err := strconv.Atoi(nStr)
	if err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("parameter n must be a positive integer"))
		return
	}

	response, err := h.service.PreviousTradingDays(date, n)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "trading days resolved")
}
