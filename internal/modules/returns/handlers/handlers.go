// Package handlers provides the HTTP handlers for return-rate queries.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/api"
	"github.com/PersonNoName/NextPanel/internal/apperrors"
	"github.com/PersonNoName/NextPanel/internal/modules/returns"
	"github.com/PersonNoName/NextPanel/internal/utils"
)

const (
	defaultHistoryCount = 3
	defaultBatchCount   = 15
)

var validate = validator.New()

// Handler handles return-rate HTTP requests
type Handler struct {
	service *returns.Service
	log     zerolog.Logger
}

// NewHandler creates a new return-rate handler
func NewHandler(service *returns.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "returns").Logger(),
	}
}

// HandleReturnRateByCodes handles POST /api/etf/etf-return-rate
func (h *Handler) HandleReturnRateByCodes(w http.ResponseWriter, r *http.Request) {
	var req returns.CodesRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("codes, startDate and endDate are required, dates as YYYY-MM-DD"))
		return
	}

	response, err := h.service.ByCodes(&req)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "return rates computed")
}

// HandleReturnRateBySectors handles POST /api/etf/sector-return-rate
func (h *Handler) HandleReturnRateBySectors(w http.ResponseWriter, r *http.Request) {
	var req returns.SectorsRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("startDate and endDate are required, dates as YYYY-MM-DD"))
		return
	}

	response, err := h.service.BySectors(&req)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "sector return rates computed")
}

// HandleAvailableSectors handles GET /api/etf/available-sectors
func (h *Handler) HandleAvailableSectors(w http.ResponseWriter, r *http.Request) {
	response, err := h.service.AvailableSectors()
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "available sectors listed")
}

// HandleSectorHistory handles GET /api/etf/sector-return-history
func (h *Handler) HandleSectorHistory(w http.ResponseWriter, r *http.Request) {
	sector := r.URL.Query().Get("sector")
	if sector == "" {
		api.Error(w, r, h.log, apperrors.BadRequest("missing required parameter: sector"))
		return
	}
	date, err := dateParam(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}
	n, err := countParam(r, defaultHistoryCount)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	response, err := h.service.SectorHistory(sector, date, n, boolParam(r, "includeDetails"))
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "sector return history computed")
}

// HandleBatchHistory handles GET /api/etf/sectors/batch
func (h *Handler) HandleBatchHistory(w http.ResponseWriter, r *http.Request) {
	sectors := utils.ParseCSV(r.URL.Query().Get("sectors"))
	if len(sectors) == 0 {
		api.Error(w, r, h.log, apperrors.BadRequest("missing required parameter: sectors"))
		return
	}

	date, err := dateParam(r)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}
	n, err := countParam(r, defaultBatchCount)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	response, err := h.service.BatchHistory(sectors, date, n,
		boolParam(r, "includeDetails"), boolParam(r, "includeTiming"))
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "batch return history computed")
}

// dateParam reads and validates the required date query parameter.
func dateParam(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if date == "" {
		return "", apperrors.BadRequest("missing required parameter: date")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", apperrors.BadRequest("invalid date format, expected YYYY-MM-DD: %s", date)
	}
	return date, nil
}

// countParam reads the optional n query parameter.
func countParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("n")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.BadRequest("parameter n must be a positive integer")
	}
	return n, nil
}

func boolParam(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}
