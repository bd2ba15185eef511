// Package handlers provides the HTTP handlers for sector bookmarks.
// Every route requires an authenticated user.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/api"
	"github.com/PersonNoName/NextPanel/internal/apperrors"
	"github.com/PersonNoName/NextPanel/internal/modules/auth"
	"github.com/PersonNoName/NextPanel/internal/modules/favorites"
)

var validate = validator.New()

// Handler handles bookmark HTTP requests
type Handler struct {
	service *favorites.Service
	log     zerolog.Logger
}

// NewHandler creates a new bookmark handler
func NewHandler(service *favorites.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "favorites").Logger(),
	}
}

// HandleList handles GET /api/etf-collect
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.Error(w, r, h.log, apperrors.Unauthorized("not authenticated"))
		return
	}

	response, err := h.service.List(userID)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "bookmarks listed")
}

// HandleAdd handles POST /api/etf-collect
func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.Error(w, r, h.log, apperrors.Unauthorized("not authenticated"))
		return
	}

	var req favorites.AddRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("cid is required and must be positive"))
		return
	}

	if err := h.service.Add(userID, req.CID); err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, nil, "bookmark added")
}

// HandleRemove handles DELETE /api/etf-collect/{cid}
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.Error(w, r, h.log, apperrors.Unauthorized("not authenticated"))
		return
	}

	cid, err := strconv.ParseInt(chi.URLParam(r, "cid"), 10, 64)
	if err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("cid must be an integer"))
		return
	}

	if err := h.service.Remove(userID, cid); err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, nil, "bookmark removed")
}
