// Package handlers provides the HTTP handlers for account registration
// and login.
package handlers

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/api"
	"github.com/PersonNoName/NextPanel/internal/apperrors"
	"github.com/PersonNoName/NextPanel/internal/modules/auth"
)

var validate = validator.New()

// Handler handles authentication HTTP requests
type Handler struct {
	service *auth.Service
	log     zerolog.Logger
}

// NewHandler creates a new auth handler
func NewHandler(service *auth.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "auth").Logger(),
	}
}

// HandleRegister handles POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("username (3-32 chars), valid email and password (6+ chars) are required"))
		return
	}

	user, err := h.service.Register(&req)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, user, "registration successful")
}

// HandleLogin handles POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("invalid request body"))
		return
	}
	if err := validate.Struct(&req); err != nil {
		api.Error(w, r, h.log, apperrors.BadRequest("username and password are required"))
		return
	}

	response, err := h.service.Login(&req)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, response, "login successful")
}

// HandleMe handles GET /api/auth/me
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		api.Error(w, r, h.log, apperrors.Unauthorized("not authenticated"))
		return
	}

	user, err := h.service.CurrentUser(userID)
	if err != nil {
		api.Error(w, r, h.log, err)
		return
	}

	api.OK(w, r, user, "current user")
}

// HandleLogout handles GET /api/auth/logout. Tokens are stateless, so
// logout is a client-side discard; the endpoint exists for symmetry.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.OK(w, r, nil, "logout successful")
}
