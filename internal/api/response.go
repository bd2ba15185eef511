// Package api defines the response envelope shared by all HTTP handlers.
package api

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/apperrors"
)

// Response is the envelope every endpoint returns: a status code mirroring the
// HTTP status, a human-readable message, and the payload (omitted on errors).
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK writes a 200 envelope with the given payload and message
func OK(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, Response{
		Code:    http.StatusOK,
		Message: message,
		Data:    data,
	})
}

// Error writes an error envelope. Typed service errors keep their status and
// message; anything else becomes an opaque 500.
func Error(w http.ResponseWriter, r *http.Request, log zerolog.Logger, err error) {
	if apiErr, ok := apperrors.AsAPIError(err); ok {
		render.Status(r, apiErr.StatusCode)
		render.JSON(w, r, Response{
			Code:    apiErr.StatusCode,
			Message: apiErr.Message,
		})
		return
	}

	log.Error().Err(err).Msg("Unhandled error")
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, Response{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	})
}
