package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/PersonNoName/NextPanel/internal/api"
)

// handleHealth reports service and database health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{
		"status":   "ok",
		"database": "ok",
	}

	if err := s.db.HealthCheck(r.Context()); err != nil {
		s.log.Error().Err(err).Msg("Database health check failed")
		status["status"] = "degraded"
		status["database"] = "unavailable"
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, api.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "service degraded",
			Data:    status,
		})
		return
	}

	api.OK(w, r, status, "healthy")
}
