// Package server provides the HTTP server and routing for NextPanel.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/PersonNoName/NextPanel/internal/config"
	"github.com/PersonNoName/NextPanel/internal/database"
	"github.com/PersonNoName/NextPanel/internal/modules/auth"
	authhandlers "github.com/PersonNoName/NextPanel/internal/modules/auth/handlers"
	"github.com/PersonNoName/NextPanel/internal/modules/calendar"
	calendarhandlers "github.com/PersonNoName/NextPanel/internal/modules/calendar/handlers"
	"github.com/PersonNoName/NextPanel/internal/modules/catalog"
	"github.com/PersonNoName/NextPanel/internal/modules/favorites"
	favoriteshandlers "github.com/PersonNoName/NextPanel/internal/modules/favorites/handlers"
	"github.com/PersonNoName/NextPanel/internal/modules/nav"
	"github.com/PersonNoName/NextPanel/internal/modules/returns"
	returnshandlers "github.com/PersonNoName/NextPanel/internal/modules/returns/handlers"
)

// Config holds server configuration
type Config struct {
	Log     zerolog.Logger
	DB      *database.DB
	Config  *config.Config
	Port    int
	DevMode bool
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *database.DB
	cfg    *config.Config
}

// New creates a new HTTP server with all modules wired.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		db:     cfg.DB,
		cfg:    cfg.Config,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes wires every module's repositories, services and handlers.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	conn := s.db.Conn()

	// Calendar module
	calendarRepo := calendar.NewRepository(conn, s.log)
	calendarService := calendar.NewService(calendarRepo, s.log)
	calendarHandler := calendarhandlers.NewHandler(calendarService, s.log)

	// Catalog repositories shared by the return-rate engine
	instrumentRepo := catalog.NewInstrumentRepository(conn, s.log)
	sectorRepo := catalog.NewSectorRepository(conn, s.log)
	navRepo := nav.NewRepository(conn, s.log)

	// Return-rate module
	returnsService := returns.NewService(calendarService, instrumentRepo, sectorRepo, navRepo, s.log)
	returnsHandler := returnshandlers.NewHandler(returnsService, s.log)

	// Auth module
	tokens := auth.NewTokenIssuer(s.cfg.JWTSecret, s.cfg.JWTTTL)
	authRepo := auth.NewRepository(conn, s.log)
	authService := auth.NewService(authRepo, tokens, s.cfg.BcryptCost, s.log)
	authHandler := authhandlers.NewHandler(authService, s.log)

	// Favorites module
	favoritesRepo := favorites.NewRepository(conn, s.log)
	favoritesService := favorites.NewService(favoritesRepo, s.log)
	favoritesHandler := favoriteshandlers.NewHandler(favoritesService, s.log)

	s.router.Route("/api", func(r chi.Router) {
		calendarHandler.RegisterRoutes(r)
		returnsHandler.RegisterRoutes(r)
		authHandler.RegisterRoutes(r, tokens, s.log)
		favoritesHandler.RegisterRoutes(r, tokens, s.log)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
