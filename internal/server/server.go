package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Alias1177/kalilfin/models"
)

// Dashboard is the portfolio core the HTTP layer drives
type Dashboard interface {
	AddTicker(ctx context.Context, raw string) (*models.TickerRecord, error)
	RemoveTicker(ticker string)
	Record(ticker string) (models.TickerRecord, bool)
	View(ctx context.Context, errMsg string) *models.PortfolioView
	Export() (string, []byte, error)
}

// Config holds server configuration
type Config struct {
	Port           int
	Log            zerolog.Logger
	Dashboard      Dashboard
	RequestTimeout time.Duration
}

// Server represents the HTTP server
type Server struct {
	router    *chi.Mux
	server    *http.Server
	log       zerolog.Logger
	dashboard Dashboard
	port      int
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		dashboard: cfg.Dashboard,
		port:      cfg.Port,
	}

	// the page view fans out to market, forecast and news calls
	timeout := 2*cfg.RequestTimeout + 5*time.Second
	if cfg.RequestTimeout <= 0 {
		timeout = 60 * time.Second
	}

	s.setupMiddleware(timeout)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware(timeout time.Duration) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(timeout))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Get("/", s.handleHome)
	s.router.Post("/", s.handleAdd)
	s.router.Get("/remove/{ticker}", s.handleRemove)
	s.router.Get("/export", s.handleExport)
	s.router.Get("/chart/{file}", s.handleChart)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/portfolio", s.handlePortfolio)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
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
