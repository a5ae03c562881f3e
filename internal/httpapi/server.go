// Package httpapi exposes the cost calculator and saved calculations over JSON HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/cupcost/internal/store"
)

// Store is the persistence the API depends on.
type Store interface {
	SaveCalculation(ctx context.Context, c store.NewCalculation) (store.Calculation, error)
	ListCalculations(ctx context.Context, query string) ([]store.Summary, error)
	GetCalculation(ctx context.Context, id string) (store.Calculation, error)
	DeleteCalculation(ctx context.Context, id string) error
	ListGSTPresets(ctx context.Context, activeOnly bool) ([]store.GSTPreset, error)
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	store    Store
	logger   *slog.Logger
	currency string
}

// New returns a Server. A nil logger falls back to slog.Default().
func New(st Store, logger *slog.Logger, currency string) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: st, logger: logger, currency: currency}
}

// Routes builds the router for every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Get("/gst-presets", s.handleListGSTPresets)

		r.Get("/calculations", s.handleListCalculations)
		r.Post("/calculations", s.handleCreateCalculation)
		r.Get("/calculations/{id}", s.handleGetCalculation)
		r.Get("/calculations/{id}/text", s.handleCalculationText)
		r.Delete("/calculations/{id}", s.handleDeleteCalculation)
	})

	return r
}

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(sr, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sr.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
