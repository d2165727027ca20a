// Package server exposes the ad-hoc notification API and the
// observability endpoints.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"pushel/pkg/metrics"
	"pushel/pkg/notification"
)

// Server is the HTTP server for ad-hoc notifications.
type Server struct {
	httpServer *http.Server
	logger     zerolog.Logger
}

// New creates a server listening on addr. Ad-hoc notifications bypass the
// idle gate: a request always results in a dispatch attempt.
func New(addr string, notifier notification.Notifier, m *metrics.Metrics, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	log := logger.With().Str("component", "server").Logger()

	h := &notifyHandler{
		notifier: notifier,
		metrics:  m,
		logger:   log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/notify", h.notify)
	})
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called. A closed-server return is not an
// error.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("webserver started")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
