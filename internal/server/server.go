// internal/server/server.go
package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"housing-workers/internal/common/config"
	"housing-workers/internal/common/logger"
	"housing-workers/internal/valuation"
)

// Check reports whether a dependency is usable. A nil error means ready.
type Check func(ctx context.Context) error

type Option func(*Server)

func WithReadinessCheck(name string, check Check) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

func WithServiceName(name string) Option {
	return func(s *Server) {
		s.serviceName = name
	}
}

// Server is the HTTP surface: the estimate form, the JSON API and the operational
// endpoints.
type Server struct {
	service         *valuation.Service
	logger          logger.Logger
	checks          map[string]Check
	serviceName     string
	shutdownTimeout time.Duration
	httpServer      *http.Server
}

func New(cfg config.ServerConfig, service *valuation.Service, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		service:         service,
		logger:          log.WithFields(map[string]interface{}{"component": "http"}),
		checks:          make(map[string]Check),
		serviceName:     "housing-workers",
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
	}
	for _, o := range opts {
		o(s)
	}
	if s.shutdownTimeout == 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Router(),
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(requestID)
	router.Use(s.requestLogger)

	router.Get("/health", s.health)
	router.Get("/ready", s.ready)
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/estimate", s.estimateForm)
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/estimate", s.estimateJSON)
		r.Get("/classify", s.classify)
		r.Get("/strategies", s.strategies)
	})
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"address": s.httpServer.Addr})
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.httpServer.SetKeepAlivesEnabled(false)
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info("http server stopped", nil)
		return nil
	}
}
