package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Checker reports whether a dependency is reachable.
type Checker interface {
	CheckProducts(ctx context.Context) error
}

// Server is the admin HTTP surface: liveness, readiness and metrics.
type Server struct {
	shop     Checker
	gatherer prometheus.Gatherer
	log      *zerolog.Logger
	srv      *http.Server
}

// NewServer wires the admin routes. A nil gatherer means the default registry.
func NewServer(shop Checker, gatherer prometheus.Gatherer, logger *zerolog.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Server{shop: shop, gatherer: gatherer, log: orNop(logger)}
}

// Router builds the chi router; exposed for tests.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(TraceID(), Recover(s.log), RequestLog(s.log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.With(Timeout(5*time.Second)).Get("/ready", s.handleReady)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	return r
}

// handleReady checks the shop API the same way /test_api does.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.shop == nil {
		http.Error(w, "shop api not configured", http.StatusServiceUnavailable)
		return
	}
	if err := s.shop.CheckProducts(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("shop api: %v", err), http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("READY"))
}

// Start listens on port until Shutdown.
func (s *Server) Start(port int) error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", s.srv.Addr).Msg("admin server listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
