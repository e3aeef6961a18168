// Package server exposes the calculators over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/olsonco/calckit/internal/calculators"
	"github.com/olsonco/calckit/internal/config"
	"go.uber.org/zap"
)

// maxBodyBytes caps POST bodies.
const maxBodyBytes = 1 << 20

const requestTimeout = 30 * time.Second

type handler struct {
	logger   *zap.Logger
	registry *calculators.Registry
	version  string
}

// NewHandler constructs the router serving /healthz and the /api/v1 routes.
// Handlers call the registry directly; it is read-only and needs no locking.
func NewHandler(logger *zap.Logger, registry *calculators.Registry, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if registry == nil {
		registry = calculators.Default()
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, registry: registry, version: trimmedVersion}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(requestTimeout))

	r.Get("/healthz", h.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/calculators", h.handleListCalculators)
		r.Route("/calculators/{slug}", func(r chi.Router) {
			r.Get("/", h.handleGetCalculator)
			r.Get("/run", h.handleRunQuery)
			r.Post("/run", h.handleRunJSON)
			r.Get("/share", h.handleShare)
		})
		r.Get("/compare", h.handleCompare)
		r.Get("/tax/years", h.handleTaxYears)
		r.Post("/tax/estimate", h.handleTaxEstimate)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", http.StatusText(http.StatusMethodNotAllowed), nil)
	})

	return r
}

// New wraps handler in an http.Server using the configured address and
// timeouts.
func New(cfg config.ServerConfig, handler http.Handler) *http.Server {
	readTimeout := cfg.ReadTimeout
	if readTimeout <= 0 {
		readTimeout = 10 * time.Second
	}
	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 30 * time.Second
	}
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       60 * time.Second,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
