// Package server is the local driver search service the TUI talks to by
// default. It answers /api/drivers/search from OpenF1 (or the embedded
// sample roster) and serves the sample tracks and races.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/f1nalyzer/internal/f1api"
	"github.com/five82/f1nalyzer/internal/filter"
	"github.com/five82/f1nalyzer/internal/sample"
)

// DriverSource supplies the roster searched by /api/drivers/search.
// *openf1.Client implements it.
type DriverSource interface {
	Drivers(ctx context.Context) ([]f1api.Driver, error)
}

// SampleDrivers serves the embedded roster.
type SampleDrivers struct{}

// Drivers returns the sample roster.
func (SampleDrivers) Drivers(context.Context) ([]f1api.Driver, error) {
	return sample.Drivers(), nil
}

const (
	errNameRequired = "Name parameter is required"
	shutdownTimeout = 5 * time.Second
	readTimeout     = 10 * time.Second
)

// Handler holds the route dependencies.
type Handler struct {
	drivers DriverSource
	logger  *zap.Logger
}

// NewRouter builds the /api routes with CORS open to every origin.
func NewRouter(drivers DriverSource, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{drivers: drivers, logger: logger}
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", h.handleHealth)
		api.Get("/drivers/search", h.handleDriverSearch)
		api.Get("/tracks", h.handleTracks)
		api.Get("/races", h.handleRaces)
	})

	return newCORS().Handler(r)
}

func newCORS() *cors.Cors {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedHeaders: []string{"*"},
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleDriverSearch answers an upstream failure with an empty list so the
// client shows "no drivers" rather than an error page.
func (h *Handler) handleDriverSearch(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, errNameRequired)
		return
	}

	all, err := h.drivers.Drivers(r.Context())
	if err != nil {
		h.logger.Warn("driver search upstream failed", zap.Error(err))
		writeJSON(w, http.StatusOK, f1api.DriversEnvelope{Drivers: []f1api.Driver{}})
		return
	}

	matches := filter.Drivers(all, name)
	if matches == nil {
		matches = []f1api.Driver{}
	}
	h.logger.Debug("driver search", zap.Int("candidates", len(all)), zap.Int("matches", len(matches)))
	writeJSON(w, http.StatusOK, f1api.DriversEnvelope{Drivers: matches})
}

func (h *Handler) handleTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f1api.TracksEnvelope{Tracks: sample.Tracks()})
}

func (h *Handler) handleRaces(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, f1api.RacesEnvelope{Races: sample.Races()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("serving", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}
