// Package api exposes the poster pipeline over HTTP: a generate
// endpoint streaming the rendered image, a theme listing, and a health
// probe. Single process, no auth; each render runs on its request
// goroutine.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/citymaps/cityposter/pkg/buildinfo"
	"github.com/citymaps/cityposter/pkg/geocode"
	"github.com/citymaps/cityposter/pkg/poster"
	"github.com/citymaps/cityposter/pkg/theme"
)

// Server wires the HTTP surface to the generator.
type Server struct {
	generator *poster.Generator
	themes    *theme.Store
	geocoder  *geocode.Geocoder
	logger    *log.Logger
	router    chi.Router
}

// NewServer creates the API server. The geocoder is optional; without
// it, requests must carry explicit coordinates.
func NewServer(gen *poster.Generator, themes *theme.Store, geocoder *geocode.Geocoder, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{generator: gen, themes: themes, geocoder: geocoder, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Minute))

	r.Post("/api/generate", s.handleGenerate)
	r.Get("/api/themes", s.handleThemes)
	r.Get("/api/health", s.handleHealth)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe runs the server until ctx is canceled or the listener
// fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Infof("API listening on %s", addr)
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}
