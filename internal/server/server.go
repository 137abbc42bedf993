// Package server exposes the abclisten library over HTTP.
//
// Routes:
//
//	GET    /health
//	GET    /api/lists
//	GET    /api/lists/{name}
//	PUT    /api/lists/{name}
//	DELETE /api/lists/{name}
//	POST   /api/lists/{name}/words
//	GET    /api/lists/{name}/mindmap?format=svg&detailed=true
//	GET    /api/lists/{name}/export/{format}
//	GET    /api/kawas
//	GET    /api/kawas/{word}
//	PUT    /api/kawas/{word}
//	DELETE /api/kawas/{word}
//	GET    /api/kawas/{word}/mindmap
//	GET    /api/kawas/{word}/export/{format}
//	GET    /api/mindmap
//	POST   /api/mindmap/render?format=svg
//	GET    /api/settings
//	PUT    /api/settings
//	GET    /api/backup
//
// Errors are JSON objects {"error": CODE, "message": ..., "request_id": ...}
// with the HTTP status derived from the error code.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/abclisten/pkg/accessibility"
	"github.com/matzehuels/abclisten/pkg/library"
	"github.com/matzehuels/abclisten/pkg/pipeline"
)

// Config holds runtime options for the HTTP server.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server serves the REST API.
type Server struct {
	lib      *library.Library
	runner   *pipeline.Runner
	settings *accessibility.Manager
	logger   *log.Logger
	cfg      Config
	now      func() time.Time
}

// New creates a server. The runner must use the same library.
func New(cfg Config, runner *pipeline.Runner, settings *accessibility.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	return &Server{
		lib:      runner.Library,
		runner:   runner,
		settings: settings,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Handler returns the router with its middleware stack.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(requestID)
	router.Use(chimiddleware.RealIP)
	router.Use(s.recoverer)
	router.Use(s.logRequests)

	router.Get("/health", s.health)

	router.Route("/api", func(r chi.Router) {
		r.Route("/lists", func(r chi.Router) {
			r.Get("/", s.listLists)
			r.Get("/{name}", s.getList)
			r.Put("/{name}", s.putList)
			r.Delete("/{name}", s.deleteList)
			r.Post("/{name}/words", s.addWord)
			r.Get("/{name}/mindmap", s.listMindmap)
			r.Get("/{name}/export/{format}", s.exportList)
		})

		r.Route("/kawas", func(r chi.Router) {
			r.Get("/", s.listKawas)
			r.Get("/{word}", s.getKawa)
			r.Put("/{word}", s.putKawa)
			r.Delete("/{word}", s.deleteKawa)
			r.Get("/{word}/mindmap", s.kawaMindmap)
			r.Get("/{word}/export/{format}", s.exportKawa)
		})

		r.Get("/mindmap", s.combinedMindmap)
		r.Post("/mindmap/render", s.renderGraph)
		r.Get("/settings", s.getSettings)
		r.Put("/settings", s.putSettings)
		r.Get("/backup", s.backup)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "timeout", s.cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
