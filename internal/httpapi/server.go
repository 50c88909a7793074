// Package httpapi exposes hosted neonsums sessions over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/config"
	"github.com/vovakirdan/neonsums/internal/sessions"
	"github.com/vovakirdan/neonsums/internal/storage"
)

const (
	handlerTimeout  = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// Options configures a Server. Sessions, Advisor and Logger get defaults
// when nil; a nil Store disables score endpoints and score saving.
type Options struct {
	Sessions    *sessions.Manager
	Store       *storage.Store
	Advisor     advisor.Advisor
	Game        config.GameConfig // defaults for new sessions
	IdleTimeout time.Duration     // idle sessions are pruned after this; 0 keeps them
	Logger      *log.Logger
}

// Server bundles the router and its dependencies.
type Server struct {
	r        *chi.Mux
	sessions *sessions.Manager
	store    *storage.Store
	advisor  advisor.Advisor
	defaults config.GameConfig
	idle     time.Duration
	logger   *log.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		sessions: opts.Sessions,
		store:    opts.Store,
		advisor:  opts.Advisor,
		defaults: opts.Game,
		idle:     opts.IdleTimeout,
		logger:   opts.Logger,
	}
	if s.sessions == nil {
		s.sessions = sessions.NewManager()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.advisor == nil {
		s.advisor = advisor.NewFallback(nil, 0, s.logger)
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(s.requestLogger)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(handlerTimeout))
	s.r.Use(jsonContentType)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.sessions.Len()})
	})

	s.r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Delete("/", s.handleDelete)
			r.Post("/move", s.handleMove)
			r.Post("/undo", s.handleUndo)
			r.Post("/remove", s.handleRemove)
			r.Post("/swap", s.handleSwap)
			r.Post("/continue", s.handleContinue)
			r.Get("/hint", s.handleHint)
			r.Get("/commentary", s.handleCommentary)
		})
	})

	s.r.Get("/scores", s.handleAllStats)
	s.r.Get("/scores/{game}", s.handleScores)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if s.idle > 0 {
		go s.pruneLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP API", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down HTTP API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// pruneLoop drops idle sessions until ctx is done.
func (s *Server) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(max(s.idle/4, time.Second))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Prune(s.idle); n > 0 {
				s.logger.Info("pruned idle sessions", "count", n)
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
