// Package api serves the geometry engine over HTTP.
//
// All endpoints take the request body as input and answer with JSON or with
// a converted document. Errors are JSON objects carrying the error code and
// a user-facing message:
//
//	{"code": "ELEMENT_NOT_FOUND", "message": "no element \"nav\""}
//
// Routes:
//
//	GET  /healthz
//	POST /v1/convert?from=toml&to=css
//	POST /v1/align?edge=left&ids=a,b
//	POST /v1/distribute?axis=x
//	POST /v1/sprite?x=10&y=20
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stylebox/pkg/cache"
	"github.com/matzehuels/stylebox/pkg/layout"
	"github.com/matzehuels/stylebox/pkg/sprite"
)

// DefaultMaxBodyBytes limits request bodies when no limit is configured.
const DefaultMaxBodyBytes = 32 << 20

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithScanner sets the scanner used for whole-sheet sprite scans.
func WithScanner(sc *sprite.Scanner) Option {
	return func(s *Server) { s.scanner = sc }
}

// WithLayoutOptions sets the options every request document is built with,
// such as the default reference context.
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(s *Server) { s.layoutOpts = opts }
}

// WithMaxBodyBytes limits request bodies. Zero keeps the default.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithTimeouts sets the read and write timeouts of [Server.ListenAndServe].
func WithTimeouts(read, write time.Duration) Option {
	return func(s *Server) {
		s.readTimeout = read
		s.writeTimeout = write
	}
}

// Server is the HTTP front end.
type Server struct {
	logger       *log.Logger
	scanner      *sprite.Scanner
	layoutOpts   []layout.Option
	maxBody      int64
	readTimeout  time.Duration
	writeTimeout time.Duration
	router       chi.Router
}

// New builds a server and its routes.
func New(opts ...Option) *Server {
	s := &Server{
		logger:  log.Default(),
		maxBody: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scanner == nil {
		s.scanner = sprite.NewScanner(cache.NewNullCache(), sprite.WithLogger(s.logger))
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.limitBody)
		r.Post("/convert", s.handleConvert)
		r.Post("/align", s.handleAlign)
		r.Post("/distribute", s.handleDistribute)
		r.Post("/sprite", s.handleSprite)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
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

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
