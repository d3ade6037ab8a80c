// Package httpserver wires the live catalog server: routing, middleware and lifecycle.
package httpserver

import (
	"context"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"git.home.luguber.info/inful/mirview/internal/foundation/errors"
	"git.home.luguber.info/inful/mirview/internal/logfields"
	"git.home.luguber.info/inful/mirview/internal/metrics"
	"git.home.luguber.info/inful/mirview/internal/render"
	"git.home.luguber.info/inful/mirview/internal/server/handlers"
	smw "git.home.luguber.info/inful/mirview/internal/server/middleware"
)

// Options configures a Server.
type Options struct {
	// Addr is the listen address, for example ":3000".
	Addr     string
	DataDir  string
	Pipeline *render.Pipeline
	// Assets is served at the site root; nil disables static files.
	Assets fs.FS
	// Metrics records per-request observations.
	Metrics metrics.Recorder
	// MetricsHandler is mounted at /metrics when non-nil.
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// Server is the live publisher. Every page request rescans the data directory.
type Server struct {
	opts         Options
	router       *chi.Mux
	errorAdapter *errors.HTTPErrorAdapter

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	done     chan struct{}
}

// New constructs the router for opts.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NoopRecorder{}
	}
	s := &Server{
		opts:         opts,
		router:       chi.NewRouter(),
		errorAdapter: errors.NewHTTPErrorAdapter(opts.Logger),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(chimw.RequestID)
	s.router.Use(chimw.RealIP)
	s.router.Use(smw.Chain(s.opts.Logger, s.errorAdapter, s.opts.Metrics))

	names := 0
	if s.opts.Pipeline != nil && s.opts.Pipeline.Names != nil {
		names = s.opts.Pipeline.Names.Len()
	}
	monitoring := handlers.NewMonitoringHandlers(s.opts.DataDir, names)
	pages := handlers.NewPageHandlers(s.opts.Pipeline, s.errorAdapter)

	s.router.Get("/health", monitoring.HandleHealthCheck)
	if s.opts.MetricsHandler != nil {
		s.router.Handle("/metrics", s.opts.MetricsHandler)
	}
	s.router.Get("/", pages.HandleIndex)
	s.router.Get("/page/{number}", pages.HandlePage)
	if s.opts.Assets != nil {
		s.router.Handle("/*", http.FileServerFS(s.opts.Assets))
	}
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listen address and serves in the background. Bind errors
// are returned immediately.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return errors.NewError(errors.CategoryRuntime, "server already started").Build()
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.opts.Addr)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "failed to bind HTTP listener").
			Fatal().
			WithContext("addr", s.opts.Addr).
			Build()
	}

	s.listener = ln
	s.done = make(chan struct{})
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	go func(srv *http.Server, done chan struct{}) {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			s.opts.Logger.Error("HTTP server stopped", logfields.Error(err))
		}
	}(s.server, s.done)

	s.opts.Logger.Info("Serving artifact catalog",
		slog.String("addr", ln.Addr().String()),
		logfields.Dir(s.opts.DataDir))
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts the server down, waiting for in-flight requests
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.server, s.done
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "HTTP server shutdown").Build()
	}
	<-done
	s.opts.Logger.Info("HTTP server stopped")
	return nil
}
