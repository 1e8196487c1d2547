package dev

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/fileroutes/internal/build"
	"github.com/vango-dev/fileroutes/internal/config"
	"github.com/vango-dev/fileroutes/internal/errors"
	"github.com/vango-dev/fileroutes/pkg/routemux"
	"github.com/vango-dev/fileroutes/pkg/routetree"
)

// ServerOptions configures the development server.
type ServerOptions struct {
	// Config is the project configuration.
	Config *config.Config

	// Builder lists and compiles the route files.
	Builder *build.Builder

	// Addr overrides the listen address from Config.
	Addr string

	// Watch overrides Config.Serve.Watch when non-nil.
	Watch *bool

	// Registry exposes /metrics when non-nil.
	Registry *prometheus.Registry

	// Pages binds route IDs to handlers. Routes without a page are served
	// by a placeholder describing the match.
	Pages routemux.Registry

	// Logger receives server logs. Default: slog.Default().
	Logger *slog.Logger

	// OnBuild is called after every build.
	OnBuild func(result *build.Result, err error)
}

// Server serves the compiled route tree and recompiles it on change.
type Server struct {
	config       *config.Config
	options      ServerOptions
	builder      *build.Builder
	watcher      *Watcher
	reloadServer *ReloadServer
	changeCh     chan []Change
	httpServer   *http.Server
	log          *slog.Logger

	mu      sync.Mutex
	running bool

	stateMu sync.RWMutex
	current *build.Result
	lastErr error
	app     http.Handler
}

// NewServer creates a new development server.
func NewServer(options ServerOptions) *Server {
	if options.Config == nil {
		options.Config = config.New()
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	cfg := options.Config
	watch := cfg.Serve.Watch
	if options.Watch != nil {
		watch = *options.Watch
	}

	var watcher *Watcher
	if watch {
		if paths := CollectWatchPaths(cfg); len(paths) > 0 {
			watcher = NewWatcher(WatcherConfig{
				Paths:    paths,
				Debounce: cfg.DebounceDuration(),
				Logger:   options.Logger,
			})
		} else {
			options.Logger.Warn("watch is only supported for directory sources", "source", cfg.Source.Type)
		}
	}

	return &Server{
		config:       cfg,
		options:      options,
		builder:      options.Builder,
		watcher:      watcher,
		reloadServer: NewReloadServer(options.Logger),
		log:          options.Logger,
	}
}

// Handler returns the HTTP handler of the server.
//
//	GET /__routes      the current manifest, or 422 with the build errors
//	GET /__routes/ws   WebSocket stream of tree and error messages
//	GET /metrics       Prometheus metrics, when a registry is configured
//	*                  the compiled routes
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/__routes", s.handleRoutes)
	r.Get("/__routes/ws", s.reloadServer.HandleWebSocket)
	if s.options.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.options.Registry, promhttp.HandlerOpts{}))
	}
	r.Handle("/*", http.HandlerFunc(s.serveApp))

	return r
}

// Rebuild lists and compiles the route files. On failure the previous tree
// keeps serving.
func (s *Server) Rebuild(ctx context.Context) error {
	result, err := s.builder.Build(ctx)
	if err == nil {
		var app http.Handler
		app, err = s.appHandler(result.Tree)
		if err == nil {
			s.stateMu.Lock()
			s.current = result
			s.lastErr = nil
			s.app = app
			s.stateMu.Unlock()

			s.log.Info("routes compiled", "routes", len(result.Routes), "duration", result.Duration.Round(time.Microsecond))
			s.reloadServer.NotifyTree(result)
		}
	}

	if err != nil {
		s.stateMu.Lock()
		s.lastErr = err
		s.stateMu.Unlock()

		for _, e := range errors.Expand(err, "S001") {
			s.log.Error("route build failed", "code", e.Code, "error", e.FormatCompact())
		}
		s.reloadServer.NotifyError(err)
	}

	if s.options.OnBuild != nil {
		s.options.OnBuild(result, err)
	}
	return err
}

// Current returns the last successful build and the error of the latest
// build, if it failed.
func (s *Server) Current() (*build.Result, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current, s.lastErr
}

// Start builds the routes and serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	addr := s.options.Addr
	if addr == "" {
		addr = s.config.ServeAddress()
	}
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.running = true
	s.httpServer = httpServer
	s.mu.Unlock()

	// A failed initial build still serves the error endpoints.
	_ = s.Rebuild(ctx)

	if s.watcher != nil {
		s.changeCh = make(chan []Change, 16)
		s.watcher.OnChange(func(changes []Change) {
			select {
			case s.changeCh <- changes:
			default:
			}
		})
		go func() {
			if err := s.watcher.Start(ctx); err != nil && err != context.Canceled {
				s.log.Error("file watcher stopped", "error", err)
			}
		}()
		go s.processChanges(ctx)
	}

	s.log.Info("server running", "addr", "http://"+addr, "watch", s.watcher != nil)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return errors.New("S001").Wrap(err)
		}
		return nil
	}
}

// Stop stops the development server.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.running = false
	if s.watcher != nil {
		s.watcher.Stop()
	}
	s.reloadServer.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}

// processChanges serializes rebuilds and coalesces bursts.
func (s *Server) processChanges(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case changes := <-s.changeCh:
			draining := true
			for draining {
				select {
				case next := <-s.changeCh:
					changes = append(changes, next...)
				default:
					draining = false
				}
			}
			s.handleChanges(ctx, changes)
		}
	}
}

func (s *Server) handleChanges(ctx context.Context, changes []Change) {
	if len(changes) == 0 {
		return
	}
	for _, change := range changes {
		s.log.Debug("route file changed", "path", change.Path, "op", change.Type)
	}
	s.Rebuild(ctx)
}

// appHandler mounts tree on a fresh router.
func (s *Server) appHandler(tree *routetree.Node) (http.Handler, error) {
	reg := s.options.Pages
	if reg.Fallback == nil {
		reg.Fallback = placeholder
	}

	reserved := s.reservedPaths()
	for _, route := range routetree.Flatten(tree) {
		if reserved[route.Pattern] {
			s.log.Warn("route is shadowed by a server endpoint", "pattern", route.Pattern, "file", route.File)
		}
	}

	r := chi.NewRouter()
	if err := routemux.Mount(r, tree, reg); err != nil {
		return nil, errors.New("S001").WithDetail(err.Error()).Wrap(err)
	}
	return r, nil
}

// reservedPaths are the patterns Handler serves itself.
func (s *Server) reservedPaths() map[string]bool {
	paths := map[string]bool{"/__routes": true, "/__routes/ws": true}
	if s.options.Registry != nil {
		paths["/metrics"] = true
	}
	return paths
}

func (s *Server) serveApp(w http.ResponseWriter, r *http.Request) {
	s.stateMu.RLock()
	app := s.app
	s.stateMu.RUnlock()

	if app == nil {
		http.Error(w, "route tree has not compiled; see /__routes", http.StatusServiceUnavailable)
		return
	}
	// The app router matches from scratch rather than below "/*".
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, nil)
	app.ServeHTTP(w, r.WithContext(ctx))
}

type routesResponse struct {
	build.Manifest
	Errors []*errors.Error `json:"errors,omitempty"`
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	current, lastErr := s.Current()

	var resp routesResponse
	if current != nil {
		resp.Manifest = current.Manifest()
	}
	status := http.StatusOK
	if lastErr != nil {
		resp.Errors = errors.Expand(lastErr, "S001")
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		s.log.Warn("failed to write route manifest", "error", err)
	}
}

// placeholder serves a plain-text description of the matched route.
func placeholder(route routetree.Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var b strings.Builder
		fmt.Fprintf(&b, "route  %s\n", route.Pattern)
		fmt.Fprintf(&b, "file   %s\n", route.File)
		if len(route.Layouts) > 0 {
			fmt.Fprintf(&b, "layout %s\n", strings.Join(route.Layouts, " > "))
		}

		params := append([]string(nil), route.Params...)
		sort.Strings(params)
		for _, name := range params {
			value, err := routemux.Param(r, name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			fmt.Fprintf(&b, "param  %s=%s\n", name, value)
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(b.String()))
	})
}
