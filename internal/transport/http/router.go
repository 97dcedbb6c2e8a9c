package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mergington/internal/platform/middleware"
	"mergington/pkg/platform/httputil"
)

// IndexPath is where GET / redirects to.
const IndexPath = "/static/index.html"

const (
	defaultRequestTimeout = 30 * time.Second
	// Every endpoint takes its input from the path and query string.
	maxBodyBytes = 64 * 1024
)

// RouteRegistrar mounts a group of routes on the router.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Config wires the router's dependencies.
type Config struct {
	Logger         *slog.Logger
	StaticDir      string
	RequestTimeout time.Duration
	// Latency observes per-route request latency when set.
	Latency middleware.LatencyObserver
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// Routes are mounted in order after the built-in routes.
	Routes []RouteRegistrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	if cfg.Latency != nil {
		r.Use(middleware.Metrics(cfg.Latency))
	}
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.Timeout(timeout))
	r.NotFound(httputil.NotFound)
	r.MethodNotAllowed(httputil.MethodNotAllowed)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, IndexPath, http.StatusTemporaryRedirect)
	})
	if cfg.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))
	}
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	for _, routes := range cfg.Routes {
		routes.Register(r)
	}
	return r
}
