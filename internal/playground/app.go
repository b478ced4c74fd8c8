package playground

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// App is the live playground: it renders catalog pages and drives their
// forms and tables from browser events.
type App struct {
	cfg      Config
	log      *slog.Logger
	catalog  *CatalogSource
	sessions *SessionStore
	metrics  *Metrics
	pages    fs.FS
}

// New loads the catalog and pages named by cfg.
func New(cfg Config, log *slog.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	metrics := NewMetrics()

	catalog, err := NewCatalogSource(cfg.CatalogPath, log, metrics.CatalogReloaded)
	if err != nil {
		return nil, err
	}
	pages, err := Pages(cfg.PagesDir)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:      cfg,
		log:      log.With(logger.Component("playground")),
		catalog:  catalog,
		sessions: NewSessionStore(cfg.SessionTTL, WithSizeHook(metrics.SessionCount)),
		metrics:  metrics,
		pages:    pages,
	}, nil
}

// Catalog returns the catalog source.
func (a *App) Catalog() *CatalogSource { return a.catalog }

// Sessions returns the session store.
func (a *App) Sessions() *SessionStore { return a.sessions }

// Router builds the HTTP routes.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware())
	r.Use(middleware.Recoverer)
	r.Use(a.requestLogger)

	r.Get("/", a.handle(a.index))
	r.Get("/pages/{name}", a.handle(a.page))
	r.Post("/sessions/{id}/events", a.handle(a.event))
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())
	r.Get("/livez", httpserver.HealthCheckHandler(a.log))
	r.Get("/healthz", httpserver.HealthCheckHandler(a.log, a.ready))
	return r
}

// Run serves the playground until ctx is done. The session sweeper and,
// when enabled, the catalog watcher run alongside the server.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.sessions.Run(ctx)
		return nil
	})
	if a.cfg.WatchCatalog && a.catalog.Path() != "" {
		g.Go(func() error { return a.catalog.Watch(ctx) })
	}
	g.Go(func() error {
		srv := httpserver.NewFromConfig(a.cfg.HTTP, httpserver.WithLogger(a.log))
		return srv.Run(ctx, a.Router())
	})

	return g.Wait()
}

func (a *App) ready(context.Context) error {
	if a.catalog.Catalog() == nil {
		return ErrNoCatalog
	}
	return nil
}

// requestLogger logs one line per request with the request id from context.
func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		a.log.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()))
	})
}

// handle adapts a Response-returning handler. Errors map to status codes by
// sentinel; client errors log at warn, the rest at error.
func (a *App) handle(h func(r *http.Request) (Response, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := h(r)
		if err == nil {
			err = resp.Render(w, r)
			if err == nil {
				return
			}
		}

		status := statusOf(err)
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		a.log.Log(r.Context(), level, "request failed",
			slog.String("path", r.URL.Path),
			slog.Int("status", status),
			logger.Error(err))
		http.Error(w, http.StatusText(status), status)
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrPageNotFound),
		errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrUnknownTarget):
		return http.StatusNotFound
	case errors.Is(err, ErrUnsupportedEvent),
		errors.Is(err, errBadForm):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
