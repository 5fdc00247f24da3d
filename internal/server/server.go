package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/metrics"
	"github.com/tartampluch/go-age/internal/render"
)

// cacheItem stores the rendered calendar and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// ContactLoader reads contacts from a source. *engine.Directory implements it.
type ContactLoader interface {
	Load(ctx context.Context, src engine.Source) ([]engine.Contact, error)
}

// Server exposes the age API and the birthday feed over HTTP.
type Server struct {
	// cache is read on every feed request and written only on sync.
	cache atomic.Pointer[cacheItem]

	settings config.Settings
	clock    engine.Clock
	catalog  *render.Catalog
	loader   ContactLoader
	registry *prometheus.Registry
	metrics  *metrics.Metrics
}

// Option customizes a Server.
type Option func(*Server)

// WithClock sets the clock used for the default reference date and the feed.
func WithClock(c engine.Clock) Option {
	return func(s *Server) { s.clock = c }
}

// WithCatalog sets the message catalogue used for facts, errors and event titles.
func WithCatalog(c *render.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithLoader sets how the sync worker reads contacts.
func WithLoader(l ContactLoader) Option {
	return func(s *Server) { s.loader = l }
}

// WithRegistry sets the registry the collectors are registered on and /metrics serves.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// New creates a server for settings. Unset options fall back to the real clock,
// the embedded catalogue, a Directory over HTTPFetcher and a private registry.
func New(settings config.Settings, opts ...Option) *Server {
	s := &Server{settings: settings}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = engine.RealClock{}
	}
	if s.catalog == nil {
		s.catalog = render.NewCatalog()
	}
	if s.loader == nil {
		s.loader = &engine.Directory{Clock: s.clock, Fetcher: engine.NewHTTPFetcher()}
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = metrics.New(s.registry)
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get(config.RouteAge, s.handleAge)
	r.Get(config.RouteHealth, s.handleHealth)
	r.HandleFunc(config.RouteCalendar, s.handleCalendarRequest)
	if s.settings.Metrics {
		r.Handle(config.RouteMetrics, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Run serves HTTP and, when a sync source is configured, refreshes the feed every
// interval. It blocks until ctx is cancelled or either task fails.
func (s *Server) Run(ctx context.Context) error {
	if err := config.ValidatePort(s.settings.Port); err != nil {
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.listen(gctx) })

	if s.settings.Sync.Mode != config.SourceModeNone {
		g.Go(func() error { return s.syncLoop(gctx) })
	} else {
		slog.Info(config.MsgWorkerOff, config.LogKeyComponent, config.CompWorker)
	}

	return g.Wait()
}

func (s *Server) listen(ctx context.Context) error {
	bind := s.settings.BindAddr
	if bind == "" {
		bind = config.LocalhostBindAddr
	}
	srv := &http.Server{
		Addr:         bind + config.AddrSeparator + s.settings.Port,
		Handler:      s.Handler(),
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)
	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.settings.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the served feed.
func (s *Server) Update(data []byte) {
	hash := sha256.Sum256(data)
	item := &cacheItem{
		data:         data,
		etag:         fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:])),
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	}
	s.cache.Store(item)

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, item.etag,
	)
}
