package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"StockBoard/internal/collector"
	"StockBoard/internal/metrics"
	"StockBoard/internal/stream"
	"StockBoard/internal/watchlist"
)

// Options configures the HTTP server.
type Options struct {
	Addr            string
	StaticDir       string
	StaticPatterns  []string
	RateLimit       float64
	RateBurst       int
	ShutdownTimeout time.Duration
}

// Deps are the components the handlers serve from.
type Deps struct {
	Collector *collector.Collector
	Lists     *watchlist.Manager
	Hub       *stream.Hub
	Metrics   *metrics.Metrics
}

// Server is the dashboard HTTP server: JSON API, quote stream, metrics and
// the static frontend.
type Server struct {
	opts    Options
	deps    Deps
	router  *mux.Router
	limiter *ipLimiter
	static  *staticFiles
}

// New builds the server and its routes.
func New(opts Options, deps Deps) *Server {
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	s := &Server{
		opts:    opts,
		deps:    deps,
		router:  mux.NewRouter(),
		limiter: newIPLimiter(opts.RateLimit, opts.RateBurst),
		static:  newStaticFiles(opts.StaticDir, opts.StaticPatterns),
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.accessLogMiddleware)
	s.router.Use(corsMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(s.rateLimitMiddleware)
	api.Use(jsonContentTypeMiddleware)

	api.HandleFunc("/health", s.health).Methods(http.MethodGet)
	api.HandleFunc("/instruments", s.instruments).Methods(http.MethodGet)
	api.HandleFunc("/search", s.search).Methods(http.MethodGet)

	api.HandleFunc("/stocks/{code}", s.stockDetail).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{code}/kline", s.stockKLine).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{code}/timeline", s.stockTimeline).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{code}/financials", s.stockFinancials).Methods(http.MethodGet)
	api.HandleFunc("/stocks/{code}/news", s.stockNews).Methods(http.MethodGet)

	api.HandleFunc("/market/indices", s.marketIndices).Methods(http.MethodGet)
	api.HandleFunc("/market/hot", s.marketHot).Methods(http.MethodGet)
	api.HandleFunc("/market/rank", s.marketRank).Methods(http.MethodGet)
	api.HandleFunc("/market/sectors", s.marketSectors).Methods(http.MethodGet)
	api.HandleFunc("/market/distribution", s.marketDistribution).Methods(http.MethodGet)
	api.HandleFunc("/market/fundflow", s.marketFundFlow).Methods(http.MethodGet)

	api.HandleFunc("/news", s.newsList).Methods(http.MethodGet)
	api.HandleFunc("/news/hot", s.newsHot).Methods(http.MethodGet)
	api.HandleFunc("/news/{id}", s.newsDetail).Methods(http.MethodGet)

	api.HandleFunc("/compare", s.compare).Methods(http.MethodGet)

	api.HandleFunc("/lists/{name}", s.getList).Methods(http.MethodGet)
	api.HandleFunc("/lists/{name}", s.replaceList).Methods(http.MethodPut)
	api.HandleFunc("/lists/{name}/{code}", s.addToList).Methods(http.MethodPost)
	api.HandleFunc("/lists/{name}/{code}", s.removeFromList).Methods(http.MethodDelete)

	api.NotFoundHandler = s.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("no route for %s", r.URL.Path))
	}))

	if s.deps.Hub != nil {
		s.router.Handle("/ws/quotes", s.deps.Hub).Methods(http.MethodGet)
	}
	if s.deps.Metrics != nil {
		s.router.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	// mux skips middleware for unmatched requests; corsMiddleware inside wrap
	// answers preflights on paths whose routes do not accept OPTIONS
	s.router.NotFoundHandler = s.wrap(s.static)
	s.router.MethodNotAllowedHandler = s.wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %s not allowed for %s", r.Method, r.URL.Path))
	}))
}

// wrap applies the router-level middleware to handlers mux reaches without a route match.
func (s *Server) wrap(h http.Handler) http.Handler {
	return s.requestIDMiddleware(s.accessLogMiddleware(corsMiddleware(h)))
}

// Run serves on opts.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.opts.Addr).Msg("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if s.deps.Hub != nil {
		s.deps.Hub.Close()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
