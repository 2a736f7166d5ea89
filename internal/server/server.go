package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rgehrsitz/dcasim/internal/calculation"
	"github.com/rgehrsitz/dcasim/internal/config"
)

const shutdownTimeout = 10 * time.Second

// Server wires the projection API: routing, rate limiting, caching and logging.
type Server struct {
	cfg     config.ServerConfig
	logger  calculation.Logger
	limiter *RateLimiter
	cache   CacheRepository
	handler *ProjectionHandler
}

// New builds a server from cfg. A nil cache selects one from the config:
// redis when an address is set, memory otherwise.
func New(cfg config.ServerConfig, engine *calculation.ProjectionEngine, cache CacheRepository, logger calculation.Logger) *Server {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	if cache == nil {
		cache = NewCacheFromConfig(cfg)
	}
	return &Server{
		cfg:     cfg,
		logger:  logger,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
		cache:   cache,
		handler: NewProjectionHandler(engine, cache, logger, cfg.MaxYears),
	}
}

// NewCacheFromConfig returns the projection cache selected by cfg.
func NewCacheFromConfig(cfg config.ServerConfig) CacheRepository {
	if cfg.UsesRedis() {
		return NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL)
	}
	return NewMemoryCache(cfg.CacheTTL)
}

// Routes returns the HTTP handler tree.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/projections", RateLimitMiddleware(s.limiter, http.HandlerFunc(s.handler.Project)))
	mux.HandleFunc("/healthz", Health)
	return LoggingMiddleware(s.logger, mux)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	switch c := s.cache.(type) {
	case *RedisCache:
		if err := c.Ping(ctx); err != nil {
			return err
		}
		defer c.Close()
	case *MemoryCache:
		defer c.Stop()
	}

	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Infof("projection API listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Infof("shutting down projection API")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware logs one line per request.
func LoggingMiddleware(logger calculation.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Infof("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Microsecond))
	})
}
