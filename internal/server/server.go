package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/magnusgp/fermatter/internal/cache"
	"github.com/magnusgp/fermatter/internal/model"
	"github.com/magnusgp/fermatter/internal/worker"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Reviewer runs one analysis call. Satisfied by analysis.Analyzer.
type Reviewer interface {
	Analyze(ctx context.Context, req model.AnalyzeRequest) *model.AnalyzeResponse
}

// Server serves the writing-analysis HTTP API
type Server struct {
	cfg      model.ServerConfig
	reviewer Reviewer
	cache    cache.Cache
	cacheTTL time.Duration
	limiter  *worker.Limiter
	engine   *gin.Engine
}

// NewServer creates a server around the given reviewer
func NewServer(cfg model.Config, reviewer Reviewer) *Server {
	s := &Server{
		cfg:      cfg.Server,
		reviewer: reviewer,
		limiter:  worker.NewLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst),
	}
	if cfg.Cache.Enabled {
		s.cache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
		s.cacheTTL = cfg.Cache.TTL
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(corsMiddleware(cfg.Server.CORSOrigins))
	engine.Use(rateLimitMiddleware(s.limiter))

	engine.POST("/analyze", s.handleAnalyze)
	engine.GET("/sources", s.handleSources)
	engine.GET("/health", s.handleHealth)

	s.engine = engine
	return s
}

// Handler exposes the underlying HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the context is cancelled
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Serving HTTP API", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
