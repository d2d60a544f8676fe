package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caibirdme/ltbridge/internal/api/handlers"
	"github.com/caibirdme/ltbridge/internal/api/middleware"
	"github.com/caibirdme/ltbridge/internal/backend"
	"github.com/caibirdme/ltbridge/internal/config"
	"github.com/caibirdme/ltbridge/pkg/logger"
)

// Server wires the HTTP surface (Loki/Tempo-shaped query endpoints) in
// front of the logql/traceql/sqlbuilder translation core.
type Server struct {
	config     *config.Config
	logger     logger.Logger
	executor   backend.Executor
	router     *gin.Engine
	httpServer *http.Server
}

func NewServer(cfg *config.Config, log logger.Logger, executor backend.Executor) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	s := &Server{
		config:   cfg,
		logger:   log,
		executor: executor,
		router:   router,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.ErrorHandler(s.logger))
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	queryHandler := handlers.NewQueryHandler(
		s.config.Registry(),
		s.config.Query.DefaultTraceLimit,
		s.config.Query.MaxTraceLimit,
		s.executor,
		s.logger,
	)

	loki := s.router.Group("/loki/api/v1")
	loki.GET("/query_range", queryHandler.HandleLokiQueryRange)

	tempo := s.router.Group("/tempo/api")
	tempo.GET("/search", queryHandler.HandleTempoSearch)
}

// Start serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ltbridge HTTP server starting", "port", s.config.Port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down ltbridge gracefully")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(shutdownCtx)
}
