// Package server exposes the navigation table over HTTP.
//
// Every route in the table is served as a GET endpoint guarded by the
// navigation guard. SPA clients can ask for a decision without following
// redirects through POST /api/navigate.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parkd-dev/parkd/internal/audit"
	"github.com/parkd-dev/parkd/internal/config"
	"github.com/parkd-dev/parkd/internal/navigator"
	"github.com/parkd-dev/parkd/internal/pages"
	"github.com/parkd-dev/parkd/internal/routes"
	"github.com/parkd-dev/parkd/internal/session"
)

// Server represents the HTTP server
type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    zerolog.Logger
	navigator *navigator.Navigator
	codec     *session.TokenCodec
	audit     *audit.Store
	pruner    *audit.Pruner
	version   string
}

// New creates a new server instance
func New(cfg *config.Config, zlog zerolog.Logger, version string) (*Server, error) {
	table, err := loadTable(cfg)
	if err != nil {
		return nil, err
	}

	registry := pages.NewRegistry()
	if err := navigator.RegisterPages(registry, table); err != nil {
		return nil, fmt.Errorf("failed to register pages: %w", err)
	}

	server := &Server{
		config:  cfg,
		logger:  zlog,
		version: version,
	}

	if cfg.Session.Secret != "" {
		codec, err := session.NewTokenCodec(cfg.Session.Secret)
		if err != nil {
			return nil, err
		}
		server.codec = codec
	} else {
		zlog.Info().Msg("No session secret configured - bearer tokens disabled, using cookies only")
	}

	opts := []navigator.Option{navigator.WithLogger(zlog)}
	if cfg.Audit.Enabled {
		store, err := audit.Open(cfg.Audit.DatabaseURL, zlog)
		if err != nil {
			return nil, err
		}
		pruner, err := audit.NewPruner(store, cfg.Audit.PruneSchedule, cfg.Audit.Retention, zlog)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		server.audit = store
		server.pruner = pruner
		opts = append(opts, navigator.WithRecorder(store))
	}

	server.navigator = navigator.New(table, registry, opts...)
	server.setupRouter()

	zlog.Info().Int("routes", table.Len()).Bool("audit", cfg.Audit.Enabled).Msg("Navigation table loaded")

	return server, nil
}

func loadTable(cfg *config.Config) (*routes.Table, error) {
	if cfg.Routes.File == "" {
		return routes.Default(), nil
	}
	table, err := routes.LoadFile(cfg.Routes.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load routes from %s: %w", cfg.Routes.File, err)
	}
	return table, nil
}

// setupRouter configures the Gin router with routes and middleware
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()

	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no session needed)
	s.router.GET("/health", s.healthCheck)

	// Navigation table pages
	site := s.router.Group("/")
	site.Use(SessionMiddleware(s.codec, s.logger))
	for _, d := range s.navigator.Table().All() {
		site.GET(d.Path, s.servePage)
	}

	api := s.router.Group("/api")
	api.Use(SessionMiddleware(s.codec, s.logger))
	{
		api.POST("/navigate", s.navigate)
		api.GET("/routes", s.listRoutes)

		if s.audit != nil {
			api.GET("/audit", RequireAdmin(s.logger), s.listAudit)
		}
	}

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
	})
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "parkd",
		"version":   s.version,
	})
}

// Handler returns the HTTP handler serving all routes
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until SIGINT or SIGTERM
func (s *Server) Start() error {
	port := ":" + s.config.Server.Port

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              port,
		Handler:           s.router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if s.pruner != nil {
		s.pruner.Start()
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info().Str("port", port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-sigChan:
		s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")
	case err := <-errChan:
		s.logger.Error().Err(err).Msg("HTTP server error")
		s.Close()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		s.Close()
		return err
	}

	s.Close()
	s.logger.Info().Msg("Server shutdown complete")
	return nil
}

// Close stops the audit pruner and closes the audit database
func (s *Server) Close() {
	if s.pruner != nil {
		s.pruner.Stop()
	}
	if s.audit != nil {
		if err := s.audit.Close(); err != nil {
			s.logger.Error().Err(err).Msg("Error closing audit database")
		}
	}
}
