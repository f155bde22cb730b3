// Package handler содержит read-only HTTP API слоя отображения поверх
// персистентных документов движка. Сам движок сетевой поверхности не имеет.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/repository"
)

// Server HTTP сервер отображения
type Server struct {
	router      *gin.Engine
	httpServer  *http.Server
	logger      *logrus.Logger
	config      *config.Config
	restHandler *RESTHandler
}

// NewServer создает новый HTTP сервер
func NewServer(cfg *config.Config, store repository.DocumentStore, logger *logrus.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(LoggerMiddleware(logger))
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(MetricsMiddleware())

	server := &Server{
		router:      router,
		logger:      logger,
		config:      cfg,
		restHandler: NewRESTHandler(store, logger),
	}

	server.httpServer = &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/analysis", s.restHandler.GetAnalysis)
		v1.GET("/snapshots", s.restHandler.GetSnapshots)
		v1.GET("/snapshots/:rig", s.restHandler.GetRigSnapshot)
		v1.GET("/keystats", s.restHandler.GetKeyStats)
	}
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	s.logger.WithFields(logrus.Fields{
		"address": s.config.Server.Address,
		"mode":    gin.Mode(),
	}).Info("Starting display HTTP server")

	return s.httpServer.ListenAndServe()
}

// Shutdown корректно завершает сервер
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Router возвращает gin router (для тестов)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// healthCheck обработчик health check
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
