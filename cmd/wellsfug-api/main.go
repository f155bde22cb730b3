// wellsfug-api поднимает read-only HTTP сервер отображения поверх
// персистентных документов движка.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/schtekar/wells-fug/internal/config"
	"github.com/schtekar/wells-fug/internal/handler"
	"github.com/schtekar/wells-fug/internal/repository"
	"github.com/schtekar/wells-fug/pkg/utils"
)

var (
	// Version устанавливается при сборке через ldflags
	Version = "dev"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)
	logger.WithField("version", Version).Info("Starting wells-fug display API")

	fileStore, err := repository.NewFileStore(cfg.DataDir, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize file store")
	}

	server := handler.NewServer(cfg, fileStore, logger)

	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Info("HTTP server stopped")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	logger.WithField("signal", sig).Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Failed to shut down HTTP server cleanly")
	}
}
