// Package main provides the main entry point for the Lucky Draw code service
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/drawkit/luckydraw/app/handlers"
	"github.com/drawkit/luckydraw/app/router"
	"github.com/drawkit/luckydraw/app/services"
	businessflow "github.com/drawkit/luckydraw/business_flow"
	"github.com/drawkit/luckydraw/config"
	"github.com/drawkit/luckydraw/repository"
	"github.com/gofiber/fiber/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Application represents the main application structure
type Application struct {
	router router.Router
	config *config.Config
	server *fiber.App
}

func main() {
	log.Println("Starting Lucky Draw application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg.Logging)

	app := initializeApplication(cfg)

	app.router.SetupRoutes()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		log.Printf("Server starting on %s", address)

		if err := app.server.Listen(address); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// setupLogging routes the service log through a rotating file when configured
func setupLogging(cfg config.LoggingConfig) {
	if cfg.File == "" {
		return
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
	log.Printf("Logging to %s (rotation: %dMB, %d backups, %d days)",
		cfg.File, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
}

// initializeApplication wires the repository, flow, handler, and router together
func initializeApplication(cfg *config.Config) *Application {
	codeRepo := repository.NewFileCodeRepository(cfg.Storage.DataFile)
	log.Printf("Code store initialized at %s (%d known codes)", cfg.Storage.DataFile, codeRepo.Count())

	generator := services.NewRandomCodeGenerator()
	codeFlow := businessflow.NewCodeFlow(codeRepo, generator)
	codeHandler := handlers.NewCodeHandler(codeFlow)

	appRouter := router.NewFiberRouter(cfg, codeHandler)

	return &Application{
		router: appRouter,
		config: cfg,
		server: appRouter.GetApp(),
	}
}
