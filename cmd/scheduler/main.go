package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"fakestore-etl/internal/api"
	"fakestore-etl/internal/config"
	"fakestore-etl/internal/etl"
	"fakestore-etl/internal/fakestore"
	"fakestore-etl/internal/logger"
	"fakestore-etl/internal/notify"
	"fakestore-etl/internal/scheduler"
	"fakestore-etl/internal/storage"
)

func main() {
	// .env is optional; the system environment is the fallback.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	logger.Init(cfg.Logging)
	log := logger.Get()

	log.Info().Str("version", cfg.App.Version).Msg("Starting pipeline scheduler")

	// Initialize S3 storage
	store, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize S3 storage")
	}

	// Wire the pipeline and scheduler
	client := fakestore.NewClient(cfg)
	pipeline := etl.New(client, store, cfg.Pipeline.ScratchDir)
	mailer := notify.NewMailer(cfg)
	sched := scheduler.New(cfg, pipeline, mailer)

	// Initialize ops API handler
	handler := api.NewHandler(sched, cfg)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	api.SetupRoutes(router, handler)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start scheduler loop
	go func() {
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			log.Fatal().Err(err).Msg("Scheduler failed")
		}
	}()

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")

	// Stop scheduler and server
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Scheduler exited")
}
