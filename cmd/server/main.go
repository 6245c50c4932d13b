package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fact-check-board/internal/api"
	"github.com/fact-check-board/internal/config"
	"github.com/fact-check-board/internal/events"
	"github.com/fact-check-board/internal/repository"
	"github.com/fact-check-board/internal/seed"
	"github.com/fact-check-board/internal/service"
	"github.com/fact-check-board/internal/store"
	"github.com/fact-check-board/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log := logger.New(config.LogConfig{})
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info().Msg("Starting fact-check board server...")

	// Open the collection store
	st, err := store.Open(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open store")
	}
	defer st.Close()

	// Vote events
	publisher := events.New(cfg.Events, log)
	defer publisher.Close()

	// Initialize repositories and services
	repos := repository.New(st)
	services := service.NewServices(repos, publisher, log)

	if cfg.Store.SeedDemo {
		if err := seed.Load(context.Background(), services.News, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	// Initialize router
	router := api.NewRouter(services, st, cfg, log)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server exited gracefully")
}
