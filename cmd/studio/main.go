package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"fullstack-starter/internal/config"
	"fullstack-starter/internal/database"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/studio"
)

func main() {
	log := logger.NewConsoleLogger()

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", "No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("CONFIG", fmt.Sprintf("Invalid configuration: %v", err))
	}

	ctx := context.Background()
	bunDB, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect: %v", err))
	}
	defer bunDB.Close()

	handler := &studio.Handler{
		Inspector: &studio.PostgresInspector{DB: bunDB},
		Logger:    log,
		RowLimit:  cfg.Studio.RowLimit,
	}

	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         cfg.Studio.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("STUDIO", fmt.Sprintf("Studio listening on http://localhost%s", cfg.Studio.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("STUDIO", fmt.Sprintf("Server error: %v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("STUDIO", "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("STUDIO", fmt.Sprintf("Forced shutdown: %v", err))
	}
	log.Info("STUDIO", "Stopped")
}
