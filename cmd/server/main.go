package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fullstack-starter/internal/config"
	"fullstack-starter/internal/database"
	"fullstack-starter/internal/items"
	itemdb "fullstack-starter/internal/items/db"
	"fullstack-starter/internal/logger"
	"fullstack-starter/internal/migrations"
	"fullstack-starter/internal/server"
	"fullstack-starter/internal/users"
	userdb "fullstack-starter/internal/users/db"
)

const migrationsDir = "migrations"

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting server initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("CONFIG", err.Error())
	}
	log.Info("CONFIG", fmt.Sprintf("Environment: %s", cfg.Env))

	ctx := context.Background()

	bunDB, err := database.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal("DATABASE", err.Error())
	}
	defer bunDB.Close()

	// Pending migrations run before the server accepts traffic.
	runner := migrations.NewRunner(bunDB.DB, migrationsDir)
	if err := runner.Up(); err != nil {
		log.Fatal("MIGRATE", err.Error())
	}
	version, dirty, err := runner.Status()
	if err != nil {
		log.Fatal("MIGRATE", err.Error())
	}
	if dirty {
		log.Fatal("MIGRATE", fmt.Sprintf("Database is dirty at version %d, fix it before starting", version))
	}
	log.LogDatabase("MIGRATE", migrationsDir, fmt.Sprintf("Schema at version %d", version))
	if err := runner.Close(); err != nil {
		log.Warn("MIGRATE", err.Error())
	}

	userService := users.NewUserService(&userdb.DB{Bun: bunDB})
	itemService := items.NewItemService(&itemdb.DB{Bun: bunDB})

	srv := server.New(cfg, log, bunDB, userService, itemService)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Server shutdown complete")
	}
}
