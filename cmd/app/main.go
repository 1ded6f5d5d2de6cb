package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/config"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/db"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/gateway"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/logger"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/notification"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/server"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/storage"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/sweeper"
	"github.com/Kazeku-06/catur-jaya-travel-sub001/internal/user"
)

func main() {

	logger.Init()
	logger.Info("Starting Catur Jaya Travel application")
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	store, err := storage.NewDiskStorage(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		logger.Fatalf("Failed to initialize upload storage: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	notifier := notification.NewService(
		notification.NewRepository(database),
		user.NewRepository(database),
		redisClient,
	)
	defer notifier.Close()
	logger.Info("Notification service initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go notifier.Start(ctx)

	srv := server.New(server.Deps{
		DB:       database,
		Config:   cfg,
		Store:    store,
		Gateway:  gateway.NewSnapClient(cfg.MidtransServerKey, cfg.MidtransProduction),
		Notifier: notifier,
	})

	sweep := sweeper.New(srv.BookingRepo, cfg.SweepInterval)
	go sweep.Start(ctx)
	logger.Info("Expiry sweeper started")

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
