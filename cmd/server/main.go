// Package main is the entry point for the outreach engine HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/popeskul/outreach-engine/internal/config"
	"github.com/popeskul/outreach-engine/internal/handler"
	"github.com/popeskul/outreach-engine/internal/infrastructure/migrate"
	"github.com/popeskul/outreach-engine/internal/metrics"
	"github.com/popeskul/outreach-engine/internal/middleware"
	"github.com/popeskul/outreach-engine/internal/repository"
	"github.com/popeskul/outreach-engine/internal/service"
)

const poolStatsInterval = 15 * time.Second

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env file", zap.Error(err))
	}

	configPath := os.Getenv("OUTREACH_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		runner := migrate.NewRunner(&migrate.Config{
			DatabaseURL:    cfg.Database.GetURL(),
			MigrationsPath: cfg.Database.MigrationsPath,
		}, logger)
		if err := runner.Up(); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
	}

	db, err := sqlx.Connect("postgres", cfg.Database.GetDSN())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	metrics.MustRegister()
	stopStats := make(chan struct{})
	defer close(stopStats)
	go metrics.NewDBPoolStats(db.DB, prometheus.DefaultRegisterer).Start(poolStatsInterval, stopStats)

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, redisClient, logger)

	router := setupRouter(handler.NewHandler(svc, logger), cfg.Webhook.Secret)

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.Middleware.RateLimit), cfg.Middleware.RateLimitBurst)
	defer rateLimiter.Stop()

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.Middleware.AllowedOrigins

	middlewareConfig := &middleware.Config{
		Logger:         logger,
		CORS:           cors,
		RateLimiter:    rateLimiter,
		RequestTimeout: time.Duration(cfg.Middleware.RequestTimeoutSeconds) * time.Second,
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      middleware.Chain(middlewareConfig)(router),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := svc.Scheduler.Start(); err != nil {
		logger.Error("Failed to start scheduler on startup", zap.Error(err))
	} else {
		logger.Info("Scheduler started on application startup")
	}

	go func() {
		logger.Info("Starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if svc.Scheduler.IsRunning() {
		if err := svc.Scheduler.Stop(); err != nil {
			logger.Error("Failed to stop scheduler", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
