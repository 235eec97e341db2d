package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"learning-community-api/internal/client"
	"learning-community-api/internal/config"
	"learning-community-api/internal/database"
	"learning-community-api/internal/job"
	"learning-community-api/internal/metrics"
	"learning-community-api/internal/router"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger := initLogger(cfg.Logger.Level)
	defer logger.Sync()

	db, err := database.NewWithRetry(cfg.Database, logger, 10, 3*time.Second)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.AutoMigrate(db, logger); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	m := metrics.NewWithLogger(logger)

	redisClient, err := database.NewRedis(cfg.Redis, logger)
	if err != nil {
		// The leaderboard falls back to SQL aggregates without Redis.
		logger.Warn("Redis unavailable, continuing without it", zap.Error(err))
		redisClient = nil
	}

	var s3Client client.S3ClientInterface
	if cfg.S3.Bucket != "" {
		s3Client, err = client.NewS3Client(&cfg.S3)
		if err != nil {
			logger.Fatal("Failed to create S3 client", zap.Error(err))
		}
	} else {
		logger.Warn("S3 not configured, file uploads disabled")
		s3Client = client.NewMockS3Client()
	}

	var notifier client.NotificationClient
	if cfg.Notify.BaseURL != "" {
		notifier = client.NewNotificationClient(cfg.Notify.BaseURL, cfg.Notify.APIKey, cfg.Notify.Timeout, logger)
	} else {
		notifier = client.NopNotificationClient{}
	}

	engine, services := router.New(router.Dependencies{
		Config:      cfg,
		DB:          db,
		RedisClient: redisClient,
		S3Client:    s3Client,
		Notifier:    notifier,
		Metrics:     m,
		Logger:      logger,
	})

	expiryJob := job.NewBookingExpiryJob(services.Booking, cfg.Booking.PendingTTL, cfg.Booking.ExpiryCron, logger)
	if err := expiryJob.Start(); err != nil {
		logger.Fatal("Failed to start booking expiry job", zap.Error(err))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	expiryJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", zap.Error(err))
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}

	logger.Info("Server stopped")
}

func initLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		panic("failed to build logger: " + err.Error())
	}
	return logger
}
