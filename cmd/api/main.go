// @title           Civic Forum API
// @version         1.0
// @description     시민 이슈 게시판 투표/댓글 API

// @host      localhost:8000
// @BasePath  /api/forum

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "civic-forum-api/docs" // Swagger docs import

	"civic-forum-api/internal/cache"
	"civic-forum-api/internal/client"
	"civic-forum-api/internal/config"
	"civic-forum-api/internal/database"
	"civic-forum-api/internal/job"
	"civic-forum-api/internal/metrics"
	"civic-forum-api/internal/repository"
	"civic-forum-api/internal/router"
)

const (
	dbConnectAttempts      = 10
	dbConnectRetryInterval = 5 * time.Second
	dbStatsInterval        = 15 * time.Second
	businessStatsInterval  = time.Minute
	migrationAttempts      = 3
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Forum Service",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	m := metrics.NewWithLogger(logger)

	// Database
	dbCtx, dbCancel := context.WithTimeout(context.Background(), dbConnectAttempts*dbConnectRetryInterval*2)
	db, err := database.ConnectWithRetry(dbCtx, database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, dbConnectAttempts, dbConnectRetryInterval, logger)
	dbCancel()
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
	}()

	if err := database.SafeAutoMigrateWithRetry(db, logger, migrationAttempts); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	if err := database.RegisterMetricsCallbacks(db, m); err != nil {
		logger.Warn("Failed to register database metrics callbacks", zap.Error(err))
	}
	stopDBStats := database.StartDBStatsCollector(db, m, dbStatsInterval)
	defer close(stopDBStats)

	businessCollector := metrics.NewBusinessMetricsCollector(db, m, logger, businessStatsInterval)
	businessCollector.Start()
	defer businessCollector.Stop()

	// Redis backs the thread cache only; the service runs without it
	var redisClient *redis.Client
	threadCache := cache.NewNoopThreadCache()
	if cfg.Cache.Enabled {
		redisClient, err = database.InitRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis unavailable, thread cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			threadCache = cache.NewRedisThreadCache(redisClient, cfg.Cache.ThreadTTL, logger, m)
		}
	}

	notificationClient := client.NewNoOpNotificationClient()
	if cfg.Notification.BaseURL != "" {
		notificationClient = client.NewNotificationClient(
			cfg.Notification.BaseURL,
			cfg.Notification.APIKey,
			cfg.Notification.Timeout,
			logger,
			m,
		)
		logger.Info("Notification client initialized", zap.String("base_url", cfg.Notification.BaseURL))
	}

	// Background jobs
	scheduler := job.NewScheduler(logger)
	if cfg.Jobs.ReconcileEnabled {
		reconcileJob := job.NewReconcileJob(
			repository.NewTransactor(db),
			repository.NewPostRepository(db),
			repository.NewCommentRepository(db),
			repository.NewVoteRepository(db),
			threadCache,
			m,
			logger,
		)
		if err := scheduler.Add("reconcile_aggregates", cfg.Jobs.ReconcileSchedule, reconcileJob); err != nil {
			logger.Fatal("Invalid reconcile schedule", zap.String("schedule", cfg.Jobs.ReconcileSchedule), zap.Error(err))
		}
	}
	scheduler.Start()

	r := router.Setup(router.Config{
		DB:                 db,
		Redis:              redisClient,
		Logger:             logger,
		Metrics:            m,
		JWTSecret:          cfg.JWT.Secret,
		BasePath:           cfg.Server.BasePath,
		AllowedOrigins:     cfg.CORS.AllowedOrigins,
		ThreadCache:        threadCache,
		NotificationClient: notificationClient,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("Forum Service started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s%s/swagger/index.html", cfg.Server.Port, cfg.Server.BasePath)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	scheduler.Stop(ctx)

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
