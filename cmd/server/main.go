package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thekada/kada-backend/config"
	"github.com/thekada/kada-backend/internal/app/controller"
	"github.com/thekada/kada-backend/internal/app/repository"
	"github.com/thekada/kada-backend/internal/app/service"
	"github.com/thekada/kada-backend/internal/db"
	"github.com/thekada/kada-backend/internal/middleware"
	"github.com/thekada/kada-backend/internal/router"
	"github.com/thekada/kada-backend/internal/scheduler"
	"github.com/thekada/kada-backend/internal/storage"
	"github.com/thekada/kada-backend/pkg/cache"
	"github.com/thekada/kada-backend/pkg/logger"
	"github.com/thekada/kada-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting KADA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Cache store: Redis when enabled, in-process fallback otherwise
	var cacheStore cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Error("Failed to connect to Redis, falling back to in-memory cache", err)
		} else {
			cacheStore = cache.NewRedisStore(redis.GetClient())
			defer func() {
				if err := redis.Close(); err != nil {
					logger.Error("Failed to close Redis connection", err)
				}
			}()
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	franchiseRepo := repository.NewFranchiseRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	payoutRepo := repository.NewPayoutRepository(db.GetDB())
	settingsRepo := repository.NewSettingsRepository(db.GetDB())
	leadRepo := repository.NewLeadRepository(db.GetDB())
	contentRepo := repository.NewContentRepository(db.GetDB())
	trainingRepo := repository.NewTrainingRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	franchiseService := service.NewFranchiseService(franchiseRepo)
	statsService := service.NewStatsService(franchiseRepo, orderRepo, cacheStore, cfg.Cache.FranchiseStatsTTL)
	orderService := service.NewOrderService(orderRepo, cacheStore)
	payoutService := service.NewPayoutService(franchiseRepo, payoutRepo, settingsRepo, cacheStore)
	reportService := service.NewReportService(payoutRepo)
	settingsService := service.NewSettingsService(settingsRepo, franchiseRepo, cacheStore)
	leadService := service.NewLeadService(leadRepo)
	contentService := service.NewContentService(contentRepo)
	trainingService := service.NewTrainingService(trainingRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	franchiseController := controller.NewFranchiseController(franchiseService)
	statsController := controller.NewStatsController(statsService)
	orderController := controller.NewOrderController(orderService)
	payoutController := controller.NewPayoutController(payoutService, reportService)
	leadController := controller.NewLeadController(leadService)
	settingsController := controller.NewSettingsController(settingsService)
	contentController := controller.NewContentController(contentService)
	trainingController := controller.NewTrainingController(trainingService, franchiseService, authService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		franchiseController,
		statsController,
		orderController,
		payoutController,
		leadController,
		settingsController,
		contentController,
		trainingController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start the stats refresh scheduler
	statsScheduler := scheduler.NewStatsRefreshScheduler(statsService, franchiseService)
	if err := statsScheduler.Start(); err != nil {
		logger.Error("Failed to start stats refresh scheduler", err)
	}
	defer statsScheduler.Stop()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced server shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
