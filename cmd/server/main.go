package main

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/leadlab/inventory-service/internal/cache"
	"github.com/leadlab/inventory-service/internal/config"
	"github.com/leadlab/inventory-service/internal/handlers"
	"github.com/leadlab/inventory-service/internal/identity"
	"github.com/leadlab/inventory-service/internal/inventories"
	"github.com/leadlab/inventory-service/internal/repositories/postgres"
	"github.com/leadlab/inventory-service/internal/services"
	"github.com/leadlab/inventory-service/internal/utils"
	"github.com/leadlab/inventory-service/internal/validator"
	"github.com/leadlab/inventory-service/pkg"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := pkg.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	registry, err := inventories.NewRegistry()
	if err != nil {
		logger.Error("Failed to build inventory registry", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, statistics caching disabled", "error", err)
		cacheService = cache.NewNoopCache()
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	repo := postgres.NewRepository(db)

	var directory identity.Directory
	if cfg.Casdoor.Endpoint != "" {
		logger.Info("Using Casdoor identity directory", "endpoint", cfg.Casdoor.Endpoint)
		directory = identity.NewCasdoorDirectory(identity.CasdoorConfig(cfg.Casdoor), repo.User())
	} else {
		directory = identity.NewLocalDirectory(repo.User())
	}

	v := validator.New()
	submissionService := services.NewSubmissionService(repo, registry, publisher, cacheService, logger, v)
	statisticsService := services.NewStatisticsService(repo, registry, directory, cacheService, logger)
	exportService := services.NewExportService(repo, registry, statisticsService, logger, v)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := utils.NewSlogLogger(logger)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(appLogger))

	handlerManager := handlers.NewHandlerManager(submissionService, statisticsService, exportService, appLogger)
	handlerManager.SetupRoutes(router)

	logger.Info("Starting inventory service", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
