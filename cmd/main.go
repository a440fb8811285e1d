package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"stock-order-service/internal/clients"
	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/config"
	"stock-order-service/internal/database"
	"stock-order-service/internal/handlers"
	"stock-order-service/internal/middleware"
	"stock-order-service/internal/repository"
	"stock-order-service/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	if cfg.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Connect to the optional run-history database
	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Connect(cfg.DatabaseURL, cfg.Environment)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.Migrate(db); err != nil {
			logger.Warnf("Auto-migration failed: %v", err)
		}
		logger.Info("Run history database connected")
	} else {
		logger.Warn("Run history disabled: no DATABASE_URL configured")
	}

	// Catalog API client
	retryConfig := clients.DefaultRetryConfig()
	retryConfig.MaxRetries = cfg.MaxRetries
	client := catalog.NewClient(catalog.Options{
		BaseURL:   cfg.CatalogBaseURL,
		Token:     cfg.APIToken,
		Timeout:   cfg.RequestTimeout,
		RateLimit: cfg.RateLimit,
		Retry:     retryConfig,
		Logger:    logger,
	})

	// Services
	var runStore services.RunStore
	var runsHandler *handlers.RunsHandler
	if db != nil {
		runRepo := repository.NewRunRepository(db)
		runStore = runRepo
		runsHandler = handlers.NewRunsHandler(runRepo)
	}
	importService := services.NewImportService(
		client, client, runStore,
		cfg.OutletID, cfg.OrderNamePrefix, cfg.DryRun,
		logger,
	)

	// Handlers
	healthHandler := handlers.NewHealthHandler()
	importHandler := handlers.NewImportHandler(importService, logger)
	catalogHandler := handlers.NewCatalogHandler(client, logger)

	// Router
	router := setupRouter(cfg, logger, healthHandler, importHandler, catalogHandler, runsHandler)

	logger.Infof("Stock Order Service starting on port %s (env: %s, dry-run default: %t)", cfg.Port, cfg.Environment, cfg.DryRun)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter configures the HTTP router
func setupRouter(
	cfg *config.Config,
	logger *logrus.Logger,
	healthHandler *handlers.HealthHandler,
	importHandler *handlers.ImportHandler,
	catalogHandler *handlers.CatalogHandler,
	runsHandler *handlers.RunsHandler,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.SecurityHeaders())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	corsConfig.AllowHeaders = []string{"Authorization", "Content-Type"}
	router.Use(cors.New(corsConfig))

	// Health checks
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/stock-orders/import", importHandler.ImportOrder)
		v1.GET("/stock-orders/import/template", importHandler.GetImportTemplate)
		v1.GET("/catalog/products/export", catalogHandler.ExportProducts)
		v1.GET("/catalog/inventory", catalogHandler.GetInventory)

		if runsHandler != nil {
			v1.GET("/stock-orders/runs", runsHandler.ListRuns)
			v1.GET("/stock-orders/runs/:id", runsHandler.GetRun)
		}
	}

	return router
}
