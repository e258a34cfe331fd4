package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yucheng/cardvault-backend/config"
	"github.com/yucheng/cardvault-backend/internal/app/controller"
	"github.com/yucheng/cardvault-backend/internal/app/repository"
	"github.com/yucheng/cardvault-backend/internal/app/service"
	"github.com/yucheng/cardvault-backend/internal/db"
	"github.com/yucheng/cardvault-backend/internal/router"
	"github.com/yucheng/cardvault-backend/internal/web"
	"github.com/yucheng/cardvault-backend/pkg/imghost"
	"github.com/yucheng/cardvault-backend/pkg/logger"
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

	logger.Info("Starting CardVault Backend Server", map[string]interface{}{
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

	// Initialize image host client
	imageClient, err := imghost.NewClient(imghost.Config{
		APIKey:  cfg.ImageHost.APIKey,
		BaseURL: cfg.ImageHost.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize image host client", err)
	}

	// Initialize repositories
	definitionRepo := repository.NewCardDefinitionRepository(db.GetDB())
	itemRepo := repository.NewInventoryItemRepository(db.GetDB())

	// Initialize services
	definitionService := service.NewCardDefinitionService(definitionRepo)
	itemService := service.NewInventoryItemService(itemRepo)
	dashboardService := service.NewDashboardService(definitionRepo, itemRepo)
	filterService := service.NewFilterService(definitionRepo)
	exportService := service.NewExportService(definitionRepo, itemRepo)

	// Initialize controllers
	definitionController := controller.NewDefinitionController(definitionService)
	inventoryController := controller.NewInventoryController(itemService, exportService)
	dashboardController := controller.NewDashboardController(dashboardService)
	filterController := controller.NewFilterController(filterService)
	uploadController := controller.NewUploadController(imageClient)

	// Initialize web page server
	webServer, err := web.NewServer(
		definitionService,
		itemService,
		dashboardService,
		filterService,
		imageClient,
	)
	if err != nil {
		logger.Fatal("Failed to initialize web server", err)
	}

	// Setup router
	r := router.NewRouter(
		definitionController,
		inventoryController,
		dashboardController,
		filterController,
		uploadController,
		webServer,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
