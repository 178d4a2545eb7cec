package main

import (
	"time"

	"order_manager/internal/config"
	"order_manager/internal/handlers"
	"order_manager/internal/logger"
	"order_manager/internal/redis"
	"order_manager/internal/repository"
	"order_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.LogMode, cfg.LogDir)
	defer logger.Sync()

	// Initialize the order store
	repo, err := buildRepository(cfg)
	if err != nil {
		logger.Fatalw("failed to open order store", "driver", cfg.StoreDriver, "error", err)
	}
	if err := repo.EnsureInitialized(); err != nil {
		logger.Fatalw("failed to initialize order store", "error", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logger.Fatalw("failed to connect to Redis", "error", err)
	}
	defer redisClient.Close()

	// Initialize services
	orderService := services.NewOrderService(repo, cfg.UploadDir, cfg.DeleteCode)
	reportingService := services.NewReportingService(repo)

	// Initialize handlers
	authHandler, err := handlers.NewAuthHandler(redisClient, cfg.AdminUsername, cfg.AdminPassword, time.Duration(cfg.SessionTTL)*time.Second)
	if err != nil {
		logger.Fatalw("failed to initialize auth handler", "error", err)
	}
	orderHandler := handlers.NewOrderHandler(orderService, cfg.UploadDir)
	reportHandler := handlers.NewReportHandler(reportingService)

	// Setup routes
	router := gin.Default()

	router.POST("/api/login", authHandler.Login)
	router.POST("/api/logout", authHandler.Logout)

	api := router.Group("/api", authHandler.RequireSession())
	{
		api.GET("/orders", orderHandler.ListOrders)
		api.POST("/orders", orderHandler.CreateOrder)
		api.GET("/orders/:order_id", orderHandler.GetOrder)
		api.POST("/orders/delete", orderHandler.DeleteOrder)
		api.GET("/stats", reportHandler.Stats)
		api.GET("/accounting", reportHandler.Accounting)
	}

	router.GET("/uploads/*filepath", authHandler.RequireSession(), orderHandler.ServeImage)

	// Start server
	logger.Infow("server starting", "port", cfg.ServerPort, "store", cfg.StoreDriver)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatalw("failed to start server", "error", err)
	}
}

func buildRepository(cfg *config.Config) (repository.OrderRepository, error) {
	if cfg.StoreDriver == "workbook" {
		return repository.NewWorkbookRepository(cfg.WorkbookPath), nil
	}
	return repository.NewDatabaseRepository(cfg.StoreDriver, cfg.DatabaseURL)
}
