package main

import (
	"fmt"
	"foundly/internal/config"
	"foundly/internal/database"
	"foundly/internal/handlers"
	"foundly/internal/logger"
	"foundly/internal/middleware"
	"foundly/internal/services"
	"foundly/internal/validator"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "foundly/internal/docs" // Import swagger docs
)

// @title           Foundly API
// @version         1.0
// @description     Foundly is a lost-and-found platform where staff review ownership claims, manage roles and account status, and every privileged action is audited.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	notificationService := services.NewNotificationService(db)
	userService := services.NewUserService(db, auditService, notificationService)
	claimService := services.NewClaimService(db, userService, auditService, notificationService)
	itemService := services.NewItemService(db, userService, auditService, notificationService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	claimHandler := handlers.NewClaimHandler(claimService)
	itemHandler := handlers.NewItemHandler(itemService)
	auditHandler := handlers.NewAuditHandler(auditService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Claim review routes
	claims := protected.Group("/claims")
	claims.GET("", claimHandler.GetClaims)
	claims.GET("/:id", claimHandler.GetClaimByID)
	claims.PUT("/:id", claimHandler.ReviewClaim)
	claims.DELETE("/:id", claimHandler.DeleteClaim)

	// Role and account status routes
	users := protected.Group("/users")
	users.PUT("/:id/role", userHandler.AssignRole)
	users.DELETE("/:id/role", userHandler.RevokeRole)
	users.POST("/roles", userHandler.BulkAssignRole)
	users.PUT("/:id/status", userHandler.SetAccountStatus)

	// Item moderation routes
	items := protected.Group("/items")
	items.GET("/:id", itemHandler.GetItemByID)
	items.PUT("/:id/verify", itemHandler.VerifyItem)
	items.DELETE("/:id", itemHandler.DeleteItem)

	// Audit log routes
	audit := protected.Group("/audit-logs")
	audit.GET("", auditHandler.GetLogs)
	audit.GET("/stats", auditHandler.GetStats)

	// Notification routes
	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
	notifications.PUT("/:id/read", notificationHandler.MarkRead)
	notifications.PUT("/read-all", notificationHandler.MarkAllRead)

	log.Infof("Starting Foundly backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
