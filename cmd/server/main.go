package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hasan-mia/the-x-tribune-server/internal/cache"
	"github.com/hasan-mia/the-x-tribune-server/internal/config"
	"github.com/hasan-mia/the-x-tribune-server/internal/handler"
	"github.com/hasan-mia/the-x-tribune-server/internal/middleware"
	"github.com/hasan-mia/the-x-tribune-server/internal/repository"
	"github.com/hasan-mia/the-x-tribune-server/internal/service"
	"github.com/hasan-mia/the-x-tribune-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		log.Fatalf("Failed to load DB config: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET_KEY not set in environment")
	}
	jwtExpHoursStr := os.Getenv("JWT_EXPIRATION_HOURS")
	jwtExpHours, err := strconv.ParseInt(jwtExpHoursStr, 10, 64)
	if err != nil {
		log.Printf("Invalid JWT_EXPIRATION_HOURS, defaulting to 24: %v", err)
		jwtExpHours = 24
	}

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080" // Default port
	}

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	// --- Redis (optional profile cache) ---
	redisClient, err := config.ConnectRedis()
	if err != nil {
		log.Fatalf("Failed to connect to redis: %v", err)
	}
	var profileCache *cache.ProfileCache
	if redisClient != nil {
		defer redisClient.Close()
		profileCache = cache.NewProfileCache(redisClient, 5*time.Minute)
	} else {
		log.Println("REDIS_ADDR not set, running without profile cache")
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(dbPool)
	roleRepo := repository.NewRoleRepository(dbPool)
	messageRepo := repository.NewMessageRepository(dbPool)

	// --- Initialize Services ---
	var invalidator service.TokenInvalidator
	if profileCache != nil {
		invalidator = profileCache
	}
	authService := service.NewAuthService(userRepo, roleRepo, jwtUtil, invalidator)
	userService := service.NewUserService(userRepo, roleRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, jwtUtil)
	profileHandler := handler.NewProfileHandler(userService, profileCache)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)
	adminMW := middleware.AdminMiddleware()
	superAdminMW := middleware.SuperAdminMiddleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup)
	profileHandler.RegisterProfileRoutes(apiGroup, jwtAuthMW)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW, adminMW, superAdminMW)
	messageHandler.RegisterMessageRoutes(apiGroup, jwtAuthMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(context.Background()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "healthy"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
