package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"travel_fleet/internal/config"
	"travel_fleet/internal/handler"
	"travel_fleet/internal/logger"
	"travel_fleet/internal/middleware"
	"travel_fleet/internal/repository"
	"travel_fleet/internal/service"
	"travel_fleet/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	appLog, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer appLog.Sync()

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
	client, err := config.ConnectDB(dbCfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			appLog.Warn("failed to disconnect from database", zap.Error(err))
		}
	}()

	db := client.Database(dbCfg.Database)
	if err := config.EnsureIndexes(db); err != nil {
		log.Fatalf("Failed to ensure database indexes: %v", err)
	}

	// --- Initialize Utilities ---
	utils.RegisterCustomValidators()
	jwtUtil := utils.NewJWTUtil(jwtSecret, jwtExpHours)

	// --- Initialize Repositories ---
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, jwtUtil)
	userService := service.NewUserService(userRepo)
	vehicleService := service.NewVehicleService(vehicleRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(authService, appLog)
	userHandler := handler.NewUserHandler(userService, appLog)
	vehicleHandler := handler.NewVehicleHandler(vehicleService, appLog)

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
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil, userRepo)

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	userHandler.RegisterUserRoutes(apiGroup, jwtAuthMW)
	vehicleHandler.RegisterVehicleRoutes(apiGroup, jwtAuthMW)

	// Liveness probe
	router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(ctx, nil); err != nil {
			c.JSON(http.StatusServiceUnavailable, utils.Response{
				Success: false,
				Message: "Database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, utils.Response{
			Success: true,
			Message: "Travel Management API is running",
			Data: gin.H{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	})

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utils.Response{
			Success: false,
			Message: fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		appLog.Info("server starting", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	appLog.Info("server exiting")
}
