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

	"takjil_scheduler/internal/config"
	"takjil_scheduler/internal/handler"
	"takjil_scheduler/internal/middleware"
	"takjil_scheduler/internal/repository"
	"takjil_scheduler/internal/service"
	"takjil_scheduler/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const maxBodyBytes = 8 * 1024

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Logger ---
	logger, err := newLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Configuration ---
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		logger.Fatal("failed to load DB config", zap.Error(err))
	}

	jwtSecret := os.Getenv("JWT_SECRET_KEY")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET_KEY not set in environment")
	}
	sessionTTLHours := envInt64(logger, "SESSION_TTL_HOURS", 6)
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}
	slotCapacity := int(envInt64(logger, "SLOT_CAPACITY", 2))
	rejectDupes := envBool(logger, "REJECT_DUPLICATE_HOUSE", true)
	trustProxy := envBool(logger, "TRUST_PROXY", false)

	// --- Database Connection ---
	dbPool, err := config.ConnectDB(dbCfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer dbPool.Close()

	// --- Auto Migration ---
	if err := config.AutoMigrate(dbPool); err != nil {
		logger.Fatal("failed to auto-migrate database", zap.Error(err))
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(jwtSecret, sessionTTLHours)

	// --- Initialize Repositories ---
	registrationRepo := repository.NewRegistrationRepository(dbPool)
	settingsRepo := repository.NewSettingsRepository(dbPool)

	// --- Initialize Services ---
	registrationService := service.NewRegistrationService(registrationRepo, settingsRepo, slotCapacity, rejectDupes, logger)
	settingsService := service.NewSettingsService(settingsRepo, logger)
	authService := service.NewAuthService(settingsRepo, jwtUtil, logger)
	exportService := service.NewExportService(registrationRepo, settingsRepo)

	// One-time credential upgrade: rehashes a plaintext or missing admin
	// password. No-op on every later startup.
	if err := settingsService.EnsureAdminCredential(context.Background()); err != nil {
		logger.Fatal("failed to ensure admin credential", zap.Error(err))
	}

	// --- Initialize Handlers ---
	registrationHandler := handler.NewRegistrationHandler(registrationService, logger)
	settingsHandler := handler.NewSettingsHandler(settingsService, logger)
	authHandler := handler.NewAuthHandler(authService, trustProxy, logger)
	exportHandler := handler.NewExportHandler(exportService, logger)

	// --- Setup Gin Router ---
	gin.EnableJsonDecoderDisallowUnknownFields()
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(logger))
	router.Use(middleware.BodyLimit(maxBodyBytes))

	// Simple CORS middleware (allow all; the API carries no cross-origin
	// credentials beyond the cookie, which SameSite already restricts)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	sessionMW := middleware.AdminSessionMiddleware(jwtUtil)
	loginLimitMW := middleware.NewRateLimiter(5, time.Minute).Middleware()
	createLimitMW := middleware.NewRateLimiter(10, time.Minute).Middleware()
	readLimitMW := middleware.NewRateLimiter(60, time.Minute).Middleware()
	exportLimitMW := middleware.NewRateLimiter(10, time.Minute).Middleware()

	// --- Register Routes ---
	apiGroup := router.Group("/api")
	registrationHandler.RegisterRegistrationRoutes(apiGroup, sessionMW, createLimitMW, readLimitMW)
	settingsHandler.RegisterSettingsRoutes(apiGroup, sessionMW, readLimitMW)
	authHandler.RegisterAuthRoutes(apiGroup, loginLimitMW, sessionMW)
	exportHandler.RegisterExportRoutes(apiGroup, sessionMW, exportLimitMW)

	// Liveness probe against the store
	apiGroup.GET("/health", func(c *gin.Context) {
		if err := dbPool.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "database unhealthy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"status": "healthy"}})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + serverPort,
		Handler: router,
	}

	go func() {
		logger.Info("server starting", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func envInt64(logger *zap.Logger, key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Warn("invalid integer env value, using default",
			zap.String("key", key), zap.String("value", v), zap.Int64("default", def))
		return def
	}
	return n
}

func envBool(logger *zap.Logger, key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Warn("invalid boolean env value, using default",
			zap.String("key", key), zap.String("value", v), zap.Bool("default", def))
		return def
	}
	return b
}
