package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pawonbufatim/storefront-server/src/config"
	"github.com/pawonbufatim/storefront-server/src/database"
	"github.com/pawonbufatim/storefront-server/src/handlers"
	"github.com/pawonbufatim/storefront-server/src/logging"
	"github.com/pawonbufatim/storefront-server/src/middleware"
	"github.com/pawonbufatim/storefront-server/src/repositories/postgres"
	"github.com/pawonbufatim/storefront-server/src/services"
	"github.com/pawonbufatim/storefront-server/src/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL())
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Initialize JWT secret in middleware
	if err := middleware.SetJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize JWT secret")
	}

	// Initialize upload store
	uploads, err := storage.NewStore(cfg.UploadDir, cfg.MaxUploadSize)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize upload store")
	}
	log.Info().Str("dir", uploads.Dir()).Msg("upload store ready")

	// Initialize repositories and services
	pool := db.GetPool()
	categoryRepo := postgres.NewCategoryRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	adminRepo := postgres.NewAdminRepository(pool)

	adminService := services.NewAdminService(adminRepo)
	categoryService := services.NewCategoryService(categoryRepo, uploads)
	productService := services.NewProductService(productRepo, categoryRepo, uploads)

	// Seed the default admin on first boot
	if err := adminService.Seed(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Error().Err(err).Msg("failed to seed default admin")
	}

	// Create Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("panic recovered")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
		c.Abort()
	}))

	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	// API-wide request ceiling
	router.Use(middleware.NewAPIRateLimitMiddleware(middleware.RateLimitConfig{
		MaxRequests: cfg.RateLimitMax,
		Window:      cfg.RateLimitWindow,
	}))

	setupRoutes(router, db, uploads, adminService, categoryService, productService)

	// HTTP server with timeouts to protect from slow clients
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

func setupRoutes(router *gin.Engine, db *database.Database, uploads *storage.Store, adminService *services.AdminService, categoryService *services.CategoryService, productService *services.ProductService) {
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(adminService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, uploads)
	productHandler := handlers.NewProductHandler(productService, uploads)

	router.GET("/health", healthHandler.HandleHealth)

	// Admin authentication
	router.POST("/admin/login", middleware.LoginRateLimitMiddleware(), authHandler.HandleLogin)
	router.GET("/admin/verify", middleware.AdminAuthMiddleware(), authHandler.HandleVerify)

	// Categories
	router.GET("/categories", categoryHandler.HandleList)
	router.GET("/categories/:id", categoryHandler.HandleGet)
	router.POST("/categories", middleware.AdminAuthMiddleware(), categoryHandler.HandleCreate)
	router.PUT("/categories/:id", middleware.AdminAuthMiddleware(), categoryHandler.HandleUpdate)
	router.DELETE("/categories/:id", middleware.AdminAuthMiddleware(), categoryHandler.HandleDelete)

	// Products
	router.GET("/products", productHandler.HandleList)
	router.GET("/products/:id", productHandler.HandleGet)
	router.POST("/products", middleware.AdminAuthMiddleware(), productHandler.HandleCreate)
	router.PUT("/products/:id", middleware.AdminAuthMiddleware(), productHandler.HandleUpdate)
	router.DELETE("/products/:id", middleware.AdminAuthMiddleware(), productHandler.HandleDelete)

	// Uploaded images, cross-origin readable for GET only
	uploadsGroup := router.Group(storage.PublicPrefix)
	uploadsGroup.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET")
		c.Header("Access-Control-Allow-Headers", "Origin, X-Requested-With, Content-Type, Accept")
		c.Next()
	})
	uploadsGroup.Static("/", uploads.Dir())

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "API endpoint not found"})
	})
}
