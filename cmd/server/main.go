package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/catnipgames/catpacks/internal/config"
	"github.com/catnipgames/catpacks/internal/database"
	"github.com/catnipgames/catpacks/internal/handlers"
	"github.com/catnipgames/catpacks/internal/middleware"
	"github.com/catnipgames/catpacks/internal/services"
	"github.com/catnipgames/catpacks/internal/types"

	_ "github.com/catnipgames/catpacks/docs/api" // Swagger docs
)

// @title Catpacks API
// @version 1.0.0
// @description Gacha collectible backend: daily claims, pack opening, collection
// @contact.name API Support
// @contact.url https://github.com/catnipgames/catpacks

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the collectible catalog
	if cfg.SeedCatalog {
		if err := database.SeedCatalog(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// Connect to the identity provider
	authService, err := services.NewAuthService(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize authorizer: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("catpacks")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health
	healthHandler := &handlers.HealthHandler{Cfg: cfg, DB: db}
	app.Get("/health", healthHandler.GetHealth)

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	dailyHandler := &handlers.DailyHandler{DB: db}
	packHandler := &handlers.PackHandler{DB: db, Rolls: services.DefaultRollSource()}
	profileHandler := &handlers.ProfileHandler{DB: db}
	collectionHandler := &handlers.CollectionHandler{DB: db}

	// Public routes
	api.Get("/catalog", collectionHandler.GetCatalog)

	// Authenticated routes
	authUser := middleware.AuthUser(authService)
	api.Post("/claim-daily", authUser, dailyHandler.ClaimDaily)
	api.Post("/open-pack", authUser, packHandler.OpenPack)
	api.Get("/me", authUser, profileHandler.GetMe)
	api.Get("/collection", authUser, collectionHandler.GetCollection)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":     "resource not found",
			"kind":      types.KindNotFound,
			"status":    fiber.StatusNotFound,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	kind := types.KindStoreFailure
	message := "unexpected server error"

	var ce *types.CustomError
	var fe *fiber.Error
	if errors.As(err, &ce) {
		status = ce.Code
		kind = ce.Kind
		message = ce.Message
	} else if errors.As(err, &fe) {
		status = fe.Code
		if fe.Code == fiber.StatusNotFound {
			kind = types.KindNotFound
		}
		message = fe.Message
	} else {
		log.Printf("unhandled error: %v", err)
	}

	return c.Status(status).JSON(fiber.Map{
		"error":     message,
		"kind":      kind,
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
	})
}
