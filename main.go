package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/flashfrancais/backend/config"
	"github.com/flashfrancais/backend/middleware"
	"github.com/flashfrancais/backend/routes"
	"github.com/flashfrancais/backend/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		logger.Fatalf("Error initializing database: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.MaxUploadSize) + 1<<20,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, logger)

	// Start server
	logger.Infow("starting server", "port", cfg.ServerPort, "env", cfg.Env)
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}
