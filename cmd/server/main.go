package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"corebank/internal/adapters/http/middleware"
	"corebank/internal/adapters/http/routes"
	"corebank/internal/adapters/persistence/models"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/config"
	"corebank/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "corebank/docs" // Swagger docs
)

// @title corebank API
// @version 1.0
// @description Banking back-office API: role-scoped account, transfer and loan operations.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase(db)

	// Auto migrate
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}
	log.Println("Database migration completed")

	// Seed master data (positions, account types, loan types)
	if err := config.SeedMasterData(db); err != nil {
		log.Printf("Warning: failed to seed master data: %v", err)
	}

	// Daily stale-pending-loan reminder
	loanRepo := repositories.NewLoanRepository(db)
	reminder := services.NewReminderService(loanRepo, cfg.Loan.StalePendingDays)
	reminder.Start()
	defer reminder.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "corebank API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	log.Printf("Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
