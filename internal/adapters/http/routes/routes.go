package routes

import (
	"corebank/internal/adapters/http/handlers"
	"corebank/internal/adapters/http/middleware"
	"corebank/internal/adapters/persistence/repositories"
	"corebank/internal/config"
	"corebank/internal/core/domain"
	"corebank/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers, then registers the
// route table. Every route touching balances, loan status or another
// principal's data sits behind Protected plus an explicit role gate.
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	masterRepo := repositories.NewMasterRepository(db)

	// Services
	authService := services.NewAuthService(employeeRepo, customerRepo, cfg)
	transferService := services.NewTransferService(accountRepo, transactionRepo, employeeRepo)
	loanService := services.NewLoanService(loanRepo, accountRepo, employeeRepo, masterRepo)
	accountService := services.NewAccountService(accountRepo, customerRepo, employeeRepo, masterRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(authService)
	accountHandler := handlers.NewAccountHandler(accountService)
	transactionHandler := handlers.NewTransactionHandler(transferService)
	loanHandler := handlers.NewLoanHandler(loanService)

	// Health & docs
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiV1 := app.Group("/api/v1")

	// Gates. Authentication always runs first; the role gates re-derive
	// the caller's role from storage on every request.
	protected := middleware.Protected(cfg)
	customerOnly := middleware.CustomerOnly(authService)
	employeeOnly := middleware.EmployeeOnly(authService)
	managerOnly := middleware.ManagerOnly(authService)
	technicianOnly := middleware.TechnicianOnly(authService)

	// Auth
	auth := apiV1.Group("/auth")
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/change-password", protected, authHandler.ChangePassword)

	// Accounts
	accounts := apiV1.Group("/accounts", protected)
	accounts.Get("/summary", customerOnly, accountHandler.Summary)
	accounts.Get("/types", employeeOnly, accountHandler.Types)
	accounts.Post("/open", employeeOnly, accountHandler.Open)

	// Transactions
	transactions := apiV1.Group("/transactions", protected)
	transactions.Post("/transfer", customerOnly, transactionHandler.Transfer)
	transactions.Get("/recent", employeeOnly, transactionHandler.RecentForEmployee)
	transactions.Get("/recent/mine", customerOnly, transactionHandler.RecentByCustomer)
	transactions.Get("/recent/branch/:branchId", managerOnly, transactionHandler.RecentByBranch)
	transactions.Get("/recent/account/:accountNumber", customerOnly, transactionHandler.RecentByAccount)

	// Loans
	loans := apiV1.Group("/loans", protected)
	loans.Get("/", customerOnly, loanHandler.List)
	// Explicit allow-list: both customers and general staff may browse types
	loans.Get("/types", middleware.RequireRole(authService,
		domain.RoleCustomer, domain.RoleEmployee), loanHandler.Types)
	loans.Get("/pending", managerOnly, loanHandler.Pending)
	loans.Post("/request", customerOnly, loanHandler.Request)
	loans.Post("/request-by-employee", employeeOnly, loanHandler.RequestByEmployee)
	loans.Get("/:id", customerOnly, loanHandler.Details)
	loans.Put("/:id/decision", managerOnly, loanHandler.Decide)

	// Branches (technician lookup)
	apiV1.Get("/branches", protected, technicianOnly, accountHandler.Branches)
}
