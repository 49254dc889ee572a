package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventario-ledger/internal/application/analytics"
	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	AccountUC     *usecase.AccountUseCase
	ItemUC        *usecase.ItemUseCase
	CategoryUC    *usecase.CategoryUseCase
	TransactionUC *inventory.TransactionUseCase
	ReportUC      *analytics.ReportUseCase
	JWTSecret     string
	// MetricsHandler si no es nil se expone en GET /metrics.
	MetricsHandler http.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	accounts := protected.Group("/accounts")
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.GetByID)
	accounts.Put("/:id", accountHandler.Update)
	accounts.Delete("/:id", accountHandler.Delete)

	itemHandler := NewItemHandler(deps.ItemUC, deps.CategoryUC)
	protected.Get("/categories", itemHandler.Categories)
	items := protected.Group("/items")
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/stats", itemHandler.Stats)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.TransactionUC, deps.ReportUC)
	transactions.Post("/", transactionHandler.Create)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/stats", transactionHandler.Stats)
	transactions.Get("/:id", transactionHandler.GetByID)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.TransactionUC)
	reports.Get("/inventory-value", reportHandler.InventoryValue)
	reports.Get("/disposal-profit", reportHandler.DisposalProfit)
	reports.Get("/trends", reportHandler.Trends)
	reports.Get("/account-balance", reportHandler.AccountBalance)
	reports.Get("/ledger-categories", reportHandler.LedgerCategories)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/ledger", reportHandler.Ledger)
	reports.Get("/ledger.xlsx", reportHandler.LedgerXLSX)
	reports.Get("/valuation.pdf", reportHandler.ValuationPDF)
}
