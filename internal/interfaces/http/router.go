package http

import (
	"github.com/gofiber/fiber/v2"

	appauth "github.com/jhoicas/ims-backend/internal/application/auth"
	"github.com/jhoicas/ims-backend/internal/application/catalog"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
	"github.com/jhoicas/ims-backend/internal/application/report"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC     *catalog.ProductUseCase
	ProductTypeUC *catalog.ProductTypeUseCase
	SupplierUC    *catalog.SupplierUseCase
	ClientUC      *catalog.ClientUseCase
	ApplyUC       *ledger.ApplyTransactionUseCase
	HistoryUC     *ledger.HistoryUseCase
	ReportUC      *report.UseCase
	AuthUC        *appauth.UseCase
	Formatters    []report.Formatter
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/api-token-auth", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	reportHandler := NewReportHandler(deps.ReportUC, deps.Formatters...)

	// Products (las rutas fijas van antes que /:id)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/low_stock", productHandler.LowStock)
	products.Get("/stats", productHandler.Stats)
	products.Get("/wastage_stats", reportHandler.WastageStats)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Product types
	types := api.Group("/product-types")
	typeHandler := NewProductTypeHandler(deps.ProductTypeUC)
	types.Post("/", typeHandler.Create)
	types.Get("/", typeHandler.List)
	types.Get("/:id", typeHandler.GetByID)
	types.Put("/:id", typeHandler.Update)
	types.Delete("/:id", typeHandler.Delete)

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
	suppliers.Get("/:id/transactions", supplierHandler.Transactions)
	suppliers.Get("/:id/products", supplierHandler.Products)

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)
	clients.Get("/:id/transactions", clientHandler.Transactions)
	clients.Get("/:id/products", clientHandler.Products)

	// Ledger (movimientos de stock)
	stockHandler := NewStockHandler(deps.ApplyUC, deps.HistoryUC)
	api.Post("/stock/update", stockHandler.Update)
	api.Get("/stock-history", stockHandler.History)
	api.Get("/stock-history/:id", stockHandler.HistoryDetail)

	// Reports
	api.Get("/reports", reportHandler.Query)
	api.Get("/reports/download", reportHandler.Download)
}
