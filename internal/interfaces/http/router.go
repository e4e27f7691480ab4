package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marjoc/farmacia-api/internal/application/auth"
	"github.com/marjoc/farmacia-api/internal/application/policy"
	"github.com/marjoc/farmacia-api/internal/application/reports"
	"github.com/marjoc/farmacia-api/internal/application/sales"
	"github.com/marjoc/farmacia-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DashboardUC *usecase.DashboardUseCase
	CustomerUC  *usecase.CustomerUseCase
	ProductUC   *usecase.ProductUseCase
	CommitSale  *sales.CommitSaleUseCase
	ListSales   *sales.ListSalesUseCase
	ReportUC    *reports.ReportUseCase
}

// Router registra las rutas de la API. Cada grupo protegido lleva el
// middleware de identidad más el gate del recurso que le corresponde.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Get("/bootstrap", authHandler.BootstrapStatus)
	authGroup.Post("/bootstrap", authHandler.Bootstrap)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.AuthUC), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", RequireResource(policy.ResourceDashboard), dashboardHandler.Summary)

	// Customers
	customers := protected.Group("/customers", RequireResource(policy.ResourceCustomers))
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (incluye el commit de venta)
	products := protected.Group("/products", RequireResource(policy.ResourceProducts))
	productHandler := NewProductHandler(deps.ProductUC, deps.CommitSale)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Post("/:id/sell", productHandler.Sell)

	// Sales history + reports
	saleHandler := NewSaleHandler(deps.ListSales)
	protected.Get("/sales", RequireResource(policy.ResourceReports), saleHandler.List)

	reportsGroup := protected.Group("/reports", RequireResource(policy.ResourceReports))
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/export", reportHandler.Export)

	// Users (solo administradores)
	users := protected.Group("/users", RequireResource(policy.ResourceUsers))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Delete("/:id", userHandler.Delete)
}
