package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/auth"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/application/reports"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/application/usecase"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/rbac"
	"github.com/jhoicas/PuntoVenta-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	AdjustStock *inventory.AdjustStockUseCase
	CreateSale  *sales.CreateSaleUseCase
	RefundSale  *sales.RefundSaleUseCase
	SaleUC      *sales.SaleUseCase
	Dashboard   *reports.DashboardUseCase
	SalesReport *reports.SalesReportUseCase
	InventoryRp *reports.InventoryReportUseCase
	Export      *reports.ExportUseCase
	Tokens      *jwt.Manager
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.Tokens))

	// Products: lectura para cualquier usuario autenticado, escritura y
	// ajustes de stock solo con manage_inventory.
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.AdjustStock)
	products.Get("/", productHandler.List)
	products.Get("/alerts/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequirePermission(rbac.PermManageInventory), productHandler.Create)
	products.Put("/:id", RequirePermission(rbac.PermManageInventory), productHandler.Update)
	products.Delete("/:id", RequirePermission(rbac.PermManageInventory), productHandler.Delete)
	products.Patch("/:id/stock", RequirePermission(rbac.PermManageInventory), productHandler.AdjustStock)

	// Sales: registrar y reembolsar con make_sales; lectura restringida al
	// propio vendedor salvo view_all_sales.
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.RefundSale, deps.SaleUC)
	salesGroup.Post("/", RequirePermission(rbac.PermMakeSales), saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", RequirePermission(rbac.PermMakeSales), saleHandler.Update)
	salesGroup.Post("/:id/refund", RequirePermission(rbac.PermMakeSales), saleHandler.Refund)

	// Users (solo manage_users)
	users := protected.Group("/users", RequirePermission(rbac.PermManageUsers))
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/stats", userHandler.Stats)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Reports: los reportes de ventas y la exportación están abiertos a
	// cualquier usuario autenticado (los vendedores solo ven lo propio vía
	// salesRestriction); el inventario valorizado exige view_reports y el
	// dashboard sirve tanto a quien vende como a quien reporta.
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Dashboard, deps.SalesReport, deps.InventoryRp, deps.Export)
	reportsGroup.Get("/dashboard", RequireAnyPermission(rbac.PermMakeSales, rbac.PermViewReports), reportHandler.Dashboard)
	reportsGroup.Get("/sales", reportHandler.SalesReport)
	reportsGroup.Get("/sales/daily", reportHandler.DailyReport)
	reportsGroup.Get("/inventory", RequirePermission(rbac.PermViewReports), reportHandler.InventoryReport)
	reportsGroup.Get("/export", reportHandler.Export)
}
