package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Resultados de agregación para reportes (solo lectura).

// SalesSummary totales de un rango de fechas (excluye ventas canceladas).
type SalesSummary struct {
	TotalSales        int
	TotalRevenue      decimal.Decimal
	TotalDiscount     decimal.Decimal
	TotalTax          decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// SalesBucket un punto de la serie temporal de ventas.
type SalesBucket struct {
	Period            string // etiqueta según agrupación: 2024-01-15, 2024-W03, 2024-01, 2024
	TotalSales        int
	TotalRevenue      decimal.Decimal
	TotalDiscount     decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// CategorySales ventas agregadas por categoría de producto.
type CategorySales struct {
	Category      string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
	TotalSales    int
}

// PaymentMethodSales ventas agregadas por método de pago.
type PaymentMethodSales struct {
	Method      string
	Count       int
	TotalAmount decimal.Decimal
}

// SalesPersonPerformance desempeño por vendedor.
type SalesPersonPerformance struct {
	SalesPersonID     string
	FullName          string
	TotalSales        int
	TotalRevenue      decimal.Decimal
	AverageOrderValue decimal.Decimal
}

// ProductStats conteos globales del catálogo.
type ProductStats struct {
	TotalProducts   int
	ActiveProducts  int
	LowStockCount   int
	InventoryValue  decimal.Decimal // Σ quantity × cost_price
}

// TopProduct producto más vendido en un período.
type TopProduct struct {
	ProductID     string
	ProductName   string
	TotalQuantity int
	TotalRevenue  decimal.Decimal
}

// RecentSale fila ligera para el widget de ventas recientes.
type RecentSale struct {
	ID            string
	InvoiceNumber string
	TotalAmount   decimal.Decimal
	SaleDate      time.Time
	CustomerName  string
	SalesPerson   string
}

// UserStats conteos de usuarios.
type UserStats struct {
	TotalUsers  int
	ActiveUsers int
}

// InventorySummary resumen del inventario.
type InventorySummary struct {
	TotalProducts     int
	TotalQuantity     int
	TotalCostValue    decimal.Decimal
	TotalSellingValue decimal.Decimal
	LowStockCount     int
}

// CategoryValue valor de inventario por categoría.
type CategoryValue struct {
	Category            string
	TotalProducts       int
	TotalQuantity       int
	TotalCostValue      decimal.Decimal
	TotalSellingValue   decimal.Decimal
	AverageCostPrice    decimal.Decimal
	AverageSellingPrice decimal.Decimal
}

// ProductValue producto valorizado (quantity × cost_price).
type ProductValue struct {
	ProductID    string
	Name         string
	SKU          string
	Category     string
	Quantity     int
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	TotalValue   decimal.Decimal
}

// Filas planas para exportación CSV/PDF.

// SaleExportRow fila de exportación de ventas.
type SaleExportRow struct {
	InvoiceNumber string
	SaleDate      string
	CustomerName  string
	SalesPerson   string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PaymentStatus string
	Status        string
}

// InventoryExportRow fila de exportación de inventario.
type InventoryExportRow struct {
	Name          string
	SKU           string
	Category      string
	Quantity      int
	MinStockLevel int
	CostPrice     decimal.Decimal
	SellingPrice  decimal.Decimal
	TotalValue    decimal.Decimal
	Status        string
	IsLowStock    bool
}

// UserExportRow fila de exportación de usuarios.
type UserExportRow struct {
	Username  string
	FullName  string
	Email     string
	Role      string
	IsActive  bool
	LastLogin string
	CreatedAt string
}

// ReportRepository consultas de solo lectura para dashboard, reportes y
// exportaciones. No muta estado; tolera consistencia por request.
type ReportRepository interface {
	SalesSummary(ctx context.Context, start, end time.Time, salesPerson string) (SalesSummary, error)
	SalesOverTime(ctx context.Context, start, end time.Time, groupBy, salesPerson string) ([]SalesBucket, error)
	SalesByCategory(ctx context.Context, start, end time.Time, category, salesPerson string) ([]CategorySales, error)
	SalesByPaymentMethod(ctx context.Context, start, end time.Time, salesPerson string) ([]PaymentMethodSales, error)
	SalesPersonPerformance(ctx context.Context, start, end time.Time) ([]SalesPersonPerformance, error)

	ProductStats(ctx context.Context) (ProductStats, error)
	TopProducts(ctx context.Context, since time.Time, limit int) ([]TopProduct, error)
	RecentSales(ctx context.Context, limit int) ([]RecentSale, error)
	UserStats(ctx context.Context) (UserStats, error)

	InventorySummary(ctx context.Context, category, status string) (InventorySummary, error)
	CategoryValue(ctx context.Context, category, status string) ([]CategoryValue, error)
	TopValueProducts(ctx context.Context, category, status string, limit int) ([]ProductValue, error)

	ExportSales(ctx context.Context, start, end *time.Time, salesPerson string) ([]SaleExportRow, error)
	ExportInventory(ctx context.Context) ([]InventoryExportRow, error)
	ExportUsers(ctx context.Context) ([]UserExportRow, error)
}
