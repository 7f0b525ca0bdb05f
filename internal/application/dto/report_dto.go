package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// DashboardResponse respuesta del dashboard principal.
type DashboardResponse struct {
	Sales     DashboardSales          `json:"sales"`
	Inventory DashboardInventory      `json:"inventory"`
	Users     DashboardUsers          `json:"users"`
	Charts    DashboardCharts         `json:"charts"`
	Recent    []RecentSaleResponse    `json:"recent_sales"`
	Top       []TopProductResponse    `json:"top_products"`
	Payments  []PaymentMethodResponse `json:"payment_methods"`
}

// DashboardSales métricas de ventas para hoy, semana y mes.
type DashboardSales struct {
	Today DashboardSalesPeriod `json:"today"`
	Week  DashboardSalesPeriod `json:"week"`
	Month DashboardSalesPeriod `json:"month"`
}

// DashboardSalesPeriod métricas de un período.
type DashboardSalesPeriod struct {
	TotalSales   int             `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DashboardInventory métricas de catálogo e inventario.
type DashboardInventory struct {
	TotalProducts  int             `json:"total_products"`
	ActiveProducts int             `json:"active_products"`
	LowStockCount  int             `json:"low_stock_count"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// DashboardUsers métricas de usuarios.
type DashboardUsers struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
}

// DashboardCharts series para gráficos del dashboard.
type DashboardCharts struct {
	SalesLast7Days []SalesBucketResponse `json:"sales_last_7_days"`
}

// SalesBucketResponse punto de serie temporal.
type SalesBucketResponse struct {
	Period            string          `json:"period"`
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// RecentSaleResponse venta reciente para el dashboard.
type RecentSaleResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	SaleDate      time.Time       `json:"sale_date"`
	CustomerName  string          `json:"customer_name"`
	SalesPerson   string          `json:"sales_person"`
}

// TopProductResponse producto más vendido.
type TopProductResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// PaymentMethodResponse agregado por método de pago.
type PaymentMethodResponse struct {
	Method      string          `json:"method"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// SalesReportRequest parámetros del reporte de ventas.
type SalesReportRequest struct {
	StartDate   string `json:"start_date" query:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date" query:"end_date"`     // YYYY-MM-DD
	GroupBy     string `json:"group_by" query:"group_by"`     // day, week, month, year
	Category    string `json:"category" query:"category"`
	SalesPerson string `json:"sales_person" query:"sales_person"`
}

// SalesReportResponse reporte de ventas agregado.
type SalesReportResponse struct {
	StartDate   string                       `json:"start_date"`
	EndDate     string                       `json:"end_date"`
	GroupBy     string                       `json:"group_by"`
	Summary     SalesSummaryResponse         `json:"summary"`
	Series      []SalesBucketResponse        `json:"series"`
	ByCategory  []CategorySalesResponse      `json:"by_category"`
	ByPayment   []PaymentMethodResponse      `json:"by_payment_method"`
	Performance []SalesPersonReportResponse  `json:"sales_person_performance,omitempty"`
}

// SalesSummaryResponse totales del rango del reporte.
type SalesSummaryResponse struct {
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalDiscount     decimal.Decimal `json:"total_discount"`
	TotalTax          decimal.Decimal `json:"total_tax"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// CategorySalesResponse agregado por categoría.
type CategorySalesResponse struct {
	Category      string          `json:"category"`
	TotalQuantity int             `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalSales    int             `json:"total_sales"`
}

// SalesPersonReportResponse desempeño por vendedor.
type SalesPersonReportResponse struct {
	SalesPersonID     string          `json:"sales_person_id"`
	FullName          string          `json:"full_name"`
	TotalSales        int             `json:"total_sales"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

// InventoryReportRequest parámetros del reporte de inventario.
type InventoryReportRequest struct {
	Category string `json:"category" query:"category"`
	Status   string `json:"status" query:"status"`
}

// InventoryReportResponse reporte valorizado de inventario.
type InventoryReportResponse struct {
	Summary     InventorySummaryResponse `json:"summary"`
	ByCategory  []CategoryValueResponse  `json:"by_category"`
	TopProducts []ProductValueResponse   `json:"top_value_products"`
	LowStock    []ProductResponse        `json:"low_stock_products"`
}

// InventorySummaryResponse totales del inventario.
type InventorySummaryResponse struct {
	TotalProducts     int             `json:"total_products"`
	TotalQuantity     int             `json:"total_quantity"`
	TotalCostValue    decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue decimal.Decimal `json:"total_selling_value"`
	LowStockCount     int             `json:"low_stock_count"`
}

// CategoryValueResponse valor de inventario por categoría.
type CategoryValueResponse struct {
	Category            string          `json:"category"`
	TotalProducts       int             `json:"total_products"`
	TotalQuantity       int             `json:"total_quantity"`
	TotalCostValue      decimal.Decimal `json:"total_cost_value"`
	TotalSellingValue   decimal.Decimal `json:"total_selling_value"`
	AverageCostPrice    decimal.Decimal `json:"average_cost_price"`
	AverageSellingPrice decimal.Decimal `json:"average_selling_price"`
}

// ProductValueResponse producto valorizado.
type ProductValueResponse struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Category     string          `json:"category"`
	Quantity     int             `json:"quantity"`
	CostPrice    decimal.Decimal `json:"cost_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// DailyReportResponse reporte del día.
type DailyReportResponse struct {
	Date       string                  `json:"date"`
	Summary    SalesSummaryResponse    `json:"summary"`
	ByPayment  []PaymentMethodResponse `json:"by_payment_method"`
	TopSellers []TopProductResponse    `json:"top_products"`
	Sales      []RecentSaleResponse    `json:"sales"`
}

// ExportRequest parámetros de exportación.
type ExportRequest struct {
	Type        string `json:"type" query:"type"`     // sales, inventory, users
	Format      string `json:"format" query:"format"` // csv, pdf
	StartDate   string `json:"start_date" query:"start_date"`
	EndDate     string `json:"end_date" query:"end_date"`
	SalesPerson string `json:"sales_person" query:"sales_person"`
}

// Conversores desde los resultados del repositorio.

func ToSalesBucketResponses(buckets []repository.SalesBucket) []SalesBucketResponse {
	out := make([]SalesBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, SalesBucketResponse{
			Period:            b.Period,
			TotalSales:        b.TotalSales,
			TotalRevenue:      b.TotalRevenue,
			TotalDiscount:     b.TotalDiscount,
			AverageOrderValue: b.AverageOrderValue,
		})
	}
	return out
}

func ToSalesSummaryResponse(s repository.SalesSummary) SalesSummaryResponse {
	return SalesSummaryResponse{
		TotalSales:        s.TotalSales,
		TotalRevenue:      s.TotalRevenue,
		TotalDiscount:     s.TotalDiscount,
		TotalTax:          s.TotalTax,
		AverageOrderValue: s.AverageOrderValue,
	}
}

func ToCategorySalesResponses(rows []repository.CategorySales) []CategorySalesResponse {
	out := make([]CategorySalesResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategorySalesResponse{
			Category:      r.Category,
			TotalQuantity: r.TotalQuantity,
			TotalRevenue:  r.TotalRevenue,
			TotalSales:    r.TotalSales,
		})
	}
	return out
}

func ToPaymentMethodResponses(rows []repository.PaymentMethodSales) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentMethodResponse{
			Method:      r.Method,
			Count:       r.Count,
			TotalAmount: r.TotalAmount,
		})
	}
	return out
}

func ToSalesPersonReportResponses(rows []repository.SalesPersonPerformance) []SalesPersonReportResponse {
	out := make([]SalesPersonReportResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, SalesPersonReportResponse{
			SalesPersonID:     r.SalesPersonID,
			FullName:          r.FullName,
			TotalSales:        r.TotalSales,
			TotalRevenue:      r.TotalRevenue,
			AverageOrderValue: r.AverageOrderValue,
		})
	}
	return out
}

func ToRecentSaleResponses(rows []repository.RecentSale) []RecentSaleResponse {
	out := make([]RecentSaleResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, RecentSaleResponse{
			ID:            r.ID,
			InvoiceNumber: r.InvoiceNumber,
			TotalAmount:   r.TotalAmount,
			SaleDate:      r.SaleDate,
			CustomerName:  r.CustomerName,
			SalesPerson:   r.SalesPerson,
		})
	}
	return out
}

func ToTopProductResponses(rows []repository.TopProduct) []TopProductResponse {
	out := make([]TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopProductResponse{
			ProductID:     r.ProductID,
			ProductName:   r.ProductName,
			TotalQuantity: r.TotalQuantity,
			TotalRevenue:  r.TotalRevenue,
		})
	}
	return out
}

func ToCategoryValueResponses(rows []repository.CategoryValue) []CategoryValueResponse {
	out := make([]CategoryValueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryValueResponse{
			Category:            r.Category,
			TotalProducts:       r.TotalProducts,
			TotalQuantity:       r.TotalQuantity,
			TotalCostValue:      r.TotalCostValue,
			TotalSellingValue:   r.TotalSellingValue,
			AverageCostPrice:    r.AverageCostPrice,
			AverageSellingPrice: r.AverageSellingPrice,
		})
	}
	return out
}

func ToProductValueResponses(rows []repository.ProductValue) []ProductValueResponse {
	out := make([]ProductValueResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductValueResponse{
			ProductID:    r.ProductID,
			Name:         r.Name,
			SKU:          r.SKU,
			Category:     r.Category,
			Quantity:     r.Quantity,
			CostPrice:    r.CostPrice,
			SellingPrice: r.SellingPrice,
			TotalValue:   r.TotalValue,
		})
	}
	return out
}
