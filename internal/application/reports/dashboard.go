// Package reports contiene los casos de uso de solo lectura: dashboard,
// reportes de ventas e inventario y exportaciones.
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

const (
	dashboardTopProducts = 5
	dashboardRecentSales = 10
)

// DashboardUseCase arma el resumen operativo: ventas de hoy/semana/mes,
// estado del inventario, usuarios y widgets de actividad.
//
// Todas las consultas delegan en ReportRepository (solo lectura); cada widget
// tolera consistencia por request.
type DashboardUseCase struct {
	reports repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(reports repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{reports: reports}
}

// GetSummary construye el DashboardResponse.
//
// Las consultas independientes corren en paralelo: tres resúmenes de ventas
// (hoy, semana, mes), stats de catálogo, stats de usuarios, la serie de los
// últimos 7 días, top productos, ventas recientes y métodos de pago del mes.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	weekStart := todayStart.AddDate(0, 0, -6) // últimos 7 días incluyendo hoy
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type summaryResult struct {
		summary repository.SalesSummary
		err     error
	}
	type productStatsResult struct {
		stats repository.ProductStats
		err   error
	}
	type userStatsResult struct {
		stats repository.UserStats
		err   error
	}
	type seriesResult struct {
		buckets []repository.SalesBucket
		err     error
	}
	type topResult struct {
		products []repository.TopProduct
		err      error
	}
	type recentResult struct {
		sales []repository.RecentSale
		err   error
	}
	type paymentsResult struct {
		methods []repository.PaymentMethodSales
		err     error
	}

	todayCh := make(chan summaryResult, 1)
	weekCh := make(chan summaryResult, 1)
	monthCh := make(chan summaryResult, 1)
	productsCh := make(chan productStatsResult, 1)
	usersCh := make(chan userStatsResult, 1)
	seriesCh := make(chan seriesResult, 1)
	topCh := make(chan topResult, 1)
	recentCh := make(chan recentResult, 1)
	paymentsCh := make(chan paymentsResult, 1)

	go func() {
		s, err := uc.reports.SalesSummary(ctx, todayStart, todayEnd, "")
		todayCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.reports.SalesSummary(ctx, weekStart, todayEnd, "")
		weekCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.reports.SalesSummary(ctx, monthStart, todayEnd, "")
		monthCh <- summaryResult{s, err}
	}()
	go func() {
		s, err := uc.reports.ProductStats(ctx)
		productsCh <- productStatsResult{s, err}
	}()
	go func() {
		s, err := uc.reports.UserStats(ctx)
		usersCh <- userStatsResult{s, err}
	}()
	go func() {
		b, err := uc.reports.SalesOverTime(ctx, weekStart, todayEnd, "day", "")
		seriesCh <- seriesResult{b, err}
	}()
	go func() {
		p, err := uc.reports.TopProducts(ctx, monthStart, dashboardTopProducts)
		topCh <- topResult{p, err}
	}()
	go func() {
		s, err := uc.reports.RecentSales(ctx, dashboardRecentSales)
		recentCh <- recentResult{s, err}
	}()
	go func() {
		m, err := uc.reports.SalesByPaymentMethod(ctx, monthStart, todayEnd, "")
		paymentsCh <- paymentsResult{m, err}
	}()

	today := <-todayCh
	week := <-weekCh
	month := <-monthCh
	products := <-productsCh
	users := <-usersCh
	series := <-seriesCh
	top := <-topCh
	recent := <-recentCh
	payments := <-paymentsCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if week.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de la semana: %w", week.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: stats de catálogo: %w", products.err)
	}
	if users.err != nil {
		return nil, fmt.Errorf("dashboard: stats de usuarios: %w", users.err)
	}
	if series.err != nil {
		return nil, fmt.Errorf("dashboard: serie de ventas: %w", series.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", top.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: ventas recientes: %w", recent.err)
	}
	if payments.err != nil {
		return nil, fmt.Errorf("dashboard: métodos de pago: %w", payments.err)
	}

	return &dto.DashboardResponse{
		Sales: dto.DashboardSales{
			Today: dto.DashboardSalesPeriod{TotalSales: today.summary.TotalSales, TotalRevenue: today.summary.TotalRevenue},
			Week:  dto.DashboardSalesPeriod{TotalSales: week.summary.TotalSales, TotalRevenue: week.summary.TotalRevenue},
			Month: dto.DashboardSalesPeriod{TotalSales: month.summary.TotalSales, TotalRevenue: month.summary.TotalRevenue},
		},
		Inventory: dto.DashboardInventory{
			TotalProducts:  products.stats.TotalProducts,
			ActiveProducts: products.stats.ActiveProducts,
			LowStockCount:  products.stats.LowStockCount,
			InventoryValue: products.stats.InventoryValue,
		},
		Users: dto.DashboardUsers{
			TotalUsers:  users.stats.TotalUsers,
			ActiveUsers: users.stats.ActiveUsers,
		},
		Charts: dto.DashboardCharts{
			SalesLast7Days: dto.ToSalesBucketResponses(series.buckets),
		},
		Recent:   dto.ToRecentSaleResponses(recent.sales),
		Top:      dto.ToTopProductResponses(top.products),
		Payments: dto.ToPaymentMethodResponses(payments.methods),
	}, nil
}
