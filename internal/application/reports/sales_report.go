package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// SalesReportUseCase genera el reporte de ventas agregado por período, con
// desgloses por categoría, método de pago y vendedor.
type SalesReportUseCase struct {
	reports repository.ReportRepository
}

// NewSalesReportUseCase construye el caso de uso.
func NewSalesReportUseCase(reports repository.ReportRepository) *SalesReportUseCase {
	return &SalesReportUseCase{reports: reports}
}

// Execute arma el reporte. Sin fechas, el rango por defecto son los últimos
// 30 días. restrictTo fuerza el filtro de vendedor (cuentas sin view_all_sales).
func (uc *SalesReportUseCase) Execute(ctx context.Context, req dto.SalesReportRequest, restrictTo string) (*dto.SalesReportResponse, error) {
	start, end, err := resolveRange(req.StartDate, req.EndDate, 30)
	if err != nil {
		return nil, err
	}

	groupBy := req.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}
	switch groupBy {
	case "day", "week", "month", "year":
	default:
		return nil, &domain.ValidationError{Field: "group_by", Message: "debe ser day, week, month o year"}
	}

	salesPerson := req.SalesPerson
	if restrictTo != "" {
		salesPerson = restrictTo
	}

	summary, err := uc.reports.SalesSummary(ctx, start, end, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: resumen: %w", err)
	}
	series, err := uc.reports.SalesOverTime(ctx, start, end, groupBy, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: serie: %w", err)
	}
	byCategory, err := uc.reports.SalesByCategory(ctx, start, end, req.Category, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: categorías: %w", err)
	}
	byPayment, err := uc.reports.SalesByPaymentMethod(ctx, start, end, salesPerson)
	if err != nil {
		return nil, fmt.Errorf("reporte de ventas: métodos de pago: %w", err)
	}

	resp := &dto.SalesReportResponse{
		StartDate:  start.Format("2006-01-02"),
		EndDate:    end.Format("2006-01-02"),
		GroupBy:    groupBy,
		Summary:    dto.ToSalesSummaryResponse(summary),
		Series:     dto.ToSalesBucketResponses(series),
		ByCategory: dto.ToCategorySalesResponses(byCategory),
		ByPayment:  dto.ToPaymentMethodResponses(byPayment),
	}

	// El desglose por vendedor solo tiene sentido sin restricción de vendedor.
	if restrictTo == "" {
		performance, err := uc.reports.SalesPersonPerformance(ctx, start, end)
		if err != nil {
			return nil, fmt.Errorf("reporte de ventas: vendedores: %w", err)
		}
		resp.Performance = dto.ToSalesPersonReportResponses(performance)
	}

	return resp, nil
}

// DailyReport arma el reporte del día indicado (hoy si date está vacío).
func (uc *SalesReportUseCase) DailyReport(ctx context.Context, date string) (*dto.DailyReportResponse, error) {
	var day time.Time
	if date == "" {
		day = time.Now()
	} else {
		var err error
		day, err = time.Parse("2006-01-02", date)
		if err != nil {
			return nil, &domain.ValidationError{Field: "date", Message: "formato esperado YYYY-MM-DD"}
		}
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)

	summary, err := uc.reports.SalesSummary(ctx, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("reporte diario: resumen: %w", err)
	}
	byPayment, err := uc.reports.SalesByPaymentMethod(ctx, start, end, "")
	if err != nil {
		return nil, fmt.Errorf("reporte diario: métodos de pago: %w", err)
	}
	top, err := uc.reports.TopProducts(ctx, start, dashboardTopProducts)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: top productos: %w", err)
	}
	recent, err := uc.reports.RecentSales(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("reporte diario: ventas: %w", err)
	}

	// RecentSales no filtra por fecha; nos quedamos con las del día.
	daySales := make([]repository.RecentSale, 0, len(recent))
	for _, s := range recent {
		if !s.SaleDate.Before(start) && !s.SaleDate.After(end) {
			daySales = append(daySales, s)
		}
	}

	return &dto.DailyReportResponse{
		Date:       start.Format("2006-01-02"),
		Summary:    dto.ToSalesSummaryResponse(summary),
		ByPayment:  dto.ToPaymentMethodResponses(byPayment),
		TopSellers: dto.ToTopProductResponses(top),
		Sales:      dto.ToRecentSaleResponses(daySales),
	}, nil
}

// resolveRange interpreta las fechas del request; sin fechas usa los últimos
// defaultDays días. El fin de rango es inclusivo (hasta el final del día).
func resolveRange(startDate, endDate string, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		Add(24*time.Hour - time.Nanosecond)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(defaultDays - 1))

	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.ValidationError{Field: "start_date", Message: "formato esperado YYYY-MM-DD"}
		}
		start = t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return time.Time{}, time.Time{}, &domain.ValidationError{Field: "end_date", Message: "formato esperado YYYY-MM-DD"}
		}
		end = t.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, &domain.ValidationError{Field: "end_date", Message: "debe ser posterior a start_date"}
	}
	return start, end, nil
}
