package reports

import (
	"context"
	"fmt"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

const topValueProducts = 10

// InventoryReportUseCase genera el reporte valorizado de inventario:
// resumen, desglose por categoría, productos de mayor valor y stock bajo.
type InventoryReportUseCase struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
}

// NewInventoryReportUseCase construye el caso de uso.
func NewInventoryReportUseCase(reports repository.ReportRepository, products repository.ProductRepository) *InventoryReportUseCase {
	return &InventoryReportUseCase{reports: reports, products: products}
}

// Execute arma el reporte aplicando los filtros de categoría y estado.
func (uc *InventoryReportUseCase) Execute(ctx context.Context, req dto.InventoryReportRequest) (*dto.InventoryReportResponse, error) {
	summary, err := uc.reports.InventorySummary(ctx, req.Category, req.Status)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: resumen: %w", err)
	}
	byCategory, err := uc.reports.CategoryValue(ctx, req.Category, req.Status)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: categorías: %w", err)
	}
	topValue, err := uc.reports.TopValueProducts(ctx, req.Category, req.Status, topValueProducts)
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: top valor: %w", err)
	}
	lowStock, err := uc.products.ListLowStock()
	if err != nil {
		return nil, fmt.Errorf("reporte de inventario: stock bajo: %w", err)
	}

	lowStockResp := make([]dto.ProductResponse, 0, len(lowStock))
	for _, p := range lowStock {
		lowStockResp = append(lowStockResp, dto.ToProductResponse(p))
	}

	return &dto.InventoryReportResponse{
		Summary: dto.InventorySummaryResponse{
			TotalProducts:     summary.TotalProducts,
			TotalQuantity:     summary.TotalQuantity,
			TotalCostValue:    summary.TotalCostValue,
			TotalSellingValue: summary.TotalSellingValue,
			LowStockCount:     summary.LowStockCount,
		},
		ByCategory:  dto.ToCategoryValueResponses(byCategory),
		TopProducts: dto.ToProductValueResponses(topValue),
		LowStock:    lowStockResp,
	}, nil
}
