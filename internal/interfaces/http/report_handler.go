package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/reports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/rbac"
)

// ReportHandler maneja dashboard, reportes y exportaciones. Los reportes de
// ventas aplican la restricción de vendedor; el resto exige view_reports.
type ReportHandler struct {
	dashboard *reports.DashboardUseCase
	sales     *reports.SalesReportUseCase
	inventory *reports.InventoryReportUseCase
	export    *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(
	dashboard *reports.DashboardUseCase,
	sales *reports.SalesReportUseCase,
	inventory *reports.InventoryReportUseCase,
	export *reports.ExportUseCase,
) *ReportHandler {
	return &ReportHandler{dashboard: dashboard, sales: sales, inventory: inventory, export: export}
}

// Dashboard godoc
// @Summary      Resumen operativo (dashboard)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.dashboard.GetSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReport godoc
// @Summary      Reporte de ventas por período
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto: hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (por defecto: hoy)"
// @Param        group_by    query  string  false  "day | week | month | year"
// @Param        category    query  string  false  "Filtrar por categoría"
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	var in dto.SalesReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.sales.Execute(c.Context(), in, salesRestriction(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DailyReport godoc
// @Summary      Reporte del día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "YYYY-MM-DD (por defecto: hoy)"
// @Success      200  {object}  dto.DailyReportResponse
// @Router       /api/reports/sales/daily [get]
func (h *ReportHandler) DailyReport(c *fiber.Ctx) error {
	out, err := h.sales.DailyReport(c.Context(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryReport godoc
// @Summary      Reporte valorizado de inventario
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Filtrar por categoría"
// @Param        status    query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.InventoryReportResponse
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) InventoryReport(c *fiber.Ctx) error {
	var in dto.InventoryReportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.inventory.Execute(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar datos como CSV o PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/octet-stream
// @Param        type    query  string  true   "sales | inventory | users"
// @Param        format  query  string  false  "csv (por defecto) | pdf"
// @Success      200  {file}  byte
// @Router       /api/reports/export [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	// Las ventas propias puede exportarlas cualquier usuario; inventario y
	// usuarios solo quien tiene view_reports.
	if in.Type != "sales" && !rbac.Can(GetRole(c), rbac.PermViewReports) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "permiso insuficiente"})
	}
	out, err := h.export.Execute(c.Context(), in, salesRestriction(c))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+out.FileName+`"`)
	return c.Send(out.Data)
}
