package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/reports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
	apphttp "github.com/jhoicas/PuntoVenta-api/internal/interfaces/http"
)

// reportRepoStub devuelve agregados vacíos; aquí solo interesa qué rol llega
// a qué ruta, no el contenido de los reportes.
type reportRepoStub struct {
	repository.ReportRepository
}

func (reportRepoStub) SalesSummary(ctx context.Context, start, end time.Time, salesPerson string) (repository.SalesSummary, error) {
	return repository.SalesSummary{}, nil
}

func (reportRepoStub) SalesOverTime(ctx context.Context, start, end time.Time, groupBy, salesPerson string) ([]repository.SalesBucket, error) {
	return nil, nil
}

func (reportRepoStub) SalesByCategory(ctx context.Context, start, end time.Time, category, salesPerson string) ([]repository.CategorySales, error) {
	return nil, nil
}

func (reportRepoStub) SalesByPaymentMethod(ctx context.Context, start, end time.Time, salesPerson string) ([]repository.PaymentMethodSales, error) {
	return nil, nil
}

func (reportRepoStub) SalesPersonPerformance(ctx context.Context, start, end time.Time) ([]repository.SalesPersonPerformance, error) {
	return nil, nil
}

func (reportRepoStub) ProductStats(ctx context.Context) (repository.ProductStats, error) {
	return repository.ProductStats{}, nil
}

func (reportRepoStub) TopProducts(ctx context.Context, since time.Time, limit int) ([]repository.TopProduct, error) {
	return nil, nil
}

func (reportRepoStub) RecentSales(ctx context.Context, limit int) ([]repository.RecentSale, error) {
	return nil, nil
}

func (reportRepoStub) UserStats(ctx context.Context) (repository.UserStats, error) {
	return repository.UserStats{}, nil
}

func (reportRepoStub) InventorySummary(ctx context.Context, category, status string) (repository.InventorySummary, error) {
	return repository.InventorySummary{}, nil
}

func (reportRepoStub) CategoryValue(ctx context.Context, category, status string) ([]repository.CategoryValue, error) {
	return nil, nil
}

func (reportRepoStub) TopValueProducts(ctx context.Context, category, status string, limit int) ([]repository.ProductValue, error) {
	return nil, nil
}

func (reportRepoStub) ExportSales(ctx context.Context, start, end *time.Time, salesPerson string) ([]repository.SaleExportRow, error) {
	return nil, nil
}

func (reportRepoStub) ExportInventory(ctx context.Context) ([]repository.InventoryExportRow, error) {
	return nil, nil
}

func (reportRepoStub) ExportUsers(ctx context.Context) ([]repository.UserExportRow, error) {
	return nil, nil
}

type productRepoStub struct {
	repository.ProductRepository
}

func (productRepoStub) ListLowStock() ([]*entity.Product, error) { return nil, nil }

type pdfStub struct{}

func (pdfStub) Generate(title string, headers []string, rows [][]string, truncated int) ([]byte, error) {
	return []byte("%PDF"), nil
}

// buildReportsApp monta el router real con los usecases de reportes sobre
// stubs, para probar la autorización ruta por ruta.
func buildReportsApp() *fiber.App {
	repo := reportRepoStub{}
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Dashboard:   reports.NewDashboardUseCase(repo),
		SalesReport: reports.NewSalesReportUseCase(repo),
		InventoryRp: reports.NewInventoryReportUseCase(repo, productRepoStub{}),
		Export:      reports.NewExportUseCase(repo, pdfStub{}),
		Tokens:      testManager(),
	})
	return app
}

func getAs(t *testing.T, app *fiber.App, role, path string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// El vendedor accede a sus propios reportes de ventas y al dashboard, aunque
// no tenga view_reports.
func TestReportRoutes_VendedorVeSusVentas(t *testing.T) {
	app := buildReportsApp()

	for _, path := range []string{
		"/api/reports/sales",
		"/api/reports/sales/daily",
		"/api/reports/dashboard",
		"/api/reports/export?type=sales",
	} {
		resp := getAs(t, app, entity.RoleSalesExecutive, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "ruta %s", path)
		resp.Body.Close()
	}
}

// Sin view_reports el inventario valorizado y las exportaciones de inventario
// y usuarios siguen vedadas.
func TestReportRoutes_VendedorBloqueadoFueraDeVentas(t *testing.T) {
	app := buildReportsApp()

	for _, path := range []string{
		"/api/reports/inventory",
		"/api/reports/export?type=inventory",
		"/api/reports/export?type=users",
	} {
		resp := getAs(t, app, entity.RoleSalesExecutive, path)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, "ruta %s", path)
		resp.Body.Close()
	}
}

// El contador conserva el acceso completo a reportes, incluido el dashboard.
func TestReportRoutes_ContadorVeTodo(t *testing.T) {
	app := buildReportsApp()

	for _, path := range []string{
		"/api/reports/dashboard",
		"/api/reports/sales",
		"/api/reports/inventory",
		"/api/reports/export?type=users",
	} {
		resp := getAs(t, app, entity.RoleAccountant, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, "ruta %s", path)
		resp.Body.Close()
	}
}
