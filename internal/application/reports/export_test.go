package reports_test

import (
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/reports"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// stubReportRepo implementa solo los métodos de exportación; el resto de la
// interfaz embebida no se invoca en estas pruebas.
type stubReportRepo struct {
	repository.ReportRepository

	sales     []repository.SaleExportRow
	inventory []repository.InventoryExportRow
	users     []repository.UserExportRow

	// argumentos capturados de la última llamada a ExportSales
	gotStart, gotEnd *time.Time
	gotSalesPerson   string
}

func (r *stubReportRepo) ExportSales(ctx context.Context, start, end *time.Time, salesPerson string) ([]repository.SaleExportRow, error) {
	r.gotStart, r.gotEnd, r.gotSalesPerson = start, end, salesPerson
	return r.sales, nil
}

func (r *stubReportRepo) ExportInventory(ctx context.Context) ([]repository.InventoryExportRow, error) {
	return r.inventory, nil
}

func (r *stubReportRepo) ExportUsers(ctx context.Context) ([]repository.UserExportRow, error) {
	return r.users, nil
}

// stubPDF captura lo que se le pidió renderizar.
type stubPDF struct {
	gotTitle     string
	gotHeaders   []string
	gotRows      [][]string
	gotTruncated int
}

func (p *stubPDF) Generate(title string, headers []string, rows [][]string, truncated int) ([]byte, error) {
	p.gotTitle, p.gotHeaders, p.gotRows, p.gotTruncated = title, headers, rows, truncated
	return []byte("%PDF-1.4 fake"), nil
}

func saleRow(invoice string, total string) repository.SaleExportRow {
	return repository.SaleExportRow{
		InvoiceNumber: invoice,
		SaleDate:      "2026-09-01 10:30",
		CustomerName:  "Cliente General",
		SalesPerson:   "vendedor-1",
		TotalAmount:   decimal.RequireFromString(total),
		PaymentMethod: "cash",
		PaymentStatus: "paid",
		Status:        "completed",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Pruebas
// ──────────────────────────────────────────────────────────────────────────────

func TestExport_VentasCSV(t *testing.T) {
	repo := &stubReportRepo{sales: []repository.SaleExportRow{
		saleRow("INV-20260901-001", "718.20"),
		saleRow("INV-20260901-002", "119.00"),
	}}
	uc := reports.NewExportUseCase(repo, &stubPDF{})

	export, err := uc.Execute(context.Background(), dto.ExportRequest{Type: "sales"}, "")
	require.NoError(t, err)

	assert.Equal(t, "text/csv", export.ContentType)
	assert.True(t, strings.HasPrefix(export.FileName, "sales-"))
	assert.True(t, strings.HasSuffix(export.FileName, ".csv"))

	records, err := csv.NewReader(strings.NewReader(string(export.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "encabezado + 2 filas")
	assert.Equal(t, "Factura", records[0][0])
	assert.Equal(t, "INV-20260901-001", records[1][0])
	assert.Equal(t, "718.20", records[1][4])
	assert.Equal(t, "INV-20260901-002", records[2][0])
}

func TestExport_FormatoPorDefectoEsCSV(t *testing.T) {
	repo := &stubReportRepo{users: []repository.UserExportRow{
		{Username: "admin", FullName: "Administrador", Email: "admin@local", Role: "super_admin", IsActive: true, LastLogin: "nunca", CreatedAt: "2026-01-15"},
	}}
	uc := reports.NewExportUseCase(repo, &stubPDF{})

	export, err := uc.Execute(context.Background(), dto.ExportRequest{Type: "users"}, "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", export.ContentType)
	assert.Contains(t, string(export.Data), "admin@local")
	assert.Contains(t, string(export.Data), "sí", "IsActive se traduce a sí/no")
}

func TestExport_RangoYRestriccionDeVendedor(t *testing.T) {
	repo := &stubReportRepo{}
	uc := reports.NewExportUseCase(repo, &stubPDF{})

	_, err := uc.Execute(context.Background(), dto.ExportRequest{
		Type:        "sales",
		StartDate:   "2026-08-01",
		EndDate:     "2026-08-31",
		SalesPerson: "otro-vendedor",
	}, "vendedor-restringido")
	require.NoError(t, err)

	require.NotNil(t, repo.gotStart)
	require.NotNil(t, repo.gotEnd)
	assert.Equal(t, "2026-08-01", repo.gotStart.Format("2006-01-02"))
	// El fin de rango es inclusivo: cubre todo el 31 de agosto.
	assert.Equal(t, "2026-08-31", repo.gotEnd.Format("2006-01-02"))
	assert.Equal(t, "vendedor-restringido", repo.gotSalesPerson,
		"la restricción del rol pisa el filtro pedido")
}

func TestExport_PDFTruncaFilas(t *testing.T) {
	var rows []repository.SaleExportRow
	for i := 0; i < 40; i++ {
		rows = append(rows, saleRow(fmt.Sprintf("INV-20260901-%03d", i+1), "100.00"))
	}
	repo := &stubReportRepo{sales: rows}
	pdf := &stubPDF{}
	uc := reports.NewExportUseCase(repo, pdf)

	export, err := uc.Execute(context.Background(), dto.ExportRequest{Type: "sales", Format: "pdf"}, "")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", export.ContentType)
	assert.True(t, strings.HasSuffix(export.FileName, ".pdf"))
	assert.Equal(t, "Reporte de Ventas", pdf.gotTitle)
	assert.Len(t, pdf.gotRows, 25, "el PDF solo lleva las primeras filas")
	assert.Equal(t, 15, pdf.gotTruncated)
}

func TestExport_PDFSinTruncar(t *testing.T) {
	repo := &stubReportRepo{inventory: []repository.InventoryExportRow{
		{Name: "Cuaderno", SKU: "BOOK-001", Category: "Papelería", Quantity: 50, MinStockLevel: 5,
			CostPrice: decimal.RequireFromString("199.50"), SellingPrice: decimal.RequireFromString("399.00"),
			TotalValue: decimal.RequireFromString("9975.00"), Status: "active"},
	}}
	pdf := &stubPDF{}
	uc := reports.NewExportUseCase(repo, pdf)

	_, err := uc.Execute(context.Background(), dto.ExportRequest{Type: "inventory", Format: "pdf"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Reporte de Inventario", pdf.gotTitle)
	assert.Len(t, pdf.gotRows, 1)
	assert.Zero(t, pdf.gotTruncated)
}

func TestExport_Validaciones(t *testing.T) {
	uc := reports.NewExportUseCase(&stubReportRepo{}, &stubPDF{})

	testCases := []struct {
		name string
		req  dto.ExportRequest
	}{
		{"tipo desconocido", dto.ExportRequest{Type: "clientes"}},
		{"formato desconocido", dto.ExportRequest{Type: "sales", Format: "xlsx"}},
		{"fecha malformada", dto.ExportRequest{Type: "sales", StartDate: "01/08/2026"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tc.req, "")
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
