package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// pdfMaxRows limita las filas del PDF; el detalle completo va en el CSV.
const pdfMaxRows = 25

// PDFGenerator renderiza una tabla como documento PDF.
type PDFGenerator interface {
	Generate(title string, headers []string, rows [][]string, truncated int) ([]byte, error)
}

// Export contenido y metadatos del archivo exportado.
type Export struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportUseCase exporta ventas, inventario o usuarios como CSV o PDF.
type ExportUseCase struct {
	reports repository.ReportRepository
	pdf     PDFGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(reports repository.ReportRepository, pdf PDFGenerator) *ExportUseCase {
	return &ExportUseCase{reports: reports, pdf: pdf}
}

// Execute genera la exportación pedida. restrictTo fuerza el filtro de
// vendedor en la exportación de ventas.
func (uc *ExportUseCase) Execute(ctx context.Context, req dto.ExportRequest, restrictTo string) (*Export, error) {
	format := req.Format
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, &domain.ValidationError{Field: "format", Message: "debe ser csv o pdf"}
	}

	var (
		title   string
		headers []string
		rows    [][]string
	)

	switch req.Type {
	case "sales":
		start, end, err := parseOptionalRange(req.StartDate, req.EndDate)
		if err != nil {
			return nil, err
		}
		salesPerson := req.SalesPerson
		if restrictTo != "" {
			salesPerson = restrictTo
		}
		data, err := uc.reports.ExportSales(ctx, start, end, salesPerson)
		if err != nil {
			return nil, fmt.Errorf("exportando ventas: %w", err)
		}
		title = "Reporte de Ventas"
		headers = []string{"Factura", "Fecha", "Cliente", "Vendedor", "Total", "Método de Pago", "Estado de Pago", "Estado"}
		rows = make([][]string, 0, len(data))
		for _, r := range data {
			rows = append(rows, []string{
				r.InvoiceNumber, r.SaleDate, r.CustomerName, r.SalesPerson,
				r.TotalAmount.StringFixed(2), r.PaymentMethod, r.PaymentStatus, r.Status,
			})
		}

	case "inventory":
		data, err := uc.reports.ExportInventory(ctx)
		if err != nil {
			return nil, fmt.Errorf("exportando inventario: %w", err)
		}
		title = "Reporte de Inventario"
		headers = []string{"Producto", "SKU", "Categoría", "Cantidad", "Stock Mínimo", "Costo", "Precio", "Valor Total", "Estado", "Stock Bajo"}
		rows = make([][]string, 0, len(data))
		for _, r := range data {
			lowStock := "no"
			if r.IsLowStock {
				lowStock = "sí"
			}
			rows = append(rows, []string{
				r.Name, r.SKU, r.Category,
				fmt.Sprintf("%d", r.Quantity), fmt.Sprintf("%d", r.MinStockLevel),
				r.CostPrice.StringFixed(2), r.SellingPrice.StringFixed(2), r.TotalValue.StringFixed(2),
				r.Status, lowStock,
			})
		}

	case "users":
		data, err := uc.reports.ExportUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("exportando usuarios: %w", err)
		}
		title = "Reporte de Usuarios"
		headers = []string{"Usuario", "Nombre", "Email", "Rol", "Activo", "Último Acceso", "Creado"}
		rows = make([][]string, 0, len(data))
		for _, r := range data {
			active := "no"
			if r.IsActive {
				active = "sí"
			}
			rows = append(rows, []string{
				r.Username, r.FullName, r.Email, r.Role, active, r.LastLogin, r.CreatedAt,
			})
		}

	default:
		return nil, &domain.ValidationError{Field: "type", Message: "debe ser sales, inventory o users"}
	}

	stamp := time.Now().Format("20060102-150405")

	if format == "csv" {
		data, err := renderCSV(headers, rows)
		if err != nil {
			return nil, err
		}
		return &Export{
			FileName:    fmt.Sprintf("%s-%s.csv", req.Type, stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}

	// PDF: solo las primeras filas, con nota de truncado.
	truncated := 0
	pdfRows := rows
	if len(rows) > pdfMaxRows {
		truncated = len(rows) - pdfMaxRows
		pdfRows = rows[:pdfMaxRows]
	}
	data, err := uc.pdf.Generate(title, headers, pdfRows, truncated)
	if err != nil {
		return nil, fmt.Errorf("generando PDF: %w", err)
	}
	return &Export{
		FileName:    fmt.Sprintf("%s-%s.pdf", req.Type, stamp),
		ContentType: "application/pdf",
		Data:        data,
	}, nil
}

// renderCSV serializa encabezados y filas como CSV.
func renderCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseOptionalRange interpreta fechas opcionales YYYY-MM-DD; el fin de rango
// es inclusivo.
func parseOptionalRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		t, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, &domain.ValidationError{Field: "start_date", Message: "formato esperado YYYY-MM-DD"}
		}
		start = &t
	}
	if endDate != "" {
		t, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, &domain.ValidationError{Field: "end_date", Message: "formato esperado YYYY-MM-DD"}
		}
		e := t.Add(24*time.Hour - time.Nanosecond)
		end = &e
	}
	return start, end, nil
}
