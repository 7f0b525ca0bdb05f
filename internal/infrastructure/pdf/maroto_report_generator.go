// Package pdf implementa la generación de reportes tabulares en PDF con
// Maroto v2. El PDF es un resumen imprimible; el detalle completo se exporta
// como CSV.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/PuntoVenta-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportGenerator implementa reports.PDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

var _ reports.PDFGenerator = (*MarotoReportGenerator)(nil)

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// Generate renderiza la tabla como PDF A4 apaisado. truncated indica cuántas
// filas quedaron fuera; se anota al pie del documento.
func (g *MarotoReportGenerator) Generate(title string, headers []string, rows [][]string, truncated int) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(headers))
	for _, r := range rows {
		m.AddRows(tableDataRow(r, len(headers)))
	}

	if truncated > 0 {
		m.AddRows(row.New(8).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("... y %d filas más. Exporte como CSV para el detalle completo.", truncated),
					props.Text{Size: 7, Color: colorGray, Top: 2}),
			),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte y fecha de generación.
func headerRow(title string) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 4, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow(headers []string) core.Row {
	cols := make([]core.Col, 0, len(headers))
	width := columnWidth(len(headers))
	for _, h := range headers {
		cols = append(cols, col.New(width).Add(
			text.New(h, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		))
	}
	return row.New(7).Add(cols...)
}

// tableDataRow: una fila de datos alineada con la cabecera.
func tableDataRow(values []string, headerCount int) core.Row {
	cols := make([]core.Col, 0, headerCount)
	width := columnWidth(headerCount)
	for i := 0; i < headerCount; i++ {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		cols = append(cols, col.New(width).Add(
			text.New(v, props.Text{Size: 7, Top: 1}),
		))
	}
	return row.New(6).Add(cols...)
}

// columnWidth reparte las 12 columnas de la grilla de Maroto. Con más de 12
// encabezados las columnas colapsan a 1.
func columnWidth(headerCount int) int {
	if headerCount == 0 {
		return 12
	}
	w := 12 / headerCount
	if w < 1 {
		w = 1
	}
	return w
}
