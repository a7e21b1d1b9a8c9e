// Package pdf implementa el formateador PDF de reportes del ledger con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte + fecha de generación            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: asientos / unidades / valor / descuento / merma    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Producto | Cant | P.Unit | Total      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/report"
)

var _ report.Formatter = (*MarotoReportFormatter)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoReportFormatter implementa report.Formatter usando Maroto v2.
type MarotoReportFormatter struct{}

// NewMarotoReportFormatter construye el formateador.
func NewMarotoReportFormatter() *MarotoReportFormatter { return &MarotoReportFormatter{} }

// ContentType tipo MIME del archivo generado.
func (g *MarotoReportFormatter) ContentType() string { return "application/pdf" }

// FileExt extensión del archivo generado.
func (g *MarotoReportFormatter) FileExt() string { return "pdf" }

// Format genera el PDF del reporte y devuelve sus bytes.
func (g *MarotoReportFormatter) Format(_ context.Context, res *report.Result) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de movimientos de stock", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(res.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, t := range res.Transactions {
		m.AddRows(tableRow(t))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha de generación (der).
func headerRow() core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("REPORTE DE MOVIMIENTOS DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+time.Now().Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Color: colorGray, Top: 4,
			}),
		),
	)
}

// summaryRow: agregados del conjunto filtrado.
func summaryRow(s dto.ReportSummary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Asientos", fmt.Sprintf("%d", s.TransactionCount)),
		cell("Unidades", fmt.Sprintf("%d", s.TotalQuantity)),
		col.New(3).Add(
			text.New("Valor total", props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(s.TotalValue.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		),
		cell("Descuento", s.TotalDiscount.StringFixed(2)),
		col.New(3).Add(
			text.New("Merma", props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(s.TotalWastage.StringFixed(2), props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, a align.Type) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary}),
		)
	}
	return row.New(6).Add(
		header(2, "Fecha", align.Left),
		header(1, "Tipo", align.Left),
		header(4, "Producto", align.Left),
		header(1, "Cant", align.Right),
		header(2, "P. Unit", align.Right),
		header(2, "Total", align.Right),
	)
}

func tableRow(t dto.TransactionResponse) core.Row {
	product := t.ProductName
	if product == "" {
		product = t.Product
	}
	total := t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
	cell := func(size int, value string, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a}))
	}
	return row.New(5).Add(
		cell(2, t.Date.Format("02/01/2006"), align.Left),
		cell(1, t.Type, align.Left),
		cell(4, product, align.Left),
		cell(1, fmt.Sprintf("%d", t.Quantity), align.Right),
		cell(2, t.UnitPrice.StringFixed(2), align.Right),
		cell(2, total.StringFixed(2), align.Right),
	)
}
