// Package export implementa el formateador CSV de reportes del ledger.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jhoicas/ims-backend/internal/application/report"
)

var _ report.Formatter = (*CSVFormatter)(nil)

// CSVFormatter renderiza el payload del reporte como CSV: una fila por
// asiento más un bloque final con el resumen agregado.
type CSVFormatter struct{}

// NewCSVFormatter construye el formateador.
func NewCSVFormatter() *CSVFormatter { return &CSVFormatter{} }

// ContentType tipo MIME del archivo generado.
func (f *CSVFormatter) ContentType() string { return "text/csv" }

// FileExt extensión del archivo generado.
func (f *CSVFormatter) FileExt() string { return "csv" }

// Format escribe las filas y el resumen del reporte en CSV.
func (f *CSVFormatter) Format(_ context.Context, res *report.Result) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "type", "product", "quantity", "unit_price", "discount", "wastage", "supplier", "client", "reference_number", "notes"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("csv: escribir cabecera: %w", err)
	}

	for _, t := range res.Transactions {
		supplier := t.SupplierName
		if supplier == "" {
			supplier = t.SupplierRef
		}
		client := t.ClientName
		if client == "" {
			client = t.ClientRef
		}
		record := []string{
			t.Date.Format("2006-01-02 15:04:05"),
			t.Type,
			t.Product,
			strconv.Itoa(t.Quantity),
			t.UnitPrice.String(),
			t.Discount.String(),
			t.Wastage.String(),
			supplier,
			client,
			t.ReferenceNumber,
			t.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escribir fila: %w", err)
		}
	}

	// Bloque de resumen al final, misma convención que el render PDF.
	summaryRows := [][]string{
		{},
		{"transaction_count", strconv.Itoa(res.Summary.TransactionCount)},
		{"total_quantity", strconv.Itoa(res.Summary.TotalQuantity)},
		{"total_value", res.Summary.TotalValue.String()},
		{"total_discount", res.Summary.TotalDiscount.String()},
		{"total_wastage", res.Summary.TotalWastage.String()},
	}
	for _, record := range summaryRows {
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("csv: escribir resumen: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("csv: flush: %w", err)
	}
	return buf.Bytes(), nil
}
