package dto

import "github.com/shopspring/decimal"

// ReportQuery parámetros de GET /api/reports.
type ReportQuery struct {
	ReportType  string `query:"report_type"`
	StartDate   string `query:"start_date"` // YYYY-MM-DD, inclusivo
	EndDate     string `query:"end_date"`   // YYYY-MM-DD, inclusivo hasta su último instante
	ProductID   string `query:"product_id"`
	SupplierID  string `query:"supplier_id"`
	ClientID    string `query:"client_id"`
	ProductType string `query:"product_type"` // "all" o vacío = sin filtro
	Export      string `query:"export"`       // csv | pdf
}

// ReportSummary agregados sobre el conjunto filtrado. Siempre con valores
// (cero sobre conjunto vacío, nunca null).
type ReportSummary struct {
	TransactionCount int             `json:"transaction_count"`
	TotalQuantity    int             `json:"total_quantity"`
	TotalValue       decimal.Decimal `json:"total_value"` // Σ quantity × unit_price
	TotalDiscount    decimal.Decimal `json:"total_discount"`
	TotalWastage     decimal.Decimal `json:"total_wastage"`
}

// ReportResponse body para GET /api/reports sin export.
type ReportResponse struct {
	Summary      ReportSummary         `json:"summary"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ReportExportResponse body cuando se pide export: el mismo payload etiquetado
// con el formato; el render del archivo lo hace el formateador aguas abajo.
type ReportExportResponse struct {
	ExportFormat string                `json:"export_format"`
	Summary      ReportSummary         `json:"summary"`
	Data         []TransactionResponse `json:"data"`
}
