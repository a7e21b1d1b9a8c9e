package report

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Formatos de export soportados por los formateadores aguas abajo.
const (
	ExportCSV = "csv"
	ExportPDF = "pdf"
)

// Result payload del motor de reportes: el resumen agregado más las filas
// filtradas, opcionalmente etiquetado con el formato de export pedido.
type Result struct {
	ExportFormat string
	Summary      dto.ReportSummary
	Transactions []dto.TransactionResponse
}

// UseCase motor de reportes: consulta el ledger con filtros y produce
// agregados. Solo lectura; puede correr concurrente con escrituras del ledger.
type UseCase struct {
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewUseCase construye el motor de reportes.
func NewUseCase(txRepo repository.StockTransactionRepository, productRepo repository.ProductRepository) *UseCase {
	return &UseCase{txRepo: txRepo, productRepo: productRepo}
}

// Query filtra el ledger y agrega el resumen.
//   - report_type: all | sales (OUT) | purchases (IN); valor no reconocido cae a all.
//   - start_date/end_date: YYYY-MM-DD; inicio desde las 00:00:00, fin incluido
//     hasta su último instante (cota superior exclusiva = fin + 1 día).
//   - export: csv | pdf (case-insensitive); otro valor es error nombrando el formato.
func (uc *UseCase) Query(ctx context.Context, principal auth.Principal, q dto.ReportQuery) (*Result, error) {
	if !principal.Can(auth.PermViewReports) {
		return nil, domain.ErrForbidden
	}

	exportFormat := strings.ToLower(q.Export)
	if exportFormat != "" {
		if exportFormat != ExportCSV && exportFormat != ExportPDF {
			return nil, domain.NewValidationError("export", "formato no soportado: %q (use csv o pdf)", q.Export)
		}
		if !principal.Can(auth.PermExportReports) {
			return nil, domain.ErrForbidden
		}
	}

	filter, err := buildFilter(q)
	if err != nil {
		return nil, err
	}

	txs, err := uc.txRepo.ListByFilter(*filter)
	if err != nil {
		return nil, err
	}

	summary := summarize(txs)
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, *ledger.ToTransactionResponse(t))
	}
	return &Result{ExportFormat: exportFormat, Summary: summary, Transactions: items}, nil
}

// WastageStats agrega los dos ledgers de merma: el valor de los asientos con
// is_wastage (Σ quantity × unit_price) y el acumulador por producto. Se suman
// sin reconciliarse: son fuentes independientes.
func (uc *UseCase) WastageStats(ctx context.Context) (*dto.WastageStatsResponse, error) {
	txTotals, err := uc.txRepo.WastageStats()
	if err != nil {
		return nil, err
	}
	productWastage, err := uc.productRepo.WastageTotal()
	if err != nil {
		return nil, err
	}
	return &dto.WastageStatsResponse{
		TotalWastage:       txTotals.Value.Add(productWastage),
		TransactionWastage: txTotals.Value,
		ProductWastage:     productWastage,
		TotalWastageQty:    txTotals.Quantity,
		WastageCount:       txTotals.Count,
	}, nil
}

// buildFilter traduce los parámetros del request al filtro del repositorio.
func buildFilter(q dto.ReportQuery) (*repository.TransactionFilter, error) {
	f := &repository.TransactionFilter{
		ProductID:  q.ProductID,
		SupplierID: q.SupplierID,
		ClientID:   q.ClientID,
	}

	switch q.ReportType {
	case "sales":
		f.Type = entity.TransactionOUT
	case "purchases":
		f.Type = entity.TransactionIN
	default:
		// valor no reconocido (incluido vacío) = todos los movimientos
	}

	if q.StartDate != "" {
		start, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return nil, domain.NewValidationError("start_date", "fecha inválida %q, formato esperado YYYY-MM-DD", q.StartDate)
		}
		f.From = &start
	}
	if q.EndDate != "" {
		end, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return nil, domain.NewValidationError("end_date", "fecha inválida %q, formato esperado YYYY-MM-DD", q.EndDate)
		}
		// fin + 1 día como cota exclusiva: el último día queda incluido completo
		upper := end.AddDate(0, 0, 1)
		f.To = &upper
	}

	if q.ProductType != "" && q.ProductType != "all" {
		f.ProductType = q.ProductType
	}
	return f, nil
}

// summarize calcula los agregados del conjunto filtrado. Sobre un conjunto
// vacío todos los campos quedan en cero.
func summarize(txs []*entity.StockTransaction) dto.ReportSummary {
	s := dto.ReportSummary{
		TotalValue:    decimal.Zero,
		TotalDiscount: decimal.Zero,
		TotalWastage:  decimal.Zero,
	}
	for _, t := range txs {
		s.TransactionCount++
		s.TotalQuantity += t.Quantity
		s.TotalValue = s.TotalValue.Add(t.TotalValue())
		s.TotalDiscount = s.TotalDiscount.Add(t.Discount)
		s.TotalWastage = s.TotalWastage.Add(t.Wastage)
	}
	return s
}
