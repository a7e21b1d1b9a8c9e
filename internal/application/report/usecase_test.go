package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/report"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRepo devuelve un conjunto fijo y captura el último filtro recibido.
type fakeTxRepo struct {
	txs        []*entity.StockTransaction
	lastFilter repository.TransactionFilter
	wastage    repository.WastageTotals
}

func (r *fakeTxRepo) Create(t *entity.StockTransaction) error { return nil }
func (r *fakeTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	return nil, nil
}
func (r *fakeTxRepo) List(limit, offset int) ([]*entity.StockTransaction, error) {
	return r.txs, nil
}
func (r *fakeTxRepo) ListByFilter(f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	r.lastFilter = f
	return r.txs, nil
}
func (r *fakeTxRepo) ListBySupplierRef(supplierID string) ([]*entity.StockTransaction, error) {
	return nil, nil
}
func (r *fakeTxRepo) ListByClientRef(clientID string) ([]*entity.StockTransaction, error) {
	return nil, nil
}
func (r *fakeTxRepo) DistinctProductIDsBySupplier(supplierID string) ([]string, error) {
	return nil, nil
}
func (r *fakeTxRepo) DistinctProductIDsByClient(clientID string) ([]string, error) {
	return nil, nil
}
func (r *fakeTxRepo) WastageStats() (*repository.WastageTotals, error) {
	w := r.wastage
	return &w, nil
}

// fakeProductRepo solo aporta el acumulador de merma por producto.
type fakeProductRepo struct {
	wastageTotal decimal.Decimal
}

func (r *fakeProductRepo) Create(p *entity.Product) error                   { return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error)       { return nil, nil }
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error)     { return nil, nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error)  { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error                   { return nil }
func (r *fakeProductRepo) UpdateQuantity(id string, quantity int) error     { return nil }
func (r *fakeProductRepo) Delete(id string) error                           { return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListLowStock(threshold int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *fakeProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Stats() (*repository.ProductStats, error)          { return nil, nil }
func (r *fakeProductRepo) WastageTotal() (decimal.Decimal, error) {
	return r.wastageTotal, nil
}

var (
	viewer = auth.NewPrincipal("u1", "viewer", "viewer")
	admin  = auth.NewPrincipal("u2", "admin", "admin")
)

func fixtureTxs() []*entity.StockTransaction {
	return []*entity.StockTransaction{
		{
			ID: "t1", ProductID: "p1", Quantity: 3, Type: entity.TransactionIN,
			UnitPrice: decimal.NewFromInt(5), Discount: decimal.NewFromInt(1),
			Wastage: decimal.Zero, Date: time.Now(),
		},
		{
			ID: "t2", ProductID: "p1", Quantity: 2, Type: entity.TransactionOUT,
			UnitPrice: decimal.NewFromInt(8), Discount: decimal.Zero,
			Wastage: decimal.NewFromFloat(0.5), Date: time.Now(),
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_ReportTypeMapeaADireccion(t *testing.T) {
	cases := []struct {
		reportType string
		wantType   string
	}{
		{"sales", entity.TransactionOUT},
		{"purchases", entity.TransactionIN},
		{"all", ""},
		{"", ""},
		{"cualquier-cosa", ""}, // valor no reconocido cae a todos
	}
	for _, tc := range cases {
		repo := &fakeTxRepo{}
		uc := report.NewUseCase(repo, &fakeProductRepo{})
		_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{ReportType: tc.reportType})
		require.NoError(t, err, "report_type=%q", tc.reportType)
		assert.Equal(t, tc.wantType, repo.lastFilter.Type, "report_type=%q", tc.reportType)
	}
}

func TestQuery_RangoDeFechas(t *testing.T) {
	repo := &fakeTxRepo{}
	uc := report.NewUseCase(repo, &fakeProductRepo{})

	_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{
		StartDate: "2025-04-01",
		EndDate:   "2025-04-30",
	})
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.To)
	assert.Equal(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.From,
		"start_date arranca en la medianoche del día")
	assert.Equal(t, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), *repo.lastFilter.To,
		"end_date + 1 día como cota superior exclusiva: el 30 completo queda incluido")

	// El último instante del día fin queda dentro de la cota.
	lastInstant := time.Date(2025, 4, 30, 23, 59, 59, 0, time.UTC)
	assert.True(t, lastInstant.Before(*repo.lastFilter.To))
}

func TestQuery_FechaInvalida(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})

	_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{StartDate: "30/04/2025"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "start_date", verr.Param, "el error debe nombrar el parámetro")

	_, err = uc.Query(context.Background(), viewer, dto.ReportQuery{EndDate: "ayer"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Param)
}

func TestQuery_FiltroPorParteYProducto(t *testing.T) {
	repo := &fakeTxRepo{}
	uc := report.NewUseCase(repo, &fakeProductRepo{})

	_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{
		ProductID:  "p1",
		SupplierID: "sup-1",
		ClientID:   "cli-9",
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", repo.lastFilter.ProductID)
	assert.Equal(t, "sup-1", repo.lastFilter.SupplierID,
		"supplier_id debe llegar intacto al filtro del repositorio")
	assert.Equal(t, "cli-9", repo.lastFilter.ClientID,
		"client_id debe llegar intacto al filtro del repositorio")
}

func TestQuery_ProductTypeAllNoFiltra(t *testing.T) {
	repo := &fakeTxRepo{}
	uc := report.NewUseCase(repo, &fakeProductRepo{})

	_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{ProductType: "all"})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilter.ProductType)

	_, err = uc.Query(context.Background(), viewer, dto.ReportQuery{ProductType: "Herramientas"})
	require.NoError(t, err)
	assert.Equal(t, "Herramientas", repo.lastFilter.ProductType)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_ResumenAgregado(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{txs: fixtureTxs()}, &fakeProductRepo{})

	res, err := uc.Query(context.Background(), viewer, dto.ReportQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Summary.TransactionCount)
	assert.Equal(t, 5, res.Summary.TotalQuantity)
	// 3×5 + 2×8 = 31
	assert.True(t, res.Summary.TotalValue.Equal(decimal.NewFromInt(31)),
		"total_value = Σ quantity × unit_price, got %s", res.Summary.TotalValue)
	assert.True(t, res.Summary.TotalDiscount.Equal(decimal.NewFromInt(1)))
	assert.True(t, res.Summary.TotalWastage.Equal(decimal.NewFromFloat(0.5)))
	assert.Len(t, res.Transactions, 2)
}

func TestQuery_ConjuntoVacio_ResumenEnCeros(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})

	res, err := uc.Query(context.Background(), viewer, dto.ReportQuery{})
	require.NoError(t, err)

	assert.Equal(t, 0, res.Summary.TransactionCount)
	assert.Equal(t, 0, res.Summary.TotalQuantity)
	assert.True(t, res.Summary.TotalValue.Equal(decimal.Zero), "cero, nunca null")
	assert.True(t, res.Summary.TotalDiscount.Equal(decimal.Zero))
	assert.True(t, res.Summary.TotalWastage.Equal(decimal.Zero))
	assert.NotNil(t, res.Transactions, "lista vacía, no nil")
}

// ──────────────────────────────────────────────────────────────────────────────
// Export y permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestQuery_SinPermisoDeReportes(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})
	anon := auth.Principal{}

	_, err := uc.Query(context.Background(), anon, dto.ReportQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestQuery_ExportCaseInsensitive(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})

	res, err := uc.Query(context.Background(), admin, dto.ReportQuery{Export: "CSV"})
	require.NoError(t, err)
	assert.Equal(t, report.ExportCSV, res.ExportFormat, "el formato se normaliza a minúsculas")

	res, err = uc.Query(context.Background(), admin, dto.ReportQuery{Export: "Pdf"})
	require.NoError(t, err)
	assert.Equal(t, report.ExportPDF, res.ExportFormat)
}

func TestQuery_ExportNoSoportado(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})

	_, err := uc.Query(context.Background(), admin, dto.ReportQuery{Export: "xlsx"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "xlsx", "el mensaje debe nombrar el formato pedido")
}

func TestQuery_ExportRequierePermisoDeExport(t *testing.T) {
	uc := report.NewUseCase(&fakeTxRepo{}, &fakeProductRepo{})

	// viewer puede consultar pero no exportar
	_, err := uc.Query(context.Background(), viewer, dto.ReportQuery{})
	require.NoError(t, err)

	_, err = uc.Query(context.Background(), viewer, dto.ReportQuery{Export: "csv"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Merma
// ──────────────────────────────────────────────────────────────────────────────

func TestWastageStats_SumaLosDosLedgers(t *testing.T) {
	repo := &fakeTxRepo{wastage: repository.WastageTotals{
		Value:    decimal.NewFromInt(20),
		Quantity: 4,
		Count:    2,
	}}
	uc := report.NewUseCase(repo, &fakeProductRepo{wastageTotal: decimal.NewFromInt(3)})

	out, err := uc.WastageStats(context.Background())
	require.NoError(t, err)

	assert.True(t, out.TransactionWastage.Equal(decimal.NewFromInt(20)))
	assert.True(t, out.ProductWastage.Equal(decimal.NewFromInt(3)))
	assert.True(t, out.TotalWastage.Equal(decimal.NewFromInt(23)),
		"los dos ledgers se suman sin reconciliarse")
	assert.Equal(t, 4, out.TotalWastageQty)
	assert.Equal(t, 2, out.WastageCount)
}
