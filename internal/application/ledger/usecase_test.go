package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore estado compartido de los fakes. El runner serializa con el mutex y
// restaura un snapshot en caso de error, emulando el lock de fila y el rollback.
type memStore struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	txs      []*entity.StockTransaction
}

func newMemStore(products ...*entity.Product) *memStore {
	s := &memStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *memProductRepo) Update(p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) UpdateQuantity(id string, quantity int) error {
	r.s.products[id].Quantity = quantity
	return nil
}

func (r *memProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) ListLowStock(threshold int) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) ListByIDs(ids []string) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Stats() (*repository.ProductStats, error)          { return nil, nil }
func (r *memProductRepo) WastageTotal() (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type memTxRepo struct{ s *memStore }

func (r *memTxRepo) Create(t *entity.StockTransaction) error {
	cp := *t
	r.s.txs = append(r.s.txs, &cp)
	return nil
}

func (r *memTxRepo) GetByID(id string) (*entity.StockTransaction, error) {
	for _, t := range r.s.txs {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memTxRepo) List(limit, offset int) ([]*entity.StockTransaction, error) {
	return r.s.txs, nil
}
func (r *memTxRepo) ListByFilter(f repository.TransactionFilter) ([]*entity.StockTransaction, error) {
	return r.s.txs, nil
}
func (r *memTxRepo) ListBySupplierRef(supplierID string) ([]*entity.StockTransaction, error) {
	return nil, nil
}
func (r *memTxRepo) ListByClientRef(clientID string) ([]*entity.StockTransaction, error) {
	return nil, nil
}
func (r *memTxRepo) DistinctProductIDsBySupplier(supplierID string) ([]string, error) {
	return nil, nil
}
func (r *memTxRepo) DistinctProductIDsByClient(clientID string) ([]string, error) {
	return nil, nil
}
func (r *memTxRepo) WastageStats() (*repository.WastageTotals, error) {
	return &repository.WastageTotals{Value: decimal.Zero}, nil
}

// memTxRunner serializa cada Run con un mutex y restaura el estado previo si
// fn devuelve error, como haría el Rollback real.
type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := make(map[string]int, len(r.s.products))
	for id, p := range r.s.products {
		snapshot[id] = p.Quantity
	}
	txCount := len(r.s.txs)

	if err := fn(&memProductRepo{s: r.s}, &memTxRepo{s: r.s}); err != nil {
		for id, qty := range snapshot {
			r.s.products[id].Quantity = qty
		}
		r.s.txs = r.s.txs[:txCount]
		return err
	}
	return nil
}

type memSupplierRepo struct{ suppliers map[string]*entity.Supplier }

func (r *memSupplierRepo) Create(s *entity.Supplier) error { return nil }
func (r *memSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}
func (r *memSupplierRepo) Update(s *entity.Supplier) error        { return nil }
func (r *memSupplierRepo) Delete(id string) error                 { return nil }
func (r *memSupplierRepo) List() ([]*entity.Supplier, error)      { return nil, nil }

type memClientRepo struct{ clients map[string]*entity.Client }

func (r *memClientRepo) Create(c *entity.Client) error { return nil }
func (r *memClientRepo) GetByID(id string) (*entity.Client, error) {
	return r.clients[id], nil
}
func (r *memClientRepo) Update(c *entity.Client) error   { return nil }
func (r *memClientRepo) Delete(id string) error          { return nil }
func (r *memClientRepo) List() ([]*entity.Client, error) { return nil, nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const productID = "prod-1"

func testProduct(qty int) *entity.Product {
	return &entity.Product{
		ID:           productID,
		Name:         "Tornillo M4",
		SKU:          "TOR-M4",
		Quantity:     qty,
		BuyingPrice:  decimal.NewFromInt(5),
		SellingPrice: decimal.NewFromInt(8),
	}
}

func newApplyUC(s *memStore, suppliers map[string]*entity.Supplier, clients map[string]*entity.Client) *ledger.ApplyTransactionUseCase {
	return ledger.NewApplyTransactionUseCase(
		&memTxRunner{s: s},
		&memSupplierRepo{suppliers: suppliers},
		&memClientRepo{clients: clients},
	)
}

var staff = auth.NewPrincipal("u1", "staff", "staff")

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_ViewerSinPermiso_Forbidden(t *testing.T) {
	uc := newApplyUC(newMemStore(testProduct(10)), nil, nil)
	viewer := auth.NewPrincipal("u2", "viewer", "viewer")

	_, err := uc.Apply(context.Background(), viewer, dto.StockUpdateRequest{
		Product: productID, Quantity: 1, Type: entity.TransactionIN,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden,
		"viewer no puede registrar movimientos de stock")
}

func TestApply_CamposFaltantes(t *testing.T) {
	uc := newApplyUC(newMemStore(testProduct(10)), nil, nil)

	cases := []dto.StockUpdateRequest{
		{Quantity: 1, Type: entity.TransactionIN},         // sin product
		{Product: productID, Type: entity.TransactionIN},  // sin quantity
		{Product: productID, Quantity: 1},                 // sin type
		{Quantity: 1, Type: "SIDEWAYS"},                   // faltante gana sobre tipo inválido
	}
	for _, in := range cases {
		_, err := uc.Apply(context.Background(), staff, in)
		assert.ErrorIs(t, err, domain.ErrMissingFields)
	}
}

func TestApply_TipoInvalido(t *testing.T) {
	uc := newApplyUC(newMemStore(testProduct(10)), nil, nil)

	// Tipo inválido se reporta antes de mirar si el producto existe.
	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: "no-existe", Quantity: 1, Type: "SIDEWAYS",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidType)
}

func TestApply_CantidadNegativa(t *testing.T) {
	uc := newApplyUC(newMemStore(testProduct(10)), nil, nil)

	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: -3, Type: entity.TransactionIN,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"cantidad negativa debe ser error de validación")
}

func TestApply_ProductoInexistente(t *testing.T) {
	uc := newApplyUC(newMemStore(testProduct(10)), nil, nil)

	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: "no-existe", Quantity: 1, Type: entity.TransactionOUT,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Aritmética y atomicidad
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_EntradaSumaYDerivaPrecioCompra(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	out, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 5, Type: entity.TransactionIN,
	})
	require.NoError(t, err)

	assert.True(t, out.Success)
	assert.Equal(t, 15, out.Product.Quantity, "IN de 5 sobre 10 debe dejar 15")
	assert.Equal(t, 15, s.products[productID].Quantity)

	require.Len(t, s.txs, 1, "debe quedar exactamente un asiento")
	assert.True(t, s.txs[0].UnitPrice.Equal(decimal.NewFromInt(5)),
		"sin precio explícito un IN usa el precio de compra")
}

func TestApply_SalidaRestaYDerivaPrecioVenta(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	out, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 4, Type: entity.TransactionOUT,
	})
	require.NoError(t, err)

	assert.Equal(t, 6, out.Product.Quantity)
	assert.True(t, s.txs[0].UnitPrice.Equal(decimal.NewFromInt(8)),
		"sin precio explícito un OUT usa el precio de venta")
}

func TestApply_PrecioExplicitoGana(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	price := decimal.NewFromFloat(7.25)
	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 2, Type: entity.TransactionOUT, UnitPrice: &price,
	})
	require.NoError(t, err)
	assert.True(t, s.txs[0].UnitPrice.Equal(price))
}

func TestApply_StockInsuficiente_SinEfectoParcial(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	// Primero un IN válido, luego un OUT que excede existencias.
	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 5, Type: entity.TransactionIN,
	})
	require.NoError(t, err)

	_, err = uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 20, Type: entity.TransactionOUT,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 15, s.products[productID].Quantity,
		"un rechazo por stock no debe alterar la cantidad")
	assert.Len(t, s.txs, 1, "el rechazo no debe dejar asiento en el ledger")
}

func TestApply_SalidaExacta_DejaCero(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	out, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 10, Type: entity.TransactionOUT,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Product.Quantity, "OUT por el total deja cero, no error")
}

func TestApply_SalidasConcurrentes_NoSobregiran(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	// Tres salidas de 4 contra 10 existencias: exactamente dos caben.
	const workers = 3
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
				Product: productID, Quantity: 4, Type: entity.TransactionOUT,
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 2, ok, "solo dos salidas de 4 caben en 10")
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, 2, s.products[productID].Quantity)
	assert.Len(t, s.txs, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de proveedor/cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_SupplierID_CreaReferencia(t *testing.T) {
	s := newMemStore(testProduct(10))
	suppliers := map[string]*entity.Supplier{
		"sup-1": {ID: "sup-1", Name: "Aceros SA"},
	}
	uc := newApplyUC(s, suppliers, nil)

	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 1, Type: entity.TransactionIN,
		SupplierID: "sup-1", Supplier: "ignorado",
	})
	require.NoError(t, err)

	require.Len(t, s.txs, 1)
	assert.Equal(t, "sup-1", s.txs[0].Supplier.RefID,
		"supplier_id resoluble debe quedar como referencia estructurada")
	assert.Empty(t, s.txs[0].Supplier.Name)
}

func TestApply_SupplierIDInexistente_CaeATextoLibre(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, map[string]*entity.Supplier{}, nil)

	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 1, Type: entity.TransactionIN,
		SupplierID: "no-existe", Supplier: "Ferretería Luna", SupplierContact: "555-1234",
	})
	require.NoError(t, err)

	require.Len(t, s.txs, 1)
	assert.Empty(t, s.txs[0].Supplier.RefID,
		"referencia irresoluble se descarta en silencio")
	assert.Equal(t, "Ferretería Luna", s.txs[0].Supplier.Name)
	assert.Equal(t, "555-1234", s.txs[0].Supplier.Contact)
}

func TestApply_ClientID_CreaReferencia(t *testing.T) {
	s := newMemStore(testProduct(10))
	clients := map[string]*entity.Client{
		"cli-1": {ID: "cli-1", Name: "Constructora Sur"},
	}
	uc := newApplyUC(s, nil, clients)

	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 1, Type: entity.TransactionOUT,
		ClientID: "cli-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "cli-1", s.txs[0].Client.RefID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos del asiento
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_AsientoConservaMermaYDescuento(t *testing.T) {
	s := newMemStore(testProduct(10))
	uc := newApplyUC(s, nil, nil)

	discount := decimal.NewFromInt(2)
	wastage := decimal.NewFromFloat(1.5)
	_, err := uc.Apply(context.Background(), staff, dto.StockUpdateRequest{
		Product: productID, Quantity: 3, Type: entity.TransactionOUT,
		Notes: "rotura en bodega", ReferenceNumber: "REF-9",
		Discount: &discount, IsWastage: true, Wastage: &wastage,
	})
	require.NoError(t, err)

	tx := s.txs[0]
	assert.True(t, tx.IsWastage)
	assert.True(t, tx.Wastage.Equal(wastage))
	assert.True(t, tx.Discount.Equal(discount))
	assert.Equal(t, "rotura en bodega", tx.Notes)
	assert.Equal(t, "REF-9", tx.ReferenceNumber)
	assert.NotEmpty(t, tx.ID)
	assert.False(t, tx.Date.IsZero())
}
