package ledger

import (
	"context"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// HistoryUseCase lectura del ledger: listado descendente por fecha y detalle
// enriquecido con nombres de producto y proveedor/cliente.
type HistoryUseCase struct {
	txRepo       repository.StockTransactionRepository
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	clientRepo   repository.ClientRepository
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	clientRepo repository.ClientRepository,
) *HistoryUseCase {
	return &HistoryUseCase{
		txRepo:       txRepo,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		clientRepo:   clientRepo,
	}
}

// List lista asientos del ledger, descendente por fecha.
func (uc *HistoryUseCase) List(ctx context.Context, limit, offset int) ([]dto.TransactionResponse, error) {
	txs, err := uc.txRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, *ToTransactionResponse(t))
	}
	return items, nil
}

// GetDetail obtiene un asiento y lo enriquece con product_name y
// supplier_name/client_name cuando son resolubles.
func (uc *HistoryUseCase) GetDetail(ctx context.Context, id string) (*dto.TransactionResponse, error) {
	t, err := uc.txRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToTransactionResponse(t)

	if product, err := uc.productRepo.GetByID(t.ProductID); err == nil && product != nil {
		resp.ProductName = product.Name
	}
	if t.Supplier.IsReferenced() {
		if s, err := uc.supplierRepo.GetByID(t.Supplier.RefID); err == nil && s != nil {
			resp.SupplierName = s.Name
		}
	}
	if t.Client.IsReferenced() {
		if c, err := uc.clientRepo.GetByID(t.Client.RefID); err == nil && c != nil {
			resp.ClientName = c.Name
		}
	}
	return resp, nil
}
