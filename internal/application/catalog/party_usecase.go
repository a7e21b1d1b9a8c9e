package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores más sus sub-recursos derivados del
// ledger (transacciones y productos asociados).
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(
	repo repository.SupplierRepository,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, txRepo: txRepo, productRepo: productRepo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, principal auth.Principal, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(s); err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return supplierToResponse(s), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, principal auth.Principal, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	s.Name = in.Name
	s.ContactPerson = in.ContactPerson
	s.Email = in.Email
	s.Phone = in.Phone
	s.Address = in.Address
	s.Notes = in.Notes
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(s); err != nil {
		return nil, err
	}
	return supplierToResponse(s), nil
}

// Delete elimina un proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.Can(auth.PermManageCatalog) {
		return domain.ErrForbidden
	}
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista proveedores ordenados por nombre.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *supplierToResponse(s))
	}
	return items, nil
}

// Transactions lista los asientos del ledger que referencian al proveedor.
func (uc *SupplierUseCase) Transactions(ctx context.Context, id string) ([]dto.TransactionResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txRepo.ListBySupplierRef(id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, *ledger.ToTransactionResponse(t))
	}
	return items, nil
}

// Products lista los productos distintos que aparecen en transacciones del proveedor.
func (uc *SupplierUseCase) Products(ctx context.Context, id string) ([]dto.ProductResponse, error) {
	s, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := uc.txRepo.DistinctProductIDsBySupplier(id)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

func supplierToResponse(s *entity.Supplier) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:            s.ID,
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Email:         s.Email,
		Phone:         s.Phone,
		Address:       s.Address,
		Notes:         s.Notes,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ClientUseCase CRUD de clientes, simétrico al de proveedores.
type ClientUseCase struct {
	repo        repository.ClientRepository
	txRepo      repository.StockTransactionRepository
	productRepo repository.ProductRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(
	repo repository.ClientRepository,
	txRepo repository.StockTransactionRepository,
	productRepo repository.ProductRepository,
) *ClientUseCase {
	return &ClientUseCase{repo: repo, txRepo: txRepo, productRepo: productRepo}
}

// Create crea un cliente.
func (uc *ClientUseCase) Create(ctx context.Context, principal auth.Principal, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	c := &entity.Client{
		ID:            uuid.New().String(),
		Name:          in.Name,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return clientToResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.PartyResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return clientToResponse(c), nil
}

// Update actualiza un cliente.
func (uc *ClientUseCase) Update(ctx context.Context, principal auth.Principal, id string, in dto.PartyRequest) (*dto.PartyResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.ContactPerson = in.ContactPerson
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.Notes = in.Notes
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return clientToResponse(c), nil
}

// Delete elimina un cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.Can(auth.PermManageCatalog) {
		return domain.ErrForbidden
	}
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista clientes ordenados por nombre.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.PartyResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *clientToResponse(c))
	}
	return items, nil
}

// Transactions lista los asientos del ledger que referencian al cliente.
func (uc *ClientUseCase) Transactions(ctx context.Context, id string) ([]dto.TransactionResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	txs, err := uc.txRepo.ListByClientRef(id)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, *ledger.ToTransactionResponse(t))
	}
	return items, nil
}

// Products lista los productos distintos que aparecen en transacciones del cliente.
func (uc *ClientUseCase) Products(ctx context.Context, id string) ([]dto.ProductResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	ids, err := uc.txRepo.DistinctProductIDsByClient(id)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

func clientToResponse(c *entity.Client) *dto.PartyResponse {
	return &dto.PartyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ContactPerson: c.ContactPerson,
		Email:         c.Email,
		Phone:         c.Phone,
		Address:       c.Address,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
