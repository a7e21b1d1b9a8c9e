package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// ApplyTransactionUseCase registra movimientos de stock de forma transaccional:
// bloquea la fila del producto (SELECT FOR UPDATE), verifica existencias para
// salidas, muta la cantidad y agrega el asiento inmutable, todo con Commit o
// Rollback. Dos salidas concurrentes contra el mismo producto serializan en el
// lock y no pueden pasar ambas el chequeo de stock con una cantidad obsoleta.
type ApplyTransactionUseCase struct {
	txRunner     TxRunner
	supplierRepo repository.SupplierRepository
	clientRepo   repository.ClientRepository
}

// NewApplyTransactionUseCase construye el caso de uso.
func NewApplyTransactionUseCase(
	txRunner TxRunner,
	supplierRepo repository.SupplierRepository,
	clientRepo repository.ClientRepository,
) *ApplyTransactionUseCase {
	return &ApplyTransactionUseCase{
		txRunner:     txRunner,
		supplierRepo: supplierRepo,
		clientRepo:   clientRepo,
	}
}

// Apply valida y aplica una transacción de stock.
// Orden de validación: campos obligatorios, tipo, existencia del producto,
// stock suficiente (solo OUT). La mutación de cantidad y el insert del asiento
// son una unidad atómica.
func (uc *ApplyTransactionUseCase) Apply(ctx context.Context, principal auth.Principal, in dto.StockUpdateRequest) (*dto.StockUpdateResponse, error) {
	if !principal.Can(auth.PermUpdateStock) {
		return nil, domain.ErrForbidden
	}
	if in.Product == "" || in.Type == "" || in.Quantity == 0 {
		return nil, domain.ErrMissingFields
	}
	if in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "debe ser un entero positivo")
	}
	if !entity.ValidTransactionType(in.Type) {
		return nil, domain.ErrInvalidType
	}

	supplier, err := uc.resolveSupplier(in)
	if err != nil {
		return nil, err
	}
	client, err := uc.resolveClient(in)
	if err != nil {
		return nil, err
	}

	discount := decimal.Zero
	if in.Discount != nil {
		discount = *in.Discount
	}
	wastage := decimal.Zero
	if in.Wastage != nil {
		wastage = *in.Wastage
	}

	var resp *dto.StockUpdateResponse
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		// Lock de fila: el chequeo de stock y la mutación de cantidad son
		// una sección crítica por producto.
		product, err := productRepo.GetForUpdate(in.Product)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if in.Type == entity.TransactionOUT && product.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}

		newQty := product.Quantity + in.Quantity
		if in.Type == entity.TransactionOUT {
			newQty = product.Quantity - in.Quantity
		}
		if err := productRepo.UpdateQuantity(product.ID, newQty); err != nil {
			return err
		}

		// Precio unitario: explícito, o derivado del producto según dirección.
		unitPrice := product.BuyingPrice
		if in.Type == entity.TransactionOUT {
			unitPrice = product.SellingPrice
		}
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		tx := &entity.StockTransaction{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			Quantity:        in.Quantity,
			Type:            in.Type,
			Notes:           in.Notes,
			ReferenceNumber: in.ReferenceNumber,
			UnitPrice:       unitPrice,
			Discount:        discount,
			IsWastage:       in.IsWastage,
			Wastage:         wastage,
			Supplier:        supplier,
			Client:          client,
			Date:            time.Now(),
		}
		if err := txRepo.Create(tx); err != nil {
			return err
		}

		resp = &dto.StockUpdateResponse{
			Success:       true,
			TransactionID: tx.ID,
			Product: dto.StockUpdateProduct{
				ID:       product.ID,
				Name:     product.Name,
				Quantity: newQty,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// resolveSupplier resuelve la variante de proveedor una sola vez en escritura:
// si viene supplier_id y existe, manda la referencia estructurada; si no
// existe se descarta en silencio (comportamiento legacy) y quedan los campos
// de texto libre.
func (uc *ApplyTransactionUseCase) resolveSupplier(in dto.StockUpdateRequest) (entity.PartyRef, error) {
	if in.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return entity.PartyRef{}, err
		}
		if s != nil {
			return entity.PartyRef{RefID: s.ID}, nil
		}
	}
	return entity.PartyRef{Name: in.Supplier, Contact: in.SupplierContact}, nil
}

// resolveClient idéntico a resolveSupplier para el cliente de la transacción.
func (uc *ApplyTransactionUseCase) resolveClient(in dto.StockUpdateRequest) (entity.PartyRef, error) {
	if in.ClientID != "" {
		c, err := uc.clientRepo.GetByID(in.ClientID)
		if err != nil {
			return entity.PartyRef{}, err
		}
		if c != nil {
			return entity.PartyRef{RefID: c.ID}, nil
		}
	}
	return entity.PartyRef{Name: in.Client, Contact: in.ClientContact}, nil
}
