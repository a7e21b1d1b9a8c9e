package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain"
	"github.com/jhoicas/ims-backend/internal/domain/auth"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
	"github.com/jhoicas/ims-backend/internal/domain/repository"
)

// DefaultLowStockThreshold umbral por defecto para low_stock y stats.
const DefaultLowStockThreshold = 5

// ProductUseCase casos de uso CRUD para productos. Quantity y Wastage de
// producto se mutan solo vía ledger; aquí nunca se tocan tras la creación.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Si no viene price explícito se calcula el promedio
// de compra/venta (campo legacy, aplicado en escritura).
func (uc *ProductUseCase) Create(ctx context.Context, principal auth.Principal, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	price := entity.LegacyPrice(in.BuyingPrice, in.SellingPrice)
	if in.Price != nil {
		price = *in.Price
	}
	minStock := DefaultLowStockThreshold
	if in.MinimumStockLevel != nil {
		minStock = *in.MinimumStockLevel
	}
	unit := in.UnitOfMeasure
	if unit == "" {
		unit = "Unit"
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		SKU:               in.SKU,
		Type:              in.Type,
		Quantity:          in.Quantity,
		BuyingPrice:       in.BuyingPrice,
		SellingPrice:      in.SellingPrice,
		Price:             price,
		Location:          in.Location,
		ExpiryDate:        in.ExpiryDate,
		BatchNumber:       in.BatchNumber,
		Barcode:           in.Barcode,
		MinimumStockLevel: minStock,
		UnitOfMeasure:     unit,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// Update actualiza atributos del catálogo. Quantity queda fuera: solo el
// ledger la muta. Si cambian los precios y no viene price explícito, se
// recalcula el promedio legacy.
func (uc *ProductUseCase) Update(ctx context.Context, principal auth.Principal, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if !principal.Can(auth.PermManageCatalog) {
		return nil, domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		dup, err := uc.repo.GetBySKU(*in.SKU)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Type != nil {
		product.Type = *in.Type
	}
	pricesChanged := false
	if in.BuyingPrice != nil {
		product.BuyingPrice = *in.BuyingPrice
		pricesChanged = true
	}
	if in.SellingPrice != nil {
		product.SellingPrice = *in.SellingPrice
		pricesChanged = true
	}
	switch {
	case in.Price != nil:
		product.Price = *in.Price
	case pricesChanged:
		product.Price = entity.LegacyPrice(product.BuyingPrice, product.SellingPrice)
	}
	if in.Location != nil {
		product.Location = *in.Location
	}
	if in.ExpiryDate != nil {
		product.ExpiryDate = in.ExpiryDate
	}
	if in.BatchNumber != nil {
		product.BatchNumber = *in.BatchNumber
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.MinimumStockLevel != nil {
		product.MinimumStockLevel = *in.MinimumStockLevel
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, principal auth.Principal, id string) error {
	if !principal.Can(auth.PermManageCatalog) {
		return domain.ErrForbidden
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// LowStock lista productos con quantity <= threshold (por defecto 5).
func (uc *ProductUseCase) LowStock(ctx context.Context, threshold int) ([]dto.ProductResponse, error) {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}
	list, err := uc.repo.ListLowStock(threshold)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// Stats agregados del catálogo: total de productos, valor total Σ(qty × price)
// y cuántos están en stock bajo (umbral fijo 5).
func (uc *ProductUseCase) Stats(ctx context.Context) (*dto.ProductStatsResponse, error) {
	stats, err := uc.repo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.ProductStatsResponse{
		TotalProducts: stats.TotalProducts,
		TotalValue:    stats.TotalValue,
		LowStockCount: stats.LowStockCount,
	}, nil
}

// ToProductResponse mapea la entidad a su representación de respuesta.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		Type:              p.Type,
		Quantity:          p.Quantity,
		BuyingPrice:       p.BuyingPrice,
		SellingPrice:      p.SellingPrice,
		Price:             p.Price,
		Location:          p.Location,
		ExpiryDate:        p.ExpiryDate,
		BatchNumber:       p.BatchNumber,
		Barcode:           p.Barcode,
		MinimumStockLevel: p.MinimumStockLevel,
		UnitOfMeasure:     p.UnitOfMeasure,
		Wastage:           p.Wastage,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
