package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/domain/entity"
)

// ProductStats agregados del catálogo para GET /products/stats.
type ProductStats struct {
	TotalProducts int
	TotalValue    decimal.Decimal // Σ quantity × price (precio legacy)
	LowStockCount int             // quantity <= 5
}

// ProductRepository puerto de persistencia para productos.
// UpdateQuantity solo debe invocarse desde el motor de ledger dentro de
// una transacción que también inserte el asiento correspondiente.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateQuantity(id string, quantity int) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock(threshold int) ([]*entity.Product, error)
	ListByIDs(ids []string) ([]*entity.Product, error)
	Stats() (*ProductStats, error)
	WastageTotal() (decimal.Decimal, error)
}
