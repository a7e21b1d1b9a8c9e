package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/ims-backend/internal/domain/entity"
)

// TransactionFilter criterios del motor de reportes sobre el ledger.
// From es inclusivo; To es cota superior exclusiva (el caso de uso ya la
// calculó como fecha fin + 1 día). SupplierID/ClientID filtran por referencia
// estructurada o, si el asiento no tiene referencia, por coincidencia de
// substring (case-insensitive) contra el campo de texto libre legacy.
type TransactionFilter struct {
	Type        string // IN | OUT | "" (todos)
	From        *time.Time
	To          *time.Time
	ProductID   string
	SupplierID  string
	ClientID    string
	ProductType string // nombre de categoría; "" = sin filtro
}

// WastageTotals agregados de merma sobre los asientos con is_wastage.
type WastageTotals struct {
	Value    decimal.Decimal // Σ quantity × unit_price
	Quantity int             // Σ quantity
	Count    int
}

// StockTransactionRepository puerto de persistencia del ledger. Solo inserta
// y lee: los asientos nunca se actualizan ni se borran.
type StockTransactionRepository interface {
	Create(t *entity.StockTransaction) error
	GetByID(id string) (*entity.StockTransaction, error)
	List(limit, offset int) ([]*entity.StockTransaction, error)
	ListByFilter(f TransactionFilter) ([]*entity.StockTransaction, error)
	ListBySupplierRef(supplierID string) ([]*entity.StockTransaction, error)
	ListByClientRef(clientID string) ([]*entity.StockTransaction, error)
	DistinctProductIDsBySupplier(supplierID string) ([]string, error)
	DistinctProductIDsByClient(clientID string) ([]string, error)
	WastageStats() (*WastageTotals, error)
}
