package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su existencia actual.
// Quantity solo se modifica a través del motor de ledger (ApplyTransaction),
// nunca por escritura directa del catálogo.
type Product struct {
	ID                string
	Name              string
	SKU               string // único
	Type              string // nombre de categoría (ProductType.Name)
	Quantity          int    // invariante: >= 0
	BuyingPrice       decimal.Decimal
	SellingPrice      decimal.Decimal
	Price             decimal.Decimal // legacy: promedio de compra/venta si no se indica
	Location          string
	ExpiryDate        *time.Time
	BatchNumber       string
	Barcode           string
	MinimumStockLevel int
	UnitOfMeasure     string
	Wastage           decimal.Decimal // acumulador de merma a nivel producto
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// LegacyPrice devuelve el precio legacy derivado: promedio de compra y venta.
func LegacyPrice(buying, selling decimal.Decimal) decimal.Decimal {
	return buying.Add(selling).Div(decimal.NewFromInt(2))
}
