package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
// Price es opcional: si no viene, se calcula el promedio de compra/venta
// (compatibilidad con el campo legacy).
type CreateProductRequest struct {
	Name              string           `json:"name" validate:"required"`
	SKU               string           `json:"sku" validate:"required"`
	Type              string           `json:"type"`
	Quantity          int              `json:"quantity" validate:"min=0"`
	BuyingPrice       decimal.Decimal  `json:"buying_price"`
	SellingPrice      decimal.Decimal  `json:"selling_price"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Location          string           `json:"location,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	BatchNumber       string           `json:"batch_number,omitempty"`
	Barcode           string           `json:"barcode,omitempty"`
	MinimumStockLevel *int             `json:"minimum_stock_level,omitempty"`
	UnitOfMeasure     string           `json:"unit_of_measure,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no se tocan.
// Quantity no es actualizable por esta vía: solo el ledger muta existencias.
type UpdateProductRequest struct {
	Name              *string          `json:"name,omitempty"`
	SKU               *string          `json:"sku,omitempty"`
	Type              *string          `json:"type,omitempty"`
	BuyingPrice       *decimal.Decimal `json:"buying_price,omitempty"`
	SellingPrice      *decimal.Decimal `json:"selling_price,omitempty"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	Location          *string          `json:"location,omitempty"`
	ExpiryDate        *time.Time       `json:"expiry_date,omitempty"`
	BatchNumber       *string          `json:"batch_number,omitempty"`
	Barcode           *string          `json:"barcode,omitempty"`
	MinimumStockLevel *int             `json:"minimum_stock_level,omitempty"`
	UnitOfMeasure     *string          `json:"unit_of_measure,omitempty"`
}

// ProductResponse representación de un producto en respuestas.
type ProductResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Type              string          `json:"type"`
	Quantity          int             `json:"quantity"`
	BuyingPrice       decimal.Decimal `json:"buying_price"`
	SellingPrice      decimal.Decimal `json:"selling_price"`
	Price             decimal.Decimal `json:"price"`
	Location          string          `json:"location,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	BatchNumber       string          `json:"batch_number,omitempty"`
	Barcode           string          `json:"barcode,omitempty"`
	MinimumStockLevel int             `json:"minimum_stock_level"`
	UnitOfMeasure     string          `json:"unit_of_measure"`
	Wastage           decimal.Decimal `json:"wastage"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductStatsResponse body para GET /api/products/stats.
type ProductStatsResponse struct {
	TotalProducts int             `json:"total_products"`
	TotalValue    decimal.Decimal `json:"total_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// WastageStatsResponse body para GET /api/products/wastage_stats.
// TransactionWastage y ProductWastage son dos ledgers independientes que
// solo se suman aquí; nunca se reconcilian entre sí.
type WastageStatsResponse struct {
	TotalWastage       decimal.Decimal `json:"total_wastage"`
	TransactionWastage decimal.Decimal `json:"transaction_wastage"`
	ProductWastage     decimal.Decimal `json:"product_wastage"`
	TotalWastageQty    int             `json:"total_wastage_qty"`
	WastageCount       int             `json:"wastage_count"`
}
