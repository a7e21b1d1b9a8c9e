package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockUpdateRequest body para POST /api/stock/update.
// El proveedor/cliente puede venir como referencia estructurada (supplier_id /
// client_id) o como texto libre legacy (supplier + supplier_contact, etc.).
type StockUpdateRequest struct {
	Product         string           `json:"product" validate:"required"`
	Quantity        int              `json:"quantity" validate:"required,gt=0"`
	Type            string           `json:"type" validate:"required"`
	Notes           string           `json:"notes,omitempty"`
	ReferenceNumber string           `json:"reference_number,omitempty"`
	UnitPrice       *decimal.Decimal `json:"unit_price,omitempty"`
	Discount        *decimal.Decimal `json:"discount,omitempty"`
	SupplierID      string           `json:"supplier_id,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	SupplierContact string           `json:"supplier_contact,omitempty"`
	ClientID        string           `json:"client_id,omitempty"`
	Client          string           `json:"client,omitempty"`
	ClientContact   string           `json:"client_contact,omitempty"`
	IsWastage       bool             `json:"is_wastage,omitempty"`
	Wastage         *decimal.Decimal `json:"wastage,omitempty"`
}

// StockUpdateResponse resultado de aplicar una transacción.
type StockUpdateResponse struct {
	Success       bool                `json:"success"`
	TransactionID string              `json:"transaction_id"`
	Product       StockUpdateProduct  `json:"product"`
}

// StockUpdateProduct resumen del producto tras la mutación.
type StockUpdateProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TransactionResponse representación de un asiento del ledger.
// ProductName/SupplierName/ClientName se enriquecen cuando son resolubles;
// para los nombres de partes se prefiere la referencia estructurada y se cae
// al texto libre legacy.
type TransactionResponse struct {
	ID              string          `json:"id"`
	Product         string          `json:"product"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	Type            string          `json:"type"`
	Notes           string          `json:"notes,omitempty"`
	Supplier        string          `json:"supplier,omitempty"`
	SupplierContact string          `json:"supplier_contact,omitempty"`
	Client          string          `json:"client,omitempty"`
	ClientContact   string          `json:"client_contact,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Discount        decimal.Decimal `json:"discount"`
	Date            time.Time       `json:"date"`
	SupplierRef     string          `json:"supplier_ref,omitempty"`
	ClientRef       string          `json:"client_ref,omitempty"`
	SupplierName    string          `json:"supplier_name,omitempty"`
	ClientName      string          `json:"client_name,omitempty"`
	IsWastage       bool            `json:"is_wastage"`
	Wastage         decimal.Decimal `json:"wastage"`
}
