package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	TransactionIN  = "IN"  // entrada
	TransactionOUT = "OUT" // salida
)

// ValidTransactionType indica si el tipo es IN u OUT.
func ValidTransactionType(t string) bool {
	return t == TransactionIN || t == TransactionOUT
}

// StockTransaction asiento del ledger de movimientos de stock.
// Es append-only: una vez creado nunca se edita ni se borra; las correcciones
// se registran como una transacción compensatoria. Date lo asigna el servidor
// y ordena el ledger (descendente para listados).
type StockTransaction struct {
	ID              string
	ProductID       string
	Quantity        int    // siempre positivo; la dirección la da Type
	Type            string // IN | OUT
	Notes           string
	ReferenceNumber string
	UnitPrice       decimal.Decimal // explícito o derivado del producto según dirección
	Discount        decimal.Decimal
	IsWastage       bool
	Wastage         decimal.Decimal // merma registrada en el asiento; independiente de Product.Wastage
	Supplier        PartyRef
	Client          PartyRef
	Date            time.Time
}

// TotalValue valor del asiento: cantidad × precio unitario.
func (t *StockTransaction) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(t.Quantity)).Mul(t.UnitPrice)
}
