package ledger

import (
	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain/entity"
)

// ToTransactionResponse mapea un asiento del ledger a su representación de
// respuesta. Sin lookups: SupplierName/ClientName solo se completan con el
// texto libre legacy cuando no hay referencia estructurada; el detalle
// enriquecido con nombres resueltos lo hace HistoryUseCase.GetDetail.
func ToTransactionResponse(t *entity.StockTransaction) *dto.TransactionResponse {
	if t == nil {
		return nil
	}
	resp := &dto.TransactionResponse{
		ID:              t.ID,
		Product:         t.ProductID,
		Quantity:        t.Quantity,
		Type:            t.Type,
		Notes:           t.Notes,
		ReferenceNumber: t.ReferenceNumber,
		UnitPrice:       t.UnitPrice,
		Discount:        t.Discount,
		Date:            t.Date,
		IsWastage:       t.IsWastage,
		Wastage:         t.Wastage,
	}
	if t.Supplier.IsReferenced() {
		resp.SupplierRef = t.Supplier.RefID
	} else {
		resp.Supplier = t.Supplier.Name
		resp.SupplierContact = t.Supplier.Contact
		resp.SupplierName = t.Supplier.Name
	}
	if t.Client.IsReferenced() {
		resp.ClientRef = t.Client.RefID
	} else {
		resp.Client = t.Client.Name
		resp.ClientContact = t.Client.Contact
		resp.ClientName = t.Client.Name
	}
	return resp
}
