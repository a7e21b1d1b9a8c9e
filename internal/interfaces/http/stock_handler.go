package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/ledger"
)

// StockHandler maneja el registro de movimientos de stock y la lectura del
// historial (protegido).
type StockHandler struct {
	applyUC   *ledger.ApplyTransactionUseCase
	historyUC *ledger.HistoryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(applyUC *ledger.ApplyTransactionUseCase, historyUC *ledger.HistoryUseCase) *StockHandler {
	return &StockHandler{applyUC: applyUC, historyUC: historyUC}
}

// Update godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica un movimiento IN/OUT: muta la cantidad del producto y
// @Description  agrega el asiento inmutable en una sola transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockUpdateRequest  true  "Movimiento"
// @Success      200   {object}  dto.StockUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/update [post]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	var in dto.StockUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.applyUC.Apply(c.Context(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Historial de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(50)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.TransactionResponse
// @Router       /api/stock-history [get]
func (h *StockHandler) History(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit"), Offset: c.QueryInt("offset")}
	page.DefaultPage()
	out, err := h.historyUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// HistoryDetail godoc
// @Summary      Detalle de un movimiento
// @Description  Enriquece el asiento con product_name y supplier_name/client_name
// @Description  cuando la referencia es resoluble.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del asiento"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-history/{id} [get]
func (h *StockHandler) HistoryDetail(c *fiber.Ctx) error {
	out, err := h.historyUC.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
