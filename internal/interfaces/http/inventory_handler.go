package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Dasso14/ModuloInventario/internal/application/dto"
	"github.com/Dasso14/ModuloInventario/internal/application/ledger"
	"github.com/Dasso14/ModuloInventario/internal/domain"
	"github.com/Dasso14/ModuloInventario/internal/domain/entity"
)

// InventoryHandler maneja los movimientos de inventario (protegido).
// Todos los endpoints delegan en el Ledger, única autoridad para mutar existencias.
type InventoryHandler struct {
	ledger *ledger.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *ledger.UseCase) *InventoryHandler {
	return &InventoryHandler{ledger: uc}
}

// AddStock godoc
// @Summary      Adición de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "product_id, location_id, quantity > 0"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/add [post]
func (h *InventoryHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("INVALID_BODY", "cuerpo inválido"))
	}
	result, err := h.ledger.ApplyAddition(c.Context(), ledger.AdditionInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		UserID:          GetUserID(c),
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toMovementResponse(result)))
}

// RemoveStock godoc
// @Summary      Retiro de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "product_id, location_id, quantity > 0"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/remove [post]
func (h *InventoryHandler) RemoveStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("INVALID_BODY", "cuerpo inválido"))
	}
	result, err := h.ledger.ApplyRemoval(c.Context(), ledger.RemovalInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		UserID:          GetUserID(c),
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toMovementResponse(result)))
}

// AdjustStock godoc
// @Summary      Ajuste de stock (cantidad con signo, notas obligatorias)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id, location_id, quantity != 0, notes"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjust [post]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("INVALID_BODY", "cuerpo inválido"))
	}
	result, err := h.ledger.ApplyAdjustment(c.Context(), ledger.AdjustmentInput{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		Quantity:        in.Quantity,
		UserID:          GetUserID(c),
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(toMovementResponse(result)))
}

// TransferStock godoc
// @Summary      Traslado de stock entre ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferStockRequest  true  "product_id, from_location_id, to_location_id, quantity > 0"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/transfer [post]
func (h *InventoryHandler) TransferStock(c *fiber.Ctx) error {
	var in dto.TransferStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("INVALID_BODY", "cuerpo inválido"))
	}
	result, err := h.ledger.ApplyTransfer(c.Context(), ledger.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		UserID:         GetUserID(c),
		Notes:          in.Notes,
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(dto.TransferResultResponse{
		FromLevel: stockLevelResponse(result.FromLevel),
		ToLevel:   stockLevelResponse(result.ToLevel),
		Transfer:  transferResponse(result.Transfer),
	}))
}

// movementError traduce errores del Ledger a códigos HTTP.
func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("INVALID_QUANTITY", err.Error()))
	case errors.Is(err, domain.ErrSameLocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("SAME_LOCATION", err.Error()))
	case errors.Is(err, domain.ErrMissingJustification):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Error("MISSING_NOTES", err.Error()))
	case errors.Is(err, domain.ErrInvalidReference):
		return c.Status(fiber.StatusNotFound).JSON(dto.Error("INVALID_REFERENCE", err.Error()))
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.Error("INSUFFICIENT_STOCK", err.Error()))
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Error("CONCURRENCY_CONFLICT", err.Error()))
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("INTERNAL", err.Error()))
	}
}

func toMovementResponse(r *ledger.MovementResult) dto.MovementResponse {
	return dto.MovementResponse{
		StockLevel:  stockLevelResponse(r.StockLevel),
		Transaction: transactionResponse(r.Transaction),
	}
}

func stockLevelResponse(l *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductID:  l.ProductID,
		LocationID: l.LocationID,
		Quantity:   l.Quantity,
		UpdatedAt:  l.UpdatedAt,
	}
}

func transactionResponse(tx *entity.InventoryTransaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              tx.ID,
		Type:            tx.Type,
		ProductID:       tx.ProductID,
		LocationID:      tx.LocationID,
		Quantity:        tx.Quantity,
		Timestamp:       tx.Timestamp,
		UserID:          tx.UserID,
		ReferenceNumber: tx.ReferenceNumber,
		Notes:           tx.Notes,
	}
}

func transferResponse(tr *entity.LocationTransfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:             tr.ID,
		ProductID:      tr.ProductID,
		FromLocationID: tr.FromLocationID,
		ToLocationID:   tr.ToLocationID,
		Quantity:       tr.Quantity,
		Timestamp:      tr.Timestamp,
		UserID:         tr.UserID,
		Notes:          tr.Notes,
	}
}
