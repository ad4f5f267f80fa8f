package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Radiologia-api/internal/application/dto"
	appstock "github.com/jhoicas/Radiologia-api/internal/application/stock"
	"github.com/jhoicas/Radiologia-api/internal/domain"
	"github.com/jhoicas/Radiologia-api/internal/domain/stock"
)

// StockHandler maneja movimientos, lotes, consumo directo y el snapshot (protegido).
type StockHandler struct {
	movements   *appstock.MovementUseCase
	consumption *appstock.ConsumptionUseCase
	snapshot    *appstock.SnapshotUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	movements *appstock.MovementUseCase,
	consumption *appstock.ConsumptionUseCase,
	snapshot *appstock.SnapshotUseCase,
) *StockHandler {
	return &StockHandler{movements: movements, consumption: consumption, snapshot: snapshot}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "material_id, tipo, cantidad, lote, vencimiento, valor_unitario, obs"
// @Success      201   {object}  map[string]int
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	id, err := h.movements.Register(c.Context(), appstock.MovementInput{
		MaterialID: in.MaterialID,
		Type:       in.Type,
		Quantity:   in.Quantity,
		LotCode:    in.LotCode,
		Expiry:     in.Expiry,
		UnitCost:   in.UnitCost,
		Note:       in.Note,
	})
	if err != nil {
		return stockError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// ListMovements godoc
// @Summary      Historial completo de movimientos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  entity.Movement
// @Router       /api/stock/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	items, err := h.movements.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// MaterialHistory godoc
// @Summary      Historial de movimientos de un material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del material"
// @Success      200  {array}  entity.Movement
// @Router       /api/stock/movements/material/{id} [get]
func (h *StockHandler) MaterialHistory(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	items, err := h.movements.History(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// ListBatches godoc
// @Summary      Lotes activos de un material (orden FIFO por vencimiento)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "id del material"
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/stock/batches/{id} [get]
func (h *StockHandler) ListBatches(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	lots, err := h.consumption.ActiveBatches(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BatchResponse, 0, len(lots))
	for _, l := range lots {
		b := dto.BatchResponse{ID: l.ID, MaterialID: id, Balance: l.Balance}
		if l.Code != nil {
			b.LotCode = *l.Code
		}
		if l.Expiry != nil {
			b.Expiry = *l.Expiry
		}
		out = append(out, b)
	}
	return c.JSON(out)
}

// Consume godoc
// @Summary      Consumo directo por lotes (todo-o-nada)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ConsumeRequest  true  "líneas de consumo"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/consume [post]
func (h *StockHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := dto.Validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	items := make([]stock.ConsumeItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, stock.ConsumeItem{MaterialID: it.MaterialID, Quantity: it.Quantity, LotID: it.LotID})
	}
	if err := h.consumption.ConsumeByLots(c.Context(), items); err != nil {
		return stockError(c, err)
	}
	return c.JSON(fiber.Map{"message": "consumo aplicado"})
}

// Snapshot godoc
// @Summary      Tablero gerencial de stock por material
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SnapshotRow
// @Router       /api/stock/snapshot [get]
func (h *StockHandler) Snapshot(c *fiber.Ctx) error {
	rows, err := h.snapshot.Compute(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(rows)
}

// stockError traduce errores del motor de stock a códigos HTTP.
func stockError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
	case errors.Is(err, domain.ErrLotNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "LOT_NOT_FOUND", Message: "lote no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
