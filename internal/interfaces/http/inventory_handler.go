package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de stock y movimientos (protegido).
type InventoryHandler struct {
	movements *inventory.RecordMovementUseCase
	stock     *inventory.StockUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.RecordMovementUseCase, stock *inventory.StockUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements, stock: stock}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  Registra un movimiento in, out o transfer. Un transfer produce
//
//	dos asientos ligados por el mismo transaction_id.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, location_id (o from/to para transfer), type, reason, quantity"
// @Success      201   {array}   dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.movements.Record(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(created))
	for _, m := range created {
		out = append(out, toMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// VoidMovement godoc
// @Summary      Revertir un movimiento con asiento compensatorio
// @Description  El libro nunca se muta: revertir agrega la entrada contraria
//
//	ligada por voids_movement_id. Solo asientos in/out simples, una sola vez.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento original"
// @Success      201  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/void [post]
func (h *InventoryHandler) VoidMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	mov, err := h.movements.Void(c.Context(), userID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        type         query  string  false  "in | out | transfer | adjustment"
// @Param        reason       query  string  false  "Razón del movimiento"
// @Param        limit        query  int     false  "Máximo de filas (def. 20)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()

	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
		Reason:     c.Query("reason"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	movements, err := h.movements.List(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// GetMovement godoc
// @Summary      Obtener un movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.movements.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponse(mov))
}

// CreateStockRecord godoc
// @Summary      Dar de alta el stock de un producto en una ubicación
// @Description  El registro nace en 0 y la cantidad inicial se asienta como un
//
//	movimiento in en la misma transacción.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockRecordRequest  true  "product_id, location_id, cost_per_unit, unit_of_measure"
// @Success      201   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) CreateStockRecord(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateStockRecordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.stock.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.stock.Get(c.Context(), record.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListStock godoc
// @Summary      Listar stock con estado derivado por fila
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.StockRecordResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListStock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()

	records, err := h.stock.List(c.Context(), repository.StockRecordFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(records), "items": records})
}

// GetStockRecord godoc
// @Summary      Obtener un registro de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  dto.StockRecordResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetStockRecord(c *fiber.Ctx) error {
	resp, err := h.stock.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// SetStockLevels godoc
// @Summary      Actualizar umbrales mínimo/máximo
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del registro"
// @Param        body  body  dto.SetStockLevelsRequest  true  "minimum_quantity, maximum_quantity"
// @Success      200   {object}  dto.StockRecordResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/levels [patch]
func (h *InventoryHandler) SetStockLevels(c *fiber.Ctx) error {
	var in dto.SetStockLevelsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	record, err := h.stock.SetLevels(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	resp, err := h.stock.Get(c.Context(), record.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// DeleteStockRecord godoc
// @Summary      Dar de baja un registro de stock
// @Description  Solo se permite con cantidad 0; con existencias responde 409.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) DeleteStockRecord(c *fiber.Ctx) error {
	if err := h.stock.Remove(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toMovementResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:              m.ID,
		TransactionID:   m.TransactionID,
		ProductID:       m.ProductID,
		LocationID:      m.LocationID,
		Type:            m.Type,
		Reason:          m.Reason,
		Quantity:        m.Quantity,
		BeforeQuantity:  m.BeforeQuantity,
		AfterQuantity:   m.AfterQuantity,
		UnitCost:        m.UnitCost,
		TotalCost:       m.TotalCost,
		Supplier:        m.Supplier,
		Customer:        m.Customer,
		Reference:       m.Reference,
		Notes:           m.Notes,
		VoidsMovementID: m.VoidsMovementID,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}
