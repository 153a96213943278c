package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnesssr/nextpms-api/internal/application/adjustment"
	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// AdjustmentHandler maneja el flujo de aprobación de ajustes (protegido).
type AdjustmentHandler struct {
	uc *adjustment.WorkflowUseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.WorkflowUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear un ajuste de inventario
// @Description  La razón debe pertenecer al conjunto del tipo (increase,
//
//	decrease, recount son disjuntos). Entra en pending salvo draft=true.
//
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "product_id, location_id, type, reason, quantity_before, quantity_after"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	adj, err := h.uc.Create(c.Context(), userID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(adj))
}

// List godoc
// @Summary      Listar ajustes
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Param        status       query  string  false  "draft | pending | approved | rejected"
// @Param        type         query  string  false  "increase | decrease | recount"
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "query inválida"})
	}
	page.DefaultPage()

	adjustments, err := h.uc.List(c.Context(), repository.AdjustmentFilter{
		ProductID:  c.Query("product_id"),
		LocationID: c.Query("location_id"),
		Type:       c.Query("type"),
		Reason:     c.Query("reason"),
		Status:     c.Query("status"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AdjustmentResponse, 0, len(adjustments))
	for _, a := range adjustments {
		out = append(out, toAdjustmentResponse(a))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

// Get godoc
// @Summary      Obtener un ajuste
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [get]
func (h *AdjustmentHandler) Get(c *fiber.Ctx) error {
	adj, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Submit godoc
// @Summary      Enviar un borrador a aprobación
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/submit [patch]
func (h *AdjustmentHandler) Submit(c *fiber.Ctx) error {
	adj, err := h.uc.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Approve godoc
// @Summary      Aprobar un ajuste pendiente
// @Description  Aplica el delta al stock y escribe el espejo en el libro de
//
//	movimientos en la misma transacción. Si el delta dejara cantidad negativa
//	responde 409 y el ajuste sigue en pending.
//
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/approve [patch]
func (h *AdjustmentHandler) Approve(c *fiber.Ctx) error {
	approverID := GetUserID(c)
	if approverID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	adj, err := h.uc.Approve(c.Context(), approverID, c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Reject godoc
// @Summary      Rechazar un ajuste pendiente
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                         true   "ID del ajuste"
// @Param        body  body  dto.AdjustmentDecisionRequest  false  "notes opcionales"
// @Success      200   {object}  dto.AdjustmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/reject [patch]
func (h *AdjustmentHandler) Reject(c *fiber.Ctx) error {
	approverID := GetUserID(c)
	if approverID == "" {
		return respondError(c, domain.ErrUnauthorized)
	}
	var in dto.AdjustmentDecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	adj, err := h.uc.Reject(c.Context(), approverID, c.Params("id"), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Resubmit godoc
// @Summary      Reenviar un ajuste rechazado
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      200  {object}  dto.AdjustmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id}/resubmit [patch]
func (h *AdjustmentHandler) Resubmit(c *fiber.Ctx) error {
	adj, err := h.uc.Resubmit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAdjustmentResponse(adj))
}

// Delete godoc
// @Summary      Eliminar un ajuste draft o rejected
// @Tags         adjustments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ajuste"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/adjustments/{id} [delete]
func (h *AdjustmentHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toAdjustmentResponse(a *entity.Adjustment) dto.AdjustmentResponse {
	return dto.AdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		LocationID:     a.LocationID,
		Type:           a.Type,
		Reason:         a.Reason,
		QuantityBefore: a.QuantityBefore,
		QuantityAfter:  a.QuantityAfter,
		QuantityChange: a.QuantityChange,
		CostImpact:     a.CostImpact,
		Status:         a.Status,
		Reference:      a.Reference,
		Notes:          a.Notes,
		CreatedBy:      a.CreatedBy,
		ApprovedBy:     a.ApprovedBy,
		ApprovedAt:     a.ApprovedAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
