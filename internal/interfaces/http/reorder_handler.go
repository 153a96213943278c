package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/application/reorder"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// ReorderHandler maneja reglas y recomendaciones de reposición (protegido).
type ReorderHandler struct {
	uc *reorder.UseCase
}

// NewReorderHandler construye el handler.
func NewReorderHandler(uc *reorder.UseCase) *ReorderHandler {
	return &ReorderHandler{uc: uc}
}

// CreateRule godoc
// @Summary      Crear la regla de reposición de un producto
// @Tags         auto-reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReorderRuleRequest  true  "product_id, supplier_id, minimum_threshold, reorder_quantity, lead_time_days"
// @Success      201   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auto-reorder/rules [post]
func (h *ReorderHandler) CreateRule(c *fiber.Ctx) error {
	var in dto.CreateReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule, err := h.uc.CreateRule(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toRuleResponse(rule))
}

// ListRules godoc
// @Summary      Listar reglas de reposición
// @Tags         auto-reorder
// @Security     Bearer
// @Produce      json
// @Param        active  query  bool  false  "Solo reglas activas"
// @Success      200  {array}  dto.ReorderRuleResponse
// @Router       /api/auto-reorder/rules [get]
func (h *ReorderHandler) ListRules(c *fiber.Ctx) error {
	rules, err := h.uc.ListRules(c.Context(), c.QueryBool("active"))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.ReorderRuleResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, toRuleResponse(r))
	}
	return c.JSON(fiber.Map{"total": len(out), "rules": out})
}

// GetRule godoc
// @Summary      Obtener una regla de reposición
// @Tags         auto-reorder
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      200  {object}  dto.ReorderRuleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auto-reorder/rules/{id} [get]
func (h *ReorderHandler) GetRule(c *fiber.Ctx) error {
	rule, err := h.uc.GetRule(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRuleResponse(rule))
}

// UpdateRule godoc
// @Summary      Actualizar parcialmente una regla
// @Tags         auto-reorder
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la regla"
// @Param        body  body  dto.UpdateReorderRuleRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ReorderRuleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/auto-reorder/rules/{id} [patch]
func (h *ReorderHandler) UpdateRule(c *fiber.Ctx) error {
	var in dto.UpdateReorderRuleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rule, err := h.uc.UpdateRule(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRuleResponse(rule))
}

// DeleteRule godoc
// @Summary      Eliminar una regla de reposición
// @Tags         auto-reorder
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la regla"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/auto-reorder/rules/{id} [delete]
func (h *ReorderHandler) DeleteRule(c *fiber.Ctx) error {
	if err := h.uc.DeleteRule(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRecommendations godoc
// @Summary      Generar recomendaciones de reposición
// @Description  Evalúa cada regla activa contra el stock y el consumo de los
//
//	últimos 30 días. Resultado ordenado por urgencia y horizonte de agotamiento.
//
// @Tags         auto-reorder
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RecommendationDTO
// @Router       /api/auto-reorder/recommendations [get]
func (h *ReorderHandler) GetRecommendations(c *fiber.Ctx) error {
	recs, err := h.uc.GenerateRecommendations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(recs), "recommendations": recs})
}

// GetSummary godoc
// @Summary      Resumen del módulo de reposición automática
// @Tags         auto-reorder
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReorderSummaryDTO
// @Router       /api/auto-reorder/summary [get]
func (h *ReorderHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

func toRuleResponse(r *entity.AutoReorderRule) dto.ReorderRuleResponse {
	return dto.ReorderRuleResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		SupplierID:       r.SupplierID,
		MinimumThreshold: r.MinimumThreshold,
		ReorderQuantity:  r.ReorderQuantity,
		LeadTimeDays:     r.LeadTimeDays,
		IsActive:         r.IsActive,
		LastTriggered:    r.LastTriggered,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}
