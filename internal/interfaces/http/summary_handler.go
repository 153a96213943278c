package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnesssr/nextpms-api/internal/application/summary"
)

// SummaryHandler sirve los rollups de solo lectura (protegido).
type SummaryHandler struct {
	uc *summary.UseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *summary.UseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// StockSummary godoc
// @Summary      Resumen del inventario actual
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryDTO
// @Router       /api/inventory/summary [get]
func (h *SummaryHandler) StockSummary(c *fiber.Ctx) error {
	out, err := h.uc.StockSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MovementSummary godoc
// @Summary      Resumen del libro de movimientos
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días (def. 30)"
// @Success      200   {object}  dto.MovementSummaryDTO
// @Router       /api/inventory/movements/summary [get]
func (h *SummaryHandler) MovementSummary(c *fiber.Ctx) error {
	out, err := h.uc.MovementSummary(c.Context(), c.QueryInt("days"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustmentSummary godoc
// @Summary      Resumen de ajustes por estado y periodo
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdjustmentSummaryDTO
// @Router       /api/adjustments/summary [get]
func (h *SummaryHandler) AdjustmentSummary(c *fiber.Ctx) error {
	out, err := h.uc.AdjustmentSummary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Tablero combinado de stock, movimientos y ajustes
// @Tags         summaries
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *SummaryHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
