package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/arnesssr/nextpms-api/internal/application/adjustment"
	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/application/reorder"
	"github.com/arnesssr/nextpms-api/internal/application/summary"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Movements  *inventory.RecordMovementUseCase
	Stock      *inventory.StockUseCase
	Adjustment *adjustment.WorkflowUseCase
	Reorder    *reorder.UseCase
	Summary    *summary.UseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todo /api va detrás del Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	inventoryHandler := NewInventoryHandler(deps.Movements, deps.Stock)
	summaryHandler := NewSummaryHandler(deps.Summary)

	// Inventory (stock + movimientos). Las rutas fijas van antes de :id.
	inv := api.Group("/inventory")
	inv.Get("/summary", summaryHandler.StockSummary)
	inv.Get("/movements/summary", summaryHandler.MovementSummary)
	inv.Post("/movements", inventoryHandler.RecordMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Get("/movements/:id", inventoryHandler.GetMovement)
	inv.Post("/movements/:id/void", inventoryHandler.VoidMovement)
	inv.Post("/", inventoryHandler.CreateStockRecord)
	inv.Get("/", inventoryHandler.ListStock)
	inv.Get("/:id", inventoryHandler.GetStockRecord)
	inv.Patch("/:id/levels", inventoryHandler.SetStockLevels)
	inv.Delete("/:id", inventoryHandler.DeleteStockRecord)

	// Adjustments (flujo de aprobación)
	adj := api.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.Adjustment)
	adj.Get("/summary", summaryHandler.AdjustmentSummary)
	adj.Post("/", adjustmentHandler.Create)
	adj.Get("/", adjustmentHandler.List)
	adj.Get("/:id", adjustmentHandler.Get)
	adj.Patch("/:id/submit", adjustmentHandler.Submit)
	adj.Patch("/:id/approve", adjustmentHandler.Approve)
	adj.Patch("/:id/reject", adjustmentHandler.Reject)
	adj.Patch("/:id/resubmit", adjustmentHandler.Resubmit)
	adj.Delete("/:id", adjustmentHandler.Delete)

	// Auto-reorder (reglas + recomendaciones)
	auto := api.Group("/auto-reorder")
	reorderHandler := NewReorderHandler(deps.Reorder)
	auto.Post("/rules", reorderHandler.CreateRule)
	auto.Get("/rules", reorderHandler.ListRules)
	auto.Get("/rules/:id", reorderHandler.GetRule)
	auto.Patch("/rules/:id", reorderHandler.UpdateRule)
	auto.Delete("/rules/:id", reorderHandler.DeleteRule)
	auto.Get("/recommendations", reorderHandler.GetRecommendations)
	auto.Get("/summary", reorderHandler.GetSummary)

	// Dashboard combinado
	api.Get("/dashboard/summary", summaryHandler.Dashboard)
}
