package dto

import "github.com/shopspring/decimal"

// StockSummaryDTO rollup del inventario actual.
type StockSummaryDTO struct {
	TotalItems        int             `json:"total_items"`
	TotalValue        decimal.Decimal `json:"total_value"`
	LowStockItems     int             `json:"low_stock_items"`
	OutOfStockItems   int             `json:"out_of_stock_items"`
	OverstockedItems  int             `json:"overstocked_items"`
	DistinctLocations int             `json:"distinct_locations"`
}

// MovementSummaryDTO rollup del libro de movimientos en una ventana de días.
type MovementSummaryDTO struct {
	TotalMovements     int             `json:"total_movements"`
	TotalStockIn       int64           `json:"total_stock_in"`
	TotalStockOut      int64           `json:"total_stock_out"`
	TotalValue         decimal.Decimal `json:"total_value"`
	MovementsToday     int             `json:"movements_today"`
	MovementsThisWeek  int             `json:"movements_this_week"`
	MovementsThisMonth int             `json:"movements_this_month"`
}

// AdjustmentSummaryDTO rollup de ajustes por estado y periodo.
type AdjustmentSummaryDTO struct {
	TotalAdjustments     int             `json:"total_adjustments"`
	PendingAdjustments   int             `json:"pending_adjustments"`
	ApprovedAdjustments  int             `json:"approved_adjustments"`
	RejectedAdjustments  int             `json:"rejected_adjustments"`
	TotalIncreases       int             `json:"total_increases"`
	TotalDecreases       int             `json:"total_decreases"`
	TotalCostImpact      decimal.Decimal `json:"total_cost_impact"`
	AdjustmentsToday     int             `json:"adjustments_today"`
	AdjustmentsThisWeek  int             `json:"adjustments_this_week"`
	AdjustmentsThisMonth int             `json:"adjustments_this_month"`
}

// DashboardSummaryDTO combinación de los tres rollups para el tablero.
type DashboardSummaryDTO struct {
	Stock       StockSummaryDTO      `json:"stock"`
	Movements   MovementSummaryDTO   `json:"movements"`
	Adjustments AdjustmentSummaryDTO `json:"adjustments"`
}
