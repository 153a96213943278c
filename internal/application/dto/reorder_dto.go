package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReorderRuleRequest body para POST /api/auto-reorder/rules.
type CreateReorderRuleRequest struct {
	ProductID        string `json:"product_id"`
	SupplierID       string `json:"supplier_id"`
	MinimumThreshold int64  `json:"minimum_threshold"`
	ReorderQuantity  int64  `json:"reorder_quantity"`
	LeadTimeDays     int    `json:"lead_time_days"`
	IsActive         *bool  `json:"is_active,omitempty"` // nil = true
}

// UpdateReorderRuleRequest body para PATCH /api/auto-reorder/rules/:id.
// Campos nil se dejan como están.
type UpdateReorderRuleRequest struct {
	SupplierID       *string `json:"supplier_id,omitempty"`
	MinimumThreshold *int64  `json:"minimum_threshold,omitempty"`
	ReorderQuantity  *int64  `json:"reorder_quantity,omitempty"`
	LeadTimeDays     *int    `json:"lead_time_days,omitempty"`
	IsActive         *bool   `json:"is_active,omitempty"`
}

// ReorderRuleResponse regla de reposición en respuestas HTTP.
type ReorderRuleResponse struct {
	ID               string     `json:"id"`
	ProductID        string     `json:"product_id"`
	SupplierID       string     `json:"supplier_id"`
	MinimumThreshold int64      `json:"minimum_threshold"`
	ReorderQuantity  int64      `json:"reorder_quantity"`
	LeadTimeDays     int        `json:"lead_time_days"`
	IsActive         bool       `json:"is_active"`
	LastTriggered    *time.Time `json:"last_triggered,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// RecommendationDTO recomendación de reposición (read-model, nunca persistida).
type RecommendationDTO struct {
	ProductID              string           `json:"product_id"`
	LocationID             string           `json:"location_id"`
	CurrentStock           int64            `json:"current_stock"`
	MinimumThreshold       int64            `json:"minimum_threshold"`
	SuggestedOrderQuantity int64            `json:"suggested_order_quantity"`
	UrgencyLevel           string           `json:"urgency_level"`
	DaysUntilStockout      *decimal.Decimal `json:"days_until_stockout,omitempty"`
	AverageDailyUsage      decimal.Decimal  `json:"average_daily_usage"`
	LeadTimeDays           int              `json:"lead_time_days"`
	SupplierID             string           `json:"supplier_id,omitempty"`
	UnitCost               decimal.Decimal  `json:"unit_cost"`
	TotalCost              decimal.Decimal  `json:"total_cost"`
}

// ReorderSummaryDTO resumen del módulo de reposición automática.
type ReorderSummaryDTO struct {
	TotalRules               int             `json:"total_rules"`
	ActiveRules              int             `json:"active_rules"`
	PendingRecommendations   int             `json:"pending_recommendations"`
	CriticalItems            int             `json:"critical_items"`
	TotalPotentialOrderValue decimal.Decimal `json:"total_potential_order_value"`
	AverageLeadTimeDays      decimal.Decimal `json:"average_lead_time_days"`
}
