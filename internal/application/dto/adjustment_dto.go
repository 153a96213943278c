package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAdjustmentRequest body para POST /api/adjustments. Con draft=true el
// ajuste se guarda como borrador editable; por defecto entra en pending.
type CreateAdjustmentRequest struct {
	ProductID      string `json:"product_id"`
	LocationID     string `json:"location_id"`
	Type           string `json:"type"`
	Reason         string `json:"reason"`
	QuantityBefore int64  `json:"quantity_before"`
	QuantityAfter  int64  `json:"quantity_after"`
	Reference      string `json:"reference,omitempty"`
	Notes          string `json:"notes,omitempty"`
	Draft          bool   `json:"draft,omitempty"`
}

// AdjustmentDecisionRequest body para PATCH /api/adjustments/:id/reject.
type AdjustmentDecisionRequest struct {
	Notes string `json:"notes,omitempty"`
}

// AdjustmentResponse ajuste en respuestas HTTP.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	LocationID     string          `json:"location_id"`
	Type           string          `json:"type"`
	Reason         string          `json:"reason"`
	QuantityBefore int64           `json:"quantity_before"`
	QuantityAfter  int64           `json:"quantity_after"`
	QuantityChange int64           `json:"quantity_change"`
	CostImpact     decimal.Decimal `json:"cost_impact"`
	Status         string          `json:"status"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedBy      string          `json:"created_by"`
	ApprovedBy     *string         `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
