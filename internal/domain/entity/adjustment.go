package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de ajuste de inventario.
const (
	AdjustmentTypeIncrease = "increase"
	AdjustmentTypeDecrease = "decrease"
	AdjustmentTypeRecount  = "recount"
)

// Estados del flujo de aprobación de ajustes.
const (
	AdjustmentStatusDraft    = "draft"
	AdjustmentStatusPending  = "pending"
	AdjustmentStatusApproved = "approved"
	AdjustmentStatusRejected = "rejected"
)

// Razones de incremento.
const (
	AdjustReasonStockFound         = "stock_found"
	AdjustReasonReturnFromCustomer = "return_from_customer"
	AdjustReasonSupplierCredit     = "supplier_credit"
	AdjustReasonProductionYield    = "production_yield"
	AdjustReasonCountingError      = "counting_error"
)

// Razones de decremento.
const (
	AdjustReasonDamage       = "damage"
	AdjustReasonTheft        = "theft"
	AdjustReasonExpiry       = "expiry"
	AdjustReasonQualityIssue = "quality_issue"
	AdjustReasonShrinkage    = "shrinkage"
	AdjustReasonSampleUsed   = "sample_used"
	AdjustReasonDisposal     = "disposal"
)

// Razones de reconteo.
const (
	AdjustReasonCycleCount        = "cycle_count"
	AdjustReasonPhysicalInventory = "physical_inventory"
	AdjustReasonSystemError       = "system_error"
	AdjustReasonReconciliation    = "reconciliation"
)

// adjustmentReasons conjuntos disjuntos de razones por tipo de ajuste.
// Un ajuste decrease no puede llevar una razón de increase y viceversa.
var adjustmentReasons = map[string]map[string]bool{
	AdjustmentTypeIncrease: {
		AdjustReasonStockFound:         true,
		AdjustReasonReturnFromCustomer: true,
		AdjustReasonSupplierCredit:     true,
		AdjustReasonProductionYield:    true,
		AdjustReasonCountingError:      true,
	},
	AdjustmentTypeDecrease: {
		AdjustReasonDamage:       true,
		AdjustReasonTheft:        true,
		AdjustReasonExpiry:       true,
		AdjustReasonQualityIssue: true,
		AdjustReasonShrinkage:    true,
		AdjustReasonSampleUsed:   true,
		AdjustReasonDisposal:     true,
	},
	AdjustmentTypeRecount: {
		AdjustReasonCycleCount:        true,
		AdjustReasonPhysicalInventory: true,
		AdjustReasonSystemError:       true,
		AdjustReasonReconciliation:    true,
	},
}

// AdjustmentReasonAllowed indica si la razón pertenece al conjunto del tipo.
func AdjustmentReasonAllowed(adjustmentType, reason string) bool {
	return adjustmentReasons[adjustmentType][reason]
}

// Adjustment es una corrección de cantidad no ligada a movimiento físico
// (daño, reconteo, robo...), gatillada por un flujo de aprobación. Solo un
// ajuste approved muta el StockRecord; draft/pending/rejected son consultivos.
type Adjustment struct {
	ID             string
	ProductID      string
	LocationID     string
	Type           string
	Reason         string
	QuantityBefore int64
	QuantityAfter  int64
	QuantityChange int64 // QuantityAfter - QuantityBefore
	CostImpact     decimal.Decimal
	Status         string
	Reference      string
	Notes          string
	CreatedBy      string
	ApprovedBy     *string
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TypeMatchesChange verifica que el signo de QuantityChange sea consistente
// con el tipo: increase > 0, decrease < 0, recount cualquiera (incluido 0).
func (a *Adjustment) TypeMatchesChange() bool {
	switch a.Type {
	case AdjustmentTypeIncrease:
		return a.QuantityChange > 0
	case AdjustmentTypeDecrease:
		return a.QuantityChange < 0
	case AdjustmentTypeRecount:
		return true
	}
	return false
}

// IsTerminal indica si el ajuste ya no admite aprobación (approved es final;
// rejected admite reenvío explícito vía Resubmit).
func (a *Adjustment) IsTerminal() bool {
	return a.Status == AdjustmentStatusApproved || a.Status == AdjustmentStatusRejected
}
