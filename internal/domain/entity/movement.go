package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIn         = "in"         // entrada física
	MovementTypeOut        = "out"        // salida física
	MovementTypeTransfer   = "transfer"   // entre ubicaciones (dos asientos ligados)
	MovementTypeAdjustment = "adjustment" // espejo de un ajuste aprobado
)

// Razones de movimiento. Cada tipo admite un subconjunto (ver ReasonAllowed).
const (
	MovementReasonPurchase   = "purchase"
	MovementReasonReturn     = "return"
	MovementReasonSale       = "sale"
	MovementReasonDamage     = "damage"
	MovementReasonTransfer   = "transfer"
	MovementReasonAdjustment = "adjustment"
	MovementReasonManual     = "manual"
	MovementReasonVoid       = "void" // asiento compensatorio de una reversa
)

// movementReasons razones legales por tipo de movimiento.
var movementReasons = map[string]map[string]bool{
	MovementTypeIn: {
		MovementReasonPurchase: true,
		MovementReasonReturn:   true,
		MovementReasonManual:   true,
		MovementReasonVoid:     true,
	},
	MovementTypeOut: {
		MovementReasonSale:   true,
		MovementReasonDamage: true,
		MovementReasonManual: true,
		MovementReasonVoid:   true,
	},
	MovementTypeTransfer: {
		MovementReasonTransfer: true,
	},
	MovementTypeAdjustment: {
		MovementReasonAdjustment: true,
	},
}

// MovementReasonAllowed indica si la razón es válida para el tipo dado.
func MovementReasonAllowed(movementType, reason string) bool {
	return movementReasons[movementType][reason]
}

// Movement es un asiento inmutable del libro de inventario. Nunca se muta ni
// se borra; una reversa agrega un asiento compensatorio ligado por
// VoidsMovementID. BeforeQuantity/AfterQuantity son la foto tomada dentro de
// la misma transacción que actualizó el StockRecord.
type Movement struct {
	ID              string
	TransactionID   string // agrupa los dos asientos de un TRANSFER
	ProductID       string
	LocationID      string
	Type            string
	Reason          string
	Quantity        int64 // siempre positivo; el signo lo da el tipo
	BeforeQuantity  int64
	AfterQuantity   int64
	UnitCost        *decimal.Decimal
	TotalCost       *decimal.Decimal
	Supplier        string
	Customer        string
	Reference       string
	Notes           string
	VoidsMovementID *string // asiento original que esta entrada compensa
	CreatedAt       time.Time
	CreatedBy       string
}

// SignedChange devuelve el delta con signo que el asiento aplicó al stock.
func (m *Movement) SignedChange() int64 {
	if m.AfterQuantity >= m.BeforeQuantity {
		return m.AfterQuantity - m.BeforeQuantity
	}
	return -(m.BeforeQuantity - m.AfterQuantity)
}
