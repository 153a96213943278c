package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock visibles al usuario (derivados, nunca autoritativos en DB).
const (
	StockStatusInStock     = "in_stock"
	StockStatusLowStock    = "low_stock"
	StockStatusOutOfStock  = "out_of_stock"
	StockStatusOverstocked = "overstocked"
)

// Niveles de stock (clasificación fina para alertas y reposición).
const (
	StockLevelCritical = "critical"
	StockLevelLow      = "low"
	StockLevelNormal   = "normal"
	StockLevelHigh     = "high"
)

// StockRecord es la fila autoritativa de cantidad por (producto, ubicación).
// CurrentQuantity solo muta vía movimientos y ajustes aprobados, dentro de una
// transacción con bloqueo de fila. Version es el token de concurrencia
// optimista: se incrementa en cada Upsert y un desfase produce ErrConflict.
type StockRecord struct {
	ID              string
	ProductID       string
	LocationID      string
	CurrentQuantity int64
	MinimumQuantity int64
	MaximumQuantity *int64 // nil = sin tope; overstock nunca se señala
	CostPerUnit     decimal.Decimal
	UnitOfMeasure   string
	Version         int64
	LastUpdated     time.Time
	LastRestocked   *time.Time
	CreatedAt       time.Time
}

// TotalValue devuelve el valor del stock a costo actual.
func (s *StockRecord) TotalValue() decimal.Decimal {
	return s.CostPerUnit.Mul(decimal.NewFromInt(s.CurrentQuantity))
}
