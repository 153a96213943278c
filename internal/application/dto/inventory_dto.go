package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/inventory/movements.
// Para transfer se usa from_location_id/to_location_id; para in/out basta
// location_id. UnitCost es opcional: si falta se usa el costo del registro.
type CreateMovementRequest struct {
	ProductID      string           `json:"product_id"`
	LocationID     string           `json:"location_id,omitempty"`
	FromLocationID string           `json:"from_location_id,omitempty"`
	ToLocationID   string           `json:"to_location_id,omitempty"`
	Type           string           `json:"type"`
	Reason         string           `json:"reason"`
	Quantity       int64            `json:"quantity"`
	UnitCost       *decimal.Decimal `json:"unit_cost,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	Customer       string           `json:"customer,omitempty"`
	Reference      string           `json:"reference,omitempty"`
	Notes          string           `json:"notes,omitempty"`
}

// MovementResponse asiento del libro en respuestas HTTP.
type MovementResponse struct {
	ID              string           `json:"id"`
	TransactionID   string           `json:"transaction_id"`
	ProductID       string           `json:"product_id"`
	LocationID      string           `json:"location_id"`
	Type            string           `json:"type"`
	Reason          string           `json:"reason"`
	Quantity        int64            `json:"quantity"`
	BeforeQuantity  int64            `json:"before_quantity"`
	AfterQuantity   int64            `json:"after_quantity"`
	UnitCost        *decimal.Decimal `json:"unit_cost,omitempty"`
	TotalCost       *decimal.Decimal `json:"total_cost,omitempty"`
	Supplier        string           `json:"supplier,omitempty"`
	Customer        string           `json:"customer,omitempty"`
	Reference       string           `json:"reference,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	VoidsMovementID *string          `json:"voids_movement_id,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	CreatedBy       string           `json:"created_by"`
}

// CreateStockRecordRequest body para POST /api/inventory (alta de un producto
// en una ubicación).
type CreateStockRecordRequest struct {
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	InitialQuantity int64           `json:"initial_quantity"`
	MinimumQuantity int64           `json:"minimum_quantity"`
	MaximumQuantity *int64          `json:"maximum_quantity,omitempty"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
}

// SetStockLevelsRequest body para PATCH /api/inventory/:id/levels.
type SetStockLevelsRequest struct {
	MinimumQuantity int64  `json:"minimum_quantity"`
	MaximumQuantity *int64 `json:"maximum_quantity,omitempty"`
}

// StockRecordResponse fila de stock con estado derivado por el clasificador.
type StockRecordResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id"`
	LocationID      string          `json:"location_id"`
	CurrentQuantity int64           `json:"current_quantity"`
	MinimumQuantity int64           `json:"minimum_quantity"`
	MaximumQuantity *int64          `json:"maximum_quantity,omitempty"`
	CostPerUnit     decimal.Decimal `json:"cost_per_unit"`
	TotalValue      decimal.Decimal `json:"total_value"`
	UnitOfMeasure   string          `json:"unit_of_measure"`
	Status          string          `json:"status"`
	StockLevel      string          `json:"stock_level"`
	LastUpdated     time.Time       `json:"last_updated"`
	LastRestocked   *time.Time      `json:"last_restocked,omitempty"`
}
