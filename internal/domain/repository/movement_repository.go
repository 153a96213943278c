package repository

import (
	"time"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// MovementFilter criterios de listado del libro de movimientos.
type MovementFilter struct {
	ProductID  string
	LocationID string
	Type       string
	Reason     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// MovementRepository define el puerto de persistencia del libro de
// movimientos. Append-only: no hay Update ni Delete; una reversa se registra
// como asiento compensatorio vía el caso de uso Void.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
	// ListByProductSince devuelve los movimientos de un producto en una
	// ubicación desde la fecha dada (historial de consumo para reposición).
	ListByProductSince(productID, locationID string, since time.Time) ([]*entity.Movement, error)
	// ListSince devuelve todos los movimientos desde la fecha dada (rollups).
	ListSince(since time.Time) ([]*entity.Movement, error)
	// HasVoidOf indica si ya existe un asiento compensatorio del movimiento.
	HasVoidOf(movementID string) (bool, error)
}
