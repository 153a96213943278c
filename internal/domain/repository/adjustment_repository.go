package repository

import (
	"time"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// AdjustmentFilter criterios de listado de ajustes.
type AdjustmentFilter struct {
	ProductID  string
	LocationID string
	Type       string
	Reason     string
	Status     string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// AdjustmentRepository define el puerto de persistencia de ajustes.
// Update solo cambia estado y metadatos del flujo de aprobación; las
// cantidades del ajuste son inmutables después de Create.
type AdjustmentRepository interface {
	Create(adjustment *entity.Adjustment) error
	GetByID(id string) (*entity.Adjustment, error)
	// GetForUpdate bloquea la fila del ajuste durante approve/reject.
	GetForUpdate(id string) (*entity.Adjustment, error)
	Update(adjustment *entity.Adjustment) error
	// Delete solo lo invoca el caso de uso para draft/rejected.
	Delete(id string) error
	List(filter AdjustmentFilter) ([]*entity.Adjustment, error)
	ListAll() ([]*entity.Adjustment, error)
}
