package repository

import (
	"time"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// ReorderRuleRepository define el puerto de persistencia de reglas de
// reposición automática (una regla activa por producto).
type ReorderRuleRepository interface {
	Create(rule *entity.AutoReorderRule) error
	GetByID(id string) (*entity.AutoReorderRule, error)
	GetByProduct(productID string) (*entity.AutoReorderRule, error)
	Update(rule *entity.AutoReorderRule) error
	Delete(id string) error
	// List devuelve las reglas; con activeOnly solo las habilitadas.
	List(activeOnly bool) ([]*entity.AutoReorderRule, error)
	// MarkTriggered estampa last_triggered al generar recomendaciones.
	MarkTriggered(id string, at time.Time) error
}
