package inventory

import (
	"context"

	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la sección crítica del libro: leer
// cantidad, validar, escribir y registrar el asiento ocurren como una unidad
// indivisible, con Commit si todo sale bien y Rollback ante cualquier error.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		adjRepo repository.AdjustmentRepository,
	) error) error
}
