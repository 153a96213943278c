package memory

import (
	"context"

	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción sobre el Store: toma el mutex para toda la
// duración del callback (serialización total, el equivalente grueso del
// bloqueo de fila) y revierte vía snapshot si fn devuelve error.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre un Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repos atados al Store bajo el mutex. Error = rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRecordRepository,
	adjRepo repository.AdjustmentRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snap := r.store.snapshot()
	movRepo := &MovementRepo{store: r.store, inTx: true}
	stockRepo := &StockRecordRepo{store: r.store, inTx: true}
	adjRepo := &AdjustmentRepo{store: r.store, inTx: true}

	if err := fn(movRepo, stockRepo, adjRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
