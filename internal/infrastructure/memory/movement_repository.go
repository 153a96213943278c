package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación en memoria del libro de movimientos.
type MovementRepo struct {
	store *Store
	inTx  bool
}

// NewMovementRepository construye el adaptador sobre un Store.
func NewMovementRepository(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create agrega un asiento al libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	defer r.lock()()
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	r.store.movements = append(r.store.movements, cloneMovement(movement))
	return nil
}

// GetByID obtiene un asiento por id. (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	defer r.lock()()
	for _, m := range r.store.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

// List devuelve asientos según filtro, más reciente primero.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	defer r.lock()()
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if filter.ProductID != "" && m.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && m.LocationID != filter.LocationID {
			continue
		}
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if filter.Reason != "" && m.Reason != filter.Reason {
			continue
		}
		if filter.From != nil && m.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.CreatedAt.After(*filter.To) {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ListByProductSince devuelve los asientos de un producto en una ubicación
// desde la fecha dada, en orden cronológico.
func (r *MovementRepo) ListByProductSince(productID, locationID string, since time.Time) ([]*entity.Movement, error) {
	defer r.lock()()
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if m.ProductID != productID || m.LocationID != locationID {
			continue
		}
		if m.CreatedAt.Before(since) {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// ListSince devuelve todos los asientos desde la fecha dada, en orden cronológico.
func (r *MovementRepo) ListSince(since time.Time) ([]*entity.Movement, error) {
	defer r.lock()()
	var list []*entity.Movement
	for _, m := range r.store.movements {
		if m.CreatedAt.Before(since) {
			continue
		}
		list = append(list, cloneMovement(m))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, nil
}

// HasVoidOf indica si ya existe el asiento compensatorio de un movimiento.
func (r *MovementRepo) HasVoidOf(movementID string) (bool, error) {
	defer r.lock()()
	for _, m := range r.store.movements {
		if m.VoidsMovementID != nil && *m.VoidsMovementID == movementID {
			return true, nil
		}
	}
	return false, nil
}
