package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación en memoria de AdjustmentRepository.
type AdjustmentRepo struct {
	store *Store
	inTx  bool
}

// NewAdjustmentRepository construye el adaptador sobre un Store.
func NewAdjustmentRepository(store *Store) *AdjustmentRepo {
	return &AdjustmentRepo{store: store}
}

func (r *AdjustmentRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create inserta un ajuste nuevo.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	defer r.lock()()
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	if _, ok := r.store.adjustments[adjustment.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.adjustments[adjustment.ID] = cloneAdjustment(adjustment)
	return nil
}

// GetByID obtiene un ajuste por id. (nil, nil) si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	defer r.lock()()
	adjustment, ok := r.store.adjustments[id]
	if !ok {
		return nil, nil
	}
	return cloneAdjustment(adjustment), nil
}

// GetForUpdate obtiene el ajuste para mutarlo. ErrNotFound si no existe.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.Adjustment, error) {
	defer r.lock()()
	adjustment, ok := r.store.adjustments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneAdjustment(adjustment), nil
}

// Update persiste estado y metadatos del flujo; cantidades inmutables.
func (r *AdjustmentRepo) Update(adjustment *entity.Adjustment) error {
	defer r.lock()()
	existing, ok := r.store.adjustments[adjustment.ID]
	if !ok {
		return domain.ErrNotFound
	}
	updated := cloneAdjustment(existing)
	updated.Status = adjustment.Status
	updated.Notes = adjustment.Notes
	updated.UpdatedAt = adjustment.UpdatedAt
	if adjustment.ApprovedBy != nil {
		v := *adjustment.ApprovedBy
		updated.ApprovedBy = &v
	}
	if adjustment.ApprovedAt != nil {
		v := *adjustment.ApprovedAt
		updated.ApprovedAt = &v
	}
	r.store.adjustments[adjustment.ID] = updated
	return nil
}

// Delete elimina un ajuste.
func (r *AdjustmentRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.adjustments[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.adjustments, id)
	return nil
}

// List devuelve ajustes según filtro, más reciente primero.
func (r *AdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	defer r.lock()()
	var list []*entity.Adjustment
	for _, a := range r.store.adjustments {
		if filter.ProductID != "" && a.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && a.LocationID != filter.LocationID {
			continue
		}
		if filter.Type != "" && a.Type != filter.Type {
			continue
		}
		if filter.Reason != "" && a.Reason != filter.Reason {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.From != nil && a.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.CreatedAt.After(*filter.To) {
			continue
		}
		list = append(list, cloneAdjustment(a))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

// ListAll devuelve todos los ajustes, más reciente primero.
func (r *AdjustmentRepo) ListAll() ([]*entity.Adjustment, error) {
	return r.List(repository.AdjustmentFilter{})
}
