package memory

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.ReorderRuleRepository = (*ReorderRuleRepo)(nil)

// ReorderRuleRepo implementación en memoria de ReorderRuleRepository.
type ReorderRuleRepo struct {
	store *Store
}

// NewReorderRuleRepository construye el adaptador sobre un Store.
func NewReorderRuleRepository(store *Store) *ReorderRuleRepo {
	return &ReorderRuleRepo{store: store}
}

// Create inserta una regla; una por producto.
func (r *ReorderRuleRepo) Create(rule *entity.AutoReorderRule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	for _, existing := range r.store.rules {
		if existing.ProductID == rule.ProductID {
			return domain.ErrDuplicate
		}
	}
	r.store.rules[rule.ID] = cloneRule(rule)
	return nil
}

// GetByID obtiene una regla por id. (nil, nil) si no existe.
func (r *ReorderRuleRepo) GetByID(id string) (*entity.AutoReorderRule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rule, ok := r.store.rules[id]
	if !ok {
		return nil, nil
	}
	return cloneRule(rule), nil
}

// GetByProduct obtiene la regla de un producto. (nil, nil) si no existe.
func (r *ReorderRuleRepo) GetByProduct(productID string) (*entity.AutoReorderRule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rule := range r.store.rules {
		if rule.ProductID == productID {
			return cloneRule(rule), nil
		}
	}
	return nil, nil
}

// Update persiste los parámetros de la regla.
func (r *ReorderRuleRepo) Update(rule *entity.AutoReorderRule) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rules[rule.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.rules[rule.ID] = cloneRule(rule)
	return nil
}

// Delete elimina una regla.
func (r *ReorderRuleRepo) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.rules[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.rules, id)
	return nil
}

// List devuelve las reglas; con activeOnly solo las habilitadas.
func (r *ReorderRuleRepo) List(activeOnly bool) ([]*entity.AutoReorderRule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var list []*entity.AutoReorderRule
	for _, rule := range r.store.rules {
		if activeOnly && !rule.IsActive {
			continue
		}
		list = append(list, cloneRule(rule))
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ProductID < list[j].ProductID
	})
	return list, nil
}

// MarkTriggered estampa last_triggered al generar recomendaciones.
func (r *ReorderRuleRepo) MarkTriggered(id string, at time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rule, ok := r.store.rules[id]
	if !ok {
		return domain.ErrNotFound
	}
	stamped := cloneRule(rule)
	stamped.LastTriggered = &at
	stamped.UpdatedAt = at
	r.store.rules[id] = stamped
	return nil
}
