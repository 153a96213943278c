// Package memory provee implementaciones en memoria de los puertos de
// persistencia: mapas detrás de un mutex, con semántica transaccional por
// snapshot. Sirven para pruebas de casos de uso y para correr la API sin
// PostgreSQL en desarrollo.
package memory

import (
	"sync"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// Store es el estado compartido de todos los repositorios en memoria.
// El mutex serializa tanto las operaciones sueltas como las transacciones
// completas del TxRunner (equivalente grueso del bloqueo de fila).
type Store struct {
	mu          sync.Mutex
	stocks      map[string]*entity.StockRecord // por ID
	movements   []*entity.Movement             // append-only
	adjustments map[string]*entity.Adjustment  // por ID
	rules       map[string]*entity.AutoReorderRule
}

// NewStore construye un Store vacío.
func NewStore() *Store {
	return &Store{
		stocks:      make(map[string]*entity.StockRecord),
		adjustments: make(map[string]*entity.Adjustment),
		rules:       make(map[string]*entity.AutoReorderRule),
	}
}

// snapshot copia profunda del estado, para revertir una transacción fallida.
type snapshot struct {
	stocks      map[string]*entity.StockRecord
	movements   []*entity.Movement
	adjustments map[string]*entity.Adjustment
	rules       map[string]*entity.AutoReorderRule
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		stocks:      make(map[string]*entity.StockRecord, len(s.stocks)),
		movements:   make([]*entity.Movement, len(s.movements)),
		adjustments: make(map[string]*entity.Adjustment, len(s.adjustments)),
		rules:       make(map[string]*entity.AutoReorderRule, len(s.rules)),
	}
	for id, r := range s.stocks {
		snap.stocks[id] = cloneStock(r)
	}
	for i, m := range s.movements {
		snap.movements[i] = cloneMovement(m)
	}
	for id, a := range s.adjustments {
		snap.adjustments[id] = cloneAdjustment(a)
	}
	for id, r := range s.rules {
		snap.rules[id] = cloneRule(r)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.stocks = snap.stocks
	s.movements = snap.movements
	s.adjustments = snap.adjustments
	s.rules = snap.rules
}

// Los clones copian el valor y re-apuntan los campos puntero para que las
// entidades devueltas a los llamadores no aliaseen el estado del Store.

func cloneStock(r *entity.StockRecord) *entity.StockRecord {
	c := *r
	if r.MaximumQuantity != nil {
		v := *r.MaximumQuantity
		c.MaximumQuantity = &v
	}
	if r.LastRestocked != nil {
		v := *r.LastRestocked
		c.LastRestocked = &v
	}
	return &c
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	if m.UnitCost != nil {
		v := *m.UnitCost
		c.UnitCost = &v
	}
	if m.TotalCost != nil {
		v := *m.TotalCost
		c.TotalCost = &v
	}
	if m.VoidsMovementID != nil {
		v := *m.VoidsMovementID
		c.VoidsMovementID = &v
	}
	return &c
}

func cloneAdjustment(a *entity.Adjustment) *entity.Adjustment {
	c := *a
	if a.ApprovedBy != nil {
		v := *a.ApprovedBy
		c.ApprovedBy = &v
	}
	if a.ApprovedAt != nil {
		v := *a.ApprovedAt
		c.ApprovedAt = &v
	}
	return &c
}

func cloneRule(r *entity.AutoReorderRule) *entity.AutoReorderRule {
	c := *r
	if r.LastTriggered != nil {
		v := *r.LastTriggered
		c.LastTriggered = &v
	}
	return &c
}
