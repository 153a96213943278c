package memory

import (
	"sort"

	"github.com/google/uuid"

	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

// StockRecordRepo implementación en memoria de StockRecordRepository.
// Con inTx el mutex ya lo sostiene el TxRunner y no se vuelve a tomar.
type StockRecordRepo struct {
	store *Store
	inTx  bool
}

// NewStockRecordRepository construye el adaptador sobre un Store.
func NewStockRecordRepository(store *Store) *StockRecordRepo {
	return &StockRecordRepo{store: store}
}

func (r *StockRecordRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Create persiste un registro nuevo con version 1.
func (r *StockRecordRepo) Create(record *entity.StockRecord) error {
	defer r.lock()()
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if _, ok := r.store.stocks[record.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, existing := range r.store.stocks {
		if existing.ProductID == record.ProductID && existing.LocationID == record.LocationID {
			return domain.ErrDuplicate
		}
	}
	record.Version = 1
	r.store.stocks[record.ID] = cloneStock(record)
	return nil
}

// GetByID obtiene un registro por id. (nil, nil) si no existe.
func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	defer r.lock()()
	record, ok := r.store.stocks[id]
	if !ok {
		return nil, nil
	}
	return cloneStock(record), nil
}

// Get obtiene el registro de un producto en una ubicación. (nil, nil) si no existe.
func (r *StockRecordRepo) Get(productID, locationID string) (*entity.StockRecord, error) {
	defer r.lock()()
	if record := r.store.findStock(productID, locationID); record != nil {
		return cloneStock(record), nil
	}
	return nil, nil
}

// GetForUpdate obtiene el registro para mutarlo. ErrNotFound si no existe.
func (r *StockRecordRepo) GetForUpdate(productID, locationID string) (*entity.StockRecord, error) {
	defer r.lock()()
	if record := r.store.findStock(productID, locationID); record != nil {
		return cloneStock(record), nil
	}
	return nil, domain.ErrNotFound
}

// Upsert escribe el registro verificando Version; un desfase es ErrConflict.
func (r *StockRecordRepo) Upsert(record *entity.StockRecord) error {
	defer r.lock()()
	existing, ok := r.store.stocks[record.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if existing.Version != record.Version {
		return domain.ErrConflict
	}
	record.Version++
	r.store.stocks[record.ID] = cloneStock(record)
	return nil
}

// List devuelve registros según filtro, ordenados por producto y ubicación.
func (r *StockRecordRepo) List(filter repository.StockRecordFilter) ([]*entity.StockRecord, error) {
	defer r.lock()()
	var list []*entity.StockRecord
	for _, record := range r.store.stocks {
		if filter.ProductID != "" && record.ProductID != filter.ProductID {
			continue
		}
		if filter.LocationID != "" && record.LocationID != filter.LocationID {
			continue
		}
		list = append(list, cloneStock(record))
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].LocationID < list[j].LocationID
	})
	return paginate(list, filter.Limit, filter.Offset), nil
}

// Delete elimina un registro.
func (r *StockRecordRepo) Delete(id string) error {
	defer r.lock()()
	if _, ok := r.store.stocks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.stocks, id)
	return nil
}

func (s *Store) findStock(productID, locationID string) *entity.StockRecord {
	for _, record := range s.stocks {
		if record.ProductID == productID && record.LocationID == locationID {
			return record
		}
	}
	return nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if limit <= 0 {
		return list
	}
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}
