package repository

import "github.com/arnesssr/nextpms-api/internal/domain/entity"

// StockRecordFilter criterios de listado de registros de stock.
type StockRecordFilter struct {
	ProductID  string
	LocationID string
	Limit      int
	Offset     int
}

// StockRecordRepository define el puerto de persistencia del registro
// autoritativo de cantidades. Toda mutación de cantidad pasa por
// GetForUpdate + Upsert dentro de una transacción (ver TxRunner).
// Get y GetByID devuelven (nil, nil) si el registro no existe; GetForUpdate
// devuelve domain.ErrNotFound porque aplicar un delta exige que exista.
type StockRecordRepository interface {
	Create(record *entity.StockRecord) error
	GetByID(id string) (*entity.StockRecord, error)
	Get(productID, locationID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para aplicar un delta.
	GetForUpdate(productID, locationID string) (*entity.StockRecord, error)
	// Upsert escribe cantidad y metadatos verificando Version; un desfase
	// devuelve domain.ErrConflict y la transacción debe reintentarse.
	Upsert(record *entity.StockRecord) error
	List(filter StockRecordFilter) ([]*entity.StockRecord, error)
	Delete(id string) error
}
