package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.StockRecordRepository = (*StockRecordRepo)(nil)

const stockRecordColumns = `id, product_id, location_id, current_quantity, minimum_quantity,
		maximum_quantity, cost_per_unit, unit_of_measure, version, last_updated, last_restocked, created_at`

// StockRecordRepo implementación de StockRecordRepository sobre PostgreSQL
// (usable con pool o tx).
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// Create persiste un registro nuevo con version 1.
func (r *StockRecordRepo) Create(record *entity.StockRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.Version = 1
	query := `
		INSERT INTO stock_records (id, product_id, location_id, current_quantity, minimum_quantity,
			maximum_quantity, cost_per_unit, unit_of_measure, version, last_updated, last_restocked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.LocationID, record.CurrentQuantity,
		record.MinimumQuantity, record.MaximumQuantity, record.CostPerUnit,
		record.UnitOfMeasure, record.Version, record.LastUpdated, record.LastRestocked, record.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por id. (nil, nil) si no existe.
func (r *StockRecordRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE id = $1`
	record, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return record, nil
}

// Get obtiene el registro de un producto en una ubicación. (nil, nil) si no existe.
func (r *StockRecordRepo) Get(productID, locationID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE product_id = $1 AND location_id = $2`
	record, err := r.scanOne(r.q.QueryRow(context.Background(), query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return record, nil
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
// Un registro inexistente es ErrNotFound: no se puede aplicar un delta sobre
// stock que nunca fue dado de alta.
func (r *StockRecordRepo) GetForUpdate(productID, locationID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + `
		FROM stock_records WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	record, err := r.scanOne(r.q.QueryRow(context.Background(), query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return record, nil
}

// Upsert escribe el registro verificando el token de concurrencia optimista:
// la fila solo se actualiza si version coincide, y version se incrementa en
// la misma sentencia. Cero filas afectadas = escritor concurrente ganó =
// ErrConflict (reintentable).
func (r *StockRecordRepo) Upsert(record *entity.StockRecord) error {
	query := `
		UPDATE stock_records
		SET current_quantity = $3, minimum_quantity = $4, maximum_quantity = $5,
			cost_per_unit = $6, unit_of_measure = $7, version = version + 1,
			last_updated = $8, last_restocked = $9
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(context.Background(), query,
		record.ID, record.Version, record.CurrentQuantity, record.MinimumQuantity,
		record.MaximumQuantity, record.CostPerUnit, record.UnitOfMeasure,
		record.LastUpdated, record.LastRestocked,
	)
	if err != nil {
		return fmt.Errorf("upsert stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	record.Version++
	return nil
}

// List devuelve registros según filtro, ordenados por producto y ubicación.
func (r *StockRecordRepo) List(filter repository.StockRecordFilter) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockRecordColumns + ` FROM stock_records WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	query += " ORDER BY product_id, location_id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		record, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, record)
	}
	return list, rows.Err()
}

// Delete elimina un registro (el caso de uso ya verificó cantidad 0).
func (r *StockRecordRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockRecordRepo) scanOne(row pgx.Row) (*entity.StockRecord, error) {
	var s entity.StockRecord
	err := row.Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.CurrentQuantity, &s.MinimumQuantity,
		&s.MaximumQuantity, &s.CostPerUnit, &s.UnitOfMeasure, &s.Version,
		&s.LastUpdated, &s.LastRestocked, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
