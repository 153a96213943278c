package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, transaction_id, product_id, location_id, type, reason, quantity,
		before_quantity, after_quantity, unit_cost, total_cost, supplier, customer,
		reference, notes, voids_movement_id, created_at, created_by`

// MovementRepo implementación de MovementRepository sobre PostgreSQL.
// El libro es append-only: solo INSERT y SELECT, nunca UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create inserta un asiento en el libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, transaction_id, product_id, location_id, type, reason,
			quantity, before_quantity, after_quantity, unit_cost, total_cost, supplier, customer,
			reference, notes, voids_movement_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.TransactionID, movement.ProductID, movement.LocationID,
		movement.Type, movement.Reason, movement.Quantity, movement.BeforeQuantity,
		movement.AfterQuantity, movement.UnitCost, movement.TotalCost, movement.Supplier,
		movement.Customer, movement.Reference, movement.Notes, movement.VoidsMovementID,
		movement.CreatedAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por id. (nil, nil) si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	movement, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return movement, nil
}

// List devuelve asientos según filtro, más reciente primero.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE 1=1`
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
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.Reason != "" {
		query += fmt.Sprintf(" AND reason = $%d", pos)
		args = append(args, filter.Reason)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += " ORDER BY created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	return r.queryMany(query, args...)
}

// ListByProductSince devuelve los asientos de un producto en una ubicación
// desde la fecha dada, en orden cronológico.
func (r *MovementRepo) ListByProductSince(productID, locationID string, since time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE product_id = $1 AND location_id = $2 AND created_at >= $3
		ORDER BY created_at`
	return r.queryMany(query, productID, locationID, since)
}

// ListSince devuelve todos los asientos desde la fecha dada, en orden cronológico.
func (r *MovementRepo) ListSince(since time.Time) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE created_at >= $1
		ORDER BY created_at`
	return r.queryMany(query, since)
}

// HasVoidOf indica si ya existe el asiento compensatorio de un movimiento.
func (r *MovementRepo) HasVoidOf(movementID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM inventory_movements WHERE voids_movement_id = $1)`
	if err := r.q.QueryRow(context.Background(), query, movementID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check void: %w", err)
	}
	return exists, nil
}

func (r *MovementRepo) queryMany(query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		movement, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, movement)
	}
	return list, rows.Err()
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.ProductID, &m.LocationID, &m.Type, &m.Reason,
		&m.Quantity, &m.BeforeQuantity, &m.AfterQuantity, &m.UnitCost, &m.TotalCost,
		&m.Supplier, &m.Customer, &m.Reference, &m.Notes, &m.VoidsMovementID,
		&m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
