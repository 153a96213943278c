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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

const adjustmentColumns = `id, product_id, location_id, type, reason, quantity_before,
		quantity_after, quantity_change, cost_impact, status, reference, notes,
		created_by, approved_by, approved_at, created_at, updated_at`

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create inserta un ajuste nuevo.
func (r *AdjustmentRepo) Create(adjustment *entity.Adjustment) error {
	if adjustment.ID == "" {
		adjustment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_adjustments (id, product_id, location_id, type, reason,
			quantity_before, quantity_after, quantity_change, cost_impact, status,
			reference, notes, created_by, approved_by, approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.ProductID, adjustment.LocationID, adjustment.Type,
		adjustment.Reason, adjustment.QuantityBefore, adjustment.QuantityAfter,
		adjustment.QuantityChange, adjustment.CostImpact, adjustment.Status,
		adjustment.Reference, adjustment.Notes, adjustment.CreatedBy,
		adjustment.ApprovedBy, adjustment.ApprovedAt, adjustment.CreatedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene un ajuste por id. (nil, nil) si no existe.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE id = $1`
	adjustment, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return adjustment, nil
}

// GetForUpdate obtiene el ajuste bloqueando la fila (SELECT FOR UPDATE),
// para que approve/reject concurrentes se serialicen. ErrNotFound si no existe.
func (r *AdjustmentRepo) GetForUpdate(id string) (*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE id = $1 FOR UPDATE`
	adjustment, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment for update: %w", err)
	}
	return adjustment, nil
}

// Update persiste el estado y los metadatos del flujo de aprobación.
// Las cantidades no se tocan: son inmutables después de Create.
func (r *AdjustmentRepo) Update(adjustment *entity.Adjustment) error {
	query := `
		UPDATE inventory_adjustments
		SET status = $2, notes = $3, approved_by = $4, approved_at = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		adjustment.ID, adjustment.Status, adjustment.Notes,
		adjustment.ApprovedBy, adjustment.ApprovedAt, adjustment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un ajuste (el caso de uso ya verificó draft/rejected).
func (r *AdjustmentRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM inventory_adjustments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve ajustes según filtro, más reciente primero.
func (r *AdjustmentRepo) List(filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE 1=1`
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
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
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

// ListAll devuelve todos los ajustes (rollups de resumen).
func (r *AdjustmentRepo) ListAll() ([]*entity.Adjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments ORDER BY created_at DESC`
	return r.queryMany(query)
}

func (r *AdjustmentRepo) queryMany(query string, args ...any) ([]*entity.Adjustment, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Adjustment
	for rows.Next() {
		adjustment, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, adjustment)
	}
	return list, rows.Err()
}

func (r *AdjustmentRepo) scanOne(row pgx.Row) (*entity.Adjustment, error) {
	var a entity.Adjustment
	err := row.Scan(
		&a.ID, &a.ProductID, &a.LocationID, &a.Type, &a.Reason, &a.QuantityBefore,
		&a.QuantityAfter, &a.QuantityChange, &a.CostImpact, &a.Status, &a.Reference,
		&a.Notes, &a.CreatedBy, &a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
