package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

var _ repository.ReorderRuleRepository = (*ReorderRuleRepo)(nil)

const reorderRuleColumns = `id, product_id, supplier_id, minimum_threshold, reorder_quantity,
		lead_time_days, is_active, last_triggered, created_at, updated_at`

// ReorderRuleRepo implementación de ReorderRuleRepository sobre PostgreSQL.
type ReorderRuleRepo struct {
	q Querier
}

// NewReorderRuleRepository construye el adaptador.
func NewReorderRuleRepository(q Querier) *ReorderRuleRepo {
	return &ReorderRuleRepo{q: q}
}

// Create inserta una regla. La unicidad por producto la garantiza un
// constraint único sobre product_id.
func (r *ReorderRuleRepo) Create(rule *entity.AutoReorderRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	query := `
		INSERT INTO auto_reorder_rules (id, product_id, supplier_id, minimum_threshold,
			reorder_quantity, lead_time_days, is_active, last_triggered, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.ProductID, rule.SupplierID, rule.MinimumThreshold,
		rule.ReorderQuantity, rule.LeadTimeDays, rule.IsActive, rule.LastTriggered,
		rule.CreatedAt, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create reorder rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por id. (nil, nil) si no existe.
func (r *ReorderRuleRepo) GetByID(id string) (*entity.AutoReorderRule, error) {
	query := `SELECT ` + reorderRuleColumns + ` FROM auto_reorder_rules WHERE id = $1`
	rule, err := r.scanOne(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder rule: %w", err)
	}
	return rule, nil
}

// GetByProduct obtiene la regla de un producto. (nil, nil) si no existe.
func (r *ReorderRuleRepo) GetByProduct(productID string) (*entity.AutoReorderRule, error) {
	query := `SELECT ` + reorderRuleColumns + ` FROM auto_reorder_rules WHERE product_id = $1`
	rule, err := r.scanOne(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reorder rule by product: %w", err)
	}
	return rule, nil
}

// Update persiste los parámetros de la regla.
func (r *ReorderRuleRepo) Update(rule *entity.AutoReorderRule) error {
	query := `
		UPDATE auto_reorder_rules
		SET supplier_id = $2, minimum_threshold = $3, reorder_quantity = $4,
			lead_time_days = $5, is_active = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		rule.ID, rule.SupplierID, rule.MinimumThreshold, rule.ReorderQuantity,
		rule.LeadTimeDays, rule.IsActive, rule.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reorder rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una regla.
func (r *ReorderRuleRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM auto_reorder_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reorder rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las reglas; con activeOnly solo las habilitadas.
func (r *ReorderRuleRepo) List(activeOnly bool) ([]*entity.AutoReorderRule, error) {
	query := `SELECT ` + reorderRuleColumns + ` FROM auto_reorder_rules`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list reorder rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.AutoReorderRule
	for rows.Next() {
		rule, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reorder rule: %w", err)
		}
		list = append(list, rule)
	}
	return list, rows.Err()
}

// MarkTriggered estampa last_triggered al generar recomendaciones.
func (r *ReorderRuleRepo) MarkTriggered(id string, at time.Time) error {
	query := `UPDATE auto_reorder_rules SET last_triggered = $2, updated_at = $2 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, at)
	if err != nil {
		return fmt.Errorf("mark reorder rule triggered: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ReorderRuleRepo) scanOne(row pgx.Row) (*entity.AutoReorderRule, error) {
	var a entity.AutoReorderRule
	err := row.Scan(
		&a.ID, &a.ProductID, &a.SupplierID, &a.MinimumThreshold, &a.ReorderQuantity,
		&a.LeadTimeDays, &a.IsActive, &a.LastTriggered, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
