// Package adjustment implementa el flujo de aprobación de correcciones de
// inventario: draft → pending → approved | rejected, con reenvío desde
// rejected. Solo un ajuste aprobado muta el StockRecord, y lo hace en la
// misma transacción que estampa la aprobación.
package adjustment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// WorkflowUseCase orquesta el ciclo de vida de un ajuste.
type WorkflowUseCase struct {
	txRunner  inventory.TxRunner
	adjRepo   repository.AdjustmentRepository
	stockRepo repository.StockRecordRepository
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(
	txRunner inventory.TxRunner,
	adjRepo repository.AdjustmentRepository,
	stockRepo repository.StockRecordRepository,
) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner, adjRepo: adjRepo, stockRepo: stockRepo}
}

// Create registra una corrección. La razón debe pertenecer al conjunto del
// tipo (los conjuntos son disjuntos: un decrease no puede llevar razón de
// increase) y el signo de quantity_change debe ser consistente con el tipo.
// El costo del impacto sale del cost_per_unit real del registro, nunca de una
// constante. Entra en pending salvo que se pida draft.
func (uc *WorkflowUseCase) Create(ctx context.Context, userID string, in dto.CreateAdjustmentRequest) (*entity.Adjustment, error) {
	if userID == "" || in.ProductID == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.QuantityBefore < 0 || in.QuantityAfter < 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.AdjustmentReasonAllowed(in.Type, in.Reason) {
		return nil, domain.ErrInvalidInput
	}

	stock, err := uc.stockRepo.Get(in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	adj := &entity.Adjustment{
		ProductID:      in.ProductID,
		LocationID:     in.LocationID,
		Type:           in.Type,
		Reason:         in.Reason,
		QuantityBefore: in.QuantityBefore,
		QuantityAfter:  in.QuantityAfter,
		QuantityChange: in.QuantityAfter - in.QuantityBefore,
		CostImpact:     stock.CostPerUnit.Mul(decimal.NewFromInt(in.QuantityAfter - in.QuantityBefore)),
		Status:         entity.AdjustmentStatusPending,
		Reference:      in.Reference,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Draft {
		adj.Status = entity.AdjustmentStatusDraft
	}
	if !adj.TypeMatchesChange() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.adjRepo.Create(adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// Submit pasa un borrador a pending. Solo es legal desde draft.
func (uc *WorkflowUseCase) Submit(ctx context.Context, id string) (*entity.Adjustment, error) {
	return uc.transition(ctx, id, entity.AdjustmentStatusDraft, entity.AdjustmentStatusPending, "", "")
}

// Resubmit devuelve un ajuste rechazado a pending (única salida de rejected).
func (uc *WorkflowUseCase) Resubmit(ctx context.Context, id string) (*entity.Adjustment, error) {
	return uc.transition(ctx, id, entity.AdjustmentStatusRejected, entity.AdjustmentStatusPending, "", "")
}

// Reject rechaza un ajuste pendiente sin tocar el stock. approverID queda en
// approved_by como autor de la decisión.
func (uc *WorkflowUseCase) Reject(ctx context.Context, approverID, id, notes string) (*entity.Adjustment, error) {
	if approverID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.transition(ctx, id, entity.AdjustmentStatusPending, entity.AdjustmentStatusRejected, approverID, notes)
}

// Approve aprueba un ajuste pendiente y aplica su delta al StockRecord en una
// sola transacción: si el delta dejara la cantidad negativa, falla con
// ErrInsufficientStock y el ajuste permanece en pending (rollback completo).
// El espejo en el libro de movimientos se escribe en la misma transacción.
func (uc *WorkflowUseCase) Approve(ctx context.Context, approverID, id string) (*entity.Adjustment, error) {
	if approverID == "" || id == "" {
		return nil, domain.ErrInvalidInput
	}

	var approved *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		adj, err := adjRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status != entity.AdjustmentStatusPending {
			return domain.ErrInvalidTransition
		}

		now := time.Now()
		if adj.QuantityChange != 0 {
			stock, err := stockRepo.GetForUpdate(adj.ProductID, adj.LocationID)
			if err != nil {
				return err
			}
			before := stock.CurrentQuantity
			after := before + adj.QuantityChange
			if after < 0 {
				return domain.ErrInsufficientStock
			}
			stock.CurrentQuantity = after
			stock.LastUpdated = now
			if err := stockRepo.Upsert(stock); err != nil {
				return err
			}

			// Espejo informativo en el libro: no muta cantidad por sí mismo,
			// documenta el delta que este approve ya aplicó.
			qty := adj.QuantityChange
			if qty < 0 {
				qty = -qty
			}
			unitCost := stock.CostPerUnit
			totalCost := unitCost.Mul(decimal.NewFromInt(qty))
			mirror := &entity.Movement{
				TransactionID:  adj.ID,
				ProductID:      adj.ProductID,
				LocationID:     adj.LocationID,
				Type:           entity.MovementTypeAdjustment,
				Reason:         entity.MovementReasonAdjustment,
				Quantity:       qty,
				BeforeQuantity: before,
				AfterQuantity:  after,
				UnitCost:       &unitCost,
				TotalCost:      &totalCost,
				Reference:      adj.ID,
				Notes:          adj.Reason,
				CreatedAt:      now,
				CreatedBy:      approverID,
			}
			if err := movRepo.Create(mirror); err != nil {
				return err
			}
		}

		adj.Status = entity.AdjustmentStatusApproved
		adj.ApprovedBy = &approverID
		adj.ApprovedAt = &now
		adj.UpdatedAt = now
		if err := adjRepo.Update(adj); err != nil {
			return err
		}
		approved = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Delete elimina un ajuste que nunca afectó el libro: solo draft o rejected.
// Borrar un pending o approved es ErrInvalidTransition (historial intocable).
func (uc *WorkflowUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		_ repository.StockRecordRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		adj, err := adjRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status != entity.AdjustmentStatusDraft && adj.Status != entity.AdjustmentStatusRejected {
			return domain.ErrInvalidTransition
		}
		return adjRepo.Delete(id)
	})
}

// Get devuelve un ajuste por id.
func (uc *WorkflowUseCase) Get(ctx context.Context, id string) (*entity.Adjustment, error) {
	adj, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if adj == nil {
		return nil, domain.ErrNotFound
	}
	return adj, nil
}

// List devuelve ajustes según filtro.
func (uc *WorkflowUseCase) List(ctx context.Context, filter repository.AdjustmentFilter) ([]*entity.Adjustment, error) {
	return uc.adjRepo.List(filter)
}

// transition aplica un cambio de estado simple bajo bloqueo de fila.
func (uc *WorkflowUseCase) transition(ctx context.Context, id, from, to, decidedBy, notes string) (*entity.Adjustment, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *entity.Adjustment
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		_ repository.StockRecordRepository,
		adjRepo repository.AdjustmentRepository,
	) error {
		adj, err := adjRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if adj == nil {
			return domain.ErrNotFound
		}
		if adj.Status != from {
			return domain.ErrInvalidTransition
		}
		now := time.Now()
		adj.Status = to
		adj.UpdatedAt = now
		if decidedBy != "" {
			adj.ApprovedBy = &decidedBy
			adj.ApprovedAt = &now
		}
		if notes != "" {
			if adj.Notes != "" {
				adj.Notes += "\n"
			}
			adj.Notes += notes
		}
		if err := adjRepo.Update(adj); err != nil {
			return err
		}
		result = adj
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
