package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	domaininv "github.com/arnesssr/nextpms-api/internal/domain/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// StockUseCase maneja el ciclo de vida de los registros de stock: alta de un
// producto en una ubicación, listados con estado derivado, umbrales y baja.
// Las lecturas van directo al repositorio del pool; las mutaciones pasan por
// el TxRunner para respetar la sección crítica del libro.
type StockUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRecordRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner TxRunner, stockRepo repository.StockRecordRepository) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo}
}

// Create da de alta el registro de stock de un producto en una ubicación.
// El registro nace con cantidad 0; si hay cantidad inicial se asienta como un
// movimiento in (razón manual) en la misma transacción, así la invariante
// "cantidad = suma de asientos" se cumple desde el día uno.
func (uc *StockUseCase) Create(ctx context.Context, userID string, in dto.CreateStockRecordRequest) (*entity.StockRecord, error) {
	if in.ProductID == "" || in.LocationID == "" || in.UnitOfMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.InitialQuantity < 0 || in.MinimumQuantity < 0 || in.CostPerUnit.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.MaximumQuantity != nil && *in.MaximumQuantity < in.MinimumQuantity {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	record := &entity.StockRecord{
		ProductID:       in.ProductID,
		LocationID:      in.LocationID,
		CurrentQuantity: 0,
		MinimumQuantity: in.MinimumQuantity,
		MaximumQuantity: in.MaximumQuantity,
		CostPerUnit:     in.CostPerUnit,
		UnitOfMeasure:   in.UnitOfMeasure,
		LastUpdated:     now,
		CreatedAt:       now,
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.AdjustmentRepository,
	) error {
		existing, err := stockRepo.Get(in.ProductID, in.LocationID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := stockRepo.Create(record); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		cost := in.CostPerUnit
		_, err = applyLeg(movRepo, stockRepo, legInput{
			productID: in.ProductID, locationID: in.LocationID,
			direction: +1, quantity: in.InitialQuantity,
			movType: entity.MovementTypeIn, reason: entity.MovementReasonManual,
			unitCost: &cost, notes: "stock inicial",
			txID: record.ID, userID: userID, now: now,
		})
		if err != nil {
			return err
		}
		record.CurrentQuantity = in.InitialQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Get devuelve un registro con su estado clasificado.
func (uc *StockUseCase) Get(ctx context.Context, id string) (*dto.StockRecordResponse, error) {
	record, err := uc.stockRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrNotFound
	}
	resp := toStockResponse(record)
	return &resp, nil
}

// List devuelve registros de stock con estado y nivel derivados por fila.
func (uc *StockUseCase) List(ctx context.Context, filter repository.StockRecordFilter) ([]dto.StockRecordResponse, error) {
	records, err := uc.stockRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toStockResponse(r))
	}
	return out, nil
}

// SetLevels actualiza los umbrales mínimo/máximo de un registro. La cantidad
// no se toca: los umbrales solo cambian cómo se clasifica.
func (uc *StockUseCase) SetLevels(ctx context.Context, id string, in dto.SetStockLevelsRequest) (*entity.StockRecord, error) {
	if in.MinimumQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.MaximumQuantity != nil && *in.MaximumQuantity < in.MinimumQuantity {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.StockRecord
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.AdjustmentRepository,
	) error {
		record, err := stockRepo.GetByID(id)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		locked, err := stockRepo.GetForUpdate(record.ProductID, record.LocationID)
		if err != nil {
			return err
		}
		locked.MinimumQuantity = in.MinimumQuantity
		locked.MaximumQuantity = in.MaximumQuantity
		locked.LastUpdated = time.Now()
		if err := stockRepo.Upsert(locked); err != nil {
			return err
		}
		updated = locked
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Remove da de baja un registro de stock. Solo se permite con cantidad 0;
// un registro con existencias devuelve ErrConflict.
func (uc *StockUseCase) Remove(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.AdjustmentRepository,
	) error {
		record, err := stockRepo.GetByID(id)
		if err != nil {
			return err
		}
		if record == nil {
			return domain.ErrNotFound
		}
		locked, err := stockRepo.GetForUpdate(record.ProductID, record.LocationID)
		if err != nil {
			return err
		}
		if locked.CurrentQuantity != 0 {
			return domain.ErrConflict
		}
		return stockRepo.Delete(id)
	})
}

func toStockResponse(r *entity.StockRecord) dto.StockRecordResponse {
	status, level := domaininv.ClassifyRecord(r)
	return dto.StockRecordResponse{
		ID:              r.ID,
		ProductID:       r.ProductID,
		LocationID:      r.LocationID,
		CurrentQuantity: r.CurrentQuantity,
		MinimumQuantity: r.MinimumQuantity,
		MaximumQuantity: r.MaximumQuantity,
		CostPerUnit:     r.CostPerUnit,
		TotalValue:      r.TotalValue(),
		UnitOfMeasure:   r.UnitOfMeasure,
		Status:          status,
		StockLevel:      level,
		LastUpdated:     r.LastUpdated,
		LastRestocked:   r.LastRestocked,
	}
}
