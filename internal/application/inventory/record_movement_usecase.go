package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de inventario de forma
// transaccional (in, out, transfer) con bloqueo de fila y Commit/Rollback.
// Las fotos before/after se toman dentro de la misma transacción que muta el
// StockRecord, así que movimientos concurrentes nunca registran una foto vieja.
type RecordMovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository // lecturas fuera de transacción
}

// NewRecordMovementUseCase construye el caso de uso.
func NewRecordMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository) *RecordMovementUseCase {
	return &RecordMovementUseCase{txRunner: txRunner, movRepo: movRepo}
}

// Get devuelve un asiento por id.
func (uc *RecordMovementUseCase) Get(ctx context.Context, id string) (*entity.Movement, error) {
	mov, err := uc.movRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// List devuelve asientos del libro según filtro.
func (uc *RecordMovementUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	return uc.movRepo.List(filter)
}

// Record valida y aplica un movimiento. userID es la identidad del autor,
// siempre explícita (nunca estado ambiente). Un transfer produce dos asientos
// ligados por el mismo transaction_id; los demás tipos producen uno.
// Los movimientos type=adjustment no se aceptan aquí: son espejos que escribe
// el flujo de ajustes en su propia transacción.
func (uc *RecordMovementUseCase) Record(ctx context.Context, userID string, in dto.CreateMovementRequest) ([]*entity.Movement, error) {
	if userID == "" || in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	// La razón "void" está reservada para asientos compensatorios de Void.
	if in.Reason == entity.MovementReasonVoid || !entity.MovementReasonAllowed(in.Type, in.Reason) {
		return nil, domain.ErrInvalidInput
	}

	switch in.Type {
	case entity.MovementTypeIn, entity.MovementTypeOut:
		if in.LocationID == "" {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeTransfer:
		if in.FromLocationID == "" || in.ToLocationID == "" || in.FromLocationID == in.ToLocationID {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	txID := uuid.New().String()
	var created []*entity.Movement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.AdjustmentRepository,
	) error {
		switch in.Type {
		case entity.MovementTypeIn:
			mov, err := applyLeg(movRepo, stockRepo, legInput{
				productID: in.ProductID, locationID: in.LocationID,
				direction: +1, quantity: in.Quantity,
				movType: entity.MovementTypeIn, reason: in.Reason,
				unitCost: in.UnitCost, supplier: in.Supplier, customer: in.Customer,
				reference: in.Reference, notes: in.Notes,
				txID: txID, userID: userID, now: now,
			})
			if err != nil {
				return err
			}
			created = append(created, mov)
			return nil

		case entity.MovementTypeOut:
			mov, err := applyLeg(movRepo, stockRepo, legInput{
				productID: in.ProductID, locationID: in.LocationID,
				direction: -1, quantity: in.Quantity,
				movType: entity.MovementTypeOut, reason: in.Reason,
				unitCost: in.UnitCost, supplier: in.Supplier, customer: in.Customer,
				reference: in.Reference, notes: in.Notes,
				txID: txID, userID: userID, now: now,
			})
			if err != nil {
				return err
			}
			created = append(created, mov)
			return nil

		case entity.MovementTypeTransfer:
			// Primero el lado que puede fallar por stock insuficiente.
			outLeg, err := applyLeg(movRepo, stockRepo, legInput{
				productID: in.ProductID, locationID: in.FromLocationID,
				direction: -1, quantity: in.Quantity,
				movType: entity.MovementTypeTransfer, reason: entity.MovementReasonTransfer,
				unitCost: in.UnitCost, reference: in.Reference, notes: in.Notes,
				txID: txID, userID: userID, now: now,
			})
			if err != nil {
				return err
			}
			inLeg, err := applyLeg(movRepo, stockRepo, legInput{
				productID: in.ProductID, locationID: in.ToLocationID,
				direction: +1, quantity: in.Quantity,
				movType: entity.MovementTypeTransfer, reason: entity.MovementReasonTransfer,
				unitCost: in.UnitCost, reference: in.Reference, notes: in.Notes,
				txID: txID, userID: userID, now: now,
			})
			if err != nil {
				return err
			}
			created = append(created, outLeg, inLeg)
			return nil
		}
		return domain.ErrInvalidInput
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Void registra el asiento compensatorio de un movimiento ya comprometido.
// El libro nunca se muta en sitio: revertir es agregar la entrada contraria
// ligada por voids_movement_id. Solo asientos in/out simples son reversibles;
// los espejos de ajustes y las patas de transfer se corrigen por sus propios
// flujos.
func (uc *RecordMovementUseCase) Void(ctx context.Context, userID, movementID string) (*entity.Movement, error) {
	if userID == "" || movementID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.Movement

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRecordRepository,
		_ repository.AdjustmentRepository,
	) error {
		orig, err := movRepo.GetByID(movementID)
		if err != nil {
			return err
		}
		if orig == nil {
			return domain.ErrNotFound
		}
		if orig.Type != entity.MovementTypeIn && orig.Type != entity.MovementTypeOut {
			return domain.ErrInvalidTransition
		}
		if orig.Reason == entity.MovementReasonVoid {
			return domain.ErrInvalidTransition
		}
		voided, err := movRepo.HasVoidOf(orig.ID)
		if err != nil {
			return err
		}
		if voided {
			return domain.ErrConflict
		}

		direction := int64(-1)
		reverseType := entity.MovementTypeOut
		if orig.Type == entity.MovementTypeOut {
			direction = +1
			reverseType = entity.MovementTypeIn
		}
		mov, err := applyLeg(movRepo, stockRepo, legInput{
			productID: orig.ProductID, locationID: orig.LocationID,
			direction: direction, quantity: orig.Quantity,
			movType: reverseType, reason: entity.MovementReasonVoid,
			unitCost: orig.UnitCost, reference: orig.ID,
			voids: &orig.ID,
			txID:  uuid.New().String(), userID: userID, now: now,
		})
		if err != nil {
			return err
		}
		created = mov
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// legInput parámetros de un asiento individual dentro de la transacción.
type legInput struct {
	productID  string
	locationID string
	direction  int64 // +1 entrada, -1 salida
	quantity   int64
	movType    string
	reason     string
	unitCost   *decimal.Decimal
	supplier   string
	customer   string
	reference  string
	notes      string
	voids      *string
	txID       string
	userID     string
	now        time.Time
}

// applyLeg es la sección crítica por (producto, ubicación): bloquea la fila,
// valida que una salida no deje cantidad negativa ANTES de escribir, actualiza
// el StockRecord y persiste el asiento con la foto before/after.
func applyLeg(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRecordRepository,
	leg legInput,
) (*entity.Movement, error) {
	stock, err := stockRepo.GetForUpdate(leg.productID, leg.locationID)
	if err != nil {
		return nil, err
	}

	before := stock.CurrentQuantity
	after := before + leg.direction*leg.quantity
	if after < 0 {
		return nil, domain.ErrInsufficientStock
	}

	stock.CurrentQuantity = after
	stock.LastUpdated = leg.now
	if leg.direction > 0 && leg.movType == entity.MovementTypeIn {
		restocked := leg.now
		stock.LastRestocked = &restocked
	}
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}

	unitCost := stock.CostPerUnit
	if leg.unitCost != nil {
		if leg.unitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		unitCost = *leg.unitCost
	}
	totalCost := unitCost.Mul(decimal.NewFromInt(leg.quantity))

	mov := &entity.Movement{
		TransactionID:   leg.txID,
		ProductID:       leg.productID,
		LocationID:      leg.locationID,
		Type:            leg.movType,
		Reason:          leg.reason,
		Quantity:        leg.quantity,
		BeforeQuantity:  before,
		AfterQuantity:   after,
		UnitCost:        &unitCost,
		TotalCost:       &totalCost,
		Supplier:        leg.supplier,
		Customer:        leg.customer,
		Reference:       leg.reference,
		Notes:           leg.notes,
		VoidsMovementID: leg.voids,
		CreatedAt:       leg.now,
		CreatedBy:       leg.userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	return mov, nil
}
