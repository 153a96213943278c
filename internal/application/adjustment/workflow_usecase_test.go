package adjustment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnesssr/nextpms-api/internal/application/adjustment"
	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
	"github.com/arnesssr/nextpms-api/internal/infrastructure/memory"
)

const (
	creatorID  = "user-creador"
	approverID = "user-aprobador"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type workflowEnv struct {
	store     *memory.Store
	stockRepo *memory.StockRecordRepo
	movRepo   *memory.MovementRepo
	adjRepo   *memory.AdjustmentRepo
	uc        *adjustment.WorkflowUseCase
}

func newWorkflowEnv(t *testing.T) *workflowEnv {
	t.Helper()
	store := memory.NewStore()
	stockRepo := memory.NewStockRecordRepository(store)
	adjRepo := memory.NewAdjustmentRepository(store)
	return &workflowEnv{
		store:     store,
		stockRepo: stockRepo,
		movRepo:   memory.NewMovementRepository(store),
		adjRepo:   adjRepo,
		uc:        adjustment.NewWorkflowUseCase(memory.NewTxRunner(store), adjRepo, stockRepo),
	}
}

func (e *workflowEnv) seedStock(t *testing.T, qty int64) {
	t.Helper()
	require.NoError(t, e.stockRepo.Create(&entity.StockRecord{
		ProductID:       "prod-1",
		LocationID:      "loc-1",
		CurrentQuantity: qty,
		MinimumQuantity: 5,
		CostPerUnit:     decimal.NewFromInt(10),
		UnitOfMeasure:   "unidad",
	}))
}

func (e *workflowEnv) currentQuantity(t *testing.T) int64 {
	t.Helper()
	record, err := e.stockRepo.Get("prod-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, record)
	return record.CurrentQuantity
}

// createPending crea un ajuste pending con el delta indicado.
func (e *workflowEnv) createPending(t *testing.T, before, after int64) *entity.Adjustment {
	t.Helper()
	typ := entity.AdjustmentTypeIncrease
	reason := entity.AdjustReasonStockFound
	if after < before {
		typ = entity.AdjustmentTypeDecrease
		reason = entity.AdjustReasonDamage
	}
	adj, err := e.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID:      "prod-1",
		LocationID:     "loc-1",
		Type:           typ,
		Reason:         reason,
		QuantityBefore: before,
		QuantityAfter:  after,
	})
	require.NoError(t, err)
	return adj
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkflowCreate_CostoDesdeElRegistro(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	adj := env.createPending(t, 20, 25)
	assert.Equal(t, entity.AdjustmentStatusPending, adj.Status)
	assert.Equal(t, int64(5), adj.QuantityChange)
	assert.True(t, adj.CostImpact.Equal(decimal.NewFromInt(50)),
		"el impacto sale del cost_per_unit real (5 × $10), fue %s", adj.CostImpact)
}

func TestWorkflowCreate_RazonDeOtroConjuntoRechazada(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	_, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeIncrease,
		Reason: entity.AdjustReasonTheft, // razón de decrease
		QuantityBefore: 20, QuantityAfter: 25,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkflowCreate_SignoInconsistenteConElTipo(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	_, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeIncrease,
		Reason: entity.AdjustReasonStockFound,
		QuantityBefore: 20, QuantityAfter: 15, // delta negativo
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWorkflowCreate_DraftNoEntraAPending(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	adj, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeRecount,
		Reason: entity.AdjustReasonCycleCount,
		QuantityBefore: 20, QuantityAfter: 18,
		Draft: true,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusDraft, adj.Status)
}

func TestWorkflowCreate_RegistroInexistente(t *testing.T) {
	env := newWorkflowEnv(t)
	_, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "fantasma", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeIncrease,
		Reason: entity.AdjustReasonStockFound,
		QuantityBefore: 0, QuantityAfter: 5,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve — aplica el delta y escribe el espejo en la misma transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_AplicaDeltaYEscribeEspejo(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)
	adj := env.createPending(t, 20, 14) // decrease de 6

	approved, err := env.uc.Approve(context.Background(), approverID, adj.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.AdjustmentStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, approverID, *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)
	assert.Equal(t, int64(14), env.currentQuantity(t), "el delta aprobado muta el stock")

	movements, err := env.movRepo.List(repository.MovementFilter{ProductID: "prod-1"})
	require.NoError(t, err)
	require.Len(t, movements, 1, "el approve deja exactamente un espejo en el libro")
	mirror := movements[0]
	assert.Equal(t, entity.MovementTypeAdjustment, mirror.Type)
	assert.Equal(t, entity.MovementReasonAdjustment, mirror.Reason)
	assert.Equal(t, adj.ID, mirror.TransactionID)
	assert.Equal(t, int64(6), mirror.Quantity)
	assert.Equal(t, int64(20), mirror.BeforeQuantity)
	assert.Equal(t, int64(14), mirror.AfterQuantity)
}

func TestApprove_DobleAprobacionRechazada(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)
	adj := env.createPending(t, 20, 25)

	_, err := env.uc.Approve(context.Background(), approverID, adj.ID)
	require.NoError(t, err)

	_, err = env.uc.Approve(context.Background(), approverID, adj.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "approved es terminal")
	assert.Equal(t, int64(25), env.currentQuantity(t), "el delta no se aplica dos veces")
}

// Si el delta dejara la cantidad negativa, todo se revierte: el ajuste queda en
// pending, el stock intacto y el libro sin espejo.
func TestApprove_InsuficienteDejaPendingYStockIntacto(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 3)
	adj := env.createPending(t, 3, 0)

	// El stock baja a 1 después de crear el ajuste: la foto del ajuste quedó vieja.
	locked, err := env.stockRepo.GetForUpdate("prod-1", "loc-1")
	require.NoError(t, err)
	locked.CurrentQuantity = 1
	require.NoError(t, env.stockRepo.Upsert(locked))

	_, err = env.uc.Approve(context.Background(), approverID, adj.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	persisted, err := env.adjRepo.GetByID(adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, persisted.Status, "el ajuste sigue en pending para reintento")
	assert.Equal(t, int64(1), env.currentQuantity(t))

	movements, err := env.movRepo.List(repository.MovementFilter{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Empty(t, movements, "un approve fallido no deja espejo")
}

func TestApprove_RecountSinDeltaNoTocaElStock(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	adj, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeRecount,
		Reason: entity.AdjustReasonPhysicalInventory,
		QuantityBefore: 20, QuantityAfter: 20,
	})
	require.NoError(t, err)

	approved, err := env.uc.Approve(context.Background(), approverID, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, approved.Status)
	assert.Equal(t, int64(20), env.currentQuantity(t))

	movements, err := env.movRepo.List(repository.MovementFilter{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Empty(t, movements, "un reconteo sin delta no deja espejo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject / Submit / Resubmit / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_NoTocaElStock(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)
	adj := env.createPending(t, 20, 10)

	rejected, err := env.uc.Reject(context.Background(), approverID, adj.ID, "conteo dudoso")
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusRejected, rejected.Status)
	assert.Contains(t, rejected.Notes, "conteo dudoso")
	assert.Equal(t, int64(20), env.currentQuantity(t), "un rechazo nunca muta el stock")
}

func TestSubmit_SoloDesdeDraft(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)

	draft, err := env.uc.Create(context.Background(), creatorID, dto.CreateAdjustmentRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type:   entity.AdjustmentTypeIncrease,
		Reason: entity.AdjustReasonCountingError,
		QuantityBefore: 20, QuantityAfter: 22,
		Draft: true,
	})
	require.NoError(t, err)

	submitted, err := env.uc.Submit(context.Background(), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, submitted.Status)

	_, err = env.uc.Submit(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "submit solo es legal desde draft")
}

func TestResubmit_UnicaSalidaDeRejected(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)
	adj := env.createPending(t, 20, 25)

	_, err := env.uc.Reject(context.Background(), approverID, adj.ID, "")
	require.NoError(t, err)

	resubmitted, err := env.uc.Resubmit(context.Background(), adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusPending, resubmitted.Status)

	// Ya en pending se puede aprobar normalmente.
	approved, err := env.uc.Approve(context.Background(), approverID, adj.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentStatusApproved, approved.Status)
}

func TestDelete_SoloDraftORejected(t *testing.T) {
	env := newWorkflowEnv(t)
	env.seedStock(t, 20)
	ctx := context.Background()

	pending := env.createPending(t, 20, 25)
	err := env.uc.Delete(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "un pending no se borra")

	_, err = env.uc.Reject(ctx, approverID, pending.ID, "")
	require.NoError(t, err)
	require.NoError(t, env.uc.Delete(ctx, pending.ID), "un rejected sí se borra")

	_, err = env.uc.Get(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
