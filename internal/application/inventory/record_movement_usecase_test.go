package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/application/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
	"github.com/arnesssr/nextpms-api/internal/infrastructure/memory"
)

const testUser = "user-1"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type movementEnv struct {
	store     *memory.Store
	stockRepo *memory.StockRecordRepo
	movRepo   *memory.MovementRepo
	uc        *inventory.RecordMovementUseCase
}

func newMovementEnv(t *testing.T) *movementEnv {
	t.Helper()
	store := memory.NewStore()
	return &movementEnv{
		store:     store,
		stockRepo: memory.NewStockRecordRepository(store),
		movRepo:   memory.NewMovementRepository(store),
		uc:        inventory.NewRecordMovementUseCase(memory.NewTxRunner(store), memory.NewMovementRepository(store)),
	}
}

// seedStock da de alta un registro con la cantidad indicada.
func (e *movementEnv) seedStock(t *testing.T, productID, locationID string, qty int64) *entity.StockRecord {
	t.Helper()
	record := &entity.StockRecord{
		ProductID:       productID,
		LocationID:      locationID,
		CurrentQuantity: qty,
		MinimumQuantity: 5,
		CostPerUnit:     decimal.NewFromInt(10),
		UnitOfMeasure:   "unidad",
	}
	require.NoError(t, e.stockRepo.Create(record))
	return record
}

func (e *movementEnv) currentQuantity(t *testing.T, productID, locationID string) int64 {
	t.Helper()
	record, err := e.stockRepo.Get(productID, locationID)
	require.NoError(t, err)
	require.NotNil(t, record)
	return record.CurrentQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Record — entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_EntradaActualizaCantidadYFoto(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 20)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:  "prod-1",
		LocationID: "loc-1",
		Type:       entity.MovementTypeIn,
		Reason:     entity.MovementReasonPurchase,
		Quantity:   30,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)

	mov := created[0]
	assert.Equal(t, int64(20), mov.BeforeQuantity, "la foto before debe ser la cantidad previa")
	assert.Equal(t, int64(50), mov.AfterQuantity, "la foto after debe reflejar la entrada")
	assert.Equal(t, testUser, mov.CreatedBy)
	assert.Equal(t, int64(50), env.currentQuantity(t, "prod-1", "loc-1"))

	record, err := env.stockRepo.Get("prod-1", "loc-1")
	require.NoError(t, err)
	assert.NotNil(t, record.LastRestocked, "una entrada debe estampar last_restocked")
}

func TestRecord_SalidaDescuentaStock(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 20)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:  "prod-1",
		LocationID: "loc-1",
		Type:       entity.MovementTypeOut,
		Reason:     entity.MovementReasonSale,
		Quantity:   8,
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, int64(12), created[0].AfterQuantity)
	assert.Equal(t, int64(12), env.currentQuantity(t, "prod-1", "loc-1"))
}

// La validación de stock ocurre ANTES de escribir: una salida que dejaría la
// cantidad negativa no registra asiento ni toca el StockRecord.
func TestRecord_SalidaInsuficienteEsAtomica(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 5)

	_, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:  "prod-1",
		LocationID: "loc-1",
		Type:       entity.MovementTypeOut,
		Reason:     entity.MovementReasonSale,
		Quantity:   6,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(5), env.currentQuantity(t, "prod-1", "loc-1"), "la cantidad no debe cambiar")
	movements, err := env.movRepo.List(repository.MovementFilter{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Empty(t, movements, "un movimiento fallido no deja asiento en el libro")
}

func TestRecord_CostoPorDefectoDelRegistro(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 10) // costo 10

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:  "prod-1",
		LocationID: "loc-1",
		Type:       entity.MovementTypeOut,
		Reason:     entity.MovementReasonSale,
		Quantity:   3,
	})
	require.NoError(t, err)
	require.NotNil(t, created[0].UnitCost)
	assert.True(t, created[0].UnitCost.Equal(decimal.NewFromInt(10)), "sin unit_cost explícito se usa el del registro")
	assert.True(t, created[0].TotalCost.Equal(decimal.NewFromInt(30)))
}

func TestRecord_Validaciones(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 10)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateMovementRequest
	}{
		{"cantidad cero", dto.CreateMovementRequest{ProductID: "prod-1", LocationID: "loc-1", Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase}},
		{"cantidad negativa", dto.CreateMovementRequest{ProductID: "prod-1", LocationID: "loc-1", Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: -1}},
		{"razón fuera del conjunto del tipo", dto.CreateMovementRequest{ProductID: "prod-1", LocationID: "loc-1", Type: entity.MovementTypeIn, Reason: entity.MovementReasonSale, Quantity: 1}},
		{"razón void reservada", dto.CreateMovementRequest{ProductID: "prod-1", LocationID: "loc-1", Type: entity.MovementTypeIn, Reason: entity.MovementReasonVoid, Quantity: 1}},
		{"tipo adjustment no se acepta aquí", dto.CreateMovementRequest{ProductID: "prod-1", LocationID: "loc-1", Type: entity.MovementTypeAdjustment, Reason: entity.MovementReasonAdjustment, Quantity: 1}},
		{"sin ubicación", dto.CreateMovementRequest{ProductID: "prod-1", Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: 1}},
		{"transfer a la misma ubicación", dto.CreateMovementRequest{ProductID: "prod-1", FromLocationID: "loc-1", ToLocationID: "loc-1", Type: entity.MovementTypeTransfer, Reason: entity.MovementReasonTransfer, Quantity: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.Record(ctx, testUser, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := env.uc.Record(ctx, "", dto.CreateMovementRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "el autor siempre es explícito")
}

func TestRecord_RegistroInexistente(t *testing.T) {
	env := newMovementEnv(t)
	_, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID: "fantasma", LocationID: "loc-1",
		Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Record — transfer
// ──────────────────────────────────────────────────────────────────────────────

func TestRecord_TransferProduceDosAsientosLigados(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-a", 50)
	env.seedStock(t, "prod-1", "loc-b", 10)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:      "prod-1",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Type:           entity.MovementTypeTransfer,
		Reason:         entity.MovementReasonTransfer,
		Quantity:       20,
	})
	require.NoError(t, err)
	require.Len(t, created, 2, "un transfer produce exactamente dos asientos")

	outLeg, inLeg := created[0], created[1]
	assert.Equal(t, outLeg.TransactionID, inLeg.TransactionID, "las dos patas comparten transaction_id")
	assert.Equal(t, "loc-a", outLeg.LocationID)
	assert.Equal(t, "loc-b", inLeg.LocationID)
	assert.Equal(t, int64(30), env.currentQuantity(t, "prod-1", "loc-a"))
	assert.Equal(t, int64(30), env.currentQuantity(t, "prod-1", "loc-b"))
}

// Si la pata de salida falla por stock insuficiente, el destino tampoco cambia.
func TestRecord_TransferInsuficienteRevierteTodo(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-a", 5)
	env.seedStock(t, "prod-1", "loc-b", 10)

	_, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID:      "prod-1",
		FromLocationID: "loc-a",
		ToLocationID:   "loc-b",
		Type:           entity.MovementTypeTransfer,
		Reason:         entity.MovementReasonTransfer,
		Quantity:       20,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), env.currentQuantity(t, "prod-1", "loc-a"))
	assert.Equal(t, int64(10), env.currentQuantity(t, "prod-1", "loc-b"))

	movements, err := env.movRepo.List(repository.MovementFilter{ProductID: "prod-1"})
	require.NoError(t, err)
	assert.Empty(t, movements, "una transacción fallida no deja ninguna pata en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Void — asientos compensatorios
// ──────────────────────────────────────────────────────────────────────────────

func TestVoid_RestauraCantidadConAsientoCompensatorio(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 20)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type: entity.MovementTypeOut, Reason: entity.MovementReasonSale, Quantity: 8,
	})
	require.NoError(t, err)
	orig := created[0]
	require.Equal(t, int64(12), env.currentQuantity(t, "prod-1", "loc-1"))

	comp, err := env.uc.Void(context.Background(), "user-2", orig.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.MovementTypeIn, comp.Type, "la reversa de una salida es una entrada")
	assert.Equal(t, entity.MovementReasonVoid, comp.Reason)
	require.NotNil(t, comp.VoidsMovementID)
	assert.Equal(t, orig.ID, *comp.VoidsMovementID)
	assert.Equal(t, int64(20), env.currentQuantity(t, "prod-1", "loc-1"), "la reversa restaura la cantidad original")

	// El asiento original sigue intacto en el libro.
	persisted, err := env.movRepo.GetByID(orig.ID)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, entity.MovementTypeOut, persisted.Type)
}

func TestVoid_SoloUnaVez(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 20)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: 5,
	})
	require.NoError(t, err)

	_, err = env.uc.Void(context.Background(), testUser, created[0].ID)
	require.NoError(t, err)

	_, err = env.uc.Void(context.Background(), testUser, created[0].ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "un movimiento ya revertido no se revierte de nuevo")
}

func TestVoid_AsientoCompensatorioNoEsReversible(t *testing.T) {
	env := newMovementEnv(t)
	env.seedStock(t, "prod-1", "loc-1", 20)

	created, err := env.uc.Record(context.Background(), testUser, dto.CreateMovementRequest{
		ProductID: "prod-1", LocationID: "loc-1",
		Type: entity.MovementTypeOut, Reason: entity.MovementReasonSale, Quantity: 5,
	})
	require.NoError(t, err)
	comp, err := env.uc.Void(context.Background(), testUser, created[0].ID)
	require.NoError(t, err)

	_, err = env.uc.Void(context.Background(), testUser, comp.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "una reversa no se revierte: se registra el movimiento contrario")
}

func TestVoid_MovimientoInexistente(t *testing.T) {
	env := newMovementEnv(t)
	_, err := env.uc.Void(context.Background(), testUser, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
