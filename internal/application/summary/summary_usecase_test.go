package summary_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnesssr/nextpms-api/internal/application/summary"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/infrastructure/memory"
)

type summaryEnv struct {
	store     *memory.Store
	stockRepo *memory.StockRecordRepo
	movRepo   *memory.MovementRepo
	adjRepo   *memory.AdjustmentRepo
	uc        *summary.UseCase
}

func newSummaryEnv(t *testing.T) *summaryEnv {
	t.Helper()
	store := memory.NewStore()
	stockRepo := memory.NewStockRecordRepository(store)
	movRepo := memory.NewMovementRepository(store)
	adjRepo := memory.NewAdjustmentRepository(store)
	return &summaryEnv{
		store:     store,
		stockRepo: stockRepo,
		movRepo:   movRepo,
		adjRepo:   adjRepo,
		uc:        summary.NewUseCase(stockRepo, movRepo, adjRepo),
	}
}

func (e *summaryEnv) seedStock(t *testing.T, productID, locationID string, qty, min int64, max *int64) {
	t.Helper()
	require.NoError(t, e.stockRepo.Create(&entity.StockRecord{
		ProductID:       productID,
		LocationID:      locationID,
		CurrentQuantity: qty,
		MinimumQuantity: min,
		MaximumQuantity: max,
		CostPerUnit:     decimal.NewFromInt(2),
		UnitOfMeasure:   "unidad",
	}))
}

func TestStockSummary_ClasificaYAcumula(t *testing.T) {
	env := newSummaryEnv(t)
	maxQty := int64(50)
	env.seedStock(t, "p1", "bodega", 0, 10, nil)       // out_of_stock
	env.seedStock(t, "p2", "bodega", 5, 10, nil)       // low_stock
	env.seedStock(t, "p3", "tienda", 60, 10, &maxQty)  // overstocked
	env.seedStock(t, "p4", "tienda", 20, 10, &maxQty)  // in_stock

	out, err := env.uc.StockSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, out.TotalItems)
	assert.Equal(t, 1, out.OutOfStockItems)
	assert.Equal(t, 1, out.LowStockItems)
	assert.Equal(t, 1, out.OverstockedItems)
	assert.Equal(t, 2, out.DistinctLocations)
	// (0+5+60+20) × $2 = $170
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(170)), "valor total incorrecto: %s", out.TotalValue)
}

func TestMovementSummary_CortesDePeriodo(t *testing.T) {
	env := newSummaryEnv(t)
	now := time.Now()
	cost := decimal.NewFromInt(30)

	mk := func(typ string, qty int64, at time.Time) {
		require.NoError(t, env.movRepo.Create(&entity.Movement{
			ProductID: "p1", LocationID: "bodega",
			Type: typ, Reason: entity.MovementReasonManual,
			Quantity: qty, TotalCost: &cost, CreatedAt: at,
		}))
	}
	mk(entity.MovementTypeIn, 10, now)                     // hoy
	mk(entity.MovementTypeOut, 4, now.AddDate(0, 0, -10))  // dentro del mes en curso o no, pero en ventana
	mk(entity.MovementTypeIn, 7, now.AddDate(0, 0, -60))   // fuera de la ventana de 30 días

	out, err := env.uc.MovementSummary(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalMovements, "el asiento de hace 60 días queda fuera de la ventana")
	assert.Equal(t, int64(10), out.TotalStockIn)
	assert.Equal(t, int64(4), out.TotalStockOut)
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 1, out.MovementsToday)
	assert.GreaterOrEqual(t, out.MovementsThisWeek, 1)
	assert.GreaterOrEqual(t, out.MovementsThisMonth, 1)
}

func TestAdjustmentSummary_PorEstadoYSentido(t *testing.T) {
	env := newSummaryEnv(t)
	now := time.Now()

	mk := func(status string, change int64, impact int64, at time.Time) {
		require.NoError(t, env.adjRepo.Create(&entity.Adjustment{
			ProductID: "p1", LocationID: "bodega",
			Type:           entity.AdjustmentTypeRecount,
			Reason:         entity.AdjustReasonCycleCount,
			QuantityChange: change,
			CostImpact:     decimal.NewFromInt(impact),
			Status:         status,
			CreatedAt:      at,
		}))
	}
	mk(entity.AdjustmentStatusPending, 5, 50, now)
	mk(entity.AdjustmentStatusApproved, -3, -30, now.AddDate(0, 0, -2))
	mk(entity.AdjustmentStatusRejected, 2, 20, now.AddDate(0, -2, 0))

	out, err := env.uc.AdjustmentSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalAdjustments)
	assert.Equal(t, 1, out.PendingAdjustments)
	assert.Equal(t, 1, out.ApprovedAdjustments)
	assert.Equal(t, 1, out.RejectedAdjustments)
	assert.Equal(t, 2, out.TotalIncreases)
	assert.Equal(t, 1, out.TotalDecreases)
	assert.True(t, out.TotalCostImpact.Equal(decimal.NewFromInt(40)), "50-30+20 = 40, fue %s", out.TotalCostImpact)
	assert.Equal(t, 1, out.AdjustmentsToday)
}

func TestDashboard_CombinaLosTresRollups(t *testing.T) {
	env := newSummaryEnv(t)
	env.seedStock(t, "p1", "bodega", 0, 10, nil)
	require.NoError(t, env.movRepo.Create(&entity.Movement{
		ProductID: "p1", LocationID: "bodega",
		Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase,
		Quantity: 5, CreatedAt: time.Now(),
	}))
	require.NoError(t, env.adjRepo.Create(&entity.Adjustment{
		ProductID: "p1", LocationID: "bodega",
		Type: entity.AdjustmentTypeIncrease, Reason: entity.AdjustReasonStockFound,
		QuantityChange: 1, CostImpact: decimal.Zero,
		Status: entity.AdjustmentStatusPending, CreatedAt: time.Now(),
	}))

	out, err := env.uc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Stock.TotalItems)
	assert.Equal(t, 1, out.Stock.OutOfStockItems)
	assert.Equal(t, 1, out.Movements.TotalMovements)
	assert.Equal(t, 1, out.Adjustments.PendingAdjustments)
}
