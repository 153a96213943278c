package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	"github.com/arnesssr/nextpms-api/internal/domain/inventory"
)

func outMovement(qty int64) *entity.Movement {
	return &entity.Movement{Type: entity.MovementTypeOut, Reason: entity.MovementReasonSale, Quantity: qty}
}

// ──────────────────────────────────────────────────────────────────────────────
// AverageDailyUsage
// ──────────────────────────────────────────────────────────────────────────────

func TestAverageDailyUsage_PromedioSobreLaVentana(t *testing.T) {
	// 60 unidades de salida en 30 días = 2/día.
	movements := []*entity.Movement{outMovement(25), outMovement(20), outMovement(15)}
	usage := inventory.AverageDailyUsage(movements, 30)
	assert.True(t, usage.Equal(decimal.NewFromInt(2)), "60 unidades en 30 días deben ser 2/día, fue %s", usage)
}

func TestAverageDailyUsage_IgnoraEntradasTrasladosYReversas(t *testing.T) {
	movements := []*entity.Movement{
		outMovement(30),
		{Type: entity.MovementTypeIn, Reason: entity.MovementReasonPurchase, Quantity: 100},
		{Type: entity.MovementTypeTransfer, Reason: entity.MovementReasonTransfer, Quantity: 50},
		{Type: entity.MovementTypeOut, Reason: entity.MovementReasonVoid, Quantity: 40}, // compensatorio
		{Type: entity.MovementTypeAdjustment, Reason: entity.MovementReasonAdjustment, Quantity: 10},
	}
	usage := inventory.AverageDailyUsage(movements, 30)
	assert.True(t, usage.Equal(decimal.NewFromInt(1)), "solo las salidas físicas cuentan: 30/30 = 1, fue %s", usage)
}

func TestAverageDailyUsage_SinConsumoEsCero(t *testing.T) {
	usage := inventory.AverageDailyUsage(nil, 30)
	assert.True(t, usage.IsZero(), "sin movimientos el consumo debe ser cero")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recommend
// ──────────────────────────────────────────────────────────────────────────────

func testRule(threshold, reorderQty int64, leadDays int) *entity.AutoReorderRule {
	return &entity.AutoReorderRule{
		ID: "rule-1", ProductID: "prod-1", SupplierID: "supp-1",
		MinimumThreshold: threshold, ReorderQuantity: reorderQty,
		LeadTimeDays: leadDays, IsActive: true,
	}
}

func testStock(qty int64) *entity.StockRecord {
	return &entity.StockRecord{
		ProductID: "prod-1", LocationID: "loc-1",
		CurrentQuantity: qty, CostPerUnit: decimal.NewFromInt(10),
	}
}

// Stock 8, umbral 10, consumo 2/día, lead time 7: se agota en 4 días, antes de
// que llegue el pedido → urgencia high y cantidad sugerida la de la regla.
func TestRecommend_SeAgotaAntesDelPedido(t *testing.T) {
	rec := inventory.Recommend(testStock(8), testRule(10, 50, 7), decimal.NewFromInt(2))
	require.NotNil(t, rec, "stock bajo el umbral debe producir recomendación")

	assert.Equal(t, entity.ReorderUrgencyHigh, rec.UrgencyLevel)
	assert.Equal(t, int64(50), rec.SuggestedOrderQuantity, "la sugerencia nunca baja de reorder_quantity")
	require.NotNil(t, rec.DaysUntilStockout)
	assert.True(t, rec.DaysUntilStockout.Equal(decimal.NewFromInt(4)), "8 unidades a 2/día son 4 días, fue %s", rec.DaysUntilStockout)
	assert.True(t, rec.TotalCost.Equal(decimal.NewFromInt(500)), "50 unidades a $10 son $500")
}

func TestRecommend_StockCeroEsCritico(t *testing.T) {
	rec := inventory.Recommend(testStock(0), testRule(10, 20, 7), decimal.Zero)
	require.NotNil(t, rec)
	assert.Equal(t, entity.ReorderUrgencyCritical, rec.UrgencyLevel)
	assert.Nil(t, rec.DaysUntilStockout, "sin consumo no hay horizonte de agotamiento")
}

func TestRecommend_BajoUmbralSinConsumoEsMedio(t *testing.T) {
	rec := inventory.Recommend(testStock(5), testRule(10, 20, 7), decimal.Zero)
	require.NotNil(t, rec)
	assert.Equal(t, entity.ReorderUrgencyMedium, rec.UrgencyLevel)
}

func TestRecommend_SugerenciaCubreDosVecesElDeficit(t *testing.T) {
	// 2*30 - 10 = 50 > reorder_quantity 20 → se sugiere 50.
	rec := inventory.Recommend(testStock(10), testRule(30, 20, 7), decimal.Zero)
	require.NotNil(t, rec)
	assert.Equal(t, int64(50), rec.SuggestedOrderQuantity)
}

func TestRecommend_StockSuficienteNoRecomienda(t *testing.T) {
	// 100 unidades a 1/día duran 100 días, muy por encima del lead time.
	rec := inventory.Recommend(testStock(100), testRule(10, 20, 7), decimal.NewFromInt(1))
	assert.Nil(t, rec, "stock holgado no debe producir recomendación")
}

func TestRecommend_ReglaInactivaNoRecomienda(t *testing.T) {
	rule := testRule(10, 20, 7)
	rule.IsActive = false
	rec := inventory.Recommend(testStock(0), rule, decimal.Zero)
	assert.Nil(t, rec, "una regla inactiva nunca recomienda")
}
