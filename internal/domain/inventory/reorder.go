package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/domain/entity"
)

// UsageWindowDays ventana de historial usada para el promedio diario de consumo.
const UsageWindowDays = 30

// Recommendation es la salida del motor de reposición. Es un read-model:
// se recalcula bajo demanda y nunca se persiste como estado autoritativo.
type Recommendation struct {
	ProductID              string
	LocationID             string
	CurrentStock           int64
	MinimumThreshold       int64
	SuggestedOrderQuantity int64
	UrgencyLevel           string
	DaysUntilStockout      *decimal.Decimal // nil = consumo cero, sin horizonte
	AverageDailyUsage      decimal.Decimal
	LeadTimeDays           int
	SupplierID             string
	UnitCost               decimal.Decimal
	TotalCost              decimal.Decimal
}

// AverageDailyUsage calcula el consumo diario promedio como la media de las
// salidas físicas (type=out) de la ventana, excluyendo asientos compensatorios
// de reversas. Los traslados no cuentan: mueven stock, no lo consumen.
func AverageDailyUsage(movements []*entity.Movement, windowDays int) decimal.Decimal {
	if windowDays <= 0 {
		return decimal.Zero
	}
	var total int64
	for _, m := range movements {
		if m.Type != entity.MovementTypeOut || m.Reason == entity.MovementReasonVoid {
			continue
		}
		total += m.Quantity
	}
	if total == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(total).Div(decimal.NewFromInt(int64(windowDays)))
}

// Recommend evalúa una regla activa contra la foto de stock y el consumo
// promedio. Devuelve nil si el producto no necesita reposición todavía.
//
// Se emite recomendación si el stock está en o bajo el umbral mínimo, o si el
// horizonte de agotamiento es menor o igual al lead time (se agotaría antes de
// que llegue un pedido hecho hoy).
func Recommend(stock *entity.StockRecord, rule *entity.AutoReorderRule, avgDailyUsage decimal.Decimal) *Recommendation {
	if rule == nil || !rule.IsActive || stock == nil {
		return nil
	}

	var daysUntilStockout *decimal.Decimal
	if avgDailyUsage.GreaterThan(decimal.Zero) {
		d := decimal.NewFromInt(stock.CurrentQuantity).Div(avgDailyUsage)
		daysUntilStockout = &d
	}

	leadTime := decimal.NewFromInt(int64(rule.LeadTimeDays))
	belowThreshold := stock.CurrentQuantity <= rule.MinimumThreshold
	runsOutBeforeArrival := daysUntilStockout != nil && daysUntilStockout.LessThanOrEqual(leadTime)

	if !belowThreshold && !runsOutBeforeArrival {
		return nil
	}

	// Urgencia en orden de prioridad: agotado > se agota antes del pedido >
	// bajo umbral > baja.
	urgency := entity.ReorderUrgencyLow
	switch {
	case stock.CurrentQuantity <= 0:
		urgency = entity.ReorderUrgencyCritical
	case runsOutBeforeArrival:
		urgency = entity.ReorderUrgencyHigh
	case belowThreshold:
		urgency = entity.ReorderUrgencyMedium
	}

	// Nunca menos que la cantidad configurada, ni insuficiente para cubrir
	// dos veces el déficit contra el umbral.
	suggested := rule.ReorderQuantity
	if deficit := 2*rule.MinimumThreshold - stock.CurrentQuantity; deficit > suggested {
		suggested = deficit
	}

	return &Recommendation{
		ProductID:              stock.ProductID,
		LocationID:             stock.LocationID,
		CurrentStock:           stock.CurrentQuantity,
		MinimumThreshold:       rule.MinimumThreshold,
		SuggestedOrderQuantity: suggested,
		UrgencyLevel:           urgency,
		DaysUntilStockout:      daysUntilStockout,
		AverageDailyUsage:      avgDailyUsage,
		LeadTimeDays:           rule.LeadTimeDays,
		SupplierID:             rule.SupplierID,
		UnitCost:               stock.CostPerUnit,
		TotalCost:              stock.CostPerUnit.Mul(decimal.NewFromInt(suggested)),
	}
}

// UsageWindowStart devuelve el inicio de la ventana de consumo respecto a now.
func UsageWindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -UsageWindowDays)
}
