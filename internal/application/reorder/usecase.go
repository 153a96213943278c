// Package reorder administra las reglas de reposición automática y genera
// recomendaciones bajo demanda combinando stock actual, política por producto
// e historial de consumo. Las recomendaciones son un read-model: se recalculan
// en cada petición y nunca se persisten como estado autoritativo.
package reorder

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	domaininv "github.com/arnesssr/nextpms-api/internal/domain/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// urgencyRank orden de severidad para el ranking de recomendaciones.
var urgencyRank = map[string]int{
	entity.ReorderUrgencyCritical: 0,
	entity.ReorderUrgencyHigh:     1,
	entity.ReorderUrgencyMedium:   2,
	entity.ReorderUrgencyLow:      3,
}

// UseCase reglas de reposición + motor de recomendaciones.
type UseCase struct {
	ruleRepo  repository.ReorderRuleRepository
	stockRepo repository.StockRecordRepository
	movRepo   repository.MovementRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	ruleRepo repository.ReorderRuleRepository,
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
) *UseCase {
	return &UseCase{ruleRepo: ruleRepo, stockRepo: stockRepo, movRepo: movRepo}
}

// CreateRule da de alta la política de reposición de un producto (una por
// producto; duplicados devuelven ErrDuplicate).
func (uc *UseCase) CreateRule(ctx context.Context, in dto.CreateReorderRuleRequest) (*entity.AutoReorderRule, error) {
	if in.ProductID == "" || in.SupplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinimumThreshold < 0 || in.ReorderQuantity <= 0 || in.LeadTimeDays <= 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.ruleRepo.GetByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	rule := &entity.AutoReorderRule{
		ProductID:        in.ProductID,
		SupplierID:       in.SupplierID,
		MinimumThreshold: in.MinimumThreshold,
		ReorderQuantity:  in.ReorderQuantity,
		LeadTimeDays:     in.LeadTimeDays,
		IsActive:         active,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.ruleRepo.Create(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateRule aplica cambios parciales a una regla.
func (uc *UseCase) UpdateRule(ctx context.Context, id string, in dto.UpdateReorderRuleRequest) (*entity.AutoReorderRule, error) {
	rule, err := uc.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != nil {
		if *in.SupplierID == "" {
			return nil, domain.ErrInvalidInput
		}
		rule.SupplierID = *in.SupplierID
	}
	if in.MinimumThreshold != nil {
		if *in.MinimumThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		rule.MinimumThreshold = *in.MinimumThreshold
	}
	if in.ReorderQuantity != nil {
		if *in.ReorderQuantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		rule.ReorderQuantity = *in.ReorderQuantity
	}
	if in.LeadTimeDays != nil {
		if *in.LeadTimeDays <= 0 {
			return nil, domain.ErrInvalidInput
		}
		rule.LeadTimeDays = *in.LeadTimeDays
	}
	if in.IsActive != nil {
		rule.IsActive = *in.IsActive
	}
	rule.UpdatedAt = time.Now()
	if err := uc.ruleRepo.Update(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteRule elimina una regla.
func (uc *UseCase) DeleteRule(ctx context.Context, id string) error {
	rule, err := uc.ruleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rule == nil {
		return domain.ErrNotFound
	}
	return uc.ruleRepo.Delete(id)
}

// GetRule devuelve una regla por id.
func (uc *UseCase) GetRule(ctx context.Context, id string) (*entity.AutoReorderRule, error) {
	rule, err := uc.ruleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, domain.ErrNotFound
	}
	return rule, nil
}

// ListRules devuelve las reglas configuradas.
func (uc *UseCase) ListRules(ctx context.Context, activeOnly bool) ([]*entity.AutoReorderRule, error) {
	return uc.ruleRepo.List(activeOnly)
}

// GenerateRecommendations evalúa cada regla activa contra el stock de su
// producto en cada ubicación. El consumo promedio sale de las salidas de los
// últimos 30 días (asientos compensatorios excluidos). Las reglas que
// produjeron al menos una recomendación quedan estampadas con last_triggered.
// Resultado ordenado de mayor a menor urgencia y, dentro de la misma
// urgencia, por menor horizonte de agotamiento.
func (uc *UseCase) GenerateRecommendations(ctx context.Context) ([]dto.RecommendationDTO, error) {
	rules, err := uc.ruleRepo.List(true)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return []dto.RecommendationDTO{}, nil
	}

	now := time.Now()
	since := domaininv.UsageWindowStart(now)
	recs := make([]dto.RecommendationDTO, 0, len(rules))

	for _, rule := range rules {
		stocks, err := uc.stockRepo.List(repository.StockRecordFilter{ProductID: rule.ProductID})
		if err != nil {
			return nil, err
		}
		triggered := false
		for _, stock := range stocks {
			history, err := uc.movRepo.ListByProductSince(stock.ProductID, stock.LocationID, since)
			if err != nil {
				return nil, err
			}
			usage := domaininv.AverageDailyUsage(history, domaininv.UsageWindowDays)
			rec := domaininv.Recommend(stock, rule, usage)
			if rec == nil {
				continue
			}
			triggered = true
			recs = append(recs, toRecommendationDTO(rec))
		}
		if triggered {
			if err := uc.ruleRepo.MarkTriggered(rule.ID, now); err != nil {
				return nil, err
			}
		}
	}

	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := urgencyRank[recs[i].UrgencyLevel], urgencyRank[recs[j].UrgencyLevel]
		if ri != rj {
			return ri < rj
		}
		di, dj := recs[i].DaysUntilStockout, recs[j].DaysUntilStockout
		switch {
		case di != nil && dj != nil:
			return di.LessThan(*dj)
		case di != nil:
			return true
		default:
			return false
		}
	})
	return recs, nil
}

// Summary rollup del módulo: reglas, recomendaciones pendientes, ítems
// críticos, valor potencial de pedido y lead time promedio.
func (uc *UseCase) Summary(ctx context.Context) (*dto.ReorderSummaryDTO, error) {
	rules, err := uc.ruleRepo.List(false)
	if err != nil {
		return nil, err
	}
	recs, err := uc.GenerateRecommendations(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ReorderSummaryDTO{
		TotalRules:             len(rules),
		PendingRecommendations: len(recs),
		AverageLeadTimeDays:    decimal.Zero,
	}
	var leadSum int64
	for _, r := range rules {
		if r.IsActive {
			out.ActiveRules++
		}
		leadSum += int64(r.LeadTimeDays)
	}
	if len(rules) > 0 {
		out.AverageLeadTimeDays = decimal.NewFromInt(leadSum).
			Div(decimal.NewFromInt(int64(len(rules)))).Round(1)
	}
	total := decimal.Zero
	for _, rec := range recs {
		if rec.UrgencyLevel == entity.ReorderUrgencyCritical {
			out.CriticalItems++
		}
		total = total.Add(rec.TotalCost)
	}
	out.TotalPotentialOrderValue = total
	return out, nil
}

func toRecommendationDTO(r *domaininv.Recommendation) dto.RecommendationDTO {
	return dto.RecommendationDTO{
		ProductID:              r.ProductID,
		LocationID:             r.LocationID,
		CurrentStock:           r.CurrentStock,
		MinimumThreshold:       r.MinimumThreshold,
		SuggestedOrderQuantity: r.SuggestedOrderQuantity,
		UrgencyLevel:           r.UrgencyLevel,
		DaysUntilStockout:      r.DaysUntilStockout,
		AverageDailyUsage:      r.AverageDailyUsage,
		LeadTimeDays:           r.LeadTimeDays,
		SupplierID:             r.SupplierID,
		UnitCost:               r.UnitCost,
		TotalCost:              r.TotalCost,
	}
}
