// Package summary contiene los rollups de solo lectura del tablero: stock,
// movimientos y ajustes. Sin efectos secundarios; todo se recalcula en cada
// petición escaneando las colecciones vigentes (sin contadores cacheados).
package summary

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arnesssr/nextpms-api/internal/application/dto"
	"github.com/arnesssr/nextpms-api/internal/domain/entity"
	domaininv "github.com/arnesssr/nextpms-api/internal/domain/inventory"
	"github.com/arnesssr/nextpms-api/internal/domain/repository"
)

// defaultMovementWindowDays ventana por defecto del resumen de movimientos.
const defaultMovementWindowDays = 30

// UseCase agregador de resúmenes.
type UseCase struct {
	stockRepo repository.StockRecordRepository
	movRepo   repository.MovementRepository
	adjRepo   repository.AdjustmentRepository
}

// NewUseCase construye el agregador.
func NewUseCase(
	stockRepo repository.StockRecordRepository,
	movRepo repository.MovementRepository,
	adjRepo repository.AdjustmentRepository,
) *UseCase {
	return &UseCase{stockRepo: stockRepo, movRepo: movRepo, adjRepo: adjRepo}
}

// StockSummary clasifica cada registro vigente y acumula totales y valor.
func (uc *UseCase) StockSummary(ctx context.Context) (*dto.StockSummaryDTO, error) {
	records, err := uc.stockRepo.List(repository.StockRecordFilter{})
	if err != nil {
		return nil, err
	}
	out := &dto.StockSummaryDTO{TotalValue: decimal.Zero}
	locations := make(map[string]struct{})
	for _, r := range records {
		out.TotalItems++
		out.TotalValue = out.TotalValue.Add(r.TotalValue())
		locations[r.LocationID] = struct{}{}
		status, _ := domaininv.ClassifyRecord(r)
		switch status {
		case entity.StockStatusLowStock:
			out.LowStockItems++
		case entity.StockStatusOutOfStock:
			out.OutOfStockItems++
		case entity.StockStatusOverstocked:
			out.OverstockedItems++
		}
	}
	out.DistinctLocations = len(locations)
	return out, nil
}

// MovementSummary acumula el libro de los últimos windowDays días con cortes
// de hoy / semana en curso / mes en curso.
func (uc *UseCase) MovementSummary(ctx context.Context, windowDays int) (*dto.MovementSummaryDTO, error) {
	if windowDays <= 0 {
		windowDays = defaultMovementWindowDays
	}
	now := time.Now()
	movements, err := uc.movRepo.ListSince(now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, err
	}

	todayStart, weekStart, monthStart := periodStarts(now)
	out := &dto.MovementSummaryDTO{TotalValue: decimal.Zero}
	for _, m := range movements {
		out.TotalMovements++
		switch m.Type {
		case entity.MovementTypeIn:
			out.TotalStockIn += m.Quantity
		case entity.MovementTypeOut:
			out.TotalStockOut += m.Quantity
		}
		if m.TotalCost != nil {
			out.TotalValue = out.TotalValue.Add(m.TotalCost.Abs())
		}
		if !m.CreatedAt.Before(todayStart) {
			out.MovementsToday++
		}
		if !m.CreatedAt.Before(weekStart) {
			out.MovementsThisWeek++
		}
		if !m.CreatedAt.Before(monthStart) {
			out.MovementsThisMonth++
		}
	}
	return out, nil
}

// AdjustmentSummary acumula ajustes por estado, sentido e impacto de costo.
func (uc *UseCase) AdjustmentSummary(ctx context.Context) (*dto.AdjustmentSummaryDTO, error) {
	adjustments, err := uc.adjRepo.ListAll()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	todayStart, weekStart, monthStart := periodStarts(now)
	out := &dto.AdjustmentSummaryDTO{TotalCostImpact: decimal.Zero}
	for _, a := range adjustments {
		out.TotalAdjustments++
		switch a.Status {
		case entity.AdjustmentStatusPending:
			out.PendingAdjustments++
		case entity.AdjustmentStatusApproved:
			out.ApprovedAdjustments++
		case entity.AdjustmentStatusRejected:
			out.RejectedAdjustments++
		}
		if a.QuantityChange > 0 {
			out.TotalIncreases++
		}
		if a.QuantityChange < 0 {
			out.TotalDecreases++
		}
		out.TotalCostImpact = out.TotalCostImpact.Add(a.CostImpact)
		if !a.CreatedAt.Before(todayStart) {
			out.AdjustmentsToday++
		}
		if !a.CreatedAt.Before(weekStart) {
			out.AdjustmentsThisWeek++
		}
		if !a.CreatedAt.Before(monthStart) {
			out.AdjustmentsThisMonth++
		}
	}
	return out, nil
}

// Dashboard combina los tres resúmenes. Tres consultas en paralelo, misma
// técnica del tablero financiero: una goroutine por rollup y canales con
// buffer 1 para recoger resultados.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type stockResult struct {
		s   *dto.StockSummaryDTO
		err error
	}
	type movResult struct {
		s   *dto.MovementSummaryDTO
		err error
	}
	type adjResult struct {
		s   *dto.AdjustmentSummaryDTO
		err error
	}

	stockCh := make(chan stockResult, 1)
	movCh := make(chan movResult, 1)
	adjCh := make(chan adjResult, 1)

	go func() {
		s, err := uc.StockSummary(ctx)
		stockCh <- stockResult{s, err}
	}()
	go func() {
		s, err := uc.MovementSummary(ctx, defaultMovementWindowDays)
		movCh <- movResult{s, err}
	}()
	go func() {
		s, err := uc.AdjustmentSummary(ctx)
		adjCh <- adjResult{s, err}
	}()

	stock := <-stockCh
	mov := <-movCh
	adj := <-adjCh

	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de stock: %w", stock.err)
	}
	if mov.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de movimientos: %w", mov.err)
	}
	if adj.err != nil {
		return nil, fmt.Errorf("dashboard: resumen de ajustes: %w", adj.err)
	}

	return &dto.DashboardSummaryDTO{
		Stock:       *stock.s,
		Movements:   *mov.s,
		Adjustments: *adj.s,
	}, nil
}

// periodStarts devuelve los cortes de hoy, semana (domingo) y mes en curso.
func periodStarts(now time.Time) (today, week, month time.Time) {
	today = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	week = today.AddDate(0, 0, -int(today.Weekday()))
	month = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return today, week, month
}
