package inventory

import "github.com/arnesssr/nextpms-api/internal/domain/entity"

// Classify deriva (status, level) de una foto de stock (servicio de dominio puro).
// Precedencia: agotado > bajo mínimo > sobre máximo > normal. Un máximo nil
// nunca señala overstock.
func Classify(current, minimum int64, maximum *int64) (status, level string) {
	if current == 0 {
		return entity.StockStatusOutOfStock, entity.StockLevelCritical
	}
	if current <= minimum {
		return entity.StockStatusLowStock, entity.StockLevelLow
	}
	if maximum != nil && current >= *maximum {
		return entity.StockStatusOverstocked, entity.StockLevelHigh
	}
	return entity.StockStatusInStock, entity.StockLevelNormal
}

// ClassifyRecord aplica Classify sobre un StockRecord.
func ClassifyRecord(s *entity.StockRecord) (status, level string) {
	return Classify(s.CurrentQuantity, s.MinimumQuantity, s.MaximumQuantity)
}
