package entity

import "time"

// Niveles de urgencia de una recomendación de reposición.
const (
	ReorderUrgencyCritical = "critical" // stock en 0 o negativo
	ReorderUrgencyHigh     = "high"     // se agota antes de que llegue el pedido
	ReorderUrgencyMedium   = "medium"   // bajo el umbral mínimo
	ReorderUrgencyLow      = "low"
)

// AutoReorderRule es la política de reposición automática por producto.
type AutoReorderRule struct {
	ID               string
	ProductID        string
	SupplierID       string
	MinimumThreshold int64
	ReorderQuantity  int64
	LeadTimeDays     int
	IsActive         bool
	LastTriggered    *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
