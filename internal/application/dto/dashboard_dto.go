package dto

// SummaryDTO respuesta de GET /api/v1/reports/summary.
// Agrupa los tres reportes principales con sus rangos por defecto.
type SummaryDTO struct {
	InventoryValue InventoryValueDTO   `json:"inventory_value"`
	Stats          TransactionStatsDTO `json:"stats"`
	Trends         TrendsDTO           `json:"trends"`
	Currency       string              `json:"currency"`
}
