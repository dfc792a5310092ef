package dto

import "github.com/shopspring/decimal"

// EntityRankingDTO una entrada del top de proveedores o centros de costos.
type EntityRankingDTO struct {
	EntityID     string          `json:"entity_id"`
	EntityName   string          `json:"entity_name"`
	InvoiceCount int             `json:"invoice_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Percentage   decimal.Decimal `json:"percentage"` // 0..100, participación sobre el total
}

// StatisticsDTO respuesta de GET /api/invoices/statistics.
// Vista derivada: se recalcula del conjunto filtrado en cada llamada.
type StatisticsDTO struct {
	TotalCount           int                `json:"total_count"`
	TotalAmount          decimal.Decimal    `json:"total_amount"`
	AverageInvoiceAmount decimal.Decimal    `json:"average_invoice_amount"`
	CountByStatus        map[string]int     `json:"count_by_status"`
	CountByTier          map[string]int     `json:"count_by_tier"`
	TopProviders         []EntityRankingDTO `json:"top_providers"`
	TopCostCenters       []EntityRankingDTO `json:"top_cost_centers"`
}

// DashboardDTO respuesta de GET /api/invoices/dashboard: el listado
// clasificado y las estadísticas del mismo conjunto filtrado en una llamada,
// calculados sobre un único snapshot para que ambas vistas coincidan.
type DashboardDTO struct {
	Invoices   []InvoiceDTO  `json:"invoices"`
	Statistics StatisticsDTO `json:"statistics"`
}
