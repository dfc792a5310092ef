package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainbilling "github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// AgingReportData insumo del reporte de antigüedad de cartera.
type AgingReportData struct {
	AsOf         time.Time
	TotalCount   int
	TotalAmount  decimal.Decimal
	CountByTier  map[domainbilling.Tier]int
	TopProviders []domainbilling.EntityRanking
	// Attention facturas CRITICAL y HIGH, ya clasificadas, para el detalle.
	Attention []AttentionLine
}

// AttentionLine una factura que requiere gestión inmediata.
type AttentionLine struct {
	Invoice entity.Invoice
	Detail  domainbilling.Classification
}

// AgingReportRenderer puerto de render del reporte (implementación PDF en
// infrastructure/pdf).
type AgingReportRenderer interface {
	RenderAgingReport(ctx context.Context, data *AgingReportData) ([]byte, error)
}
