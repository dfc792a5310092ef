package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	domainbilling "github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

const agingReportTopN = 10

// AgingReportUseCase genera el reporte PDF de antigüedad de cartera:
// resumen del portafolio filtrado + detalle de facturas CRITICAL/HIGH.
type AgingReportUseCase struct {
	invoiceRepo repository.InvoiceRepository
	renderer    AgingReportRenderer
	horizonDays int
}

// NewAgingReportUseCase construye el caso de uso.
func NewAgingReportUseCase(invoiceRepo repository.InvoiceRepository, renderer AgingReportRenderer, horizonDays int) *AgingReportUseCase {
	return &AgingReportUseCase{invoiceRepo: invoiceRepo, renderer: renderer, horizonDays: horizonDays}
}

// Generate produce los bytes del PDF para el conjunto filtrado.
func (uc *AgingReportUseCase) Generate(ctx context.Context, in dto.ListInvoicesRequest) ([]byte, error) {
	criteria, err := criteriaFromRequest(in)
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domainbilling.Filter(snapshot, *criteria)

	now := time.Now()
	stats := domainbilling.Aggregate(filtered)
	data := &AgingReportData{
		AsOf:         now,
		TotalCount:   stats.TotalCount,
		TotalAmount:  stats.TotalAmount,
		CountByTier:  domainbilling.CountByTier(filtered, now, uc.horizonDays),
		TopProviders: stats.TopEntities(domainbilling.DimensionProvider, agingReportTopN),
	}
	for _, inv := range filtered {
		c := domainbilling.ClassifyDetail(inv, now, uc.horizonDays)
		if c.Tier == domainbilling.TierCritical || c.Tier == domainbilling.TierHigh {
			data.Attention = append(data.Attention, AttentionLine{Invoice: inv, Detail: c})
		}
	}

	pdf, err := uc.renderer.RenderAgingReport(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("reporte de antigüedad: %w", err)
	}
	return pdf, nil
}
