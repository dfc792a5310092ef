package billing

import (
	"context"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/application/dto"
	domainbilling "github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/repository"
)

const statisticsTopN = 5 // entidades en los rankings del dashboard

// StatisticsUseCase calcula las estadísticas del portafolio sobre el conjunto
// filtrado. Vista derivada: cada llamada recalcula desde el snapshot actual
// del store; no hay caché que pueda desincronizarse.
type StatisticsUseCase struct {
	invoiceRepo repository.InvoiceRepository
	horizonDays int
}

// NewStatisticsUseCase construye el caso de uso.
func NewStatisticsUseCase(invoiceRepo repository.InvoiceRepository, horizonDays int) *StatisticsUseCase {
	return &StatisticsUseCase{invoiceRepo: invoiceRepo, horizonDays: horizonDays}
}

// Compute filtra el snapshot con los criterios recibidos y agrega:
// totales, conteos por estado y por nivel de urgencia, promedio y tops.
func (uc *StatisticsUseCase) Compute(ctx context.Context, in dto.ListInvoicesRequest) (*dto.StatisticsDTO, error) {
	criteria, err := criteriaFromRequest(in)
	if err != nil {
		return nil, err
	}
	snapshot, err := uc.invoiceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := domainbilling.Filter(snapshot, *criteria)

	stats := domainbilling.Aggregate(filtered)
	out := &dto.StatisticsDTO{
		TotalCount:           stats.TotalCount,
		TotalAmount:          stats.TotalAmount,
		AverageInvoiceAmount: stats.AverageInvoiceAmount,
		CountByStatus:        stats.CountByStatus,
		CountByTier:          tierCountsToDTO(domainbilling.CountByTier(filtered, time.Now(), uc.horizonDays)),
		TopProviders:         rankingToDTO(stats.TopEntities(domainbilling.DimensionProvider, statisticsTopN)),
		TopCostCenters:       rankingToDTO(stats.TopEntities(domainbilling.DimensionCostCenter, statisticsTopN)),
	}
	return out, nil
}

func rankingToDTO(ranking []domainbilling.EntityRanking) []dto.EntityRankingDTO {
	out := make([]dto.EntityRankingDTO, 0, len(ranking))
	for _, r := range ranking {
		out = append(out, dto.EntityRankingDTO{
			EntityID:     r.EntityID,
			EntityName:   r.EntityName,
			InvoiceCount: r.InvoiceCount,
			TotalAmount:  r.TotalAmount,
			Percentage:   r.Percentage,
		})
	}
	return out
}
