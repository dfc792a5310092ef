package repository

import (
	"context"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// CostCenterRepository puerto de persistencia para centros de costos.
type CostCenterRepository interface {
	Create(ctx context.Context, cc *entity.CostCenter) error
	GetByID(ctx context.Context, id string) (*entity.CostCenter, error)
	List(ctx context.Context) ([]entity.CostCenter, error)
	Update(ctx context.Context, cc *entity.CostCenter) error
	Delete(ctx context.Context, id string) error
}
