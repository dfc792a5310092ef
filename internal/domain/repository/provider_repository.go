package repository

import (
	"context"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// ProviderRepository puerto de persistencia para proveedores.
type ProviderRepository interface {
	Create(ctx context.Context, provider *entity.Provider) error
	GetByID(ctx context.Context, id string) (*entity.Provider, error)
	// GetByTaxID busca por NIT; lo usa la ingesta para resolver la contraparte
	// extraída del documento. Devuelve nil sin error si no existe.
	GetByTaxID(ctx context.Context, taxID string) (*entity.Provider, error)
	List(ctx context.Context) ([]entity.Provider, error)
	Update(ctx context.Context, provider *entity.Provider) error
	Delete(ctx context.Context, id string) error
}
