package repository

import (
	"context"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// DraftRepository puerto de persistencia para borradores de ingesta.
type DraftRepository interface {
	Create(ctx context.Context, draft *entity.DraftInvoice) error
	GetByID(ctx context.Context, id string) (*entity.DraftInvoice, error)
	// List devuelve los borradores vivos (no COMMITTED ni DISCARDED),
	// más recientes primero.
	List(ctx context.Context) ([]entity.DraftInvoice, error)
	Update(ctx context.Context, draft *entity.DraftInvoice) error
}
