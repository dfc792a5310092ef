package repository

import (
	"context"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas.
//
// Update y UpdateStatus aplican control de concurrencia optimista: reciben el
// updated_at que el caller leyó; si la fila ya cambió retornan
// domain.ErrConflict para que el caller relea y reintente.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	// List devuelve el snapshot completo con nombres de proveedor y centro de
	// costos resueltos, ordenado por fecha de vencimiento ascendente. El
	// filtrado es responsabilidad del motor de cartera, no del SQL.
	List(ctx context.Context) ([]entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice, expectedUpdatedAt time.Time) error
	UpdateStatus(ctx context.Context, id, status string, expectedUpdatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
