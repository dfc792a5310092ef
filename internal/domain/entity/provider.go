package entity

import "time"

// Provider proveedor al que se le imputan facturas.
// Los agregados (conteo de facturas, total facturado) son derivados: los
// calcula el agregador de estadísticas a partir del store de facturas y no se
// almacenan en esta entidad.
type Provider struct {
	ID        string
	Name      string
	TaxID     string // NIT; único
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
