package entity

import "time"

// CostCenter centro de costos interno al que se atribuyen facturas.
// Igual que Provider, sus agregados son derivados del store de facturas.
type CostCenter struct {
	ID          string
	Name        string
	Code        string // código contable corto, único
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
