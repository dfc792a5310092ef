package dto

import "time"

// ── Proveedores ───────────────────────────────────────────────────────────────

// ProviderRequest alta/edición de proveedor.
type ProviderRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ProviderDTO proveedor del catálogo.
type ProviderDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ── Centros de costos ─────────────────────────────────────────────────────────

// CostCenterRequest alta/edición de centro de costos.
type CostCenterRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// CostCenterDTO centro de costos del catálogo.
type CostCenterDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ── Proyectos ─────────────────────────────────────────────────────────────────

// ProjectRequest alta/edición de proyecto.
type ProjectRequest struct {
	Name      string `json:"name"`
	ClientRef string `json:"client_ref"`
	Status    string `json:"status"`
}

// ProjectDTO proyecto de instalación.
type ProjectDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ClientRef string    `json:"client_ref,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
