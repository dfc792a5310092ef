package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Requests ──────────────────────────────────────────────────────────────────

// CreateInvoiceRequest alta manual de una factura. Fechas en formato YYYY-MM-DD.
type CreateInvoiceRequest struct {
	Number        string          `json:"number"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	ProviderID    *string         `json:"provider_id"`
	CostCenterID  *string         `json:"cost_center_id"`
	ProjectID     *string         `json:"project_id"`
	Description   string          `json:"description"`
}

// UpdateInvoiceRequest edición de campos no identitarios. UpdatedAt es el
// timestamp que el cliente leyó: si la fila cambió desde entonces la escritura
// se rechaza con CONFLICT (concurrencia optimista).
type UpdateInvoiceRequest struct {
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	ProviderID    *string         `json:"provider_id"`
	CostCenterID  *string         `json:"cost_center_id"`
	ProjectID     *string         `json:"project_id"`
	Description   string          `json:"description"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// UpdateInvoiceStatusRequest transición de estado.
type UpdateInvoiceStatusRequest struct {
	Status    string    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListInvoicesRequest criterios de filtrado vía query params.
// Todos opcionales; se combinan con AND.
type ListInvoicesRequest struct {
	Search        string `query:"search"`
	Status        string `query:"status"`
	ProviderID    string `query:"provider_id"`
	CostCenterID  string `query:"cost_center_id"`
	ProjectID     string `query:"project_id"`
	PaymentMethod string `query:"payment_method"`
	DateFrom      string `query:"date_from"` // YYYY-MM-DD, inclusivo
	DateTo        string `query:"date_to"`   // YYYY-MM-DD, inclusivo
}

// ── Responses ─────────────────────────────────────────────────────────────────

// InvoiceDTO factura anotada con su clasificación de urgencia.
type InvoiceDTO struct {
	ID             string          `json:"id"`
	Number         string          `json:"number"`
	IssueDate      string          `json:"issue_date"`
	DueDate        string          `json:"due_date"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"payment_method"`
	ProviderID     *string         `json:"provider_id"`
	ProviderName   string          `json:"provider_name,omitempty"`
	CostCenterID   *string         `json:"cost_center_id"`
	CostCenterName string          `json:"cost_center_name,omitempty"`
	ProjectID      *string         `json:"project_id"`
	Description    string          `json:"description"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Derivados por el clasificador; nunca persistidos.
	UrgencyTier  string `json:"urgency_tier"`
	DaysUntilDue int    `json:"days_until_due"`
	DaysOverdue  int    `json:"days_overdue,omitempty"`
}

// ListInvoicesResponse listado filtrado + conteo por nivel de urgencia.
type ListInvoicesResponse struct {
	Invoices    []InvoiceDTO   `json:"invoices"`
	Total       int            `json:"total"`
	CountByTier map[string]int `json:"count_by_tier"`
}
