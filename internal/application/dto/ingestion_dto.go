package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UploadDocumentRequest documento subido para ingesta.
type UploadDocumentRequest struct {
	FileName string
	MimeType string
	Content  []byte
}

// CommitDraftRequest confirmación de un borrador. Proyecto y centro de costos
// son obligatorios: no se derivan del documento y los aporta el operador.
type CommitDraftRequest struct {
	ProjectID    string `json:"project_id"`
	CostCenterID string `json:"cost_center_id"`
	// Overrides opcionales del operador sobre lo extraído.
	Number        string           `json:"number"`
	IssueDate     string           `json:"issue_date"` // YYYY-MM-DD
	DueDate       string           `json:"due_date"`
	TotalAmount   *decimal.Decimal `json:"total_amount"`
	PaymentMethod string           `json:"payment_method"`
	Description   string           `json:"description"`
	ProviderID    *string          `json:"provider_id"`
}

// DraftDTO borrador de factura en revisión.
type DraftDTO struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	FileName      string           `json:"file_name"`
	MimeType      string           `json:"mime_type"`
	FileSize      int64            `json:"file_size"`
	FailureReason string           `json:"failure_reason,omitempty"`
	Number        string           `json:"number,omitempty"`
	IssueDate     *time.Time       `json:"issue_date,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	Description   string           `json:"description,omitempty"`
	ProviderTaxID string           `json:"provider_tax_id,omitempty"`
	ProviderID    *string          `json:"provider_id,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}
