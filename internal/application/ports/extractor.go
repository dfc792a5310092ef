package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExtractedFields mapa parcial de campos candidatos extraídos de un documento.
// Un campo ausente (cero/nil) significa que el extractor no lo determinó con
// confianza; el pipeline nunca lo inventa.
type ExtractedFields struct {
	Number           string
	IssueDate        *time.Time
	DueDate          *time.Time
	TotalAmount      *decimal.Decimal
	PaymentMethod    string
	Description      string
	CounterpartTaxID string // NIT de la contraparte según el documento

	// Confidence confianza 0..1 por campo, con las claves del proveedor de
	// extracción (ej. "invoice_id", "total_amount", "supplier_tax_id").
	Confidence map[string]float64
}

// DocumentExtractor colaborador externo de extracción (OCR/datos estructurados).
// El core no lo implementa: solo su contrato de entrada (bytes + mime type) y
// salida. Los fallos deben venir como *domain.ExtractionError con el motivo
// normalizado; el respeto del deadline del ctx es obligatorio.
type DocumentExtractor interface {
	Extract(ctx context.Context, content []byte, mimeType string) (*ExtractedFields, error)
}
