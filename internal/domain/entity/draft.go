package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del borrador de factura producido por la ingesta de documentos.
//
//	UPLOADED → EXTRACTING → EXTRACTED | FAILED → COMMITTED | DISCARDED
//
// Desde FAILED se puede reintentar la extracción (vuelve a EXTRACTING) porque
// el archivo subido se conserva en el object store.
const (
	DraftUploaded   = "UPLOADED"
	DraftExtracting = "EXTRACTING"
	DraftExtracted  = "EXTRACTED"
	DraftFailed     = "FAILED"
	DraftCommitted  = "COMMITTED"
	DraftDiscarded  = "DISCARDED"
)

// DraftInvoice borrador sin confirmar producido por la extracción de un documento.
//
// Los campos extraídos son opcionales: el extractor solo puebla lo que
// reconoció con confianza suficiente; lo demás queda en blanco para captura
// manual. El borrador nunca inventa valores.
type DraftInvoice struct {
	ID     string
	Status string

	// Archivo original (se conserva también tras un fallo de extracción).
	FileName string
	MimeType string
	FileSize int64
	FileKey  string // clave en el object store

	FailureReason string // motivo normalizado del último fallo; vacío si no hay

	// Campos candidatos extraídos del documento.
	Number        string
	IssueDate     *time.Time
	DueDate       *time.Time
	TotalAmount   *decimal.Decimal
	PaymentMethod string
	Description   string
	ProviderTaxID string  // identificador de la contraparte según el documento
	ProviderID    *string // resuelto si ProviderTaxID coincide con un proveedor registrado

	CreatedAt time.Time
	UpdatedAt time.Time
}
