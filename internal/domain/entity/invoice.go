package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una factura de proveedor.
const (
	StatusPending  = "PENDING"  // Registrada, pendiente de aprobación
	StatusApproved = "APPROVED" // Aprobada para pago
	StatusPaid     = "PAID"     // Pagada (terminal)
	StatusRejected = "REJECTED" // Rechazada (terminal)
)

// AllStatuses en orden canónico; los agregados por estado se rellenan con cero
// para cada uno aunque no haya facturas.
var AllStatuses = []string{StatusPending, StatusApproved, StatusPaid, StatusRejected}

// IsValidStatus verifica que s sea un estado conocido.
func IsValidStatus(s string) bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// IsTerminalStatus indica si el estado es terminal (PAID o REJECTED).
// Una factura en estado terminal no genera urgencia de pago ni admite transiciones.
func IsTerminalStatus(s string) bool {
	return s == StatusPaid || s == StatusRejected
}

// Invoice representa una factura de proveedor (cuenta por pagar).
//
// ProviderID, CostCenterID y ProjectID son referencias débiles: la factura no
// es dueña de esas entidades y pueden estar ausentes mientras se asignan.
// ProviderName y CostCenterName son campos de lectura poblados por el join del
// repositorio; no se persisten en la tabla invoices.
type Invoice struct {
	ID            string
	Number        string // único; inmutable después de la creación
	IssueDate     time.Time
	DueDate       time.Time // invariante: DueDate >= IssueDate
	TotalAmount   decimal.Decimal
	Status        string
	PaymentMethod string // texto libre: Transferencia, Efectivo, Cheque...
	ProviderID    *string
	CostCenterID  *string
	ProjectID     *string
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	ProviderName   string
	CostCenterName string
}
