package billing

import (
	"strings"
	"time"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// Criteria criterios de filtrado de facturas. Valor inmutable: cada criterio
// es opcional e independiente; los presentes se combinan con AND lógico y un
// criterio ausente/vacío no impone restricción.
type Criteria struct {
	// Search subcadena case-insensitive contra número de factura, nombre del
	// proveedor o descripción (OR entre esos tres campos).
	Search        string
	Status        string
	ProviderID    string
	CostCenterID  string
	ProjectID     string
	PaymentMethod string
	// DateFrom/DateTo rango inclusivo sobre IssueDate.
	DateFrom *time.Time
	DateTo   *time.Time
}

// IsZero indica si ningún criterio está definido.
func (c Criteria) IsZero() bool {
	return c.Search == "" && c.Status == "" && c.ProviderID == "" &&
		c.CostCenterID == "" && c.ProjectID == "" && c.PaymentMethod == "" &&
		c.DateFrom == nil && c.DateTo == nil
}

// Merge combina dos criterios independientes (los campos de other pisan los
// vacíos de c). Útil para componer filtros: filter(filter(xs,a),b) == filter(xs, a.Merge(b)).
func (c Criteria) Merge(other Criteria) Criteria {
	out := c
	if other.Search != "" {
		out.Search = other.Search
	}
	if other.Status != "" {
		out.Status = other.Status
	}
	if other.ProviderID != "" {
		out.ProviderID = other.ProviderID
	}
	if other.CostCenterID != "" {
		out.CostCenterID = other.CostCenterID
	}
	if other.ProjectID != "" {
		out.ProjectID = other.ProjectID
	}
	if other.PaymentMethod != "" {
		out.PaymentMethod = other.PaymentMethod
	}
	if other.DateFrom != nil {
		out.DateFrom = other.DateFrom
	}
	if other.DateTo != nil {
		out.DateTo = other.DateTo
	}
	return out
}

// Filter devuelve las facturas que cumplen todos los criterios presentes.
// Filtro estable: conserva el orden relativo del slice de entrada y nunca lo
// muta. Sobre un slice vacío devuelve un slice vacío, nunca error.
func Filter(invoices []entity.Invoice, c Criteria) []entity.Invoice {
	if c.IsZero() {
		// Ley de identidad: sin criterios, la entrada se devuelve intacta
		// (copiada para no compartir el backing array con el caller).
		out := make([]entity.Invoice, len(invoices))
		copy(out, invoices)
		return out
	}

	out := make([]entity.Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if Matches(inv, c) {
			out = append(out, inv)
		}
	}
	return out
}

// Matches evalúa una factura contra los criterios.
func Matches(inv entity.Invoice, c Criteria) bool {
	if c.Search != "" && !matchesSearch(inv, c.Search) {
		return false
	}
	if c.Status != "" && inv.Status != c.Status {
		return false
	}
	if c.ProviderID != "" && (inv.ProviderID == nil || *inv.ProviderID != c.ProviderID) {
		return false
	}
	if c.CostCenterID != "" && (inv.CostCenterID == nil || *inv.CostCenterID != c.CostCenterID) {
		return false
	}
	if c.ProjectID != "" && (inv.ProjectID == nil || *inv.ProjectID != c.ProjectID) {
		return false
	}
	if c.PaymentMethod != "" && inv.PaymentMethod != c.PaymentMethod {
		return false
	}
	if c.DateFrom != nil && issueDateOnly(inv).Before(dateOnly(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && issueDateOnly(inv).After(dateOnly(*c.DateTo)) {
		return false
	}
	return true
}

func matchesSearch(inv entity.Invoice, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(inv.Number), needle) ||
		strings.Contains(strings.ToLower(inv.ProviderName), needle) ||
		strings.Contains(strings.ToLower(inv.Description), needle)
}

func issueDateOnly(inv entity.Invoice) time.Time {
	return dateOnly(inv.IssueDate)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
