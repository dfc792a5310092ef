package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// conjunto fijo de facturas para los tests de filtrado.
func facturasDePrueba() []entity.Invoice {
	return []entity.Invoice{
		{
			ID: "i1", Number: "FV-1001", Status: entity.StatusPending,
			IssueDate: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(500), PaymentMethod: "Transferencia",
			ProviderID: strPtr("prov-a"), ProviderName: "Paneles del Cauca",
			CostCenterID: strPtr("cc-1"), ProjectID: strPtr("py-1"),
			Description: "Paneles 450W",
		},
		{
			ID: "i2", Number: "FV-1002", Status: entity.StatusApproved,
			IssueDate: time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, time.February, 20, 0, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(800), PaymentMethod: "Cheque",
			ProviderID: strPtr("prov-b"), ProviderName: "Inversores Andinos",
			CostCenterID: strPtr("cc-2"), ProjectID: strPtr("py-1"),
			Description: "Inversor híbrido",
		},
		{
			ID: "i3", Number: "FV-1003", Status: entity.StatusPending,
			IssueDate: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
			DueDate:   time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
			TotalAmount: decimal.NewFromInt(300), PaymentMethod: "Transferencia",
			ProviderID: strPtr("prov-a"), ProviderName: "Paneles del Cauca",
			// sin centro de costos ni proyecto asignados todavía
			Description: "Estructura de montaje",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Ley de identidad y estabilidad
// ──────────────────────────────────────────────────────────────────────────────

// Sin criterios, el filtro devuelve la entrada sin cambios en contenido y orden.
func TestFilter_SinCriteriosEsIdentidad(t *testing.T) {
	xs := facturasDePrueba()
	got := billing.Filter(xs, billing.Criteria{})
	require.Equal(t, xs, got)
}

// El filtro no muta la entrada y conserva el orden relativo de las coincidencias.
func TestFilter_EstableYNoMuta(t *testing.T) {
	xs := facturasDePrueba()
	original := facturasDePrueba()

	got := billing.Filter(xs, billing.Criteria{Status: entity.StatusPending})
	assert.Equal(t, original, xs, "la entrada no debe mutar")
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ID)
	assert.Equal(t, "i3", got[1].ID)
}

func TestFilter_ConjuntoVacio(t *testing.T) {
	got := billing.Filter(nil, billing.Criteria{Status: entity.StatusPaid})
	assert.Empty(t, got)
	got = billing.Filter([]entity.Invoice{}, billing.Criteria{})
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Criterios individuales
// ──────────────────────────────────────────────────────────────────────────────

// Search es case-insensitive y aplica OR sobre número, proveedor y descripción.
func TestFilter_SearchORSobreTresCampos(t *testing.T) {
	xs := facturasDePrueba()

	porNumero := billing.Filter(xs, billing.Criteria{Search: "fv-1002"})
	require.Len(t, porNumero, 1)
	assert.Equal(t, "i2", porNumero[0].ID)

	porProveedor := billing.Filter(xs, billing.Criteria{Search: "CAUCA"})
	require.Len(t, porProveedor, 2)

	porDescripcion := billing.Filter(xs, billing.Criteria{Search: "inversor"})
	require.Len(t, porDescripcion, 1)
	assert.Equal(t, "i2", porDescripcion[0].ID)
}

// Una referencia ausente (nil) nunca coincide con un filtro por esa referencia.
func TestFilter_ReferenciaNulaNoCoincide(t *testing.T) {
	xs := facturasDePrueba()
	got := billing.Filter(xs, billing.Criteria{CostCenterID: "cc-1"})
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].ID) // i3 no tiene centro de costos
}

// Rango de fechas inclusivo en ambos extremos, sobre IssueDate.
func TestFilter_RangoFechasInclusivo(t *testing.T) {
	xs := facturasDePrueba()
	got := billing.Filter(xs, billing.Criteria{
		DateFrom: datePtr(2026, time.January, 10),
		DateTo:   datePtr(2026, time.January, 20),
	})
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ID)
	assert.Equal(t, "i2", got[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Composición AND
// ──────────────────────────────────────────────────────────────────────────────

// filter(filter(xs,a),b) == filter(xs, a.Merge(b)) para criterios independientes.
func TestFilter_ComposicionAND(t *testing.T) {
	xs := facturasDePrueba()
	a := billing.Criteria{Status: entity.StatusPending}
	b := billing.Criteria{PaymentMethod: "Transferencia", ProviderID: "prov-a"}

	encadenado := billing.Filter(billing.Filter(xs, a), b)
	combinado := billing.Filter(xs, a.Merge(b))
	assert.Equal(t, combinado, encadenado)
	require.Len(t, encadenado, 2)
}
