package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/soltec-andina/facturacion-api/internal/domain/billing"
	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

// refDate fecha de referencia fija para todos los tests: 15 de marzo de 2026.
var refDate = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

// facturaConVencimiento construye una factura PENDING que vence en offsetDays
// días relativos a refDate (negativo = vencida).
func facturaConVencimiento(offsetDays int, status string) entity.Invoice {
	due := refDate.AddDate(0, 0, offsetDays)
	return entity.Invoice{
		ID:          "inv-test",
		Number:      "FV-001",
		IssueDate:   refDate.AddDate(0, 0, -30),
		DueDate:     due,
		TotalAmount: decimal.NewFromInt(1000),
		Status:      status,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Estados terminales
// ──────────────────────────────────────────────────────────────────────────────

// Una factura liquidada nunca urge, sin importar qué tan vencida esté.
func TestClassify_EstadosTerminalesSiempreNone(t *testing.T) {
	for _, status := range []string{entity.StatusPaid, entity.StatusRejected} {
		for _, offset := range []int{-365, -1, 0, 7, 100} {
			inv := facturaConVencimiento(offset, status)
			tier := billing.Classify(inv, refDate, 0)
			assert.Equal(t, billing.TierNone, tier,
				"status=%s offset=%d debe ser NONE", status, offset)
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cortes por días hasta el vencimiento
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_VencidaSiempreCritical(t *testing.T) {
	for _, offset := range []int{-1, -15, -400} {
		inv := facturaConVencimiento(offset, entity.StatusPending)
		c := billing.ClassifyDetail(inv, refDate, 0)
		assert.Equal(t, billing.TierCritical, c.Tier, "offset=%d", offset)
		assert.Equal(t, -offset, c.DaysOverdue, "días de mora offset=%d", offset)
	}
}

// Frontera clave: vence hoy (0 días restantes) es HIGH, no CRITICAL.
func TestClassify_VenceHoyEsHigh(t *testing.T) {
	inv := facturaConVencimiento(0, entity.StatusApproved)
	c := billing.ClassifyDetail(inv, refDate, 0)
	assert.Equal(t, billing.TierHigh, c.Tier)
	assert.Equal(t, 0, c.DaysUntilDue)
	assert.Equal(t, 0, c.DaysOverdue)
}

// La hora del día no altera la cuenta de días calendario: una factura que
// vence hoy a las 00:00 sigue siendo "hoy" aunque se consulte a las 23:59.
func TestClassify_IgnoraHoraDelDia(t *testing.T) {
	inv := facturaConVencimiento(0, entity.StatusPending)
	inv.DueDate = time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	tarde := time.Date(2026, time.March, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, billing.TierHigh, billing.Classify(inv, tarde, 0))
}

func TestClassify_FronterasHighMediumLow(t *testing.T) {
	cases := []struct {
		offset int
		want   billing.Tier
	}{
		{1, billing.TierHigh},
		{7, billing.TierHigh},   // último día HIGH
		{8, billing.TierMedium}, // primer día MEDIUM
		{15, billing.TierMedium},
		{16, billing.TierLow},
		{30, billing.TierLow}, // horizonte por defecto
		{31, billing.TierNone},
	}
	for _, tc := range cases {
		inv := facturaConVencimiento(tc.offset, entity.StatusPending)
		assert.Equal(t, tc.want, billing.Classify(inv, refDate, 0),
			"offset=%d", tc.offset)
	}
}

// El horizonte es configurable: con 60 días, el día 45 es LOW y el 61 NONE.
func TestClassify_HorizonteConfigurable(t *testing.T) {
	inv45 := facturaConVencimiento(45, entity.StatusPending)
	inv61 := facturaConVencimiento(61, entity.StatusPending)
	assert.Equal(t, billing.TierLow, billing.Classify(inv45, refDate, 60))
	assert.Equal(t, billing.TierNone, billing.Classify(inv61, refDate, 60))
	// horizonte <= 0 cae al default de 30
	assert.Equal(t, billing.TierNone, billing.Classify(inv45, refDate, -1))
}
