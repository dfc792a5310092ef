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

// ──────────────────────────────────────────────────────────────────────────────
// Conjunto vacío
// ──────────────────────────────────────────────────────────────────────────────

// Estadística cero sin división por cero, con los cuatro estados presentes.
func TestAggregate_ConjuntoVacio(t *testing.T) {
	s := billing.Aggregate(nil)

	assert.Equal(t, 0, s.TotalCount)
	assert.True(t, s.TotalAmount.IsZero())
	assert.True(t, s.AverageInvoiceAmount.IsZero())
	require.Len(t, s.CountByStatus, 4)
	for _, st := range entity.AllStatuses {
		assert.Equal(t, 0, s.CountByStatus[st], "estado %s", st)
	}
	assert.Empty(t, s.TopEntities(billing.DimensionProvider, 5))
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario del enunciado: 100 + 200 + 300, todas PENDING
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_EscenarioTresPendientes(t *testing.T) {
	xs := []entity.Invoice{
		{ID: "a", Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(100)},
		{ID: "b", Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(200)},
		{ID: "c", Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(300)},
	}
	s := billing.Aggregate(xs)

	assert.Equal(t, 3, s.TotalCount)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(600)), "total=%s", s.TotalAmount)
	assert.True(t, s.AverageInvoiceAmount.Equal(decimal.NewFromInt(200)), "promedio=%s", s.AverageInvoiceAmount)
	assert.Equal(t, 3, s.CountByStatus[entity.StatusPending])
	assert.Equal(t, 0, s.CountByStatus[entity.StatusApproved])
	assert.Equal(t, 0, s.CountByStatus[entity.StatusPaid])
	assert.Equal(t, 0, s.CountByStatus[entity.StatusRejected])
}

// La suma de los conteos por estado siempre iguala el conteo total.
func TestAggregate_ConteosPorEstadoSuman(t *testing.T) {
	xs := []entity.Invoice{
		{Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(10)},
		{Status: entity.StatusPaid, TotalAmount: decimal.NewFromInt(20)},
		{Status: entity.StatusPaid, TotalAmount: decimal.NewFromInt(30)},
		{Status: entity.StatusRejected, TotalAmount: decimal.NewFromInt(5)},
	}
	s := billing.Aggregate(xs)

	suma := 0
	for _, c := range s.CountByStatus {
		suma += c
	}
	assert.Equal(t, s.TotalCount, suma)
}

// ──────────────────────────────────────────────────────────────────────────────
// Top de entidades
// ──────────────────────────────────────────────────────────────────────────────

func facturasConProveedores() []entity.Invoice {
	return []entity.Invoice{
		{Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(400),
			ProviderID: strPtr("prov-b"), ProviderName: "Inversores Andinos"},
		{Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(300),
			ProviderID: strPtr("prov-a"), ProviderName: "Paneles del Cauca"},
		{Status: entity.StatusPaid, TotalAmount: decimal.NewFromInt(100),
			ProviderID: strPtr("prov-a"), ProviderName: "Paneles del Cauca"},
		{Status: entity.StatusApproved, TotalAmount: decimal.NewFromInt(200),
			ProviderID: strPtr("prov-c"), ProviderName: "Cables SAS"},
		// sin proveedor: cuenta en totales pero no en el ranking
		{Status: entity.StatusPending, TotalAmount: decimal.NewFromInt(50)},
	}
}

func TestTopEntities_OrdenYPorcentajes(t *testing.T) {
	s := billing.Aggregate(facturasConProveedores())
	top := s.TopEntities(billing.DimensionProvider, 10)
	require.Len(t, top, 3)

	// prov-a y prov-b empatan en 400: desempate por ID ascendente.
	assert.Equal(t, "prov-a", top[0].EntityID)
	assert.Equal(t, 2, top[0].InvoiceCount)
	assert.Equal(t, "prov-b", top[1].EntityID)
	assert.Equal(t, "prov-c", top[2].EntityID)

	// Porcentajes no crecientes y con suma <= 100.
	sumaPct := decimal.Zero
	for i, r := range top {
		if i > 0 {
			assert.True(t, r.Percentage.LessThanOrEqual(top[i-1].Percentage),
				"porcentaje no creciente en posición %d", i)
		}
		sumaPct = sumaPct.Add(r.Percentage)
	}
	assert.True(t, sumaPct.LessThanOrEqual(decimal.NewFromInt(100)), "suma=%s", sumaPct)

	// total general 1050; prov-a tiene 400 => 38.10%
	assert.True(t, top[0].Percentage.Equal(decimal.NewFromFloat(38.10)),
		"pct prov-a=%s", top[0].Percentage)
}

func TestTopEntities_LimiteYDimensionDesconocida(t *testing.T) {
	s := billing.Aggregate(facturasConProveedores())

	top1 := s.TopEntities(billing.DimensionProvider, 1)
	require.Len(t, top1, 1)
	assert.Equal(t, "prov-a", top1[0].EntityID)

	assert.Nil(t, s.TopEntities(billing.Dimension("warehouse"), 5))
	assert.Empty(t, s.TopEntities(billing.DimensionCostCenter, 5))
}

// ──────────────────────────────────────────────────────────────────────────────
// Conteo por nivel de urgencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCountByTier_TodosLosNivelesPresentes(t *testing.T) {
	asOf := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	xs := []entity.Invoice{
		{Status: entity.StatusPending, DueDate: asOf.AddDate(0, 0, -3)}, // CRITICAL
		{Status: entity.StatusPending, DueDate: asOf},                   // HIGH
		{Status: entity.StatusPaid, DueDate: asOf.AddDate(0, 0, -3)},    // NONE
	}
	counts := billing.CountByTier(xs, asOf, 0)

	require.Len(t, counts, 5)
	assert.Equal(t, 1, counts[billing.TierCritical])
	assert.Equal(t, 1, counts[billing.TierHigh])
	assert.Equal(t, 0, counts[billing.TierMedium])
	assert.Equal(t, 0, counts[billing.TierLow])
	assert.Equal(t, 1, counts[billing.TierNone])
}
