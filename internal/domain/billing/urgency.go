// Package billing implementa el motor de cartera: clasificación de urgencia
// de pago, filtrado multidimensional y agregación de estadísticas.
//
// Las tres operaciones son funciones puras y totales sobre un snapshot de
// facturas que entrega el caller: no tocan la base de datos, no mutan sus
// entradas y nunca fallan sobre entrada bien tipada. Son la implementación
// autoritativa que consumen por igual el servidor y cualquier cliente.
package billing

import (
	"time"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// Tier nivel de urgencia de pago de una factura, derivado de (días hasta el
// vencimiento, estado). Nunca se persiste.
type Tier string

const (
	TierCritical Tier = "CRITICAL" // vencida
	TierHigh     Tier = "HIGH"     // vence hoy o en <= 7 días
	TierMedium   Tier = "MEDIUM"   // vence en 8..15 días
	TierLow      Tier = "LOW"      // vence dentro del horizonte de monitoreo
	TierNone     Tier = "NONE"     // liquidada o fuera del horizonte
)

// AllTiers en orden de severidad descendente.
var AllTiers = []Tier{TierCritical, TierHigh, TierMedium, TierLow, TierNone}

// DefaultHorizonDays horizonte de monitoreo por defecto.
// Los cortes 7/15/horizonte provienen de los selectores de la aplicación de
// administración; el horizonte se deja configurable a propósito.
const DefaultHorizonDays = 30

// Classification resultado detallado de clasificar una factura.
type Classification struct {
	Tier         Tier
	DaysUntilDue int // negativo si está vencida
	DaysOverdue  int // -DaysUntilDue si está vencida; 0 en otro caso (solo para display)
}

// Classify devuelve el nivel de urgencia de la factura a la fecha de referencia.
// horizonDays <= 0 usa DefaultHorizonDays.
func Classify(inv entity.Invoice, asOf time.Time, horizonDays int) Tier {
	return ClassifyDetail(inv, asOf, horizonDays).Tier
}

// ClassifyDetail clasifica y además reporta los días hasta/desde el vencimiento.
//
// Reglas, en orden:
//   - estado terminal (PAID, REJECTED)  => NONE: una factura liquidada no urge
//   - vencida (días < 0)                => CRITICAL, sin importar la magnitud
//   - vence hoy o en <= 7 días          => HIGH
//   - 8..15 días                        => MEDIUM
//   - 16..horizonte                     => LOW
//   - más allá del horizonte            => NONE
func ClassifyDetail(inv entity.Invoice, asOf time.Time, horizonDays int) Classification {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	days := daysBetween(asOf, inv.DueDate)
	c := Classification{DaysUntilDue: days}

	if entity.IsTerminalStatus(inv.Status) {
		c.Tier = TierNone
		return c
	}

	switch {
	case days < 0:
		c.Tier = TierCritical
		c.DaysOverdue = -days
	case days <= 7:
		c.Tier = TierHigh
	case days <= 15:
		c.Tier = TierMedium
	case days <= horizonDays:
		c.Tier = TierLow
	default:
		c.Tier = TierNone
	}
	return c
}

// daysBetween días calendario entre from y to (to - from), ignorando la hora.
// Normaliza ambas fechas a medianoche en la zona de from para que una factura
// que vence "hoy" dé 0 sin importar la hora del día.
func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
