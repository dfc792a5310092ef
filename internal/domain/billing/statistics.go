package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/soltec-andina/facturacion-api/internal/domain/entity"
)

// Dimension dimensión de agrupación para el ranking de entidades.
type Dimension string

const (
	DimensionProvider   Dimension = "provider"
	DimensionCostCenter Dimension = "costCenter"
)

// EntityRanking una entrada del ranking de entidades por monto facturado.
type EntityRanking struct {
	EntityID     string
	EntityName   string
	InvoiceCount int
	TotalAmount  decimal.Decimal
	// Percentage participación sobre el total del conjunto, 0..100 con 2
	// decimales; 0 cuando el total general es 0.
	Percentage decimal.Decimal
}

// Statistics vista derivada del conjunto de facturas. Se recalcula completa en
// cada llamada a Aggregate; nunca es un caché mutable que pueda desincronizarse
// del store.
type Statistics struct {
	TotalCount  int
	TotalAmount decimal.Decimal
	// CountByStatus con los cuatro estados siempre presentes, en cero si no
	// hay facturas en ese estado.
	CountByStatus map[string]int
	// AverageInvoiceAmount = TotalAmount / TotalCount; 0 si el conjunto está vacío.
	AverageInvoiceAmount decimal.Decimal

	byProvider   map[string]*entityAccum
	byCostCenter map[string]*entityAccum
}

type entityAccum struct {
	name   string
	count  int
	amount decimal.Decimal
}

// Aggregate calcula las estadísticas del conjunto de facturas recibido.
// Función pura: no muta la entrada y es total (un slice vacío produce la
// estadística cero, sin división por cero).
func Aggregate(invoices []entity.Invoice) Statistics {
	s := Statistics{
		TotalAmount:          decimal.Zero,
		AverageInvoiceAmount: decimal.Zero,
		CountByStatus:        make(map[string]int, len(entity.AllStatuses)),
		byProvider:           make(map[string]*entityAccum),
		byCostCenter:         make(map[string]*entityAccum),
	}
	for _, st := range entity.AllStatuses {
		s.CountByStatus[st] = 0
	}

	for _, inv := range invoices {
		s.TotalCount++
		s.TotalAmount = s.TotalAmount.Add(inv.TotalAmount)
		s.CountByStatus[inv.Status]++

		if inv.ProviderID != nil {
			accumulate(s.byProvider, *inv.ProviderID, inv.ProviderName, inv.TotalAmount)
		}
		if inv.CostCenterID != nil {
			accumulate(s.byCostCenter, *inv.CostCenterID, inv.CostCenterName, inv.TotalAmount)
		}
	}

	if s.TotalCount > 0 {
		s.AverageInvoiceAmount = s.TotalAmount.Div(decimal.NewFromInt(int64(s.TotalCount))).Round(2)
	}
	return s
}

func accumulate(m map[string]*entityAccum, id, name string, amount decimal.Decimal) {
	a, ok := m[id]
	if !ok {
		a = &entityAccum{name: name, amount: decimal.Zero}
		m[id] = a
	}
	if a.name == "" {
		a.name = name
	}
	a.count++
	a.amount = a.amount.Add(amount)
}

// TopEntities devuelve hasta n entidades de la dimensión indicada, ordenadas
// por monto facturado descendente. Empates se desempatan por ID ascendente
// para que la salida sea determinista. Una dimensión desconocida devuelve nil.
func (s Statistics) TopEntities(dim Dimension, n int) []EntityRanking {
	var m map[string]*entityAccum
	switch dim {
	case DimensionProvider:
		m = s.byProvider
	case DimensionCostCenter:
		m = s.byCostCenter
	default:
		return nil
	}
	if n <= 0 || len(m) == 0 {
		return []EntityRanking{}
	}

	ranking := make([]EntityRanking, 0, len(m))
	for id, a := range m {
		r := EntityRanking{
			EntityID:     id,
			EntityName:   a.name,
			InvoiceCount: a.count,
			TotalAmount:  a.amount,
			Percentage:   decimal.Zero,
		}
		if s.TotalAmount.IsPositive() {
			r.Percentage = a.amount.Div(s.TotalAmount).Mul(decimal.NewFromInt(100)).Round(2)
		}
		ranking = append(ranking, r)
	}

	sort.Slice(ranking, func(i, j int) bool {
		cmp := ranking[i].TotalAmount.Cmp(ranking[j].TotalAmount)
		if cmp != 0 {
			return cmp > 0
		}
		return ranking[i].EntityID < ranking[j].EntityID
	})

	if n < len(ranking) {
		ranking = ranking[:n]
	}
	return ranking
}

// CountByTier clasifica cada factura y cuenta por nivel de urgencia.
// Todos los niveles aparecen en el mapa, en cero si no aplica.
func CountByTier(invoices []entity.Invoice, asOf time.Time, horizonDays int) map[Tier]int {
	out := make(map[Tier]int, len(AllTiers))
	for _, t := range AllTiers {
		out[t] = 0
	}
	for _, inv := range invoices {
		out[Classify(inv, asOf, horizonDays)]++
	}
	return out
}
