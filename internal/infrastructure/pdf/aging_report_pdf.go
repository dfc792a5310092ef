// Package pdf implementa la generación del reporte de antigüedad de cartera.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + fecha de corte                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: total facturas / monto total / conteo por urgencia │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOP PROVEEDORES: ranking por monto                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: facturas CRITICAL y HIGH con días vencidos         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/soltec-andina/facturacion-api/internal/application/billing"
	domainbilling "github.com/soltec-andina/facturacion-api/internal/domain/billing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ appbilling.AgingReportRenderer = (*AgingReportRenderer)(nil)

// AgingReportRenderer implementa billing.AgingReportRenderer usando Maroto v2.
type AgingReportRenderer struct{}

// NewAgingReportRenderer construye el renderer.
func NewAgingReportRenderer() *AgingReportRenderer { return &AgingReportRenderer{} }

// RenderAgingReport genera el PDF y devuelve sus bytes.
func (r *AgingReportRenderer) RenderAgingReport(_ context.Context, data *appbilling.AgingReportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Antigüedad de Cartera", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(data))
	m.AddRows(tierRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	if len(data.TopProviders) > 0 {
		m.AddRows(sectionTitleRow("Principales proveedores por monto"))
		m.AddRows(providerHeaderRow())
		for _, rk := range data.TopProviders {
			m.AddRows(providerRow(rk))
		}
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	}

	if len(data.Attention) > 0 {
		m.AddRows(sectionTitleRow("Facturas que requieren gestión inmediata"))
		m.AddRows(attentionHeaderRow())
		for _, a := range data.Attention {
			m.AddRows(attentionRow(a))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(data *appbilling.AgingReportData) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("ANTIGÜEDAD DE CARTERA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Corte: "+data.AsOf.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func summaryRow(data *appbilling.AgingReportData) core.Row {
	return row.New(10).Add(
		col.New(6).Add(
			text.New(fmt.Sprintf("Facturas: %d", data.TotalCount), props.Text{Size: 10, Top: 2}),
		),
		col.New(6).Add(
			text.New("Monto total: $"+data.TotalAmount.StringFixed(2), props.Text{
				Size: 10, Top: 2, Align: align.Right, Style: fontstyle.Bold,
			}),
		),
	)
}

// tierRow: conteo por nivel de urgencia, siempre los cinco niveles.
func tierRow(data *appbilling.AgingReportData) core.Row {
	cols := make([]core.Col, 0, len(domainbilling.AllTiers))
	for _, tier := range domainbilling.AllTiers {
		clr := colorGray
		if tier == domainbilling.TierCritical {
			clr = colorDanger
		}
		cols = append(cols, col.New(12/len(domainbilling.AllTiers)).Add(
			text.New(fmt.Sprintf("%s: %d", tier, data.CountByTier[tier]), props.Text{
				Size: 8, Top: 1, Color: clr,
			}),
		))
	}
	return row.New(8).Add(cols...)
}

func sectionTitleRow(title string) core.Row {
	return row.New(9).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 2}),
	))
}

func providerHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New("Proveedor", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("Facturas", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("Monto", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("%", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func providerRow(rk domainbilling.EntityRanking) core.Row {
	name := rk.EntityName
	if name == "" {
		name = "(sin proveedor)"
	}
	return row.New(5).Add(
		col.New(6).Add(text.New(name, props.Text{Size: 8})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", rk.InvoiceCount), props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New("$"+rk.TotalAmount.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		col.New(2).Add(text.New(rk.Percentage.StringFixed(2)+"%", props.Text{Size: 8, Align: align.Right})),
	)
}

func attentionHeaderRow() core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New("Factura", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(4).Add(text.New("Proveedor", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("Vence", props.Text{Style: fontstyle.Bold, Size: 8})),
		col.New(2).Add(text.New("Monto", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
		col.New(1).Add(text.New("Días", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right})),
	)
}

func attentionRow(a appbilling.AttentionLine) core.Row {
	clr := colorGray
	days := fmt.Sprintf("%d", a.Detail.DaysUntilDue)
	if a.Detail.Tier == domainbilling.TierCritical {
		clr = colorDanger
		days = fmt.Sprintf("-%d", a.Detail.DaysOverdue)
	}
	return row.New(5).Add(
		col.New(3).Add(text.New(a.Invoice.Number, props.Text{Size: 8})),
		col.New(4).Add(text.New(a.Invoice.ProviderName, props.Text{Size: 8})),
		col.New(2).Add(text.New(a.Invoice.DueDate.Format("02/01/2006"), props.Text{Size: 8})),
		col.New(2).Add(text.New("$"+a.Invoice.TotalAmount.StringFixed(2), props.Text{Size: 8, Align: align.Right})),
		col.New(1).Add(text.New(days, props.Text{Size: 8, Align: align.Right, Color: clr})),
	)
}
