// Package pdf implementa la representación imprimible de la factura de
// servicios logísticos del período.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + N° Factura + Período                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Cantidad | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
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

	appbilling "github.com/jhoicas/Bodega-api/internal/application/billing"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	inv *entity.Invoice,
	client *entity.Client,
	lines []*entity.InvoiceLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de servicios logísticos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv, client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range lines {
		m.AddRows(lineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(inv))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: cliente (izq) y número/período de la factura (der).
func headerRow(inv *entity.Invoice, client *entity.Client) core.Row {
	periodo := inv.PeriodStart.Format("02/01/2006") + " — " + inv.PeriodEnd.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Moneda: "+inv.Currency, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE SERVICIOS LOGÍSTICOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.ID, props.Text{
				Size: 7, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Período: "+periodo, props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de conceptos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// lineRow: una fila por tipo de evento agregado.
func lineRow(l *entity.InvoiceLine) core.Row {
	return row.New(7).Add(
		col.New(5).Add(text.New(
			conceptLabel(l.EventType),
			props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
		)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%d", l.Quantity),
			props.Text{Size: 8, Align: align.Right, Top: 1},
		)),
		col.New(2).Add(text.New(
			l.UnitPrice.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(3).Add(text.New(
			l.TotalPrice.StringFixed(2),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}

// totalsRow: subtotal, IVA y total a pagar.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top, Color: colorGray})
	}
	value := func(s string, top float64, bold bool) core.Component {
		st := fontstyle.Normal
		if bold {
			st = fontstyle.Bold
		}
		return text.New(s, props.Text{Size: 9, Align: align.Right, Top: top, Style: st, Right: 1})
	}
	return row.New(22).Add(
		col.New(9).Add(
			label("Subtotal:", 2),
			label("IVA:", 8),
			label("TOTAL:", 14),
		),
		col.New(3).Add(
			value(inv.Subtotal.StringFixed(2), 2, false),
			value(inv.TaxTotal.StringFixed(2), 8, false),
			value(inv.Total.StringFixed(2), 14, true),
		),
	)
}

// conceptLabel traduce el tipo de evento a un concepto legible.
func conceptLabel(eventType string) string {
	switch eventType {
	case entity.BillingStorageDay:
		return "Almacenaje (posición-día)"
	case entity.BillingInboundLine:
		return "Recepción (línea)"
	case entity.BillingDispatchOrder:
		return "Despacho (orden)"
	case entity.BillingPrintLabel:
		return "Impresión de etiquetas"
	}
	return eventType
}
