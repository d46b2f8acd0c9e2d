// Package pdf genera el PDF de una fatura de renda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: "Fatura" + estado     │  N° + emisión + venc.      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ARRENDATARIO: Nombre + NIF + contacto                      │
//	│  INMUEBLE: Nombre + dirección                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Base / IVA (isento) / TOTAL                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de referencia + leyenda de exención M07         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/proman-api/internal/application/billing"
	"github.com/jhoicas/proman-api/internal/domain/entity"
	pkgsaft "github.com/jhoicas/proman-api/pkg/saft"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var statusLabels = map[string]string{
	entity.InvoiceStatusPending:   "PENDIENTE",
	entity.InvoiceStatusPaid:      "PAGADA",
	entity.InvoiceStatusOverdue:   "VENCIDA",
	entity.InvoiceStatusCancelled: "ANULADA",
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	tenant *entity.Tenant,
	property *entity.Property,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Fatura "+invoiceRef(invoice), true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRow(tenant))
	if property != nil {
		m.AddRows(propertyRow(property))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Tabla de líneas
	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(invoice)...)

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	// Footer
	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + estado (izq) y número + fechas (der).
func headerRow(invoice *entity.Invoice) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New("FATURA DE RENDA", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Estado: "+nonEmpty(statusLabels[invoice.Status], invoice.Status), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(invoiceRef(invoice), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Emisión: "+invoice.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Vencimiento: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// tenantRow: datos del arrendatario.
func tenantRow(tenant *entity.Tenant) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ARRENDATARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIF: %s   |   Email: %s   |   Tel: %s",
				nonEmpty(tenant.NIF, pkgsaft.ConsumidorFinalNIF),
				nonEmpty(tenant.Email, "—"),
				nonEmpty(tenant.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// propertyRow: inmueble arrendado.
func propertyRow(p *entity.Property) core.Row {
	addr := strings.TrimSpace(strings.Join([]string{p.Address, p.PostalCode, p.City}, " "))
	return row.New(12).Add(
		col.New(12).Add(
			text.New("INMUEBLE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s", p.Name, nonEmpty(addr, "—")),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

// tableDetailRows: una fila por línea; sin líneas, una única fila con el importe.
func tableDetailRows(invoice *entity.Invoice) []core.Row {
	items := invoice.LineItems
	if len(items) == 0 {
		desc := nonEmpty(invoice.Description, "Renda")
		items = []entity.LineItem{{
			Description: desc, Quantity: decimal.NewFromInt(1),
			UnitPrice: invoice.Amount, Total: invoice.Amount,
		}}
	}
	result := make([]core.Row, 0, len(items))
	for _, li := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				li.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				li.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(li.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(li.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. La renda habitacional está exenta de IVA.
func totalsRow(invoice *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Base:", 1),
			label("IVA ("+pkgsaft.TaxExemptionCodeResidentialRent+"):", 7),
			label("TOTAL:", 13),
		),
		col.New(4).Add(
			value(formatMoney(invoice.Amount), 1),
			value(formatMoney(decimal.Zero), 7),
			grand(formatMoney(invoice.Amount), 13),
		),
	)
}

// footerRows: QR con la referencia de la factura + leyenda de exención.
func footerRows(invoice *entity.Invoice) []core.Row {
	ref := fmt.Sprintf("%s|%s|%s|%s",
		invoiceRef(invoice), invoice.IssueDate.Format("2006-01-02"),
		invoice.Amount.StringFixed(2), invoice.TenantID)

	rows := []core.Row{
		row.New(35).Add(
			col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New(pkgsaft.TaxExemptionReasonResidentialRent+".", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
				}),
				text.New("Código de exención "+pkgsaft.TaxExemptionCodeResidentialRent+
					" (arrendamiento de inmueble para habitación).", props.Text{
					Size: 8, Top: 11, Left: 3, Color: colorGray,
				}),
			),
		),
	}
	if invoice.PaidDate != nil {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Pagada el "+invoice.PaidDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray,
			}),
		)))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func invoiceRef(invoice *entity.Invoice) string {
	return nonEmpty(invoice.Number, invoice.ID)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato portugués con puntos de miles, coma decimal y símbolo.
// Ej: 25000 → "25.000,00 €", -3.5 → "-3,50 €"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return sign + string(buf) + "," + frac + " €"
}
