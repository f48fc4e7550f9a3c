// Package pdf implementa la representación gráfica (PDF) de una factura de
// cobranza para imprimir o enviar al cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la empresa + CNPJ  │  Estado + Fecha      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURA: Descripción / Vencimiento / Monto                  │
//	│  NOTAS                                                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: Leyenda + fecha de pago si aplica                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"

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

	"github.com/jhoicas/Cobranza-api/internal/application/ports"
	"github.com/jhoicas/Cobranza-api/internal/domain/entity"
)

// Asegura que MarotoPDFGenerator implementa ports.InvoicePDFGenerator.
var _ ports.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorDefault = &props.Color{Red: 59, Green: 130, Blue: 246} // entity.DefaultPrimaryColor
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 22, Green: 130, Blue: 60}
	colorRed     = &props.Color{Red: 190, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateReceipt genera el PDF de la factura y devuelve sus bytes. El color
// del encabezado sale del primary_color de la empresa.
func (g *MarotoPDFGenerator) GenerateReceipt(company *entity.Company, invoice *entity.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura de Cobranza", true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)
	primary := parseHexColor(company.PrimaryColor)

	m.AddRows(headerRow(invoice, company, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(emisorRow(company, primary))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	m.AddRows(detailRows(invoice, primary)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + CNPJ (izq) y estado de pago + vencimiento (der).
func headerRow(invoice *entity.Invoice, company *entity.Company, primary *props.Color) core.Row {
	estado, estadoColor := paymentStatus(invoice)
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: primary, Top: 1,
			}),
			text.New("CNPJ: "+company.CNPJ, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE COBRANZA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: primary, Top: 1,
			}),
			text.New(estado, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
				Color: estadoColor,
			}),
			text.New("Vence: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emisorRow: datos de contacto de la empresa emisora.
func emisorRow(company *entity.Company, primary *props.Color) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DEL EMISOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: primary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(company.Address, "—"),
				nonEmpty(company.Phone, "—"),
				nonEmpty(company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// detailRows: descripción, monto destacado y notas.
func detailRows(invoice *entity.Invoice, primary *props.Color) []core.Row {
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("DETALLE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: primary, Top: 1,
			}),
			text.New(invoice.Description, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 7,
			}),
		)),
		row.New(14).Add(
			col.New(6).Add(
				text.New("Monto a pagar:", props.Text{
					Style: fontstyle.Bold, Size: 10, Top: 3,
				}),
			),
			col.New(6).Add(
				text.New("R$ "+formatMoney(invoice.Amount.StringFixed(2)), props.Text{
					Style: fontstyle.Bold, Size: 14, Align: align.Right,
					Color: primary, Top: 2,
				}),
			),
		),
	}
	if invoice.Notes != "" {
		rows = append(rows, row.New(10).Add(col.New(12).Add(
			text.New("Notas: "+invoice.Notes, props.Text{
				Size: 8, Color: colorGray, Top: 2,
			}),
		)))
	}
	return rows
}

// footerRows: fecha de pago si la hay + leyenda.
func footerRows(invoice *entity.Invoice) []core.Row {
	var rows []core.Row
	if invoice.IsPaid && invoice.PaidAt != nil {
		rows = append(rows, row.New(7).Add(col.New(12).Add(
			text.New("Pagada el "+invoice.PaidAt.Format("02/01/2006 15:04"), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorGreen, Top: 1,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Documento generado el "+time.Now().Format("02/01/2006")+
				". Conserve este comprobante como soporte de su cobranza.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paymentStatus(invoice *entity.Invoice) (string, *props.Color) {
	switch {
	case invoice.IsPaid:
		return "PAGADA", colorGreen
	case invoice.Overdue(time.Now()):
		return "VENCIDA", colorRed
	default:
		return "PENDIENTE", colorGray
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// parseHexColor convierte "#RRGGBB" al color de maroto; si el valor no es un
// hex válido cae al color por defecto.
func parseHexColor(hex string) *props.Color {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 {
		return colorDefault
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return colorDefault
	}
	return &props.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}
}

// formatMoney convierte "1234.56" a "1.234,56" (formato brasileño).
func formatMoney(s string) string {
	intPart, decPart, _ := strings.Cut(s, ".")
	n := len(intPart)
	if n > 3 {
		buf := make([]byte, 0, n+n/3)
		for i, c := range []byte(intPart) {
			if i > 0 && (n-i)%3 == 0 {
				buf = append(buf, '.')
			}
			buf = append(buf, c)
		}
		intPart = string(buf)
	}
	if decPart == "" {
		return intPart
	}
	return intPart + "," + decPart
}
