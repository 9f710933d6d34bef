// Package pdf genera la factura imprimible de un negocio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + contacto  │  N° Factura + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Tel / Email                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Imp% | Importe        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR UPI (si está pendiente) + leyenda               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	appbilling "github.com/jhoicas/BillSync-api/internal/application/billing"
	"github.com/jhoicas/BillSync-api/internal/domain/entity"
)

var _ appbilling.BillPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// MarotoPDFGenerator implementa billing.BillPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator construye el generador con agrupación de miles en-IN.
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(language.MustParse("en-IN"))}
}

// GenerateBillPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateBillPDF(_ context.Context, bill *entity.Bill, admin *entity.Admin) ([]byte, error) {
	business := nonEmpty(admin.BusinessName, admin.Name)
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+bill.Number, true).
		WithAuthor(business, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(bill, admin, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(bill))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.itemRows(bill.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(bill))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(bill, admin, business)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) headerRow(bill *entity.Bill, admin *entity.Admin, business string) core.Row {
	status := "PENDIENTE"
	if bill.Status == entity.BillStatusPaid {
		status = "PAGADA (" + bill.PaymentMode + ")"
	}
	return row.New(22).Add(
		col.New(7).Add(
			text.New(business, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(admin.Address, "—"), props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s", nonEmpty(admin.Phone, "—"), admin.Email),
				props.Text{Size: 8, Top: 14, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(bill.Number, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Fecha: "+bill.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
			text.New(status, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 18}),
		),
	)
}

func customerRow(bill *entity.Bill) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(bill.CustomerName, "Consumidor final"), props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Tel: %s   |   Email: %s",
				nonEmpty(bill.CustomerPhone, "—"),
				nonEmpty(bill.CustomerEmail, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Imp%", 1, align.Center),
		h("Importe", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func (g *MarotoPDFGenerator) itemRows(items []entity.BillItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(it.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(it.TaxRate.String()+"%", props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(g.money(it.LineTotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) totalsRow(bill *entity.Bill) core.Row {
	label := func(s string, size float64, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Color: c, Right: 2})
	}
	value := func(s string, size float64, style fontstyle.Type, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: style, Size: size, Align: align.Right, Color: c, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 9, nil),
			label("Impuestos:", 9, nil),
			label("TOTAL:", 10, colorPrimary),
		),
		col.New(3).Add(
			value(g.money(bill.Subtotal), 9, fontstyle.Normal, nil),
			value(g.money(bill.TaxTotal), 9, fontstyle.Normal, nil),
			value(g.money(bill.Total), 10, fontstyle.Bold, colorPrimary),
		),
	)
}

// footerRows QR de cobro para facturas pendientes con UPI configurado.
func footerRows(bill *entity.Bill, admin *entity.Admin, business string) []core.Row {
	var rows []core.Row
	if bill.Status == entity.BillStatusUnpaid && admin.UPIID != "" {
		payload := appbilling.UPIPayload(admin.UPIID, business, bill.Total, bill.Number)
		rows = append(rows, row.New(45).Add(
			col.New(4).Add(code.NewQr(payload, props.Rect{Percent: 95, Center: true})),
			col.New(8).Add(
				text.New("Escanea con cualquier app UPI para pagar.", props.Text{Size: 9, Top: 6, Left: 3, Color: colorGray}),
				text.New("UPI: "+admin.UPIID, props.Text{Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary}),
			),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New("Gracias por su compra.", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 2}),
	)))
	return rows
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea un importe con dos decimales y separador de miles. Helvetica no trae el
// glifo de la rupia, de ahí el prefijo "Rs.".
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return g.printer.Sprintf("Rs. %v", number.Decimal(f, number.Scale(2)))
}
