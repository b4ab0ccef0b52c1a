// Package pdf renders invoices, D-invoices and quotations with maroto.
package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
	"repairdesk/internal/tax"
)

const dateLayout = "02 Jan 2006"

type renderer struct{}

// NewRenderer creates a maroto-backed DocumentRenderer.
func NewRenderer() port.DocumentRenderer {
	return &renderer{}
}

// docLine is one printed row of the parts table.
type docLine struct {
	name   string
	qty    int
	rate   decimal.Decimal
	amount decimal.Decimal
}

// docTotals is the money block printed under the parts table.
type docTotals struct {
	invoiceType   tax.InvoiceType
	serviceCharge decimal.Decimal
	discount      decimal.Decimal
	gstRate       decimal.Decimal
	breakdown     domain.TaxBreakdown
}

func newMaroto() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func (r *renderer) RenderInvoice(view port.InvoiceView) ([]byte, error) {
	inv := view.Invoice
	title := "Tax Invoice"
	if inv.InvoiceType == tax.InvoiceTypeNonGST {
		title = "Invoice"
	}
	if inv.Kind == domain.KindDInvoice {
		title = "D-Invoice"
	}

	m := newMaroto()
	addShopHeader(m, view.Shop, title)

	m.AddRow(22,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(view.Customer.Name, props.Text{Top: 5, Size: 9}),
			text.New(joinNonEmpty(", ", view.Customer.Address, view.Customer.City), props.Text{Top: 9, Size: 9}),
			text.New(joinNonEmpty(" ", view.Customer.State, view.Customer.PinCode), props.Text{Top: 13, Size: 9}),
			text.New("Phone: "+view.Customer.Phone, props.Text{Top: 17, Size: 9}),
		),
		col.New(6).Add(
			text.New("No: "+inv.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.New("Date: "+inv.InvoiceDate.Format(dateLayout), props.Text{Top: 5, Size: 9, Align: align.Right}),
			text.New("Job: "+view.JobSheet.JobID, props.Text{Top: 9, Size: 9, Align: align.Right}),
			text.New(optionalLabel("GSTIN: ", inv.GSTIN), props.Text{Top: 13, Size: 9, Align: align.Right}),
		),
	)

	m.AddRow(12,
		col.New(12).Add(
			text.New(joinNonEmpty("  |  ",
				optionalLabel("Brand: ", inv.Brand),
				optionalLabel("Model: ", inv.ModelNumber),
				optionalLabel("Serial: ", inv.SerialNumber)), props.Text{Size: 9}),
			text.New(optionalLabel("Work done: ", inv.WorkDone), props.Text{Top: 5, Size: 9}),
		),
	)

	lines := make([]docLine, len(inv.Parts))
	for i, p := range inv.Parts {
		lines[i] = docLine{name: p.PartName, qty: p.Quantity, rate: p.UnitPrice, amount: p.Amount}
	}
	addPartsTable(m, lines)
	addTotals(m, docTotals{
		invoiceType:   inv.InvoiceType,
		serviceCharge: inv.ServiceCharge,
		discount:      inv.Discount,
		gstRate:       inv.GSTRate,
		breakdown:     inv.TaxBreakdown,
	})
	addFooter(m, inv.PaymentMethod, inv.Remarks)

	return generate(m)
}

func (r *renderer) RenderQuotation(shop port.ShopProfile, q domain.Quotation) ([]byte, error) {
	m := newMaroto()
	addShopHeader(m, shop, "Quotation")

	m.AddRow(22,
		col.New(6).Add(
			text.New("To", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(q.CustomerName, props.Text{Top: 5, Size: 9}),
			text.New(joinNonEmpty(", ", q.CustomerAddress, q.City), props.Text{Top: 9, Size: 9}),
			text.New(joinNonEmpty(" ", q.State, q.PinCode), props.Text{Top: 13, Size: 9}),
			text.New("Phone: "+q.CustomerPhone, props.Text{Top: 17, Size: 9}),
		),
		col.New(6).Add(
			text.New("No: "+q.QuotationNumber, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.New("Date: "+q.CreatedAt.Format(dateLayout), props.Text{Top: 5, Size: 9, Align: align.Right}),
			text.New("Valid until: "+q.ExpiresAt().Format(dateLayout), props.Text{Top: 9, Size: 9, Align: align.Right}),
		),
	)

	m.AddRow(8,
		text.NewCol(12, joinNonEmpty("  |  ",
			optionalLabel("Product: ", q.ProductType),
			optionalLabel("Brand: ", q.Brand),
			optionalLabel("Model: ", joinNonEmpty(" ", q.Model, q.ModelNumber)),
			optionalLabel("Serial: ", q.SerialNumber)), props.Text{Size: 9}),
	)

	lines := make([]docLine, len(q.Parts))
	for i, p := range q.Parts {
		lines[i] = docLine{name: p.PartName, qty: p.Quantity, rate: p.UnitPrice, amount: p.Amount}
	}
	addPartsTable(m, lines)
	addTotals(m, docTotals{
		invoiceType:   q.InvoiceType,
		serviceCharge: q.ServiceCharge,
		discount:      q.Discount,
		gstRate:       q.GSTRate,
		breakdown:     q.TaxBreakdown,
	})
	addFooter(m, q.PaymentTerms, q.Remarks)

	return generate(m)
}

func addShopHeader(m core.Maroto, shop port.ShopProfile, title string) {
	m.AddRow(18,
		col.New(8).Add(
			text.New(shop.Name, props.Text{Size: 14, Style: fontstyle.Bold}),
			text.New(shop.Address, props.Text{Top: 7, Size: 9}),
			text.New(optionalLabel("GSTIN: ", shop.GSTIN), props.Text{Top: 11, Size: 9}),
		),
		text.NewCol(4, title, props.Text{Size: 16, Style: fontstyle.Bold, Align: align.Right}),
	)
}

func addPartsTable(m core.Maroto, lines []docLine) {
	if len(lines) == 0 {
		return
	}
	m.AddRow(8,
		text.NewCol(1, "#", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(5, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for i, l := range lines {
		m.AddRow(7,
			text.NewCol(1, strconv.Itoa(i+1), props.Text{Size: 9}),
			text.NewCol(5, l.name, props.Text{Size: 9}),
			text.NewCol(2, strconv.Itoa(l.qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(l.rate), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, money(l.amount), props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func addTotals(m core.Maroto, t docTotals) {
	b := t.breakdown
	row := func(label, value string, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(6,
			col.New(7),
			text.NewCol(3, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	row("Service charge", money(t.serviceCharge), false)
	if !b.PartsTotal.IsZero() {
		row("Parts", money(b.PartsTotal), false)
	}
	if !t.discount.IsZero() {
		row("Discount", "-"+money(t.discount), false)
	}

	if t.invoiceType == tax.InvoiceTypeGST {
		row("Taxable value", money(b.Subtotal), false)
		if !b.IGSTAmount.IsZero() {
			row(fmt.Sprintf("IGST (%s%%)", percent(t.gstRate)), money(b.IGSTAmount), false)
		} else {
			half := t.gstRate.Div(decimal.NewFromInt(2))
			row(fmt.Sprintf("CGST (%s%%)", percent(half)), money(b.CGSTAmount), false)
			row(fmt.Sprintf("SGST (%s%%)", percent(half)), money(b.SGSTAmount), false)
		}
	}
	row("Total", money(b.TotalAmount), true)
}

func addFooter(m core.Maroto, terms, remarks string) {
	if terms == "" && remarks == "" {
		return
	}
	m.AddRow(16,
		col.New(12).Add(
			text.New(optionalLabel("Terms: ", terms), props.Text{Top: 4, Size: 8}),
			text.New(optionalLabel("Remarks: ", remarks), props.Text{Top: 9, Size: 8}),
		),
	)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generating pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func money(d decimal.Decimal) string {
	return "Rs. " + d.StringFixed(2)
}

func percent(d decimal.Decimal) string {
	return d.Round(2).String()
}

func optionalLabel(label, value string) string {
	if value == "" {
		return ""
	}
	return label + value
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
