// Package tax computes GST-inclusive totals and the CGST/SGST/IGST split for
// invoices, D-invoices and quotations.
package tax

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// InvoiceType selects whether GST is extracted from the gross amount.
type InvoiceType string

const (
	InvoiceTypeGST    InvoiceType = "gst"
	InvoiceTypeNonGST InvoiceType = "non_gst"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	return t == InvoiceTypeGST || t == InvoiceTypeNonGST
}

// DefaultGSTRate is applied when a document does not specify a rate.
var DefaultGSTRate = decimal.NewFromInt(18)

// ErrInvalidRate is returned when 1 + rate/100 is not positive.
var ErrInvalidRate = errors.New("gst rate must be greater than -100")

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineItem is a part or service line priced GST-inclusive.
type LineItem struct {
	Name     string
	Quantity int
	UnitRate decimal.Decimal
}

// Amount returns quantity × unit rate.
func (li LineItem) Amount() decimal.Decimal {
	return li.UnitRate.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Included reports whether the item takes part in totals.
// Items with quantity < 1 or a negative rate are skipped silently.
func (li LineItem) Included() bool {
	return li.Quantity >= 1 && !li.UnitRate.IsNegative()
}

// Input is everything the calculator needs for one document.
type Input struct {
	ServiceCharge  decimal.Decimal
	Discount       decimal.Decimal
	LineItems      []LineItem
	InvoiceType    InvoiceType
	GSTRatePercent decimal.Decimal
	CustomerState  string
}

// Result holds the monetary fields persisted with the document.
type Result struct {
	LineItemsTotal  decimal.Decimal `json:"line_items_total"`
	TaxableSubtotal decimal.Decimal `json:"taxable_subtotal"`
	GSTAmount       decimal.Decimal `json:"gst_amount"`
	CGSTAmount      decimal.Decimal `json:"cgst_amount"`
	SGSTAmount      decimal.Decimal `json:"sgst_amount"`
	IGSTAmount      decimal.Decimal `json:"igst_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// IntraState reports whether the tax was split into CGST and SGST.
func (r Result) IntraState() bool {
	return !r.CGSTAmount.IsZero() || !r.SGSTAmount.IsZero()
}

// Calculator splits GST according to the shop's home state. Supplies to a
// customer in a home state are intra-state (CGST+SGST); everything else,
// including an unknown state, is treated as inter-state (IGST).
type Calculator struct {
	homeStates map[string]struct{}
}

// DefaultHomeStates are the state names treated as intra-state supply.
var DefaultHomeStates = []string{"andhra pradesh", "ap"}

// NewCalculator builds a Calculator for the given home state names.
// Names are matched case-insensitively. With no names it uses DefaultHomeStates.
func NewCalculator(homeStates ...string) *Calculator {
	if len(homeStates) == 0 {
		homeStates = DefaultHomeStates
	}
	c := &Calculator{homeStates: make(map[string]struct{}, len(homeStates))}
	for _, s := range homeStates {
		c.homeStates[strings.ToLower(s)] = struct{}{}
	}
	return c
}

var defaultCalculator = NewCalculator()

// Compute runs the default calculator.
func Compute(in Input) (Result, error) {
	return defaultCalculator.Compute(in)
}

// IsHomeState reports whether state selects the CGST/SGST branch.
func (c *Calculator) IsHomeState(state string) bool {
	if state == "" {
		return false
	}
	_, ok := c.homeStates[strings.ToLower(state)]
	return ok
}

// Compute derives the taxable subtotal, GST split and total for in.
// Amounts are treated as GST-inclusive; the gross is not clamped, so a
// discount larger than the charges yields negative figures.
func (c *Calculator) Compute(in Input) (Result, error) {
	var res Result
	for _, item := range in.LineItems {
		if !item.Included() {
			continue
		}
		res.LineItemsTotal = res.LineItemsTotal.Add(item.Amount())
	}

	gross := in.ServiceCharge.Add(res.LineItemsTotal).Sub(in.Discount)
	res.TotalAmount = gross

	if in.InvoiceType != InvoiceTypeGST {
		res.TaxableSubtotal = gross
		return res, nil
	}

	divisor := decimal.NewFromInt(1).Add(in.GSTRatePercent.Div(hundred))
	if !divisor.IsPositive() {
		return Result{}, ErrInvalidRate
	}

	res.TaxableSubtotal = gross.Div(divisor)
	res.GSTAmount = gross.Sub(res.TaxableSubtotal)

	if c.IsHomeState(in.CustomerState) {
		res.CGSTAmount = res.GSTAmount.Div(two)
		// SGST takes the remainder so CGST + SGST == GST exactly.
		res.SGSTAmount = res.GSTAmount.Sub(res.CGSTAmount)
	} else {
		res.IGSTAmount = res.GSTAmount
	}
	return res, nil
}

// Round2 rounds the result to paise. GST, CGST and the total are rounded
// directly; SGST and the taxable subtotal are derived from the rounded values
// so that CGST + SGST + IGST == GST and subtotal + GST == total still hold.
func (r Result) Round2() Result {
	out := Result{
		LineItemsTotal: r.LineItemsTotal.Round(2),
		GSTAmount:      r.GSTAmount.Round(2),
		TotalAmount:    r.TotalAmount.Round(2),
	}
	if r.IGSTAmount.IsZero() {
		out.CGSTAmount = r.CGSTAmount.Round(2)
		out.SGSTAmount = out.GSTAmount.Sub(out.CGSTAmount)
	} else {
		out.IGSTAmount = out.GSTAmount
	}
	out.TaxableSubtotal = out.TotalAmount.Sub(out.GSTAmount)
	return out
}
