package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"repairdesk/internal/domain"
	"repairdesk/internal/tax"
)

// PartInput is a line item submitted with an invoice or quotation.
type PartInput struct {
	PartName  string          `json:"part_name" binding:"required,max=255"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Pricing runs the tax calculator with the shop's billing defaults.
type Pricing struct {
	Calculator *tax.Calculator
	// DefaultRate applies when a document omits its GST rate; nil means tax.DefaultGSTRate.
	DefaultRate *decimal.Decimal
}

// NewPricing builds Pricing for the given home states and default GST rate.
func NewPricing(homeStates []string, defaultRate float64) Pricing {
	rate := decimal.NewFromFloat(defaultRate)
	return Pricing{
		Calculator:  tax.NewCalculator(homeStates...),
		DefaultRate: &rate,
	}
}

type priceRequest struct {
	invoiceType   tax.InvoiceType
	serviceCharge decimal.Decimal
	discount      decimal.Decimal
	rate          *decimal.Decimal
	state         string
	parts         []PartInput
}

type priced struct {
	rate   decimal.Decimal
	result tax.Result
	// included holds the parts that count towards the total.
	included []PartInput
}

func (p Pricing) calculator() *tax.Calculator {
	if p.Calculator == nil {
		return tax.NewCalculator()
	}
	return p.Calculator
}

func (p Pricing) price(req priceRequest) (priced, error) {
	if !req.invoiceType.Valid() {
		return priced{}, domain.ErrInvalidInvoiceType
	}
	if req.serviceCharge.IsNegative() || req.discount.IsNegative() {
		return priced{}, domain.ErrNegativeAmount
	}

	rate := tax.DefaultGSTRate
	if p.DefaultRate != nil {
		rate = *p.DefaultRate
	}
	if req.rate != nil {
		rate = *req.rate
	}

	items := make([]tax.LineItem, 0, len(req.parts))
	var included []PartInput
	for _, part := range req.parts {
		li := tax.LineItem{Name: part.PartName, Quantity: part.Quantity, UnitRate: part.UnitPrice}
		items = append(items, li)
		if li.Included() {
			included = append(included, part)
		}
	}

	res, err := p.calculator().Compute(tax.Input{
		ServiceCharge:  req.serviceCharge,
		Discount:       req.discount,
		LineItems:      items,
		InvoiceType:    req.invoiceType,
		GSTRatePercent: rate,
		CustomerState:  req.state,
	})
	if err != nil {
		return priced{}, fmt.Errorf("pricing: %w", err)
	}
	return priced{rate: rate, result: res, included: included}, nil
}

func partAmount(p PartInput) decimal.Decimal {
	return p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func invoiceParts(parts []PartInput) []domain.InvoicePart {
	out := make([]domain.InvoicePart, len(parts))
	for i, p := range parts {
		out[i] = domain.InvoicePart{
			PartName:  p.PartName,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Amount:    partAmount(p),
		}
	}
	return out
}

func quotationParts(parts []PartInput) []domain.QuotationPart {
	out := make([]domain.QuotationPart, len(parts))
	for i, p := range parts {
		out[i] = domain.QuotationPart{
			PartName:  p.PartName,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			Amount:    partAmount(p),
		}
	}
	return out
}
