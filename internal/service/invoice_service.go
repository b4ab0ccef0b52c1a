package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"repairdesk/internal/domain"
	"repairdesk/internal/numbering"
	"repairdesk/internal/port"
	"repairdesk/internal/tax"
)

// CreateInvoiceInput is the DTO for billing a job sheet.
type CreateInvoiceInput struct {
	JobSheetID    uuid.UUID        `json:"job_sheet_id" binding:"required"`
	InvoiceType   tax.InvoiceType  `json:"invoice_type" binding:"required,oneof=gst non_gst"`
	ServiceCharge decimal.Decimal  `json:"service_charge"`
	Discount      decimal.Decimal  `json:"discount"`
	GSTRate       *decimal.Decimal `json:"gst_rate"`
	PaymentMethod string           `json:"payment_method" binding:"max=50"`
	ModelNumber   string           `json:"model_number"`
	SerialNumber  string           `json:"serial_number"`
	Brand         string           `json:"brand"`
	GSTIN         string           `json:"gstin" binding:"omitempty,gstin"`
	WorkDone      string           `json:"work_done"`
	Remarks       string           `json:"remarks"`
	InvoiceDate   *time.Time       `json:"invoice_date"`
	Parts         []PartInput      `json:"parts" binding:"dive"`
}

// UpdateInvoiceInput is the DTO for patching the descriptive fields of an
// invoice. Amounts and the number are fixed once issued.
type UpdateInvoiceInput struct {
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=50"`
	ModelNumber   *string `json:"model_number"`
	SerialNumber  *string `json:"serial_number"`
	Brand         *string `json:"brand"`
	GSTIN         *string `json:"gstin" binding:"omitempty,gstin"`
	WorkDone      *string `json:"work_done"`
	Remarks       *string `json:"remarks"`
}

// InvoiceService defines the billing contract for one invoice book.
type InvoiceService interface {
	Kind() domain.DocumentKind
	Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type invoiceService struct {
	repo      port.InvoiceRepository
	jobSheets port.JobSheetRepository
	pricing   Pricing
	scheme    numbering.Scheme
	numbers   issuer
	now       func() time.Time
	log       *zap.Logger
}

// NewInvoiceService creates an InvoiceService over repo. The number scheme
// follows the repository's kind: INV for invoices, DINV for D-invoices.
func NewInvoiceService(
	repo port.InvoiceRepository,
	jobSheets port.JobSheetRepository,
	pricing Pricing,
	opts NumberingOptions,
	log *zap.Logger,
) InvoiceService {
	scheme := numbering.Invoice
	if repo.Kind() == domain.KindDInvoice {
		scheme = numbering.DInvoice
	}
	return &invoiceService{
		repo:      repo,
		jobSheets: jobSheets,
		pricing:   pricing,
		scheme:    scheme,
		numbers:   newIssuer(repo, opts),
		now:       opts.now,
		log:       log,
	}
}

func (s *invoiceService) Kind() domain.DocumentKind {
	return s.repo.Kind()
}

func (s *invoiceService) Create(ctx context.Context, input CreateInvoiceInput) (*domain.Invoice, error) {
	js, err := s.jobSheets.GetByID(ctx, input.JobSheetID)
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Create: job sheet: %w", err)
	}

	p, err := s.pricing.price(priceRequest{
		invoiceType:   input.InvoiceType,
		serviceCharge: input.ServiceCharge,
		discount:      input.Discount,
		rate:          input.GSTRate,
		state:         js.CustomerState,
		parts:         input.Parts,
	})
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}

	inv := &domain.Invoice{
		Kind:          s.repo.Kind(),
		JobSheetID:    js.ID,
		InvoiceType:   input.InvoiceType,
		ServiceCharge: input.ServiceCharge,
		Discount:      input.Discount,
		GSTRate:       p.rate,
		TaxBreakdown:  domain.NewTaxBreakdown(p.result),
		CustomerState: js.CustomerState,
		PaymentMethod: input.PaymentMethod,
		ModelNumber:   firstNonEmpty(input.ModelNumber, js.ModelNumber),
		SerialNumber:  firstNonEmpty(input.SerialNumber, js.SerialNumber),
		Brand:         input.Brand,
		GSTIN:         input.GSTIN,
		WorkDone:      input.WorkDone,
		Remarks:       input.Remarks,
		InvoiceDate:   s.now(),
		Parts:         invoiceParts(p.included),
	}
	if input.InvoiceDate != nil {
		inv.InvoiceDate = *input.InvoiceDate
	}

	_, err = s.numbers.issue(ctx, s.scheme, func(ctx context.Context, number string) error {
		inv.InvoiceNumber = number
		return s.repo.Create(ctx, inv)
	})
	if err != nil {
		return nil, fmt.Errorf("invoiceService.Create: %w", err)
	}

	// Billing a job closes it. The invoice is already stored, so a failure
	// here is logged rather than returned.
	if err := s.jobSheets.UpdateStatus(ctx, js.ID, domain.JobStatusCompleted); err != nil {
		s.log.Error("invoiceService.Create: marking job sheet completed",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.String("job_sheet_id", js.ID.String()),
			zap.Error(err))
	}

	s.log.Info("invoiceService.Create: invoice issued",
		zap.String("kind", string(inv.Kind)),
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("total", inv.TotalAmount.StringFixed(2)))
	return inv, nil
}

func (s *invoiceService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *invoiceService) List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *invoiceService) ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error) {
	return s.repo.ListByDateRange(ctx, from, to)
}

func (s *invoiceService) Update(ctx context.Context, id uuid.UUID, input UpdateInvoiceInput) (*domain.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.PaymentMethod != nil {
		inv.PaymentMethod = *input.PaymentMethod
	}
	if input.ModelNumber != nil {
		inv.ModelNumber = *input.ModelNumber
	}
	if input.SerialNumber != nil {
		inv.SerialNumber = *input.SerialNumber
	}
	if input.Brand != nil {
		inv.Brand = *input.Brand
	}
	if input.GSTIN != nil {
		inv.GSTIN = *input.GSTIN
	}
	if input.WorkDone != nil {
		inv.WorkDone = *input.WorkDone
	}
	if input.Remarks != nil {
		inv.Remarks = *input.Remarks
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, fmt.Errorf("invoiceService.Update: %w", err)
	}
	return inv, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
