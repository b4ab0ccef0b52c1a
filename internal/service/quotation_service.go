package service

import (
	"context"
	"errors"
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

// DefaultValidityDays applies when a quotation omits its validity window.
const DefaultValidityDays = 30

// CreateQuotationInput is the DTO for drafting a quotation.
type CreateQuotationInput struct {
	CustomerID      *uuid.UUID             `json:"customer_id"`
	CustomerName    string                 `json:"customer_name" binding:"required,max=255"`
	CustomerPhone   string                 `json:"customer_phone" binding:"required,phone"`
	CustomerAddress string                 `json:"customer_address" binding:"required"`
	City            string                 `json:"city"`
	State           string                 `json:"state"`
	PinCode         string                 `json:"pin_code" binding:"omitempty,pincode"`
	ProductType     string                 `json:"product_type"`
	Brand           string                 `json:"brand"`
	Model           string                 `json:"model"`
	ModelNumber     string                 `json:"model_number"`
	SerialNumber    string                 `json:"serial_number"`
	ServiceCharge   decimal.Decimal        `json:"service_charge"`
	Discount        decimal.Decimal        `json:"discount"`
	InvoiceType     tax.InvoiceType        `json:"invoice_type" binding:"omitempty,oneof=gst non_gst"`
	GSTRate         *decimal.Decimal       `json:"gst_rate"`
	PaymentTerms    string                 `json:"payment_terms"`
	ValidityDays    int                    `json:"validity_days" binding:"omitempty,min=1"`
	Status          domain.QuotationStatus `json:"status" binding:"omitempty,oneof=draft sent accepted rejected"`
	Remarks         string                 `json:"remarks"`
	Parts           []PartInput            `json:"parts" binding:"dive"`
}

// UpdateQuotationInput is the DTO for editing a quotation. Totals are
// recomputed whenever a pricing field or the parts change.
type UpdateQuotationInput struct {
	CustomerName    *string          `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone   *string          `json:"customer_phone" binding:"omitempty,phone"`
	CustomerAddress *string          `json:"customer_address"`
	City            *string          `json:"city"`
	State           *string          `json:"state"`
	PinCode         *string          `json:"pin_code" binding:"omitempty,pincode"`
	ProductType     *string          `json:"product_type"`
	Brand           *string          `json:"brand"`
	Model           *string          `json:"model"`
	ModelNumber     *string          `json:"model_number"`
	SerialNumber    *string          `json:"serial_number"`
	ServiceCharge   *decimal.Decimal `json:"service_charge"`
	Discount        *decimal.Decimal `json:"discount"`
	InvoiceType     *tax.InvoiceType `json:"invoice_type" binding:"omitempty,oneof=gst non_gst"`
	GSTRate         *decimal.Decimal `json:"gst_rate"`
	PaymentTerms    *string          `json:"payment_terms"`
	ValidityDays    *int             `json:"validity_days" binding:"omitempty,min=1"`
	Remarks         *string          `json:"remarks"`
	Parts           []PartInput      `json:"parts" binding:"omitempty,dive"`
}

// QuotationService defines the quotation contract.
type QuotationService interface {
	Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, status domain.QuotationStatus, offset, limit int) ([]domain.Quotation, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateQuotationInput) (*domain.Quotation, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) (*domain.Quotation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ConvertToJobSheet(ctx context.Context, id uuid.UUID, agentID *uuid.UUID) (*domain.JobSheetDetail, error)
	ExpireStale(ctx context.Context, now time.Time, limit int) (int, error)
}

type quotationService struct {
	repo      port.QuotationRepository
	customers port.CustomerRepository
	jobSheets JobSheetService
	pricing   Pricing
	numbers   issuer
	log       *zap.Logger
}

// NewQuotationService creates a new QuotationService implementation.
func NewQuotationService(
	repo port.QuotationRepository,
	customers port.CustomerRepository,
	jobSheets JobSheetService,
	pricing Pricing,
	opts NumberingOptions,
	log *zap.Logger,
) QuotationService {
	return &quotationService{
		repo:      repo,
		customers: customers,
		jobSheets: jobSheets,
		pricing:   pricing,
		numbers:   newIssuer(repo, opts),
		log:       log,
	}
}

func (s *quotationService) Create(ctx context.Context, input CreateQuotationInput) (*domain.Quotation, error) {
	q := &domain.Quotation{
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		City:            input.City,
		State:           input.State,
		PinCode:         input.PinCode,
		ProductType:     input.ProductType,
		Brand:           input.Brand,
		Model:           input.Model,
		ModelNumber:     input.ModelNumber,
		SerialNumber:    input.SerialNumber,
		ServiceCharge:   input.ServiceCharge,
		Discount:        input.Discount,
		InvoiceType:     input.InvoiceType,
		PaymentTerms:    input.PaymentTerms,
		ValidityDays:    input.ValidityDays,
		Status:          input.Status,
		Remarks:         input.Remarks,
	}
	if q.InvoiceType == "" {
		q.InvoiceType = tax.InvoiceTypeNonGST
	}
	if q.ValidityDays == 0 {
		q.ValidityDays = DefaultValidityDays
	}
	if q.Status == "" {
		q.Status = domain.QuotationDraft
	}

	if err := s.reprice(q, input.GSTRate, input.Parts); err != nil {
		return nil, fmt.Errorf("quotationService.Create: %w", err)
	}

	_, err := s.numbers.issue(ctx, numbering.Quotation, func(ctx context.Context, number string) error {
		q.QuotationNumber = number
		return s.repo.Create(ctx, q)
	})
	if err != nil {
		return nil, fmt.Errorf("quotationService.Create: %w", err)
	}
	s.log.Info("quotationService.Create: quotation drafted",
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("total", q.TotalAmount.StringFixed(2)))
	return q, nil
}

// reprice runs the calculator over q and replaces its parts and totals.
func (s *quotationService) reprice(q *domain.Quotation, rate *decimal.Decimal, parts []PartInput) error {
	p, err := s.pricing.price(priceRequest{
		invoiceType:   q.InvoiceType,
		serviceCharge: q.ServiceCharge,
		discount:      q.Discount,
		rate:          rate,
		state:         q.State,
		parts:         parts,
	})
	if err != nil {
		return err
	}
	q.GSTRate = p.rate
	q.TaxBreakdown = domain.NewTaxBreakdown(p.result)
	q.Parts = quotationParts(p.included)
	return nil
}

func (s *quotationService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *quotationService) List(ctx context.Context, status domain.QuotationStatus, offset, limit int) ([]domain.Quotation, int, error) {
	if status != "" && !domain.ValidQuotationStatuses[status] && status != domain.QuotationConverted {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, status, offset, limit)
}

func (s *quotationService) Update(ctx context.Context, id uuid.UUID, input UpdateQuotationInput) (*domain.Quotation, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status == domain.QuotationConverted {
		return nil, domain.ErrQuotationConverted
	}

	setString(&q.CustomerName, input.CustomerName)
	setString(&q.CustomerPhone, input.CustomerPhone)
	setString(&q.CustomerAddress, input.CustomerAddress)
	setString(&q.City, input.City)
	setString(&q.PinCode, input.PinCode)
	setString(&q.ProductType, input.ProductType)
	setString(&q.Brand, input.Brand)
	setString(&q.Model, input.Model)
	setString(&q.ModelNumber, input.ModelNumber)
	setString(&q.SerialNumber, input.SerialNumber)
	setString(&q.PaymentTerms, input.PaymentTerms)
	setString(&q.Remarks, input.Remarks)
	if input.ValidityDays != nil {
		q.ValidityDays = *input.ValidityDays
	}

	repricing := input.State != nil || input.ServiceCharge != nil || input.Discount != nil ||
		input.InvoiceType != nil || input.GSTRate != nil || input.Parts != nil
	replaceParts := input.Parts != nil

	if repricing {
		setString(&q.State, input.State)
		if input.ServiceCharge != nil {
			q.ServiceCharge = *input.ServiceCharge
		}
		if input.Discount != nil {
			q.Discount = *input.Discount
		}
		if input.InvoiceType != nil {
			q.InvoiceType = *input.InvoiceType
		}
		parts := input.Parts
		if !replaceParts {
			parts = partInputs(q.Parts)
		}
		rate := input.GSTRate
		if rate == nil {
			stored := q.GSTRate
			rate = &stored
		}
		if err := s.reprice(q, rate, parts); err != nil {
			return nil, fmt.Errorf("quotationService.Update: %w", err)
		}
	}

	if err := s.repo.Update(ctx, q, replaceParts); err != nil {
		return nil, fmt.Errorf("quotationService.Update: %w", err)
	}
	return q, nil
}

func (s *quotationService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.QuotationStatus) (*domain.Quotation, error) {
	if !domain.ValidQuotationStatuses[status] {
		return nil, domain.ErrInvalidStatus
	}
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.Status == domain.QuotationConverted {
		return nil, domain.ErrQuotationConverted
	}
	if q.Status == status {
		return q, nil
	}

	if err := s.repo.TransitionStatus(ctx, id, q.Status, status, nil); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("quotationService.UpdateStatus: status changed concurrently: %w", domain.ErrInvalidStatus)
		}
		return nil, fmt.Errorf("quotationService.UpdateStatus: %w", err)
	}
	q.Status = status
	return q, nil
}

func (s *quotationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ConvertToJobSheet opens a job sheet for an accepted quotation and marks the
// quotation converted. A customer record is created from the quotation's
// snapshot when the quotation is not linked to one.
func (s *quotationService) ConvertToJobSheet(ctx context.Context, id uuid.UUID, agentID *uuid.UUID) (*domain.JobSheetDetail, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch q.Status {
	case domain.QuotationAccepted:
	case domain.QuotationConverted:
		return nil, domain.ErrQuotationConverted
	default:
		return nil, domain.ErrQuotationNotAccepted
	}

	customerID, err := s.ensureCustomer(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("quotationService.ConvertToJobSheet: %w", err)
	}

	js, err := s.jobSheets.Create(ctx, CreateJobSheetInput{
		CustomerID:        customerID,
		ModelNumber:       q.ModelNumber,
		SerialNumber:      q.SerialNumber,
		WarrantyStatus:    domain.WarrantyOut,
		JobType:           "repair",
		JobClassification: domain.JobClassificationQuotation,
		JobMode:           domain.JobModeIndoor,
		CustomerComplaint: "Converted from Quotation: " + q.QuotationNumber,
		EstimatedAmount:   q.TotalAmount,
		QuotationID:       &q.ID,
	}, agentID)
	if err != nil {
		return nil, fmt.Errorf("quotationService.ConvertToJobSheet: %w", err)
	}

	if err := s.repo.TransitionStatus(ctx, q.ID, domain.QuotationAccepted, domain.QuotationConverted, &js.ID); err != nil {
		// Another request converted or changed the quotation first; drop our job sheet.
		if delErr := s.jobSheets.Delete(ctx, js.ID); delErr != nil {
			s.log.Error("quotationService.ConvertToJobSheet: removing orphaned job sheet",
				zap.String("job_id", js.JobID), zap.Error(delErr))
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrQuotationConverted
		}
		return nil, fmt.Errorf("quotationService.ConvertToJobSheet: %w", err)
	}

	s.log.Info("quotationService.ConvertToJobSheet: quotation converted",
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("job_id", js.JobID))
	return js, nil
}

func (s *quotationService) ensureCustomer(ctx context.Context, q *domain.Quotation) (uuid.UUID, error) {
	if q.CustomerID != nil {
		return *q.CustomerID, nil
	}
	c := &domain.Customer{
		Name:    q.CustomerName,
		Phone:   q.CustomerPhone,
		Address: q.CustomerAddress,
		City:    q.City,
		State:   q.State,
		PinCode: q.PinCode,
	}
	if err := s.customers.Create(ctx, c); err != nil {
		return uuid.Nil, fmt.Errorf("creating customer: %w", err)
	}

	// Persist the link now so a retried conversion reuses this customer.
	if err := s.repo.LinkCustomer(ctx, q.ID, c.ID); err != nil {
		if delErr := s.customers.Delete(ctx, c.ID); delErr != nil {
			s.log.Error("quotationService.ensureCustomer: removing unlinked customer",
				zap.String("customer_id", c.ID.String()), zap.Error(delErr))
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, fmt.Errorf("linking customer: %w", err)
		}
		// A concurrent conversion linked a customer first; use theirs.
		current, getErr := s.repo.GetByID(ctx, q.ID)
		if getErr != nil {
			return uuid.Nil, fmt.Errorf("reloading quotation: %w", getErr)
		}
		if current.CustomerID == nil {
			return uuid.Nil, fmt.Errorf("linking customer: %w", err)
		}
		q.CustomerID = current.CustomerID
		return *current.CustomerID, nil
	}
	q.CustomerID = &c.ID
	return c.ID, nil
}

// ExpireStale marks sent quotations past their validity window as expired and
// returns how many were changed.
func (s *quotationService) ExpireStale(ctx context.Context, now time.Time, limit int) (int, error) {
	quotes, err := s.repo.ListExpirable(ctx, now, limit)
	if err != nil {
		return 0, fmt.Errorf("quotationService.ExpireStale: %w", err)
	}

	expired := 0
	for _, q := range quotes {
		if err := ctx.Err(); err != nil {
			return expired, err
		}
		err := s.repo.TransitionStatus(ctx, q.ID, domain.QuotationSent, domain.QuotationExpired, nil)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return expired, fmt.Errorf("quotationService.ExpireStale %s: %w", q.QuotationNumber, err)
		}
		expired++
	}
	return expired, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func partInputs(parts []domain.QuotationPart) []PartInput {
	out := make([]PartInput, len(parts))
	for i, p := range parts {
		out[i] = PartInput{PartName: p.PartName, Quantity: p.Quantity, UnitPrice: p.UnitPrice}
	}
	return out
}
