package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// PaymentInput is the DTO for recording a payment.
type PaymentInput struct {
	JobSheetID     uuid.UUID       `json:"job_sheet_id" binding:"required"`
	ClientAmount   decimal.Decimal `json:"client_amount"`
	InternalAmount decimal.Decimal `json:"internal_amount"`
	Discount       decimal.Decimal `json:"discount"`
	AdvancePaid    decimal.Decimal `json:"advance_paid"`
	PaymentMode    string          `json:"payment_mode" binding:"max=50"`
}

// PaymentService defines the payment contract.
type PaymentService interface {
	Create(ctx context.Context, input PaymentInput) (*domain.Payment, error)
	List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error)
	ListByJobSheet(ctx context.Context, jobSheetID uuid.UUID) ([]domain.Payment, error)
}

type paymentService struct {
	repo     port.PaymentRepository
	jobSheet port.JobSheetRepository
}

// NewPaymentService creates a new PaymentService implementation.
func NewPaymentService(repo port.PaymentRepository, jobSheet port.JobSheetRepository) PaymentService {
	return &paymentService{repo: repo, jobSheet: jobSheet}
}

func (s *paymentService) Create(ctx context.Context, input PaymentInput) (*domain.Payment, error) {
	for _, amt := range []decimal.Decimal{input.ClientAmount, input.InternalAmount, input.Discount, input.AdvancePaid} {
		if amt.IsNegative() {
			return nil, fmt.Errorf("paymentService.Create: %w", domain.ErrNegativeAmount)
		}
	}
	if _, err := s.jobSheet.GetByID(ctx, input.JobSheetID); err != nil {
		return nil, fmt.Errorf("paymentService.Create: %w", err)
	}

	p := &domain.Payment{
		JobSheetID:     input.JobSheetID,
		ClientAmount:   input.ClientAmount,
		InternalAmount: input.InternalAmount,
		Discount:       input.Discount,
		AdvancePaid:    input.AdvancePaid,
		PaymentMode:    input.PaymentMode,
	}
	p.Settle()

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("paymentService.Create: %w", err)
	}
	return p, nil
}

func (s *paymentService) List(ctx context.Context, offset, limit int) ([]domain.Payment, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *paymentService) ListByJobSheet(ctx context.Context, jobSheetID uuid.UUID) ([]domain.Payment, error) {
	return s.repo.ListByJobSheet(ctx, jobSheetID)
}
