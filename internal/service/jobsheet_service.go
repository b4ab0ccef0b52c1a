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
)

// CreateJobSheetInput is the DTO for taking a device in for service.
type CreateJobSheetInput struct {
	CustomerID        uuid.UUID             `json:"customer_id" binding:"required"`
	ProductTypeID     *uuid.UUID            `json:"product_type_id"`
	BrandID           *uuid.UUID            `json:"brand_id"`
	ModelID           *uuid.UUID            `json:"model_id"`
	ModelNumber       string                `json:"model_number"`
	SerialNumber      string                `json:"serial_number"`
	PurchaseDate      *time.Time            `json:"purchase_date"`
	WarrantyStatus    domain.WarrantyStatus `json:"warranty_status" binding:"omitempty,oneof=in_warranty out_warranty"`
	JobType           string                `json:"job_type"`
	JobClassification string                `json:"job_classification"`
	JobMode           domain.JobMode        `json:"job_mode" binding:"omitempty,oneof=indoor outdoor"`
	TechnicianID      *uuid.UUID            `json:"technician_id"`
	CustomerComplaint string                `json:"customer_complaint"`
	ReportedIssue     string                `json:"reported_issue"`
	AgentRemarks      string                `json:"agent_remarks"`
	JobStartAt        *time.Time            `json:"job_start_at"`
	EstimatedAmount   decimal.Decimal       `json:"estimated_amount"`
	QuotationID       *uuid.UUID            `json:"-"`
}

// UpdateJobSheetInput is the DTO for editing a job sheet. Setting
// ClearTechnician unassigns the current technician.
type UpdateJobSheetInput struct {
	ProductTypeID     *uuid.UUID             `json:"product_type_id"`
	BrandID           *uuid.UUID             `json:"brand_id"`
	ModelID           *uuid.UUID             `json:"model_id"`
	ModelNumber       *string                `json:"model_number"`
	SerialNumber      *string                `json:"serial_number"`
	PurchaseDate      *time.Time             `json:"purchase_date"`
	WarrantyStatus    *domain.WarrantyStatus `json:"warranty_status" binding:"omitempty,oneof=in_warranty out_warranty"`
	JobType           *string                `json:"job_type"`
	JobClassification *string                `json:"job_classification"`
	JobMode           *domain.JobMode        `json:"job_mode" binding:"omitempty,oneof=indoor outdoor"`
	TechnicianID      *uuid.UUID             `json:"technician_id"`
	ClearTechnician   bool                   `json:"clear_technician"`
	CustomerComplaint *string                `json:"customer_complaint"`
	ReportedIssue     *string                `json:"reported_issue"`
	AgentRemarks      *string                `json:"agent_remarks"`
	JobStartAt        *time.Time             `json:"job_start_at"`
	Status            *domain.JobStatus      `json:"status"`
	EstimatedAmount   *decimal.Decimal       `json:"estimated_amount"`
}

// JobSheetService defines the job sheet contract.
type JobSheetService interface {
	Create(ctx context.Context, input CreateJobSheetInput, agentID *uuid.UUID) (*domain.JobSheetDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error)
	List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateJobSheetInput) (*domain.JobSheetDetail, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type jobSheetService struct {
	repo      port.JobSheetRepository
	customers port.CustomerRepository
	numbers   issuer
	log       *zap.Logger
}

// NewJobSheetService creates a new JobSheetService implementation.
func NewJobSheetService(
	repo port.JobSheetRepository,
	customers port.CustomerRepository,
	opts NumberingOptions,
	log *zap.Logger,
) JobSheetService {
	return &jobSheetService{
		repo:      repo,
		customers: customers,
		numbers:   newIssuer(repo, opts),
		log:       log,
	}
}

func (s *jobSheetService) Create(ctx context.Context, input CreateJobSheetInput, agentID *uuid.UUID) (*domain.JobSheetDetail, error) {
	if input.EstimatedAmount.IsNegative() {
		return nil, fmt.Errorf("jobSheetService.Create: estimated amount: %w", domain.ErrNegativeAmount)
	}
	if _, err := s.customers.GetByID(ctx, input.CustomerID); err != nil {
		return nil, fmt.Errorf("jobSheetService.Create: customer: %w", err)
	}

	js := &domain.JobSheet{
		CustomerID:        input.CustomerID,
		ProductTypeID:     input.ProductTypeID,
		BrandID:           input.BrandID,
		ModelID:           input.ModelID,
		ModelNumber:       input.ModelNumber,
		SerialNumber:      input.SerialNumber,
		PurchaseDate:      input.PurchaseDate,
		WarrantyStatus:    input.WarrantyStatus,
		JobType:           input.JobType,
		JobClassification: input.JobClassification,
		JobMode:           input.JobMode,
		TechnicianID:      input.TechnicianID,
		AgentID:           agentID,
		CustomerComplaint: input.CustomerComplaint,
		ReportedIssue:     input.ReportedIssue,
		AgentRemarks:      input.AgentRemarks,
		JobStartAt:        input.JobStartAt,
		Status:            domain.JobStatusPending,
		EstimatedAmount:   input.EstimatedAmount,
		QuotationID:       input.QuotationID,
	}
	if js.WarrantyStatus == "" {
		js.WarrantyStatus = domain.WarrantyOut
	}
	if js.JobMode == "" {
		js.JobMode = domain.JobModeIndoor
	}

	_, err := s.numbers.issue(ctx, numbering.JobSheet, func(ctx context.Context, number string) error {
		js.JobID = number
		return s.repo.Create(ctx, js)
	})
	if err != nil {
		return nil, fmt.Errorf("jobSheetService.Create: %w", err)
	}
	s.log.Info("jobSheetService.Create: job sheet opened",
		zap.String("job_id", js.JobID),
		zap.String("customer_id", js.CustomerID.String()))

	return s.repo.GetByID(ctx, js.ID)
}

func (s *jobSheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *jobSheetService) List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error) {
	if status != "" && !domain.ValidJobStatuses[status] {
		return nil, 0, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, status, offset, limit)
}

func (s *jobSheetService) Update(ctx context.Context, id uuid.UUID, input UpdateJobSheetInput) (*domain.JobSheetDetail, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	js := current.JobSheet

	if input.ProductTypeID != nil {
		js.ProductTypeID = input.ProductTypeID
	}
	if input.BrandID != nil {
		js.BrandID = input.BrandID
	}
	if input.ModelID != nil {
		js.ModelID = input.ModelID
	}
	if input.ModelNumber != nil {
		js.ModelNumber = *input.ModelNumber
	}
	if input.SerialNumber != nil {
		js.SerialNumber = *input.SerialNumber
	}
	if input.PurchaseDate != nil {
		js.PurchaseDate = input.PurchaseDate
	}
	if input.WarrantyStatus != nil {
		js.WarrantyStatus = *input.WarrantyStatus
	}
	if input.JobType != nil {
		js.JobType = *input.JobType
	}
	if input.JobClassification != nil {
		js.JobClassification = *input.JobClassification
	}
	if input.JobMode != nil {
		js.JobMode = *input.JobMode
	}
	if input.CustomerComplaint != nil {
		js.CustomerComplaint = *input.CustomerComplaint
	}
	if input.ReportedIssue != nil {
		js.ReportedIssue = *input.ReportedIssue
	}
	if input.AgentRemarks != nil {
		js.AgentRemarks = *input.AgentRemarks
	}
	if input.JobStartAt != nil {
		js.JobStartAt = input.JobStartAt
	}
	if input.EstimatedAmount != nil {
		if input.EstimatedAmount.IsNegative() {
			return nil, fmt.Errorf("jobSheetService.Update: estimated amount: %w", domain.ErrNegativeAmount)
		}
		js.EstimatedAmount = *input.EstimatedAmount
	}
	if input.Status != nil {
		if !domain.ValidJobStatuses[*input.Status] {
			return nil, domain.ErrInvalidStatus
		}
		js.Status = *input.Status
	}

	applyTechnicianChange(&js, current.TechnicianID, input)

	if err := s.repo.Update(ctx, &js); err != nil {
		return nil, fmt.Errorf("jobSheetService.Update: %w", err)
	}
	return s.repo.GetByID(ctx, id)
}

// applyTechnicianChange assigns or clears the technician and moves the job
// between pending and in_progress to match.
func applyTechnicianChange(js *domain.JobSheet, previous *uuid.UUID, input UpdateJobSheetInput) {
	switch {
	case input.TechnicianID != nil:
		js.TechnicianID = input.TechnicianID
		if previous == nil && js.Status == domain.JobStatusPending {
			js.Status = domain.JobStatusInProgress
		}
	case input.ClearTechnician:
		js.TechnicianID = nil
		if previous != nil && js.Status == domain.JobStatusInProgress {
			js.Status = domain.JobStatusPending
		}
	}
}

func (s *jobSheetService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	if !domain.ValidJobStatuses[status] {
		return domain.ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *jobSheetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
