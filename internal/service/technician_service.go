package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// TechnicianInput is the DTO for creating a technician.
type TechnicianInput struct {
	EmployeeID  string          `json:"employee_id" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=255"`
	Phone       string          `json:"phone" binding:"omitempty,phone"`
	Role        string          `json:"role"`
	JoiningDate time.Time       `json:"joining_date" binding:"required"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
}

// UpdateTechnicianInput is the DTO for updating a technician.
type UpdateTechnicianInput struct {
	Name       *string                  `json:"name" binding:"omitempty,max=255"`
	Phone      *string                  `json:"phone" binding:"omitempty,phone"`
	Role       *string                  `json:"role"`
	BaseSalary *decimal.Decimal         `json:"base_salary"`
	Status     *domain.TechnicianStatus `json:"status"`
}

// TechnicianService defines the technician management contract.
type TechnicianService interface {
	Create(ctx context.Context, input TechnicianInput) (*domain.Technician, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error)
	List(ctx context.Context, offset, limit int) ([]domain.Technician, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTechnicianInput) (*domain.Technician, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type technicianService struct {
	repo port.TechnicianRepository
}

// NewTechnicianService creates a new TechnicianService implementation.
func NewTechnicianService(repo port.TechnicianRepository) TechnicianService {
	return &technicianService{repo: repo}
}

func (s *technicianService) Create(ctx context.Context, input TechnicianInput) (*domain.Technician, error) {
	t := &domain.Technician{
		EmployeeID:  input.EmployeeID,
		Name:        input.Name,
		Phone:       input.Phone,
		Role:        input.Role,
		JoiningDate: input.JoiningDate,
		BaseSalary:  input.BaseSalary,
		Status:      domain.TechnicianActive,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("technicianService.Create: %w", err)
	}
	return t, nil
}

func (s *technicianService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *technicianService) List(ctx context.Context, offset, limit int) ([]domain.Technician, int, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *technicianService) Update(ctx context.Context, id uuid.UUID, input UpdateTechnicianInput) (*domain.Technician, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Phone != nil {
		t.Phone = *input.Phone
	}
	if input.Role != nil {
		t.Role = *input.Role
	}
	if input.BaseSalary != nil {
		t.BaseSalary = *input.BaseSalary
	}
	if input.Status != nil {
		if *input.Status != domain.TechnicianActive && *input.Status != domain.TechnicianInactive {
			return nil, domain.ErrInvalidStatus
		}
		t.Status = *input.Status
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("technicianService.Update: %w", err)
	}
	return t, nil
}

func (s *technicianService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
