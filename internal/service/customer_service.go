package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// CustomerInput is the DTO for creating a customer.
type CustomerInput struct {
	Name           string `json:"name" binding:"required,max=255"`
	Phone          string `json:"phone" binding:"required,phone"`
	AlternatePhone string `json:"alternate_phone" binding:"omitempty,phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code" binding:"omitempty,pincode"`
}

// UpdateCustomerInput is the DTO for updating a customer.
type UpdateCustomerInput struct {
	Name           *string `json:"name" binding:"omitempty,max=255"`
	Phone          *string `json:"phone" binding:"omitempty,phone"`
	AlternatePhone *string `json:"alternate_phone" binding:"omitempty,phone"`
	Address        *string `json:"address"`
	City           *string `json:"city"`
	State          *string `json:"state"`
	PinCode        *string `json:"pin_code" binding:"omitempty,pincode"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, input CustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo port.CustomerRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*domain.Customer, error) {
	c := &domain.Customer{
		Name:           input.Name,
		Phone:          input.Phone,
		AlternatePhone: input.AlternatePhone,
		Address:        input.Address,
		City:           input.City,
		State:          input.State,
		PinCode:        input.PinCode,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("customerService.Create: %w", err)
	}
	return c, nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *customerService) List(ctx context.Context, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, search, offset, limit)
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		c.Name = *input.Name
	}
	if input.Phone != nil {
		c.Phone = *input.Phone
	}
	if input.AlternatePhone != nil {
		c.AlternatePhone = *input.AlternatePhone
	}
	if input.Address != nil {
		c.Address = *input.Address
	}
	if input.City != nil {
		c.City = *input.City
	}
	if input.State != nil {
		c.State = *input.State
	}
	if input.PinCode != nil {
		c.PinCode = *input.PinCode
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("customerService.Update: %w", err)
	}
	return c, nil
}

func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
