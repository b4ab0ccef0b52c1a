package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
)

// MockQuotationRepo is a mock implementation of port.QuotationRepository.
type MockQuotationRepo struct {
	mock.Mock
}

func (m *MockQuotationRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockQuotationRepo) Create(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuotationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) List(ctx context.Context, status domain.QuotationStatus, offset, limit int) ([]domain.Quotation, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Quotation), args.Int(1), args.Error(2)
}

func (m *MockQuotationRepo) Update(ctx context.Context, q *domain.Quotation, replaceParts bool) error {
	args := m.Called(ctx, q, replaceParts)
	return args.Error(0)
}

func (m *MockQuotationRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.QuotationStatus, jobSheetID *uuid.UUID) error {
	args := m.Called(ctx, id, from, to, jobSheetID)
	return args.Error(0)
}

func (m *MockQuotationRepo) LinkCustomer(ctx context.Context, id, customerID uuid.UUID) error {
	args := m.Called(ctx, id, customerID)
	return args.Error(0)
}

func (m *MockQuotationRepo) ListExpirable(ctx context.Context, now time.Time, limit int) ([]domain.Quotation, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quotation), args.Error(1)
}

func (m *MockQuotationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
