package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
)

// MockTechnicianRepo is a mock implementation of port.TechnicianRepository.
type MockTechnicianRepo struct {
	mock.Mock
}

func (m *MockTechnicianRepo) Create(ctx context.Context, tech *domain.Technician) error {
	args := m.Called(ctx, tech)
	return args.Error(0)
}

func (m *MockTechnicianRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

func (m *MockTechnicianRepo) List(ctx context.Context, offset, limit int) ([]domain.Technician, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Technician), args.Int(1), args.Error(2)
}

func (m *MockTechnicianRepo) Update(ctx context.Context, tech *domain.Technician) error {
	args := m.Called(ctx, tech)
	return args.Error(0)
}

func (m *MockTechnicianRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
