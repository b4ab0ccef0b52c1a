package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
)

// MockJobSheetRepo is a mock implementation of port.JobSheetRepository.
type MockJobSheetRepo struct {
	mock.Mock
}

func (m *MockJobSheetRepo) NumberExists(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockJobSheetRepo) Create(ctx context.Context, js *domain.JobSheet) error {
	args := m.Called(ctx, js)
	return args.Error(0)
}

func (m *MockJobSheetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSheetDetail), args.Error(1)
}

func (m *MockJobSheetRepo) List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobSheetDetail), args.Int(1), args.Error(2)
}

func (m *MockJobSheetRepo) Update(ctx context.Context, js *domain.JobSheet) error {
	args := m.Called(ctx, js)
	return args.Error(0)
}

func (m *MockJobSheetRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockJobSheetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
