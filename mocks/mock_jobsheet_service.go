package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
)

// MockJobSheetService is a mock implementation of service.JobSheetService.
type MockJobSheetService struct {
	mock.Mock
}

func (m *MockJobSheetService) Create(ctx context.Context, input service.CreateJobSheetInput, agentID *uuid.UUID) (*domain.JobSheetDetail, error) {
	args := m.Called(ctx, input, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSheetDetail), args.Error(1)
}

func (m *MockJobSheetService) GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSheetDetail), args.Error(1)
}

func (m *MockJobSheetService) List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error) {
	args := m.Called(ctx, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobSheetDetail), args.Int(1), args.Error(2)
}

func (m *MockJobSheetService) Update(ctx context.Context, id uuid.UUID, input service.UpdateJobSheetInput) (*domain.JobSheetDetail, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobSheetDetail), args.Error(1)
}

func (m *MockJobSheetService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockJobSheetService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
