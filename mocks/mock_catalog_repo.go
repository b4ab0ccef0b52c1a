package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
)

// MockCatalogRepo is a mock implementation of port.CatalogRepository.
type MockCatalogRepo struct {
	mock.Mock
}

func (m *MockCatalogRepo) ListProductTypes(ctx context.Context) ([]domain.ProductType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProductType), args.Error(1)
}

func (m *MockCatalogRepo) CreateProductType(ctx context.Context, pt *domain.ProductType) error {
	args := m.Called(ctx, pt)
	return args.Error(0)
}

func (m *MockCatalogRepo) ListBrands(ctx context.Context, productTypeID *uuid.UUID) ([]domain.Brand, error) {
	args := m.Called(ctx, productTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Brand), args.Error(1)
}

func (m *MockCatalogRepo) CreateBrand(ctx context.Context, brand *domain.Brand) error {
	args := m.Called(ctx, brand)
	return args.Error(0)
}

func (m *MockCatalogRepo) ListModels(ctx context.Context, brandID uuid.UUID) ([]domain.DeviceModel, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceModel), args.Error(1)
}

func (m *MockCatalogRepo) CreateModel(ctx context.Context, model *domain.DeviceModel) error {
	args := m.Called(ctx, model)
	return args.Error(0)
}
