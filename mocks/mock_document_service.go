package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) DeliverInvoice(ctx context.Context, kind domain.DocumentKind, id uuid.UUID, input service.DeliverInput) (*domain.DeliveredDocument, error) {
	args := m.Called(ctx, kind, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveredDocument), args.Error(1)
}

func (m *MockDocumentService) DeliverQuotation(ctx context.Context, id uuid.UUID, input service.DeliverInput) (*domain.DeliveredDocument, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveredDocument), args.Error(1)
}
