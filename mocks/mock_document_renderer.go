package mocks

import (
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
)

// MockDocumentRenderer is a mock implementation of port.DocumentRenderer.
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) RenderInvoice(view port.InvoiceView) ([]byte, error) {
	args := m.Called(view)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentRenderer) RenderQuotation(shop port.ShopProfile, q domain.Quotation) ([]byte, error) {
	args := m.Called(shop, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
