package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"repairdesk/internal/service"
)

// MockExportService is a mock implementation of service.ExportService.
// Payload, when set, is written to w before the recorded error is returned.
type MockExportService struct {
	mock.Mock
	Payload []byte
}

func (m *MockExportService) ExportInvoices(ctx context.Context, w io.Writer, input service.ExportInput) error {
	args := m.Called(ctx, w, input)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write(m.Payload)
	return err
}
