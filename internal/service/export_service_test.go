package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"repairdesk/internal/domain"
	"repairdesk/internal/export"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func TestExportService_MergesBooksByDate(t *testing.T) {
	invoices := new(mocks.MockInvoiceService)
	dinvoices := &mocks.MockInvoiceService{BookKind: domain.KindDInvoice}
	svc := service.NewExportService(invoices, dinvoices)

	invoices.On("ListByDateRange", mock.Anything, day(1), day(16)).Return([]domain.Invoice{
		{InvoiceNumber: "INV-2025-0001", InvoiceDate: day(3)},
		{InvoiceNumber: "INV-2025-0002", InvoiceDate: day(10)},
	}, nil)
	dinvoices.On("ListByDateRange", mock.Anything, day(1), day(16)).Return([]domain.Invoice{
		{InvoiceNumber: "DINV-2025-0001", InvoiceDate: day(5)},
	}, nil)

	var buf bytes.Buffer
	err := svc.ExportInvoices(context.Background(), &buf, service.ExportInput{
		Format: export.FormatCSV,
		From:   day(1),
		To:     day(15),
	})
	require.NoError(t, err)

	body := bytes.TrimPrefix(buf.Bytes(), export.BOM)
	rows, err := csv.NewReader(bytes.NewReader(body)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	var numbers []string
	for _, row := range rows[1:] {
		numbers = append(numbers, row[1])
	}
	assert.Equal(t, []string{"INV-2025-0001", "DINV-2025-0001", "INV-2025-0002"}, numbers)
}

func TestExportService_InvalidRange(t *testing.T) {
	svc := service.NewExportService(new(mocks.MockInvoiceService))

	err := svc.ExportInvoices(context.Background(), &bytes.Buffer{}, service.ExportInput{
		Format: export.FormatCSV,
		From:   day(10),
		To:     day(9),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestExportService_BookFailure(t *testing.T) {
	invoices := new(mocks.MockInvoiceService)
	svc := service.NewExportService(invoices)
	invoices.On("ListByDateRange", mock.Anything, mock.Anything, mock.Anything).Return(nil, domain.ErrStoreUnavailable)

	var buf bytes.Buffer
	err := svc.ExportInvoices(context.Background(), &buf, service.ExportInput{
		Format: export.FormatCSV,
		From:   day(1),
		To:     day(1),
	})

	assert.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	assert.Zero(t, buf.Len())
}
