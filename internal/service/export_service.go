package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"repairdesk/internal/domain"
	"repairdesk/internal/export"
)

// ExportInput selects the register to export. To is inclusive.
type ExportInput struct {
	Format export.Format
	From   time.Time
	To     time.Time
}

// ExportService writes the combined invoice and D-invoice register.
type ExportService interface {
	ExportInvoices(ctx context.Context, w io.Writer, input ExportInput) error
}

type exportService struct {
	books []InvoiceService
}

// NewExportService creates an ExportService over the given invoice books.
func NewExportService(books ...InvoiceService) ExportService {
	return &exportService{books: books}
}

func (s *exportService) ExportInvoices(ctx context.Context, w io.Writer, input ExportInput) error {
	if input.To.Before(input.From) {
		return domain.ErrInvalidDateRange
	}
	// Dates are whole days; extend the end to the following midnight.
	end := input.To.AddDate(0, 0, 1)

	var merged []domain.Invoice
	for _, book := range s.books {
		invoices, err := book.ListByDateRange(ctx, input.From, end)
		if err != nil {
			return fmt.Errorf("exportService.ExportInvoices: %w", err)
		}
		merged = append(merged, invoices...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].InvoiceDate.Before(merged[j].InvoiceDate)
	})
	return export.Write(w, input.Format, merged)
}
