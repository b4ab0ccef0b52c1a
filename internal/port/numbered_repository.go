package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"repairdesk/internal/domain"
)

// NumberLookup reports whether a document number is already persisted.
// Implementations are backed by a unique constraint on the number column.
type NumberLookup interface {
	NumberExists(ctx context.Context, number string) (bool, error)
}

// JobSheetRepository defines the contract for job sheet persistence.
// Create returns domain.ErrDuplicateNumber when JobID is already taken.
type JobSheetRepository interface {
	NumberLookup
	Create(ctx context.Context, js *domain.JobSheet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JobSheetDetail, error)
	List(ctx context.Context, status domain.JobStatus, offset, limit int) ([]domain.JobSheetDetail, int, error)
	Update(ctx context.Context, js *domain.JobSheet) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.JobStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines the contract for invoice or D-invoice persistence.
// Create stores the header and parts atomically and returns
// domain.ErrDuplicateNumber when the invoice number is already taken.
type InvoiceRepository interface {
	NumberLookup
	Kind() domain.DocumentKind
	Create(ctx context.Context, inv *domain.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)
	List(ctx context.Context, offset, limit int) ([]domain.Invoice, int, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]domain.Invoice, error)
	Update(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuotationRepository defines the contract for quotation persistence.
type QuotationRepository interface {
	NumberLookup
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	List(ctx context.Context, status domain.QuotationStatus, offset, limit int) ([]domain.Quotation, int, error)
	// Update rewrites the header and, when replaceParts is set, the parts.
	Update(ctx context.Context, q *domain.Quotation, replaceParts bool) error
	// TransitionStatus moves a quotation from one status to another and
	// returns domain.ErrNotFound when it is no longer in the from status.
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to domain.QuotationStatus, jobSheetID *uuid.UUID) error
	// LinkCustomer records the customer created for an unlinked quotation and
	// returns domain.ErrNotFound when the quotation is already linked.
	LinkCustomer(ctx context.Context, id, customerID uuid.UUID) error
	ListExpirable(ctx context.Context, now time.Time, limit int) ([]domain.Quotation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
