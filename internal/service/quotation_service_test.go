package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repairdesk/internal/domain"
	"repairdesk/internal/service"
	"repairdesk/internal/tax"
	"repairdesk/mocks"
)

type quotationFixture struct {
	repo      *mocks.MockQuotationRepo
	customers *mocks.MockCustomerRepo
	jobSheets *mocks.MockJobSheetService
	svc       service.QuotationService
}

func newQuotationFixture() quotationFixture {
	f := quotationFixture{
		repo:      new(mocks.MockQuotationRepo),
		customers: new(mocks.MockCustomerRepo),
		jobSheets: new(mocks.MockJobSheetService),
	}
	f.svc = service.NewQuotationService(f.repo, f.customers, f.jobSheets, testPricing(), testNumbering(), zap.NewNop())
	return f
}

func TestQuotationService_Create_Defaults(t *testing.T) {
	f := newQuotationFixture()
	f.repo.On("NumberExists", mock.Anything, "QUO-2025-0001").Return(false, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Quotation")).Return(nil)

	q, err := f.svc.Create(context.Background(), service.CreateQuotationInput{
		CustomerName:    "Lakshmi",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 MG Road",
		ServiceCharge:   dec("400"),
		Discount:        dec("100"),
		Parts: []service.PartInput{
			{PartName: "Battery", Quantity: 1, UnitPrice: dec("1200")},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "QUO-2025-0001", q.QuotationNumber)
	assert.Equal(t, tax.InvoiceTypeNonGST, q.InvoiceType)
	assert.Equal(t, service.DefaultValidityDays, q.ValidityDays)
	assert.Equal(t, domain.QuotationDraft, q.Status)
	assert.True(t, q.TotalAmount.Equal(dec("1500")))
	assert.True(t, q.PartsTotal.Equal(dec("1200")))
	assert.True(t, q.GSTAmount.IsZero())
	require.Len(t, q.Parts, 1)
}

func TestQuotationService_Create_RoundsToPaise(t *testing.T) {
	f := newQuotationFixture()
	f.repo.On("NumberExists", mock.Anything, mock.Anything).Return(false, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	q, err := f.svc.Create(context.Background(), service.CreateQuotationInput{
		CustomerName:    "Lakshmi",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 MG Road",
		State:           "Andhra Pradesh",
		ServiceCharge:   dec("100"),
		InvoiceType:     tax.InvoiceTypeGST,
	})

	require.NoError(t, err)
	assert.True(t, q.Subtotal.Equal(dec("84.75")), "subtotal %s", q.Subtotal)
	assert.True(t, q.CGSTAmount.Add(q.SGSTAmount).Equal(q.GSTAmount))
	assert.True(t, q.GSTAmount.Equal(dec("15.25")))
}

func TestQuotationService_Update_Reprices(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	stored := &domain.Quotation{
		ID:            id,
		State:         "Andhra Pradesh",
		ServiceCharge: dec("1180"),
		InvoiceType:   tax.InvoiceTypeNonGST,
		GSTRate:       dec("18"),
		Status:        domain.QuotationSent,
	}
	f.repo.On("GetByID", mock.Anything, id).Return(stored, nil)
	f.repo.On("Update", mock.Anything, stored, false).Return(nil)

	gst := tax.InvoiceTypeGST
	q, err := f.svc.Update(context.Background(), id, service.UpdateQuotationInput{InvoiceType: &gst})

	require.NoError(t, err)
	assert.True(t, q.Subtotal.Equal(dec("1000")))
	assert.True(t, q.CGSTAmount.Equal(dec("90")))
	assert.True(t, q.SGSTAmount.Equal(dec("90")))
	f.repo.AssertExpectations(t)
}

func TestQuotationService_Update_Converted(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, Status: domain.QuotationConverted}, nil)

	remarks := "call first"
	_, err := f.svc.Update(context.Background(), id, service.UpdateQuotationInput{Remarks: &remarks})

	assert.ErrorIs(t, err, domain.ErrQuotationConverted)
	f.repo.AssertNotCalled(t, "Update")
}

func TestQuotationService_UpdateStatus(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, Status: domain.QuotationDraft}, nil)
	f.repo.On("TransitionStatus", mock.Anything, id, domain.QuotationDraft, domain.QuotationSent, (*uuid.UUID)(nil)).Return(nil)

	q, err := f.svc.UpdateStatus(context.Background(), id, domain.QuotationSent)

	require.NoError(t, err)
	assert.Equal(t, domain.QuotationSent, q.Status)

	_, err = f.svc.UpdateStatus(context.Background(), id, domain.QuotationConverted)
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestQuotationService_ConvertToJobSheet_CreatesCustomer(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	agentID := uuid.New()
	customerID := uuid.New()
	q := &domain.Quotation{
		ID:              id,
		QuotationNumber: "QUO-2025-0004",
		CustomerName:    "Lakshmi",
		CustomerPhone:   "9876543210",
		CustomerAddress: "12 MG Road",
		State:           "AP",
		ModelNumber:     "X200",
		Status:          domain.QuotationAccepted,
	}
	q.TotalAmount = dec("2500")
	js := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: uuid.New(), JobID: "JS-2025-021"}}

	f.repo.On("GetByID", mock.Anything, id).Return(q, nil)
	f.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Customer) bool {
		return c.Name == "Lakshmi" && c.Phone == "9876543210" && c.State == "AP"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = customerID
	}).Return(nil)
	f.repo.On("LinkCustomer", mock.Anything, id, customerID).Return(nil).Once()
	f.jobSheets.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateJobSheetInput) bool {
		return in.CustomerID == customerID &&
			in.JobClassification == domain.JobClassificationQuotation &&
			in.CustomerComplaint == "Converted from Quotation: QUO-2025-0004" &&
			in.EstimatedAmount.Equal(dec("2500")) &&
			*in.QuotationID == id
	}), &agentID).Return(js, nil)
	f.repo.On("TransitionStatus", mock.Anything, id, domain.QuotationAccepted, domain.QuotationConverted, &js.ID).Return(nil)

	got, err := f.svc.ConvertToJobSheet(context.Background(), id, &agentID)

	require.NoError(t, err)
	assert.Equal(t, "JS-2025-021", got.JobID)
	f.customers.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.jobSheets.AssertExpectations(t)
}

func TestQuotationService_ConvertToJobSheet_LinksCustomerBeforeJobSheet(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	customerID := uuid.New()
	q := &domain.Quotation{ID: id, CustomerName: "Lakshmi", CustomerPhone: "9876543210", Status: domain.QuotationAccepted}

	f.repo.On("GetByID", mock.Anything, id).Return(q, nil)
	f.customers.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = customerID
	}).Return(nil).Once()
	f.repo.On("LinkCustomer", mock.Anything, id, customerID).Return(nil).Once()
	f.jobSheets.On("Create", mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(nil, domain.ErrStoreUnavailable).Once()

	_, err := f.svc.ConvertToJobSheet(context.Background(), id, nil)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	f.repo.AssertExpectations(t)
	f.customers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestQuotationService_ConvertToJobSheet_ReusesConcurrentLink(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	ours := uuid.New()
	theirs := uuid.New()
	js := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: uuid.New(), JobID: "JS-2025-030"}}

	f.repo.On("GetByID", mock.Anything, id).
		Return(&domain.Quotation{ID: id, Status: domain.QuotationAccepted}, nil).Once()
	f.repo.On("GetByID", mock.Anything, id).
		Return(&domain.Quotation{ID: id, CustomerID: &theirs, Status: domain.QuotationAccepted}, nil).Once()
	f.customers.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Customer).ID = ours
	}).Return(nil).Once()
	f.repo.On("LinkCustomer", mock.Anything, id, ours).Return(domain.ErrNotFound).Once()
	f.customers.On("Delete", mock.Anything, ours).Return(nil).Once()
	f.jobSheets.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateJobSheetInput) bool {
		return in.CustomerID == theirs
	}), (*uuid.UUID)(nil)).Return(js, nil).Once()
	f.repo.On("TransitionStatus", mock.Anything, id, domain.QuotationAccepted, domain.QuotationConverted, &js.ID).Return(nil)

	got, err := f.svc.ConvertToJobSheet(context.Background(), id, nil)

	require.NoError(t, err)
	assert.Equal(t, "JS-2025-030", got.JobID)
	f.customers.AssertExpectations(t)
	f.jobSheets.AssertExpectations(t)
}

func TestQuotationService_ConvertToJobSheet_RequiresAccepted(t *testing.T) {
	tests := []struct {
		name   string
		status domain.QuotationStatus
		want   error
	}{
		{"draft", domain.QuotationDraft, domain.ErrQuotationNotAccepted},
		{"sent", domain.QuotationSent, domain.ErrQuotationNotAccepted},
		{"expired", domain.QuotationExpired, domain.ErrQuotationNotAccepted},
		{"converted", domain.QuotationConverted, domain.ErrQuotationConverted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuotationFixture()
			id := uuid.New()
			f.repo.On("GetByID", mock.Anything, id).Return(&domain.Quotation{ID: id, Status: tt.status}, nil)

			_, err := f.svc.ConvertToJobSheet(context.Background(), id, nil)

			assert.ErrorIs(t, err, tt.want)
			f.jobSheets.AssertNotCalled(t, "Create")
		})
	}
}

func TestQuotationService_ConvertToJobSheet_LostRaceRemovesJobSheet(t *testing.T) {
	f := newQuotationFixture()
	id := uuid.New()
	customerID := uuid.New()
	q := &domain.Quotation{ID: id, CustomerID: &customerID, Status: domain.QuotationAccepted}
	js := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: uuid.New(), JobID: "JS-2025-022"}}

	f.repo.On("GetByID", mock.Anything, id).Return(q, nil)
	f.jobSheets.On("Create", mock.Anything, mock.Anything, (*uuid.UUID)(nil)).Return(js, nil)
	f.repo.On("TransitionStatus", mock.Anything, id, domain.QuotationAccepted, domain.QuotationConverted, &js.ID).
		Return(domain.ErrNotFound)
	f.jobSheets.On("Delete", mock.Anything, js.ID).Return(nil).Once()

	_, err := f.svc.ConvertToJobSheet(context.Background(), id, nil)

	assert.ErrorIs(t, err, domain.ErrQuotationConverted)
	f.jobSheets.AssertExpectations(t)
	f.customers.AssertNotCalled(t, "Create")
}

func TestQuotationService_ExpireStale(t *testing.T) {
	f := newQuotationFixture()
	now := fixedClock()
	a := domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0001"}
	b := domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0002"}
	c := domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0003"}

	f.repo.On("ListExpirable", mock.Anything, now, 50).Return([]domain.Quotation{a, b, c}, nil)
	f.repo.On("TransitionStatus", mock.Anything, a.ID, domain.QuotationSent, domain.QuotationExpired, (*uuid.UUID)(nil)).Return(nil)
	// b was accepted in between and no longer matches.
	f.repo.On("TransitionStatus", mock.Anything, b.ID, domain.QuotationSent, domain.QuotationExpired, (*uuid.UUID)(nil)).Return(domain.ErrNotFound)
	f.repo.On("TransitionStatus", mock.Anything, c.ID, domain.QuotationSent, domain.QuotationExpired, (*uuid.UUID)(nil)).Return(nil)

	n, err := f.svc.ExpireStale(context.Background(), now, 50)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestQuotationService_ExpireStale_StopsOnError(t *testing.T) {
	f := newQuotationFixture()
	now := fixedClock().Add(time.Hour)
	a := domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0001"}
	b := domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0002"}

	f.repo.On("ListExpirable", mock.Anything, now, 10).Return([]domain.Quotation{a, b}, nil)
	f.repo.On("TransitionStatus", mock.Anything, a.ID, domain.QuotationSent, domain.QuotationExpired, (*uuid.UUID)(nil)).
		Return(errors.New("connection refused"))

	n, err := f.svc.ExpireStale(context.Background(), now, 10)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUO-2025-0001")
	assert.Equal(t, 0, n)
}
