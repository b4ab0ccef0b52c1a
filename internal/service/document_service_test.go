package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"repairdesk/internal/domain"
	"repairdesk/internal/port"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

type documentFixture struct {
	invoices   *mocks.MockInvoiceRepo
	dinvoices  *mocks.MockInvoiceRepo
	jobSheets  *mocks.MockJobSheetRepo
	customers  *mocks.MockCustomerRepo
	quotations *mocks.MockQuotationRepo
	renderer   *mocks.MockDocumentRenderer
	storage    *mocks.MockObjectStorage
	email      *mocks.MockEmailSender
	svc        service.DocumentService
}

func newDocumentFixture() documentFixture {
	f := documentFixture{
		invoices:   new(mocks.MockInvoiceRepo),
		dinvoices:  &mocks.MockInvoiceRepo{BookKind: domain.KindDInvoice},
		jobSheets:  new(mocks.MockJobSheetRepo),
		customers:  new(mocks.MockCustomerRepo),
		quotations: new(mocks.MockQuotationRepo),
		renderer:   new(mocks.MockDocumentRenderer),
		storage:    new(mocks.MockObjectStorage),
		email:      new(mocks.MockEmailSender),
	}
	f.svc = service.NewDocumentService(
		[]port.InvoiceRepository{f.invoices, f.dinvoices},
		f.jobSheets, f.customers, f.quotations,
		f.renderer, f.storage, f.email,
		service.DocumentDeliveryConfig{
			Bucket:        "repairdesk-docs",
			PresignExpiry: 900,
			Shop:          port.ShopProfile{Name: "Sri Sai Mobile Care"},
		},
		zap.NewNop(),
	)
	return f
}

// expectInvoice wires the lookups for a billed job and returns the invoice ID.
func (f documentFixture) expectInvoice(repo *mocks.MockInvoiceRepo, number string) uuid.UUID {
	inv := &domain.Invoice{ID: uuid.New(), InvoiceNumber: number, JobSheetID: uuid.New()}
	customer := &domain.Customer{ID: uuid.New(), Name: "Ravi Kumar"}
	js := &domain.JobSheetDetail{JobSheet: domain.JobSheet{ID: inv.JobSheetID, CustomerID: customer.ID}}

	repo.On("GetByID", mock.Anything, inv.ID).Return(inv, nil)
	f.jobSheets.On("GetByID", mock.Anything, inv.JobSheetID).Return(js, nil)
	f.customers.On("GetByID", mock.Anything, customer.ID).Return(customer, nil)
	f.renderer.On("RenderInvoice", mock.MatchedBy(func(v port.InvoiceView) bool {
		return v.Invoice.InvoiceNumber == number && v.Customer.Name == "Ravi Kumar" && v.Shop.Name == "Sri Sai Mobile Care"
	})).Return([]byte("%PDF-1.4"), nil)
	return inv.ID
}

func TestDocumentService_DeliverInvoice_LinkOnly(t *testing.T) {
	f := newDocumentFixture()
	id := f.expectInvoice(f.invoices, "INV-2025-0012")

	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		body, _ := io.ReadAll(in.Body)
		return in.Bucket == "repairdesk-docs" &&
			in.Key == "documents/invoice/INV-2025-0012.pdf" &&
			in.ContentType == "application/pdf" &&
			in.Size == 8 && string(body) == "%PDF-1.4"
	})).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "repairdesk-docs", "documents/invoice/INV-2025-0012.pdf", int64(900)).
		Return("https://s3.example/inv", nil)

	doc, err := f.svc.DeliverInvoice(context.Background(), domain.KindInvoice, id, service.DeliverInput{})

	require.NoError(t, err)
	assert.Equal(t, "INV-2025-0012", doc.Number)
	assert.Equal(t, "https://s3.example/inv", doc.DownloadURL)
	assert.Empty(t, doc.EmailedTo)
	f.email.AssertNotCalled(t, "SendDocumentLink")
}

func TestDocumentService_DeliverInvoice_EmailsDInvoice(t *testing.T) {
	f := newDocumentFixture()
	id := f.expectInvoice(f.dinvoices, "DINV-2025-0003")

	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "repairdesk-docs", "documents/dinvoice/DINV-2025-0003.pdf", int64(900)).
		Return("https://s3.example/dinv", nil)
	f.email.On("SendDocumentLink", mock.Anything, port.DocumentEmail{
		ToEmail:     "ravi@example.com",
		ToName:      "Ravi Kumar",
		DocLabel:    "D-Invoice",
		Number:      "DINV-2025-0003",
		DownloadURL: "https://s3.example/dinv",
	}).Return(nil)

	doc, err := f.svc.DeliverInvoice(context.Background(), domain.KindDInvoice, id, service.DeliverInput{Email: "ravi@example.com"})

	require.NoError(t, err)
	assert.Equal(t, domain.KindDInvoice, doc.Kind)
	assert.Equal(t, "ravi@example.com", doc.EmailedTo)
	f.email.AssertExpectations(t)
}

func TestDocumentService_DeliverInvoice_UploadFailure(t *testing.T) {
	f := newDocumentFixture()
	id := f.expectInvoice(f.invoices, "INV-2025-0013")
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := f.svc.DeliverInvoice(context.Background(), domain.KindInvoice, id, service.DeliverInput{})

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	f.storage.AssertNotCalled(t, "GetPresignedURL")
}

func TestDocumentService_DeliverInvoice_EmailFailure(t *testing.T) {
	f := newDocumentFixture()
	id := f.expectInvoice(f.invoices, "INV-2025-0014")
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://s3.example/x", nil)
	f.email.On("SendDocumentLink", mock.Anything, mock.Anything).Return(errors.New("throttled"))

	_, err := f.svc.DeliverInvoice(context.Background(), domain.KindInvoice, id, service.DeliverInput{Email: "a@b.co"})

	assert.ErrorIs(t, err, domain.ErrEmailDeliveryFailed)
}

func TestDocumentService_DeliverInvoice_UnknownBook(t *testing.T) {
	f := newDocumentFixture()

	_, err := f.svc.DeliverInvoice(context.Background(), domain.KindQuotation, uuid.New(), service.DeliverInput{})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_DeliverQuotation(t *testing.T) {
	f := newDocumentFixture()
	q := &domain.Quotation{ID: uuid.New(), QuotationNumber: "QUO-2025-0009", CustomerName: "Lakshmi"}

	f.quotations.On("GetByID", mock.Anything, q.ID).Return(q, nil)
	f.renderer.On("RenderQuotation", mock.Anything, *q).Return([]byte("%PDF"), nil)
	f.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Key == "documents/quotation/QUO-2025-0009.pdf"
	})).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, "repairdesk-docs", "documents/quotation/QUO-2025-0009.pdf", int64(900)).
		Return("https://s3.example/quo", nil)
	f.email.On("SendDocumentLink", mock.Anything, mock.MatchedBy(func(m port.DocumentEmail) bool {
		return m.ToName == "Lakshmi" && m.DocLabel == "Quotation"
	})).Return(nil)

	doc, err := f.svc.DeliverQuotation(context.Background(), q.ID, service.DeliverInput{Email: "l@example.com"})

	require.NoError(t, err)
	assert.Equal(t, domain.KindQuotation, doc.Kind)
	assert.Equal(t, "documents/quotation/QUO-2025-0009.pdf", doc.S3Key)
}

func TestDocumentKey(t *testing.T) {
	assert.Equal(t, "documents/dinvoice/DINV-2025-0001.pdf", service.DocumentKey(domain.KindDInvoice, "DINV-2025-0001"))
}

func TestDocumentService_DeliverInvoice_PresignFailureRemovesUpload(t *testing.T) {
	f := newDocumentFixture()
	id := f.expectInvoice(f.invoices, "INV-2025-0015")
	f.storage.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	f.storage.On("GetPresignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("expired credentials"))
	f.storage.On("Delete", mock.Anything, "repairdesk-docs", "documents/invoice/INV-2025-0015.pdf").Return(nil).Once()

	_, err := f.svc.DeliverInvoice(context.Background(), domain.KindInvoice, id, service.DeliverInput{})

	require.Error(t, err)
	f.storage.AssertExpectations(t)
}
