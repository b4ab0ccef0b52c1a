package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/handler"
	"repairdesk/internal/service"
	"repairdesk/internal/tax"
	"repairdesk/mocks"
)

func TestInvoiceHandler_Create_Success(t *testing.T) {
	mockInv := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockInv, nil)

	jobSheetID := uuid.New()
	inv := &domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-2025-0001", InvoiceType: tax.InvoiceTypeGST}

	mockInv.On("Create", mock.Anything, mock.MatchedBy(func(in service.CreateInvoiceInput) bool {
		return in.JobSheetID == jobSheetID &&
			in.InvoiceType == tax.InvoiceTypeGST &&
			in.ServiceCharge.Equal(decimal.NewFromInt(1180)) &&
			len(in.Parts) == 1
	})).Return(inv, nil)

	w, c := postJSON(t, "/api/v1/invoices", map[string]interface{}{
		"job_sheet_id":   jobSheetID,
		"invoice_type":   "gst",
		"service_charge": "1180",
		"parts": []map[string]interface{}{
			{"part_name": "Battery", "quantity": 1, "unit_price": "500"},
		},
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockInv.AssertExpectations(t)
}

func TestInvoiceHandler_Create_RejectsBadInvoiceType(t *testing.T) {
	mockInv := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockInv, nil)

	w, c := postJSON(t, "/api/v1/invoices", map[string]interface{}{
		"job_sheet_id": uuid.New(),
		"invoice_type": "vat",
	})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockInv.AssertNotCalled(t, "Create")
}

func TestInvoiceHandler_Create_RejectsMalformedMoney(t *testing.T) {
	mockInv := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockInv, nil)

	w, c := postJSON(t, "/api/v1/invoices", map[string]interface{}{
		"job_sheet_id":   uuid.New(),
		"invoice_type":   "gst",
		"service_charge": "twelve",
	})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeResponse(t, w).Error.Code)
	mockInv.AssertNotCalled(t, "Create")
}

func TestInvoiceHandler_Create_RejectsBadGSTIN(t *testing.T) {
	mockInv := new(mocks.MockInvoiceService)
	h := handler.NewInvoiceHandler(mockInv, nil)

	w, c := postJSON(t, "/api/v1/invoices", map[string]interface{}{
		"job_sheet_id": uuid.New(),
		"invoice_type": "gst",
		"gstin":        "NOT-A-GSTIN",
	})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceHandler_Deliver_UsesBookKind(t *testing.T) {
	mockInv := &mocks.MockInvoiceService{BookKind: domain.KindDInvoice}
	mockDocs := new(mocks.MockDocumentService)
	h := handler.NewInvoiceHandler(mockInv, mockDocs)

	id := uuid.New()
	doc := &domain.DeliveredDocument{
		Kind:        domain.KindDInvoice,
		Number:      "DINV-2025-0003",
		DownloadURL: "https://example.test/doc.pdf",
	}
	mockDocs.On("DeliverInvoice", mock.Anything, domain.KindDInvoice, id, service.DeliverInput{}).Return(doc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/d-invoices/"+id.String()+"/deliver", http.NoBody)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Deliver(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockDocs.AssertExpectations(t)
}

func TestInvoiceHandler_Deliver_EmailFailure(t *testing.T) {
	mockDocs := new(mocks.MockDocumentService)
	h := handler.NewInvoiceHandler(new(mocks.MockInvoiceService), mockDocs)

	id := uuid.New()
	mockDocs.On("DeliverInvoice", mock.Anything, domain.KindInvoice, id, service.DeliverInput{Email: "a@b.in"}).
		Return(nil, domain.ErrEmailDeliveryFailed)

	w, c := postJSON(t, "/api/v1/invoices/"+id.String()+"/deliver", map[string]string{"email": "a@b.in"})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Deliver(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "EMAIL_FAILED", decodeResponse(t, w).Error.Code)
}
