package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"repairdesk/internal/domain"
	"repairdesk/internal/export"
	"repairdesk/internal/handler"
	"repairdesk/internal/service"
	"repairdesk/mocks"
)

func exportRequest(h *handler.ExportHandler, query string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/invoices/export?"+query, http.NoBody)
	h.Invoices(c)
	return w
}

func TestExportHandler_Invoices_CSV(t *testing.T) {
	mockExport := &mocks.MockExportService{Payload: []byte("Book,Invoice Number\n")}
	h := handler.NewExportHandler(mockExport)

	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2025, 4, 30, 0, 0, 0, 0, time.Local)
	mockExport.On("ExportInvoices", mock.Anything, mock.Anything, mock.MatchedBy(func(in service.ExportInput) bool {
		return in.Format == export.FormatCSV && in.From.Equal(from) && in.To.Equal(to)
	})).Return(nil)

	w := exportRequest(h, "from=2025-04-01&to=2025-04-30")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "invoice-register_2025-04-01_2025-04-30.csv")
	assert.Equal(t, "Book,Invoice Number\n", w.Body.String())
	mockExport.AssertExpectations(t)
}

func TestExportHandler_Invoices_UnsupportedFormat(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	w := exportRequest(h, "format=pdf")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockExport.AssertNotCalled(t, "ExportInvoices")
}

func TestExportHandler_Invoices_BadDate(t *testing.T) {
	h := handler.NewExportHandler(new(mocks.MockExportService))

	w := exportRequest(h, "from=01-04-2025")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler_Invoices_ReversedRange(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	mockExport.On("ExportInvoices", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrInvalidDateRange)

	w := exportRequest(h, "format=xlsx&from=2025-05-01&to=2025-04-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", decodeResponse(t, w).Error.Code)
}
