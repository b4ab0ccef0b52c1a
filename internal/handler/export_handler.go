package handler

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/export"
	"repairdesk/internal/service"
)

const dateLayout = "2006-01-02"

// ExportHandler serves the invoice register download.
type ExportHandler struct {
	exportService service.ExportService
	now           func() time.Time
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService, now: time.Now}
}

// Invoices handles GET /api/v1/invoices/export
// @Summary Export the invoice register
// @Description Download invoices and D-invoices issued between from and to (inclusive) as CSV or XLSX. Defaults to the current month.
// @Tags invoices
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} file "Register file"
// @Failure 400 {object} ErrorResponseBody "Invalid format or dates"
// @Security BearerAuth
// @Router /invoices/export [get]
func (h *ExportHandler) Invoices(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	now := h.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if raw := c.Query("from"); raw != "" {
		if from, err = time.ParseInLocation(dateLayout, raw, now.Location()); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be a date in YYYY-MM-DD format")
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.ParseInLocation(dateLayout, raw, now.Location()); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be a date in YYYY-MM-DD format")
			return
		}
	}

	// Buffer so a failure can still be reported as a JSON error.
	var buf bytes.Buffer
	input := service.ExportInput{Format: format, From: from, To: to}
	if err := h.exportService.ExportInvoices(c.Request.Context(), &buf, input); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("invoice-register", format, from, to)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(buf.Len()))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
