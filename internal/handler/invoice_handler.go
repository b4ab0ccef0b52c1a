package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repairdesk/internal/service"
)

// InvoiceHandler serves one invoice book. The router mounts one instance for
// invoices and one for D-invoices.
type InvoiceHandler struct {
	invoiceService  service.InvoiceService
	documentService service.DocumentService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, documentService service.DocumentService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, documentService: documentService}
}

// Create handles POST /api/v1/invoices and POST /api/v1/d-invoices
// @Summary Create an invoice
// @Description Price a completed job sheet and issue the next invoice number. Amounts are GST-inclusive; the CGST/SGST or IGST split follows the customer's state. The job sheet is marked completed.
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.CreateInvoiceInput true "Invoice details"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Failure 409 {object} ErrorResponseBody "Invoice number collision persisted after retries"
// @Failure 503 {object} ErrorResponseBody "Database unavailable"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.CreateInvoiceInput
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices with their parts, newest first
// @Tags invoices
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "Invoices"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	invoices, total, err := h.invoiceService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
// @Summary Get invoice by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice with parts"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Update handles PATCH /api/v1/invoices/:id
// @Summary Update invoice details
// @Description Amounts and numbers are immutable; only descriptive fields can change.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.UpdateInvoiceInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Invoice} "Invoice updated"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [patch]
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var input service.UpdateInvoiceInput
	if !bindJSON(c, &input) {
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Success 200 {object} Response "Invoice deleted"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Security BearerAuth
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": string(h.invoiceService.Kind()) + " deleted"})
}

// Deliver handles POST /api/v1/invoices/:id/deliver
// @Summary Render and share an invoice
// @Description Render the invoice to PDF, store it and return a time-limited download link. When an email is given the link is also sent there.
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID (UUID)"
// @Param request body service.DeliverInput false "Optional recipient"
// @Success 200 {object} Response{data=domain.DeliveredDocument} "Document delivered"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 502 {object} ErrorResponseBody "Storage or email failure"
// @Security BearerAuth
// @Router /invoices/{id}/deliver [post]
func (h *InvoiceHandler) Deliver(c *gin.Context) {
	id, ok := parseID(c, "id", "invoice")
	if !ok {
		return
	}

	var input service.DeliverInput
	if !bindOptionalJSON(c, &input) {
		return
	}

	doc, err := h.documentService.DeliverInvoice(c.Request.Context(), h.invoiceService.Kind(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// bindOptionalJSON binds the body when one was sent.
func bindOptionalJSON(c *gin.Context, dst interface{}) bool {
	if c.Request.ContentLength == 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
		return true
	}
	return bindJSON(c, dst)
}
