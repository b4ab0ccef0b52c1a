package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/domain"
	"repairdesk/internal/middleware"
	"repairdesk/internal/service"
)

// QuotationHandler handles quotation endpoints.
type QuotationHandler struct {
	quotationService service.QuotationService
	documentService  service.DocumentService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quotationService service.QuotationService, documentService service.DocumentService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService, documentService: documentService}
}

// Create handles POST /api/v1/quotations
// @Summary Create a quotation
// @Description Price a prospective repair and issue the next quotation number (QUO-YYYY-NNNN). Defaults to a non-GST draft valid for 30 days.
// @Tags quotations
// @Accept json
// @Produce json
// @Param request body service.CreateQuotationInput true "Quotation details"
// @Success 201 {object} Response{data=domain.Quotation} "Quotation created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Quotation number collision persisted after retries"
// @Security BearerAuth
// @Router /quotations [post]
func (h *QuotationHandler) Create(c *gin.Context) {
	var input service.CreateQuotationInput
	if !bindJSON(c, &input) {
		return
	}

	q, err := h.quotationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// List handles GET /api/v1/quotations
// @Summary List quotations
// @Tags quotations
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, sent, accepted, rejected, converted, expired)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Quotation,meta=PagMeta} "Quotations"
// @Security BearerAuth
// @Router /quotations [get]
func (h *QuotationHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	status := domain.QuotationStatus(c.Query("status"))
	if status != "" && status != domain.QuotationConverted && !domain.ValidQuotationStatuses[status] {
		HandleError(c, domain.ErrInvalidStatus)
		return
	}

	quotations, total, err := h.quotationService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotations, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotations/:id
// @Summary Get quotation by ID
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation with parts"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Security BearerAuth
// @Router /quotations/{id} [get]
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	q, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Update handles PATCH /api/v1/quotations/:id
// @Summary Update a quotation
// @Description Changing any pricing field recomputes the totals. Converted quotations cannot be edited.
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.UpdateQuotationInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation updated"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 409 {object} ErrorResponseBody "Quotation already converted"
// @Security BearerAuth
// @Router /quotations/{id} [patch]
func (h *QuotationHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	var input service.UpdateQuotationInput
	if !bindJSON(c, &input) {
		return
	}

	q, err := h.quotationService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// UpdateStatus handles PATCH /api/v1/quotations/:id/status
// @Summary Change quotation status
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} Response{data=domain.Quotation} "Quotation updated"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Failure 409 {object} ErrorResponseBody "Quotation already converted"
// @Security BearerAuth
// @Router /quotations/{id}/status [patch]
func (h *QuotationHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	q, err := h.quotationService.UpdateStatus(c.Request.Context(), id, domain.QuotationStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quotation deleted"})
}

// CreateJobSheet handles POST /api/v1/quotations/:id/create-job-sheet
// @Summary Convert a quotation into a job sheet
// @Description Only accepted quotations convert. A customer is created when the quotation has none.
// @Tags quotations
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Success 201 {object} Response{data=domain.JobSheetDetail} "Job sheet created"
// @Failure 400 {object} ErrorResponseBody "Quotation not accepted"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 409 {object} ErrorResponseBody "Quotation already converted"
// @Security BearerAuth
// @Router /quotations/{id}/create-job-sheet [post]
func (h *QuotationHandler) CreateJobSheet(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	agentID := middleware.AgentID(c)

	js, err := h.quotationService.ConvertToJobSheet(c.Request.Context(), id, agentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, js)
}

// Deliver handles POST /api/v1/quotations/:id/deliver
// @Summary Render and share a quotation
// @Tags quotations
// @Accept json
// @Produce json
// @Param id path string true "Quotation ID (UUID)"
// @Param request body service.DeliverInput false "Optional recipient"
// @Success 200 {object} Response{data=domain.DeliveredDocument} "Document delivered"
// @Failure 404 {object} ErrorResponseBody "Quotation not found"
// @Failure 502 {object} ErrorResponseBody "Storage or email failure"
// @Security BearerAuth
// @Router /quotations/{id}/deliver [post]
func (h *QuotationHandler) Deliver(c *gin.Context) {
	id, ok := parseID(c, "id", "quotation")
	if !ok {
		return
	}

	var input service.DeliverInput
	if !bindOptionalJSON(c, &input) {
		return
	}

	doc, err := h.documentService.DeliverQuotation(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}
