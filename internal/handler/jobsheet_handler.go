package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/domain"
	"repairdesk/internal/middleware"
	"repairdesk/internal/service"
)

// JobSheetHandler handles job sheet endpoints.
type JobSheetHandler struct {
	jobSheetService service.JobSheetService
	paymentService  service.PaymentService
}

// NewJobSheetHandler creates a new JobSheetHandler.
func NewJobSheetHandler(jobSheetService service.JobSheetService, paymentService service.PaymentService) *JobSheetHandler {
	return &JobSheetHandler{jobSheetService: jobSheetService, paymentService: paymentService}
}

// Create handles POST /api/v1/job-sheets
// @Summary Create a job sheet
// @Description Register a device for repair. The job number (JS-YYYY-NNN) is allocated server-side.
// @Tags job-sheets
// @Accept json
// @Produce json
// @Param request body service.CreateJobSheetInput true "Job sheet details"
// @Success 201 {object} Response{data=domain.JobSheetDetail} "Job sheet created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Customer not found"
// @Failure 409 {object} ErrorResponseBody "Job number collision persisted after retries"
// @Failure 503 {object} ErrorResponseBody "Database unavailable"
// @Security BearerAuth
// @Router /job-sheets [post]
func (h *JobSheetHandler) Create(c *gin.Context) {
	var input service.CreateJobSheetInput
	if !bindJSON(c, &input) {
		return
	}

	agentID := middleware.AgentID(c)

	js, err := h.jobSheetService.Create(c.Request.Context(), input, agentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, js)
}

// List handles GET /api/v1/job-sheets
// @Summary List job sheets
// @Description List job sheets newest first, optionally filtered by status
// @Tags job-sheets
// @Produce json
// @Param status query string false "Filter by status" Enums(pending, in_progress, completed, delivered, cancelled)
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.JobSheetDetail,meta=PagMeta} "List of job sheets"
// @Security BearerAuth
// @Router /job-sheets [get]
func (h *JobSheetHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	status := domain.JobStatus(c.Query("status"))
	if status != "" && !domain.ValidJobStatuses[status] {
		HandleError(c, domain.ErrInvalidStatus)
		return
	}

	sheets, total, err := h.jobSheetService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, sheets, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/job-sheets/:id
// @Summary Get job sheet by ID
// @Tags job-sheets
// @Produce json
// @Param id path string true "Job sheet ID (UUID)"
// @Success 200 {object} Response{data=domain.JobSheetDetail} "Job sheet details"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Security BearerAuth
// @Router /job-sheets/{id} [get]
func (h *JobSheetHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "job sheet")
	if !ok {
		return
	}

	js, err := h.jobSheetService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, js)
}

// Update handles PATCH /api/v1/job-sheets/:id
// @Summary Update a job sheet
// @Description Assigning a technician to a pending job starts it; clearing the technician of an in-progress job returns it to pending.
// @Tags job-sheets
// @Accept json
// @Produce json
// @Param id path string true "Job sheet ID (UUID)"
// @Param request body service.UpdateJobSheetInput true "Fields to update"
// @Success 200 {object} Response{data=domain.JobSheetDetail} "Job sheet updated"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Security BearerAuth
// @Router /job-sheets/{id} [patch]
func (h *JobSheetHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "job sheet")
	if !ok {
		return
	}

	var input service.UpdateJobSheetInput
	if !bindJSON(c, &input) {
		return
	}

	js, err := h.jobSheetService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, js)
}

// UpdateStatus handles PATCH /api/v1/job-sheets/:id/status
// @Summary Change job sheet status
// @Tags job-sheets
// @Accept json
// @Produce json
// @Param id path string true "Job sheet ID (UUID)"
// @Param request body StatusRequest true "New status"
// @Success 200 {object} Response{data=domain.JobSheetDetail} "Job sheet updated"
// @Failure 400 {object} ErrorResponseBody "Invalid status"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Security BearerAuth
// @Router /job-sheets/{id}/status [patch]
func (h *JobSheetHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id", "job sheet")
	if !ok {
		return
	}

	var req StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.jobSheetService.UpdateStatus(ctx, id, domain.JobStatus(req.Status)); err != nil {
		HandleError(c, err)
		return
	}

	js, err := h.jobSheetService.GetByID(ctx, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, js)
}

// Delete handles DELETE /api/v1/job-sheets/:id
// @Summary Delete a job sheet
// @Tags job-sheets
// @Produce json
// @Param id path string true "Job sheet ID (UUID)"
// @Success 200 {object} Response "Job sheet deleted"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Failure 409 {object} ErrorResponseBody "Job sheet has invoices or payments"
// @Security BearerAuth
// @Router /job-sheets/{id} [delete]
func (h *JobSheetHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "job sheet")
	if !ok {
		return
	}

	if err := h.jobSheetService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "job sheet deleted"})
}

// ListPayments handles GET /api/v1/job-sheets/:id/payments
// @Summary List payments for a job sheet
// @Tags job-sheets
// @Produce json
// @Param id path string true "Job sheet ID (UUID)"
// @Success 200 {object} Response{data=[]domain.Payment} "Payments"
// @Security BearerAuth
// @Router /job-sheets/{id}/payments [get]
func (h *JobSheetHandler) ListPayments(c *gin.Context) {
	id, ok := parseID(c, "id", "job sheet")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByJobSheet(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}
