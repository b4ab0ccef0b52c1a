package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Create handles POST /api/v1/payments
// @Summary Record a payment
// @Description Balance is client amount minus discount and advance; the payment is marked paid when nothing is left.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body service.PaymentInput true "Payment details"
// @Success 201 {object} Response{data=domain.Payment} "Payment recorded"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Job sheet not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	var input service.PaymentInput
	if !bindJSON(c, &input) {
		return
	}

	payment, err := h.paymentService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payment)
}

// List handles GET /api/v1/payments
// @Summary List payments
// @Tags payments
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Payment,meta=PagMeta} "Payments"
// @Security BearerAuth
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	payments, total, err := h.paymentService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, payments, PagMeta{Total: total, Offset: offset, Limit: limit})
}
