package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/service"
)

// TechnicianHandler handles technician endpoints.
type TechnicianHandler struct {
	technicianService service.TechnicianService
}

// NewTechnicianHandler creates a new TechnicianHandler.
func NewTechnicianHandler(technicianService service.TechnicianService) *TechnicianHandler {
	return &TechnicianHandler{technicianService: technicianService}
}

// Create handles POST /api/v1/technicians
// @Summary Create a technician
// @Tags technicians
// @Accept json
// @Produce json
// @Param request body service.TechnicianInput true "Technician details"
// @Success 201 {object} Response{data=domain.Technician} "Technician created"
// @Failure 409 {object} ErrorResponseBody "Employee ID already exists"
// @Security BearerAuth
// @Router /technicians [post]
func (h *TechnicianHandler) Create(c *gin.Context) {
	var input service.TechnicianInput
	if !bindJSON(c, &input) {
		return
	}

	tech, err := h.technicianService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tech)
}

// List handles GET /api/v1/technicians
// @Summary List technicians
// @Tags technicians
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Technician,meta=PagMeta} "List of technicians"
// @Security BearerAuth
// @Router /technicians [get]
func (h *TechnicianHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	techs, total, err := h.technicianService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, techs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/technicians/:id
func (h *TechnicianHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "technician")
	if !ok {
		return
	}

	tech, err := h.technicianService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tech)
}

// Update handles PATCH /api/v1/technicians/:id
// @Summary Update a technician
// @Tags technicians
// @Accept json
// @Produce json
// @Param id path string true "Technician ID (UUID)"
// @Param request body service.UpdateTechnicianInput true "Fields to update"
// @Success 200 {object} Response{data=domain.Technician} "Technician updated"
// @Failure 404 {object} ErrorResponseBody "Technician not found"
// @Security BearerAuth
// @Router /technicians/{id} [patch]
func (h *TechnicianHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "technician")
	if !ok {
		return
	}

	var input service.UpdateTechnicianInput
	if !bindJSON(c, &input) {
		return
	}

	tech, err := h.technicianService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tech)
}

// Delete handles DELETE /api/v1/technicians/:id
func (h *TechnicianHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "technician")
	if !ok {
		return
	}

	if err := h.technicianService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "technician deleted"})
}
