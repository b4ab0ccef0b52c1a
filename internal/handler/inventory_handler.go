package handler

import (
	"github.com/gin-gonic/gin"

	"repairdesk/internal/service"
)

// InventoryHandler handles stock endpoints.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// Create handles POST /api/v1/inventory
// @Summary Add a stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body service.InventoryInput true "Stock item"
// @Success 201 {object} Response{data=service.InventoryView} "Item created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /inventory [post]
func (h *InventoryHandler) Create(c *gin.Context) {
	var input service.InventoryInput
	if !bindJSON(c, &input) {
		return
	}

	item, err := h.inventoryService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/inventory
// @Summary List stock items
// @Description List stock items ordered by name with derived stock status
// @Tags inventory
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]service.InventoryView,meta=PagMeta} "Stock items"
// @Security BearerAuth
// @Router /inventory [get]
func (h *InventoryHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	items, total, err := h.inventoryService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id", "inventory")
	if !ok {
		return
	}

	item, err := h.inventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Update handles PATCH /api/v1/inventory/:id
// @Summary Update a stock item
// @Tags inventory
// @Accept json
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param request body service.UpdateInventoryInput true "Fields to update"
// @Success 200 {object} Response{data=service.InventoryView} "Item updated"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /inventory/{id} [patch]
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "inventory")
	if !ok {
		return
	}

	var input service.UpdateInventoryInput
	if !bindJSON(c, &input) {
		return
	}

	item, err := h.inventoryService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Delete handles DELETE /api/v1/inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "inventory")
	if !ok {
		return
	}

	if err := h.inventoryService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "inventory item deleted"})
}
