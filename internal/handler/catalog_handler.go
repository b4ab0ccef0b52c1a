package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"repairdesk/internal/service"
)

// CatalogHandler handles product type, brand and model endpoints.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProductTypes handles GET /api/v1/product-types
// @Summary List product types
// @Tags catalog
// @Produce json
// @Success 200 {object} Response{data=[]domain.ProductType} "Product types"
// @Security BearerAuth
// @Router /product-types [get]
func (h *CatalogHandler) ListProductTypes(c *gin.Context) {
	types, err := h.catalogService.ListProductTypes(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, types)
}

// CreateProductType handles POST /api/v1/product-types
// @Summary Create a product type
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body service.CatalogEntryInput true "Product type"
// @Success 201 {object} Response{data=domain.ProductType} "Product type created"
// @Failure 409 {object} ErrorResponseBody "Already exists"
// @Security BearerAuth
// @Router /product-types [post]
func (h *CatalogHandler) CreateProductType(c *gin.Context) {
	var input service.CatalogEntryInput
	if !bindJSON(c, &input) {
		return
	}
	pt, err := h.catalogService.CreateProductType(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, pt)
}

// ListBrands handles GET /api/v1/brands
// @Summary List brands
// @Tags catalog
// @Produce json
// @Param product_type_id query string false "Filter by product type (UUID)"
// @Success 200 {object} Response{data=[]domain.Brand} "Brands"
// @Security BearerAuth
// @Router /brands [get]
func (h *CatalogHandler) ListBrands(c *gin.Context) {
	var productTypeID *uuid.UUID
	if raw := c.Query("product_type_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid product type ID")
			return
		}
		productTypeID = &id
	}

	brands, err := h.catalogService.ListBrands(c.Request.Context(), productTypeID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, brands)
}

// CreateBrand handles POST /api/v1/brands
func (h *CatalogHandler) CreateBrand(c *gin.Context) {
	var input service.BrandInput
	if !bindJSON(c, &input) {
		return
	}
	brand, err := h.catalogService.CreateBrand(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, brand)
}

// ListModels handles GET /api/v1/brands/:id/models
// @Summary List models of a brand
// @Tags catalog
// @Produce json
// @Param id path string true "Brand ID (UUID)"
// @Success 200 {object} Response{data=[]domain.DeviceModel} "Models"
// @Security BearerAuth
// @Router /brands/{id}/models [get]
func (h *CatalogHandler) ListModels(c *gin.Context) {
	brandID, ok := parseID(c, "id", "brand")
	if !ok {
		return
	}
	models, err := h.catalogService.ListModels(c.Request.Context(), brandID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, models)
}

// CreateModel handles POST /api/v1/models
func (h *CatalogHandler) CreateModel(c *gin.Context) {
	var input service.ModelInput
	if !bindJSON(c, &input) {
		return
	}
	model, err := h.catalogService.CreateModel(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, model)
}
