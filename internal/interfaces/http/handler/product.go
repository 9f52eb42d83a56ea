package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	service    *appcatalog.ProductService
	jwtService *auth.JWTService
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *appcatalog.ProductService, jwtService *auth.JWTService) *ProductHandler {
	return &ProductHandler{service: service, jwtService: jwtService}
}

// RegisterRoutes registers product routes. Reads are public, writes
// require the admin role.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	{
		products.GET("", h.List)
		products.GET("/:id", h.Get)

		admin := products.Group("", middleware.JWTAuth(h.jwtService), middleware.RequireAdmin())
		{
			admin.POST("", h.Create)
			admin.PATCH("/:id", h.Update)
			admin.PATCH("/:id/stock", h.UpdateStock)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// List godoc
// @Summary List products
// @Description Returns a paginated product listing with optional search and filters
// @Tags products
// @Produce json
// @Param search query string false "Search in name and category"
// @Param category query string false "Filter by category"
// @Param active query bool false "Filter by active flag"
// @Param in_stock query bool false "Only products with stock available"
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} dto.Response{data=[]catalog.ProductResponse}
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter appcatalog.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Get godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 404 {object} dto.Response
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body catalog.CreateProductRequest true "Product data"
// @Success 201 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 400 {object} dto.Response
// @Failure 403 {object} dto.Response
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, product)
}

// Update godoc
// @Summary Update a product
// @Description Applies a partial update to the product
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body catalog.UpdateProductRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /products/{id} [patch]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// UpdateStock godoc
// @Summary Set a product's stock level
// @Description Sets stock to an absolute value, independent of order activity
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body catalog.UpdateStockRequest true "New stock level"
// @Success 200 {object} dto.Response{data=catalog.ProductResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /products/{id}/stock [patch]
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req appcatalog.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.service.UpdateStock(c.Request.Context(), id, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.Response
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
