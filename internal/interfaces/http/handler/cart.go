package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/shop/backend/internal/application/cart"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// CartHandler handles shopping cart endpoints. Every route operates on
// the authenticated user's own cart.
type CartHandler struct {
	BaseHandler
	service    *appcart.Service
	jwtService *auth.JWTService
}

// NewCartHandler creates a new cart handler
func NewCartHandler(service *appcart.Service, jwtService *auth.JWTService) *CartHandler {
	return &CartHandler{service: service, jwtService: jwtService}
}

// RegisterRoutes registers cart routes
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	carts := rg.Group("/carts", middleware.JWTAuth(h.jwtService))
	{
		carts.GET("/my-cart", h.Get)
		carts.POST("/add-to-cart", h.AddItem)
		carts.PATCH("/cart-items/:id", h.UpdateItem)
		carts.DELETE("/cart-items/:id", h.RemoveItem)
		carts.DELETE("/clear", h.Clear)
	}
}

// Get godoc
// @Summary Get the current user's cart
// @Description Returns the cart, creating an empty one on first access
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=cart.CartResponse}
// @Failure 401 {object} dto.Response
// @Router /carts/my-cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	resp, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adds the product or merges the quantity into an existing line
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body cart.AddToCartRequest true "Product and quantity"
// @Success 200 {object} dto.Response{data=cart.CartResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /carts/add-to-cart [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	var req appcart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.AddItem(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateItem godoc
// @Summary Update a cart item's quantity
// @Tags carts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Param request body cart.UpdateCartItemRequest true "New quantity"
// @Success 200 {object} dto.Response{data=cart.CartResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /carts/cart-items/{id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	itemID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	var req appcart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RemoveItem godoc
// @Summary Remove an item from the cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item ID"
// @Success 200 {object} dto.Response{data=cart.CartResponse}
// @Failure 404 {object} dto.Response
// @Router /carts/cart-items/{id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	itemID, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid cart item ID")
		return
	}

	resp, err := h.service.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Clear godoc
// @Summary Remove all items from the cart
// @Tags carts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=cart.CartResponse}
// @Failure 401 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Router /carts/clear [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	resp, err := h.service.Clear(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}
