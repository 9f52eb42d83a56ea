package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apporder "github.com/shop/backend/internal/application/order"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	service    *apporder.Service
	jwtService *auth.JWTService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(service *apporder.Service, jwtService *auth.JWTService) *OrderHandler {
	return &OrderHandler{service: service, jwtService: jwtService}
}

// RegisterRoutes registers order routes
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders", middleware.JWTAuth(h.jwtService))
	{
		orders.POST("", h.Create)
		orders.GET("/my-orders", h.ListMine)
		orders.PATCH("/my-orders/:id/cancel", h.Cancel)
		orders.GET("/:id", h.Get)

		admin := orders.Group("", middleware.RequireAdmin())
		{
			admin.GET("", h.List)
			admin.PATCH("/:id", h.Update)
			admin.PATCH("/:id/status", h.UpdateStatus)
			admin.DELETE("/:id", h.Delete)
		}
	}
}

// Create godoc
// @Summary Place an order
// @Description Reserves stock and creates the order atomically
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body order.CreateOrderRequest true "Order lines and shipping details"
// @Success 201 {object} dto.Response{data=order.OrderResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, resp)
}

// List godoc
// @Summary List all orders
// @Description Admin listing of every order in the system
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]order.OrderResponse}
// @Failure 403 {object} dto.Response
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.FindAll(c.Request.Context(), nil)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListMine godoc
// @Summary List the current user's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Response{data=[]order.OrderResponse}
// @Failure 401 {object} dto.Response
// @Router /orders/my-orders [get]
func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	orders, err := h.service.FindAll(c.Request.Context(), &userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// Get godoc
// @Summary Get an order by ID
// @Description Admins can fetch any order, customers only their own
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response{data=order.OrderResponse}
// @Failure 404 {object} dto.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var scope *uuid.UUID
	if !isAdmin(c) {
		userID, err := getUserID(c)
		if err != nil {
			h.Unauthorized(c, "Invalid authentication context")
			return
		}
		scope = &userID
	}

	resp, err := h.service.FindOne(c.Request.Context(), id, scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Update godoc
// @Summary Update an order
// @Description Admin amendment of shipping address, payment method or paid flag
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body order.UpdateOrderRequest true "Fields to update"
// @Success 200 {object} dto.Response{data=order.OrderResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /orders/{id} [patch]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateStatus godoc
// @Summary Change an order's status
// @Description Moves the order along its lifecycle; cancelling a pending order restores stock
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body order.UpdateOrderStatusRequest true "Target status"
// @Success 200 {object} dto.Response{data=order.OrderResponse}
// @Failure 400 {object} dto.Response
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req apporder.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Cancel godoc
// @Summary Cancel one of the current user's orders
// @Description Only pending orders can be cancelled; reserved stock is restored
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} dto.Response{data=order.OrderResponse}
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /orders/my-orders/{id}/cancel [patch]
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid authentication context")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	resp, err := h.service.Cancel(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @Summary Delete an order
// @Description Admin removal of a delivered or cancelled order
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} dto.Response
// @Failure 422 {object} dto.Response
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
