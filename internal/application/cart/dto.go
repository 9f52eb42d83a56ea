package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shop/backend/internal/domain/cart"
)

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents a request to change a cart item's quantity
type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// CartItemResponse represents a cart line in API responses
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Image       string          `json:"image,omitempty"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"user_id"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	TotalQuantity int64              `json:"total_quantity"`
	Items         []CartItemResponse `json:"items"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// ToCartItemResponse converts a domain CartItem to CartItemResponse
func ToCartItemResponse(item *cart.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Price:      item.Price,
		TotalPrice: item.TotalPrice,
	}
	if item.Product != nil {
		resp.ProductName = item.Product.Name
		resp.Image = item.Product.Image
	}
	return resp
}

// ToCartResponse converts a domain Cart to CartResponse
func ToCartResponse(c *cart.Cart) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	for i := range c.Items {
		items[i] = ToCartItemResponse(&c.Items[i])
	}
	return CartResponse{
		ID:            c.ID,
		UserID:        c.UserID,
		TotalAmount:   c.TotalAmount,
		TotalQuantity: c.TotalQuantity,
		Items:         items,
		UpdatedAt:     c.UpdatedAt,
	}
}
