package cart

import (
	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Cart is the per-user pre-order basket. It is the aggregate root for
// cart operations. Its totals are derived state: they must always equal
// the sums over the current items and are recomputed with Recalculate
// inside the same transaction as every item mutation.
type Cart struct {
	shared.BaseEntity
	UserID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_amount"`
	TotalQuantity int64           `gorm:"not null;default:0" json:"total_quantity"`
	Items         []CartItem      `gorm:"foreignKey:CartID" json:"items"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a single product line inside a cart. Price is a snapshot
// of the product's unit price taken at the most recent mutation of the
// item, not at cart creation.
type CartItem struct {
	shared.BaseEntity
	CartID     uuid.UUID        `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity   int64            `gorm:"not null" json:"quantity"`
	Price      decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price"`
	TotalPrice decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Product    *catalog.Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseEntity:    shared.NewBaseEntity(),
		UserID:        userID,
		TotalAmount:   decimal.Zero,
		TotalQuantity: 0,
	}
}

// NewCartItem creates a cart item with the line total derived from the
// unit price snapshot
func NewCartItem(cartID, productID uuid.UUID, quantity int64, unitPrice decimal.Decimal) (*CartItem, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     cartID,
		ProductID:  productID,
		Quantity:   quantity,
		Price:      unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(quantity)),
	}, nil
}

// SetQuantity replaces the item quantity and refreshes the unit price
// snapshot, recomputing the line total
func (i *CartItem) SetQuantity(quantity int64, unitPrice decimal.Decimal) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	i.Quantity = quantity
	i.Price = unitPrice
	i.TotalPrice = unitPrice.Mul(decimal.NewFromInt(quantity))
	i.Touch()
	return nil
}

// Totals is the pure reducer over cart items: it returns the aggregate
// amount and quantity the cart must carry for the given item set.
func Totals(items []CartItem) (decimal.Decimal, int64) {
	amount := decimal.Zero
	var quantity int64
	for _, item := range items {
		amount = amount.Add(item.TotalPrice)
		quantity += item.Quantity
	}
	return amount, quantity
}

// Recalculate replaces the cart aggregates with the reduction over the
// given items
func (c *Cart) Recalculate(items []CartItem) {
	c.TotalAmount, c.TotalQuantity = Totals(items)
	c.Touch()
}
