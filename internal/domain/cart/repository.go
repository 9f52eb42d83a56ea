package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for carts and their items
type Repository interface {
	// FindByUser finds a user's cart with items and product snapshots
	// loaded, or ErrNotFound when the user has no cart yet
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save creates or updates a cart's own row (not its items)
	Save(ctx context.Context, cart *Cart) error

	// FindItem finds an item by ID scoped to a cart
	FindItem(ctx context.Context, cartID, itemID uuid.UUID) (*CartItem, error)

	// FindItemByProduct finds the item holding a given product, or
	// ErrNotFound when the product is not in the cart
	FindItemByProduct(ctx context.Context, cartID, productID uuid.UUID) (*CartItem, error)

	// ItemsByCart lists all current items of a cart
	ItemsByCart(ctx context.Context, cartID uuid.UUID) ([]CartItem, error)

	// SaveItem creates or updates a cart item
	SaveItem(ctx context.Context, item *CartItem) error

	// DeleteItem removes a single item
	DeleteItem(ctx context.Context, itemID uuid.UUID) error

	// DeleteItems removes every item of a cart
	DeleteItems(ctx context.Context, cartID uuid.UUID) error
}
