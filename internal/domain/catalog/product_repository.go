package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for products
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindAll finds all products matching the filter.
	// Supported filter keys: "category" (string), "active" (bool).
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// AdjustStock atomically applies a relative stock change. A negative
	// delta is applied conditionally: when the remaining stock would drop
	// below zero no row is updated and ErrInsufficientStock is returned,
	// so concurrent decrements can never overcommit stock.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int64) error
}
