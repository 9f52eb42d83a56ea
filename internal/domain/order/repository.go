package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence interface for orders
type Repository interface {
	// FindByID finds an order with items and product snapshots loaded.
	// When userID is non-nil the lookup is scoped to that owner and
	// other users' orders yield ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*Order, error)

	// FindAll lists orders newest-first with items and product snapshots
	// loaded, optionally scoped to an owner
	FindAll(ctx context.Context, userID *uuid.UUID) ([]Order, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// Delete removes an order and all of its items
	Delete(ctx context.Context, id uuid.UUID) error
}
