// Package uow defines the explicit unit-of-work boundary used by the
// cart and order services. Every multi-step mutation runs inside
// Manager.Do; the repositories handed to the callback are bound to one
// transaction, so a returned error rolls back every write and partial
// state is never observable.
package uow

import (
	"context"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/order"
)

// UnitOfWork exposes repositories bound to a single transaction
type UnitOfWork interface {
	Products() catalog.ProductRepository
	Carts() cart.Repository
	Orders() order.Repository
}

// Manager runs a function inside one atomic transaction. The
// transaction commits when fn returns nil and rolls back on any error,
// which is then returned unchanged to the caller.
type Manager interface {
	Do(ctx context.Context, fn func(ctx context.Context, uow UnitOfWork) error) error
}
