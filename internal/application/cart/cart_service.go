package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
	"github.com/shop/backend/internal/domain/uow"
)

// Service handles shopping cart operations. Every mutation runs inside a
// unit of work so item writes and cart totals always commit together.
type Service struct {
	manager uow.Manager
}

// NewService creates a new cart Service
func NewService(manager uow.Manager) *Service {
	return &Service{manager: manager}
}

// Get returns the user's cart, creating an empty one on first access
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	var resp *CartResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		c, err := s.getOrCreate(ctx, u, userID)
		if err != nil {
			return err
		}
		r := ToCartResponse(c)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// AddItem adds a product to the user's cart. Adding a product already in
// the cart merges quantities, and the stock check runs against the merged
// total so the cart never holds more than the shelf.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddToCartRequest) (*CartResponse, error) {
	var resp *CartResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		c, err := s.getOrCreate(ctx, u, userID)
		if err != nil {
			return err
		}

		product, err := u.Products().FindByID(ctx, req.ProductID)
		if err != nil {
			return err
		}
		if !product.Active {
			return shared.ErrNotFound
		}

		existing, err := u.Carts().FindItemByProduct(ctx, c.ID, req.ProductID)
		if err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		quantity := req.Quantity
		if existing != nil {
			quantity += existing.Quantity
		}
		if !product.CanFulfill(quantity) {
			return shared.ErrOutOfStock
		}

		if existing != nil {
			if err := existing.SetQuantity(quantity, product.Price); err != nil {
				return err
			}
			if err := u.Carts().SaveItem(ctx, existing); err != nil {
				return err
			}
		} else {
			item, err := cart.NewCartItem(c.ID, req.ProductID, quantity, product.Price)
			if err != nil {
				return err
			}
			if err := u.Carts().SaveItem(ctx, item); err != nil {
				return err
			}
		}

		resp, err = s.refresh(ctx, u, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateItem changes a cart item's quantity and refreshes its price snapshot
func (s *Service) UpdateItem(ctx context.Context, userID, itemID uuid.UUID, req UpdateCartItemRequest) (*CartResponse, error) {
	var resp *CartResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		c, err := u.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}

		item, err := u.Carts().FindItem(ctx, c.ID, itemID)
		if err != nil {
			return err
		}

		product, err := u.Products().FindByID(ctx, item.ProductID)
		if err != nil {
			return err
		}
		if !product.CanFulfill(req.Quantity) {
			return shared.ErrOutOfStock
		}

		if err := item.SetQuantity(req.Quantity, product.Price); err != nil {
			return err
		}
		if err := u.Carts().SaveItem(ctx, item); err != nil {
			return err
		}

		resp, err = s.refresh(ctx, u, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// RemoveItem removes a single item from the user's cart
func (s *Service) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*CartResponse, error) {
	var resp *CartResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		c, err := u.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}

		// Scoped lookup first so one user cannot delete another's item.
		item, err := u.Carts().FindItem(ctx, c.ID, itemID)
		if err != nil {
			return err
		}
		if err := u.Carts().DeleteItem(ctx, item.ID); err != nil {
			return err
		}

		resp, err = s.refresh(ctx, u, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Clear removes every item from the user's cart. Unlike Get it does not
// create a cart on the fly; clearing a cart that was never created is
// a NotFound.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	var resp *CartResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		c, err := u.Carts().FindByUser(ctx, userID)
		if err != nil {
			return err
		}
		if err := u.Carts().DeleteItems(ctx, c.ID); err != nil {
			return err
		}

		resp, err = s.refresh(ctx, u, c)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *Service) getOrCreate(ctx context.Context, u uow.UnitOfWork, userID uuid.UUID) (*cart.Cart, error) {
	c, err := u.Carts().FindByUser(ctx, userID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	c = cart.NewCart(userID)
	if err := u.Carts().Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// refresh recomputes the cart totals from its items, persists them and
// returns the reloaded cart.
func (s *Service) refresh(ctx context.Context, u uow.UnitOfWork, c *cart.Cart) (*CartResponse, error) {
	items, err := u.Carts().ItemsByCart(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Recalculate(items)
	if err := u.Carts().Save(ctx, c); err != nil {
		return nil, err
	}

	reloaded, err := u.Carts().FindByUser(ctx, c.UserID)
	if err != nil {
		return nil, err
	}
	r := ToCartResponse(reloaded)
	return &r, nil
}
