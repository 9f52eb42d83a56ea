package order

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/uow"
)

// Service handles order operations. Placing and cancelling orders move
// stock, so every mutation runs inside a unit of work and either commits
// completely or not at all.
type Service struct {
	manager uow.Manager
}

// NewService creates a new order Service
func NewService(manager uow.Manager) *Service {
	return &Service{manager: manager}
}

// Create places an order. Stock is checked and decremented per line with a
// conditional update; any line that cannot be fulfilled aborts the whole
// order and restores the lines already taken.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := order.NewOrder(userID, req.ShippingAddress, req.PaymentMethod)
		if err != nil {
			return err
		}

		for _, line := range req.Items {
			product, err := u.Products().FindByID(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if err := u.Products().AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
				return err
			}
			if err := o.AddItem(line.ProductID, line.Quantity, product.Price); err != nil {
				return err
			}
		}

		if req.IsPaid {
			o.MarkPaid(time.Now())
		}

		if err := u.Orders().Save(ctx, o); err != nil {
			return err
		}

		reloaded, err := u.Orders().FindByID(ctx, o.ID, nil)
		if err != nil {
			return err
		}
		r := ToOrderResponse(reloaded)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// FindAll lists orders newest first. A non-nil userID scopes the list to
// that user's own orders.
func (s *Service) FindAll(ctx context.Context, userID *uuid.UUID) ([]OrderResponse, error) {
	var responses []OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		orders, err := u.Orders().FindAll(ctx, userID)
		if err != nil {
			return err
		}
		responses = ToOrderResponses(orders)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return responses, nil
}

// FindOne returns a single order, scoped to its owner when userID is set
func (s *Service) FindOne(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := u.Orders().FindByID(ctx, id, userID)
		if err != nil {
			return err
		}
		r := ToOrderResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update amends an order's shipping, payment method or paid flag
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := u.Orders().FindByID(ctx, id, nil)
		if err != nil {
			return err
		}

		if req.ShippingAddress != nil {
			if err := o.SetShippingAddress(*req.ShippingAddress); err != nil {
				return err
			}
		}
		if req.PaymentMethod != nil {
			if err := o.SetPaymentMethod(*req.PaymentMethod); err != nil {
				return err
			}
		}
		if req.IsPaid != nil && *req.IsPaid {
			o.MarkPaid(time.Now())
		}

		if err := u.Orders().Save(ctx, o); err != nil {
			return err
		}
		r := ToOrderResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// UpdateStatus moves an order through its lifecycle. Illegal transitions
// are rejected, and moving a pending order to cancelled restores stock.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, next order.Status) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := u.Orders().FindByID(ctx, id, nil)
		if err != nil {
			return err
		}

		restock := next == order.StatusCancelled && o.Status == order.StatusPending

		if err := o.ChangeStatus(next); err != nil {
			return err
		}
		if restock {
			if err := s.restoreStock(ctx, u, o); err != nil {
				return err
			}
		}

		if err := u.Orders().Save(ctx, o); err != nil {
			return err
		}
		r := ToOrderResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Cancel lets an owner cancel their own pending order, restoring stock
func (s *Service) Cancel(ctx context.Context, userID, id uuid.UUID) (*OrderResponse, error) {
	var resp *OrderResponse
	err := s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := u.Orders().FindByID(ctx, id, &userID)
		if err != nil {
			return err
		}

		if err := o.Cancel(); err != nil {
			return err
		}
		if err := s.restoreStock(ctx, u, o); err != nil {
			return err
		}

		if err := u.Orders().Save(ctx, o); err != nil {
			return err
		}
		r := ToOrderResponse(o)
		resp = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Remove deletes an order that has reached a terminal state
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.manager.Do(ctx, func(ctx context.Context, u uow.UnitOfWork) error {
		o, err := u.Orders().FindByID(ctx, id, nil)
		if err != nil {
			return err
		}
		if err := o.EnsureDeletable(); err != nil {
			return err
		}
		return u.Orders().Delete(ctx, o.ID)
	})
}

func (s *Service) restoreStock(ctx context.Context, u uow.UnitOfWork, o *order.Order) error {
	for i := range o.Items {
		if err := u.Products().AdjustStock(ctx, o.Items[i].ProductID, o.Items[i].Quantity); err != nil {
			return err
		}
	}
	return nil
}
