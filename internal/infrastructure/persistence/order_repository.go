package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by ID. A non-nil userID restricts the lookup to
// that user's orders, so another user's order reads as not found.
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID, userID *uuid.UUID) (*order.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items.Product").Where("id = ?", id)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var o order.Order
	if err := query.First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll returns orders newest first, optionally scoped to a user
func (r *GormOrderRepository) FindAll(ctx context.Context, userID *uuid.UUID) ([]order.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items.Product").Order("created_at DESC")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var orders []order.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	if err := r.db.WithContext(ctx).Omit("Items").Save(o).Error; err != nil {
		return err
	}
	for i := range o.Items {
		if err := r.db.WithContext(ctx).Omit("Product").Save(&o.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an order and its items
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&order.OrderItem{}, "order_id = ?", id).Error; err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&order.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormOrderRepository implements order.Repository
var _ order.Repository = (*GormOrderRepository)(nil)
