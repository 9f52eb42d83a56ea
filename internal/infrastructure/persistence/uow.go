package persistence

import (
	"context"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/domain/uow"
	"gorm.io/gorm"
)

// GormUnitOfWork bundles repositories bound to a single transaction
type GormUnitOfWork struct {
	products *GormProductRepository
	carts    *GormCartRepository
	orders   *GormOrderRepository
}

func newGormUnitOfWork(tx *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{
		products: NewGormProductRepository(tx),
		carts:    NewGormCartRepository(tx),
		orders:   NewGormOrderRepository(tx),
	}
}

func (u *GormUnitOfWork) Products() catalog.ProductRepository { return u.products }
func (u *GormUnitOfWork) Carts() cart.Repository              { return u.carts }
func (u *GormUnitOfWork) Orders() order.Repository            { return u.orders }

// GormTransactionManager implements uow.Manager over a GORM database.
// Do runs fn inside a transaction; any error rolls back every write made
// through the unit of work.
type GormTransactionManager struct {
	db *Database
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *Database) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// Do executes fn within a database transaction
func (m *GormTransactionManager) Do(ctx context.Context, fn func(ctx context.Context, u uow.UnitOfWork) error) error {
	return m.db.Transaction(ctx, func(tx *gorm.DB) error {
		return fn(ctx, newGormUnitOfWork(tx))
	})
}

// Ensure implementations satisfy the domain interfaces
var (
	_ uow.UnitOfWork = (*GormUnitOfWork)(nil)
	_ uow.Manager    = (*GormTransactionManager)(nil)
)
