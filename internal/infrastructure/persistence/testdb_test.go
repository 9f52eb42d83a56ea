package persistence

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/order"
)

// setupTestDB creates an in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&cart.Cart{},
		&cart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	)
	require.NoError(t, err)

	return db
}

// setupTestDatabase wraps setupTestDB in a Database for transaction tests
func setupTestDatabase(t *testing.T) *Database {
	t.Helper()
	return &Database{DB: setupTestDB(t)}
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func mustProduct(t *testing.T, db *gorm.DB, name string, price string, stock int64) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct(name, mustDecimal(t, price), stock)
	require.NoError(t, err)
	require.NoError(t, db.Save(p).Error)
	return p
}
