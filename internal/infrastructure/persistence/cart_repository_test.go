package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/shared"
)

func TestGormCartRepository_FindByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	c := cart.NewCart(userID)
	require.NoError(t, repo.Save(ctx, c))

	p := mustProduct(t, db, "Keyboard", "49.90", 10)
	item, err := cart.NewCartItem(c.ID, p.ID, 2, p.Price)
	require.NoError(t, err)
	require.NoError(t, repo.SaveItem(ctx, item))

	t.Run("finds cart with items and products preloaded", func(t *testing.T) {
		found, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, found.ID)
		require.Len(t, found.Items, 1)
		assert.Equal(t, p.ID, found.Items[0].ProductID)
		require.NotNil(t, found.Items[0].Product)
		assert.Equal(t, "Keyboard", found.Items[0].Product.Name)
	})

	t.Run("returns ErrNotFound when user has no cart", func(t *testing.T) {
		_, err := repo.FindByUser(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormCartRepository_Items(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	c := cart.NewCart(uuid.New())
	require.NoError(t, repo.Save(ctx, c))

	keyboard := mustProduct(t, db, "Keyboard", "49.90", 10)
	mouse := mustProduct(t, db, "Mouse", "19.90", 10)

	kbItem, err := cart.NewCartItem(c.ID, keyboard.ID, 1, keyboard.Price)
	require.NoError(t, err)
	require.NoError(t, repo.SaveItem(ctx, kbItem))

	mouseItem, err := cart.NewCartItem(c.ID, mouse.ID, 3, mouse.Price)
	require.NoError(t, err)
	require.NoError(t, repo.SaveItem(ctx, mouseItem))

	t.Run("finds item by product", func(t *testing.T) {
		found, err := repo.FindItemByProduct(ctx, c.ID, mouse.ID)
		require.NoError(t, err)
		assert.Equal(t, mouseItem.ID, found.ID)
		assert.Equal(t, int64(3), found.Quantity)
	})

	t.Run("item by product misses for foreign product", func(t *testing.T) {
		_, err := repo.FindItemByProduct(ctx, c.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds item scoped to cart", func(t *testing.T) {
		found, err := repo.FindItem(ctx, c.ID, kbItem.ID)
		require.NoError(t, err)
		assert.Equal(t, kbItem.ID, found.ID)

		_, err = repo.FindItem(ctx, uuid.New(), kbItem.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists items by cart", func(t *testing.T) {
		items, err := repo.ItemsByCart(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("deletes a single item", func(t *testing.T) {
		require.NoError(t, repo.DeleteItem(ctx, kbItem.ID))

		items, err := repo.ItemsByCart(ctx, c.ID)
		require.NoError(t, err)
		assert.Len(t, items, 1)

		assert.ErrorIs(t, repo.DeleteItem(ctx, kbItem.ID), shared.ErrNotFound)
	})

	t.Run("deletes all items in a cart", func(t *testing.T) {
		require.NoError(t, repo.DeleteItems(ctx, c.ID))

		items, err := repo.ItemsByCart(ctx, c.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}
