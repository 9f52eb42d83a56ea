package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/shared"
)

// fakeProductRepo is an in-memory ProductRepository for service tests
type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (f *fakeProductRepo) FindAll(_ context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range f.products {
		if category, ok := filter.Filters["category"]; ok && p.Category != category {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (f *fakeProductRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	products, err := f.FindAll(ctx, filter)
	if err != nil {
		return 0, err
	}
	return int64(len(products)), nil
}

func (f *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	clone := *p
	f.products[p.ID] = &clone
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.products[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int64) error {
	p, ok := f.products[id]
	if !ok {
		return shared.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return shared.ErrInsufficientStock
	}
	p.Stock += delta
	return nil
}

var _ catalog.ProductRepository = (*fakeProductRepo)(nil)

func TestProductService_Create(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	t.Run("creates product with optional fields", func(t *testing.T) {
		resp, err := svc.Create(ctx, CreateProductRequest{
			Name:     "Keyboard",
			Category: "peripherals",
			Price:    decimal.RequireFromString("49.90"),
			Stock:    10,
		})
		require.NoError(t, err)
		assert.Equal(t, "Keyboard", resp.Name)
		assert.Equal(t, "peripherals", resp.Category)
		assert.Equal(t, int64(10), resp.Stock)
		assert.True(t, resp.Active)

		_, err = repo.FindByID(ctx, resp.ID)
		assert.NoError(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateProductRequest{
			Name:  "Bad",
			Price: decimal.RequireFromString("-1"),
		})
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := svc.Create(ctx, CreateProductRequest{
			Name:  "  ",
			Price: decimal.RequireFromString("1"),
		})
		assert.Error(t, err)
	})
}

func TestProductService_Update(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{
		Name:  "Keyboard",
		Price: decimal.RequireFromString("49.90"),
		Stock: 10,
	})
	require.NoError(t, err)

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		newPrice := decimal.RequireFromString("39.90")
		resp, err := svc.Update(ctx, created.ID, UpdateProductRequest{Price: &newPrice})
		require.NoError(t, err)
		assert.True(t, resp.Price.Equal(newPrice))
		assert.Equal(t, "Keyboard", resp.Name)
		assert.Equal(t, int64(10), resp.Stock)
	})

	t.Run("deactivates product", func(t *testing.T) {
		inactive := false
		resp, err := svc.Update(ctx, created.ID, UpdateProductRequest{Active: &inactive})
		require.NoError(t, err)
		assert.False(t, resp.Active)
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), UpdateProductRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_GetListDelete(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{
		Name:     "Keyboard",
		Category: "peripherals",
		Price:    decimal.RequireFromString("49.90"),
		Stock:    10,
	})
	require.NoError(t, err)

	t.Run("get", func(t *testing.T) {
		resp, err := svc.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, resp.ID)
	})

	t.Run("list with category filter", func(t *testing.T) {
		result, err := svc.List(ctx, ProductListFilter{Category: "peripherals"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.Total)
		require.Len(t, result.Items, 1)

		result, err = svc.List(ctx, ProductListFilter{Category: "other"})
		require.NoError(t, err)
		assert.Zero(t, result.Total)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, created.ID))
		_, err := svc.Get(ctx, created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductService_UpdateStock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{
		Name:  "Mouse",
		Price: decimal.RequireFromString("19.90"),
		Stock: 5,
	})
	require.NoError(t, err)

	t.Run("sets an absolute stock level", func(t *testing.T) {
		resp, err := svc.UpdateStock(ctx, created.ID, 42)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.Stock)
	})

	t.Run("negative stock is rejected", func(t *testing.T) {
		_, err := svc.UpdateStock(ctx, created.ID, -1)
		assert.Error(t, err)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := svc.UpdateStock(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
