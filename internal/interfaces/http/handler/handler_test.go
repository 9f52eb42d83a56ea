package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appcart "github.com/shop/backend/internal/application/cart"
	appcatalog "github.com/shop/backend/internal/application/catalog"
	appidentity "github.com/shop/backend/internal/application/identity"
	apporder "github.com/shop/backend/internal/application/order"
	domaincart "github.com/shop/backend/internal/domain/cart"
	"github.com/shop/backend/internal/domain/catalog"
	"github.com/shop/backend/internal/domain/identity"
	"github.com/shop/backend/internal/domain/order"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/internal/interfaces/http/router"
)

type apiFixture struct {
	db     *gorm.DB
	engine *gin.Engine
	jwt    *auth.JWTService
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&domaincart.Cart{},
		&domaincart.CartItem{},
		&order.Order{},
		&order.OrderItem{},
	))

	database := &persistence.Database{DB: db}
	manager := persistence.NewGormTransactionManager(database)
	userRepo := persistence.NewGormUserRepository(db)
	productRepo := persistence.NewGormProductRepository(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:     "handler-test-secret",
		Expiration: time.Hour,
		Issuer:     "shop-backend-test",
	})

	authService := appidentity.NewAuthService(userRepo, jwtService, zap.NewNop())
	userService := appidentity.NewUserService(userRepo)
	productService := appcatalog.NewProductService(productRepo)
	cartService := appcart.NewService(manager)
	orderService := apporder.NewService(manager)

	engine := gin.New()
	engine.Use(middleware.RequestID())

	router.NewRouter(engine).
		Register(NewAuthHandler(authService, jwtService)).
		Register(NewProductHandler(productService, jwtService)).
		Register(NewCartHandler(cartService, jwtService)).
		Register(NewOrderHandler(orderService, jwtService)).
		Register(NewUserHandler(userService, jwtService)).
		Setup()

	return &apiFixture{db: db, engine: engine, jwt: jwtService}
}

func (f *apiFixture) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func assertAmount(t *testing.T, expected string, got any) {
	t.Helper()

	s, ok := got.(string)
	require.True(t, ok, "amount should be a JSON string, got %T", got)
	assert.True(t, decimal.RequireFromString(expected).Equal(decimal.RequireFromString(s)),
		"expected %s, got %s", expected, s)
}

// registerAndLogin creates an account through the API and returns a token.
func (f *apiFixture) registerAndLogin(t *testing.T, username string) string {
	t.Helper()

	rec := f.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := f.decode(t, rec)
	data := resp["data"].(map[string]any)
	token := data["token"].(map[string]any)
	return token["access_token"].(string)
}

// adminToken pre-seeds an admin account directly and issues a token for it.
func (f *apiFixture) adminToken(t *testing.T) string {
	t.Helper()

	admin, err := identity.NewUser("admin", "admin@example.com", "secret123")
	require.NoError(t, err)
	admin.PromoteToAdmin()
	require.NoError(t, f.db.Save(admin).Error)

	token, err := f.jwt.Generate(admin.ID, admin.Username, string(admin.Role))
	require.NoError(t, err)
	return token.AccessToken
}

func (f *apiFixture) product(t *testing.T, name, price string, stock int64) *catalog.Product {
	t.Helper()

	p, err := catalog.NewProduct(name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	require.NoError(t, f.db.Save(p).Error)
	return p
}

func TestAuthEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("register then login round trip", func(t *testing.T) {
		token := f.registerAndLogin(t, "alice")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		f.registerAndLogin(t, "bob")
		rec := f.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"username": "bob",
			"email":    "other@example.com",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		resp := f.decode(t, rec)
		errInfo := resp["error"].(map[string]any)
		assert.Equal(t, "ERR_INVALID_CREDENTIALS", errInfo["code"])
	})

	t.Run("profile requires a token", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile returns the current user without password", func(t *testing.T) {
		token := f.registerAndLogin(t, "carol")
		rec := f.request(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "carol", data["username"])
		assert.NotContains(t, data, "password")
	})
}

func TestProductEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken(t)
	customer := f.registerAndLogin(t, "shopper")

	t.Run("create requires admin", func(t *testing.T) {
		body := gin.H{"name": "Widget", "price": "9.99", "stock": 5}

		rec := f.request(t, http.MethodPost, "/api/v1/products", customer, body)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.request(t, http.MethodPost, "/api/v1/products", admin, body)
		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("listing is public and paginated", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/products?page=1&page_size=10", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		meta := resp["meta"].(map[string]any)
		assert.Equal(t, float64(1), meta["total"])
	})

	t.Run("stock update requires admin and sets an absolute level", func(t *testing.T) {
		p := f.product(t, "Gadget", "14.50", 3)

		rec := f.request(t, http.MethodPatch, "/api/v1/products/"+p.ID.String()+"/stock", customer, gin.H{
			"stock": 7,
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.request(t, http.MethodPatch, "/api/v1/products/"+p.ID.String()+"/stock", admin, gin.H{
			"stock": 7,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := f.decode(t, rec)["data"].(map[string]any)
		assert.Equal(t, float64(7), data["stock"])

		rec = f.request(t, http.MethodPatch, "/api/v1/products/"+p.ID.String()+"/stock", admin, gin.H{
			"stock": -1,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/products/00000000-0000-0000-0000-000000000001", "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed ID is 400", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/products/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCartEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndLogin(t, "dave")
	p := f.product(t, "Keyboard", "49.90", 10)

	t.Run("cart starts empty", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/carts/my-cart", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		assert.Empty(t, data["items"])
	})

	t.Run("add and update an item", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/carts/add-to-cart", token, gin.H{
			"product_id": p.ID.String(),
			"quantity":   2,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		items := data["items"].([]any)
		require.Len(t, items, 1)
		itemID := items[0].(map[string]any)["id"].(string)
		assertAmount(t, "99.80", data["total_amount"])

		rec = f.request(t, http.MethodPatch, "/api/v1/carts/cart-items/"+itemID, token, gin.H{
			"quantity": 5,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp = f.decode(t, rec)
		data = resp["data"].(map[string]any)
		assertAmount(t, "249.50", data["total_amount"])
	})

	t.Run("adding beyond stock is rejected", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/carts/add-to-cart", token, gin.H{
			"product_id": p.ID.String(),
			"quantity":   100,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		resp := f.decode(t, rec)
		errInfo := resp["error"].(map[string]any)
		assert.Equal(t, "ERR_OUT_OF_STOCK", errInfo["code"])
	})

	t.Run("clear empties the cart", func(t *testing.T) {
		rec := f.request(t, http.MethodDelete, "/api/v1/carts/clear", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		assert.Empty(t, data["items"])
	})
}

func TestOrderEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken(t)
	customer := f.registerAndLogin(t, "erin")
	p := f.product(t, "Monitor", "199.00", 4)

	var orderID string

	t.Run("placing an order reserves stock", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":            []gin.H{{"product_id": p.ID.String(), "quantity": 3}},
			"shipping_address": "1 Main St",
			"payment_method":   "card",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		orderID = data["id"].(string)
		assert.Equal(t, "pending", data["status"])
		assertAmount(t, "597.00", data["total_amount"])

		var stock int64
		require.NoError(t, f.db.Model(&catalog.Product{}).
			Where("id = ?", p.ID).Select("stock").Scan(&stock).Error)
		assert.Equal(t, int64(1), stock)
	})

	t.Run("ordering more than stock is rejected", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":            []gin.H{{"product_id": p.ID.String(), "quantity": 2}},
			"shipping_address": "1 Main St",
			"payment_method":   "card",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("customers see only their own orders", func(t *testing.T) {
		other := f.registerAndLogin(t, "frank")
		rec := f.request(t, http.MethodGet, "/api/v1/orders/my-orders", other, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		assert.Empty(t, resp["data"])

		rec = f.request(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%s", orderID), other, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("full listing requires admin", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/orders", customer, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.request(t, http.MethodGet, "/api/v1/orders", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := f.decode(t, rec)
		assert.Len(t, resp["data"], 1)
	})

	t.Run("status changes follow the lifecycle", func(t *testing.T) {
		rec := f.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, gin.H{
			"status": "shipped",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = f.request(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, gin.H{
			"status": "processing",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		resp := f.decode(t, rec)
		data := resp["data"].(map[string]any)
		assert.Equal(t, "processing", data["status"])
	})

	t.Run("cancel after processing is rejected", func(t *testing.T) {
		rec := f.request(t, http.MethodPatch, "/api/v1/orders/my-orders/"+orderID+"/cancel", customer, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("cancelling a pending order restores stock", func(t *testing.T) {
		rec := f.request(t, http.MethodPost, "/api/v1/orders", customer, gin.H{
			"items":            []gin.H{{"product_id": p.ID.String(), "quantity": 1}},
			"shipping_address": "1 Main St",
			"payment_method":   "card",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		resp := f.decode(t, rec)
		newOrderID := resp["data"].(map[string]any)["id"].(string)

		rec = f.request(t, http.MethodPatch, "/api/v1/orders/my-orders/"+newOrderID+"/cancel", customer, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var stock int64
		require.NoError(t, f.db.Model(&catalog.Product{}).
			Where("id = ?", p.ID).Select("stock").Scan(&stock).Error)
		assert.Equal(t, int64(1), stock)
	})
}

func TestUserEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.adminToken(t)
	customer := f.registerAndLogin(t, "grace")

	t.Run("listing requires admin", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/users", customer, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = f.request(t, http.MethodGet, "/api/v1/users", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin can promote a user", func(t *testing.T) {
		rec := f.request(t, http.MethodGet, "/api/v1/users?search=grace", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := f.decode(t, rec)
		users := resp["data"].([]any)
		require.Len(t, users, 1)
		userID := users[0].(map[string]any)["id"].(string)

		rec = f.request(t, http.MethodPatch, "/api/v1/users/"+userID, admin, gin.H{
			"role": "admin",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		data := f.decode(t, rec)["data"].(map[string]any)
		assert.Equal(t, "admin", data["role"])
	})
}
