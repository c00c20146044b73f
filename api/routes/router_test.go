package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	cartsvc "github.com/vibecommerce/storefront-backend/internal/cart"
	"github.com/vibecommerce/storefront-backend/internal/catalog"
	checkoutsvc "github.com/vibecommerce/storefront-backend/internal/checkout"
	ordersvc "github.com/vibecommerce/storefront-backend/internal/orders"
	"github.com/vibecommerce/storefront-backend/pkg/config"
	pkgdb "github.com/vibecommerce/storefront-backend/pkg/db"
	"github.com/vibecommerce/storefront-backend/pkg/db/models"
)

type routerHarness struct {
	handler http.Handler
	db      *gorm.DB
	cookies []*http.Cookie
}

func setupRouter(t *testing.T) *routerHarness {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  image_url TEXT NOT NULL DEFAULT '',
  stock INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cart_items (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME,
  UNIQUE (session_id, product_id)
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  total TEXT NOT NULL,
  items TEXT NOT NULL DEFAULT '[]',
  created_at DATETIME
);`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	client := pkgdb.FromGorm(conn)
	catalogRepo := catalog.NewRepository(conn)
	cartRepo := cartsvc.NewRepository(conn)
	orderRepo := ordersvc.NewRepository(conn)

	catalogService, err := catalog.NewService(catalogRepo)
	require.NoError(t, err)
	cartService, err := cartsvc.NewService(cartRepo, catalogRepo)
	require.NoError(t, err)
	checkoutService, err := checkoutsvc.NewService(client, cartRepo, orderRepo)
	require.NoError(t, err)
	orderService, err := ordersvc.NewService(orderRepo)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session.CookieName = "cart_session_id"
	cfg.Session.CookieMaxAge = 8760 * time.Hour

	handler := NewRouter(Deps{
		Config:   cfg,
		DB:       client,
		Catalog:  catalogService,
		Cart:     cartService,
		Checkout: checkoutService,
		Orders:   orderService,
	})

	return &routerHarness{handler: handler, db: conn}
}

func (h *routerHarness) seedProduct(t *testing.T, name, price string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: decimal.RequireFromString(price),
		Stock: stock,
	}
	require.NoError(t, h.db.Create(product).Error)
	return product
}

// do sends a request, carrying the session cookie across calls like a browser.
func (h *routerHarness) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range h.cookies {
		req.AddCookie(c)
	}

	resp := httptest.NewRecorder()
	h.handler.ServeHTTP(resp, req)

	if cookies := resp.Result().Cookies(); len(cookies) > 0 {
		h.cookies = cookies
	}
	return resp
}

func decodeData(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

type cartPayload struct {
	Items []struct {
		ID       uuid.UUID `json:"id"`
		Quantity int       `json:"quantity"`
		Product  struct {
			Name  string          `json:"name"`
			Price decimal.Decimal `json:"price"`
		} `json:"product"`
	} `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func TestHealthLive(t *testing.T) {
	h := setupRouter(t)

	resp := h.do(t, http.MethodGet, "/health/live", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, "test", resp.Header().Get("X-Storefront-Env"))
}

func TestListProductsIncludesOutOfStock(t *testing.T) {
	h := setupRouter(t)
	h.seedProduct(t, "Canvas Tote", "12.50", 10)
	h.seedProduct(t, "Desk Lamp", "34.99", 0)

	resp := h.do(t, http.MethodGet, "/api/v1/products", nil)
	require.Equal(t, http.StatusOK, resp.Code)

	var products []struct {
		Name  string `json:"name"`
		Stock int    `json:"stock"`
	}
	decodeData(t, resp, &products)
	require.Len(t, products, 2)
	require.Equal(t, "Canvas Tote", products[0].Name)
	require.Equal(t, "Desk Lamp", products[1].Name)
	require.Zero(t, products[1].Stock)
}

func TestCartLifecycle(t *testing.T) {
	h := setupRouter(t)
	tote := h.seedProduct(t, "Canvas Tote", "9.99", 10)
	mapp := h.seedProduct(t, "Trail Map", "4.00", 3)

	// fresh session starts empty
	resp := h.do(t, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var cart cartPayload
	decodeData(t, resp, &cart)
	require.Empty(t, cart.Items)
	require.True(t, cart.Total.IsZero())

	// add twice, same product collapses into one line
	resp = h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": tote.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": tote.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.Code)
	resp = h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": mapp.ID})
	require.Equal(t, http.StatusCreated, resp.Code)

	decodeData(t, resp, &cart)
	require.Len(t, cart.Items, 2)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.Equal(t, "Canvas Tote", cart.Items[0].Product.Name)
	require.True(t, cart.Total.Equal(decimal.RequireFromString("23.98")), "total %s", cart.Total)

	// clamp below one
	itemID := cart.Items[1].ID
	resp = h.do(t, http.MethodPatch, "/api/v1/cart/items/"+itemID.String(), map[string]any{"quantity": -3})
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &cart)
	require.Equal(t, 1, cart.Items[1].Quantity)

	// remove, then remove again: both succeed
	resp = h.do(t, http.MethodDelete, "/api/v1/cart/items/"+itemID.String(), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	resp = h.do(t, http.MethodDelete, "/api/v1/cart/items/"+itemID.String(), nil)
	require.Equal(t, http.StatusOK, resp.Code)
	decodeData(t, resp, &cart)
	require.Len(t, cart.Items, 1)
}

func TestAddUnknownProductIs404(t *testing.T) {
	h := setupRouter(t)

	resp := h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": uuid.New(), "quantity": 1})
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCheckoutFlow(t *testing.T) {
	h := setupRouter(t)
	tote := h.seedProduct(t, "Canvas Tote", "9.99", 10)

	resp := h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": tote.ID, "quantity": 2})
	require.Equal(t, http.StatusCreated, resp.Code)

	// bad email is rejected before anything is written
	resp = h.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{"name": "Ada", "email": "not-an-email"})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	resp = h.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{"name": "Ada Example", "email": "ada@example.com"})
	require.Equal(t, http.StatusCreated, resp.Code)

	var receipt struct {
		ID    uuid.UUID       `json:"id"`
		Total decimal.Decimal `json:"total"`
		Items []struct {
			Name     string          `json:"name"`
			Quantity int             `json:"quantity"`
			Price    decimal.Decimal `json:"price"`
		} `json:"items"`
	}
	decodeData(t, resp, &receipt)
	require.True(t, receipt.Total.Equal(decimal.RequireFromString("19.98")))
	require.Len(t, receipt.Items, 1)
	require.Equal(t, "Canvas Tote", receipt.Items[0].Name)

	// cart is empty afterwards
	resp = h.do(t, http.MethodGet, "/api/v1/cart", nil)
	var cart cartPayload
	decodeData(t, resp, &cart)
	require.Empty(t, cart.Items)

	// receipt is readable from order history
	resp = h.do(t, http.MethodGet, "/api/v1/orders/"+receipt.ID.String(), nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = h.do(t, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var history []json.RawMessage
	decodeData(t, resp, &history)
	require.Len(t, history, 1)
}

func TestCheckoutEmptyCartIs400(t *testing.T) {
	h := setupRouter(t)

	resp := h.do(t, http.MethodPost, "/api/v1/checkout", map[string]any{"name": "Ada", "email": "ada@example.com"})
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSessionsAreIsolated(t *testing.T) {
	h := setupRouter(t)
	tote := h.seedProduct(t, "Canvas Tote", "9.99", 10)

	resp := h.do(t, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": tote.ID, "quantity": 1})
	require.Equal(t, http.StatusCreated, resp.Code)

	// drop the cookie jar: a new visitor sees an empty cart
	h.cookies = nil
	resp = h.do(t, http.MethodGet, "/api/v1/cart", nil)
	var cart cartPayload
	decodeData(t, resp, &cart)
	require.Empty(t, cart.Items)
}
