package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"marketplace-service/internal/auth"
	"marketplace-service/internal/models"
	"marketplace-service/internal/service"
	"marketplace-service/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderStore backs handler tests with just enough of the OrderStore
// surface for checkout.
type stubOrderStore struct {
	mu       sync.Mutex
	products map[int64]*models.Product
	orders   map[int64]*models.Order
	items    map[int64][]models.OrderItem
	nextID   int64
}

func (s *stubOrderStore) GetProductByID(_ context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrProductNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (s *stubOrderStore) PlaceOrder(_ context.Context, order *models.Order, item *models.OrderItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[item.ProductID]
	if !ok {
		return fmt.Errorf("%w: %d", store.ErrProductNotFound, item.ProductID)
	}
	if p.Stock < item.Quantity {
		return fmt.Errorf("%w: product %d", store.ErrInsufficientStock, item.ProductID)
	}
	p.Stock -= item.Quantity
	s.nextID++
	order.ID = s.nextID
	item.ID = s.nextID
	item.OrderID = order.ID
	if s.orders == nil {
		s.orders = map[int64]*models.Order{}
		s.items = map[int64][]models.OrderItem{}
	}
	cp := *order
	s.orders[order.ID] = &cp
	s.items[order.ID] = append(s.items[order.ID], *item)
	return nil
}

func (s *stubOrderStore) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", store.ErrOrderNotFound, id)
	}
	cp := *o
	return &cp, nil
}

func (s *stubOrderStore) GetOrderItemsByOrderID(_ context.Context, orderID int64) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.OrderItem(nil), s.items[orderID]...), nil
}

func (s *stubOrderStore) ListOrdersByUser(context.Context, int64) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderStore) ListOrdersByStore(context.Context, int64) ([]models.Order, error) {
	return nil, nil
}

func (s *stubOrderStore) UpdateOrderStatus(context.Context, int64, string) error {
	return nil
}

type nopPublisher struct{}

func (nopPublisher) PublishOrderPlaced(context.Context, *models.OrderPlacedEvent) error {
	return nil
}

func (nopPublisher) PublishOrderStatusChanged(context.Context, *models.OrderStatusChangedEvent) error {
	return nil
}

func checkoutRouter(t *testing.T, stock int) (*gin.Engine, *stubOrderStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	stub := &stubOrderStore{products: map[int64]*models.Product{
		1: {ID: 1, StoreID: 1, Price: 1500, Stock: stock},
	}}

	h := NewHandler(service.NewOrderService(stub, nopPublisher{}), nil, nil, nil)
	router := gin.New()
	router.POST("/orders", h.placeOrder)
	return router, stub
}

func postOrder(router *gin.Engine, body map[string]interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validCheckout(productID int64, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"product_id":       productID,
		"quantity":         quantity,
		"customer_name":    "Alice Cooper",
		"customer_email":   "alice@example.com",
		"shipping_address": "1 Main St, Springfield",
	}
}

func TestPlaceOrderEndpointCreated(t *testing.T) {
	router, stub := checkoutRouter(t, 5)

	w := postOrder(router, validCheckout(1, 2))
	require.Equal(t, http.StatusCreated, w.Code)

	var resp service.PlaceOrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3000), resp.Order.Total)
	assert.Equal(t, int64(1500), resp.Item.Price)
	assert.Equal(t, 3, stub.products[1].Stock)
}

func TestPlaceOrderEndpointProductMissing(t *testing.T) {
	router, _ := checkoutRouter(t, 5)

	w := postOrder(router, validCheckout(99, 1))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceOrderEndpointStockConflict(t *testing.T) {
	router, stub := checkoutRouter(t, 2)

	w := postOrder(router, validCheckout(1, 3))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 2, stub.products[1].Stock)
}

func TestPlaceOrderEndpointValidation(t *testing.T) {
	router, _ := checkoutRouter(t, 5)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing product", map[string]interface{}{
			"quantity": 1, "customer_name": "A", "customer_email": "a@b.c", "shipping_address": "x",
		}},
		{"zero quantity", map[string]interface{}{
			"product_id": 1, "quantity": 0, "customer_name": "A", "customer_email": "a@b.c", "shipping_address": "x",
		}},
		{"bad email", map[string]interface{}{
			"product_id": 1, "quantity": 1, "customer_name": "A", "customer_email": "not-an-email", "shipping_address": "x",
		}},
		{"missing address", map[string]interface{}{
			"product_id": 1, "quantity": 1, "customer_name": "A", "customer_email": "a@b.c",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postOrder(router, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestOrderDetailNotPublic(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubOrderStore{products: map[int64]*models.Product{
		1: {ID: 1, StoreID: 1, Price: 1500, Stock: 5},
	}}
	h := NewHandler(service.NewOrderService(stub, nopPublisher{}), nil, nil, auth.NewResolver(nil))
	router := gin.New()
	h.SetupRoutes(router)

	w := postOrder(router, validCheckout(1, 1))
	require.Equal(t, http.StatusCreated, w.Code)

	// order details are only served under /dashboard, behind the guard
	req := httptest.NewRequest(http.MethodGet, "/orders/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/dashboard/orders/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/auth/signin", w.Header().Get("Location"))
}

func TestUserOrderScopedToOwner(t *testing.T) {
	gin.SetMode(gin.TestMode)

	stub := &stubOrderStore{products: map[int64]*models.Product{
		1: {ID: 1, StoreID: 1, Price: 1500, Stock: 5},
	}}
	svc := service.NewOrderService(stub, nopPublisher{})

	resp, err := svc.PlaceOrder(context.Background(), &service.PlaceOrderRequest{
		ProductID:       1,
		Quantity:        1,
		CustomerName:    "Alice Cooper",
		CustomerEmail:   "alice@example.com",
		ShippingAddress: "1 Main St, Springfield",
	}, 42)
	require.NoError(t, err)

	h := NewHandler(svc, nil, nil, nil)
	fetch := func(userID int64) *httptest.ResponseRecorder {
		router := gin.New()
		router.Use(func(c *gin.Context) {
			c.Set(identityKey, &auth.Identity{UserID: userID, Role: models.RoleUser})
		})
		router.GET("/dashboard/orders/:id", h.userOrder)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/dashboard/orders/%d", resp.Order.ID), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, fetch(42).Code)
	assert.Equal(t, http.StatusNotFound, fetch(7).Code)
}

func guardRouter(identity *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(identityKey, identity)
		}
	})
	router.Use(RouteGuard())

	ok := func(c *gin.Context) { c.String(http.StatusOK, "ok") }
	router.GET("/auth/signin", ok)
	router.GET("/admin/orders", ok)
	router.GET("/dashboard/orders", ok)
	router.GET("/products", ok)
	return router
}

func TestRouteGuardMiddleware(t *testing.T) {
	adminID := &auth.Identity{UserID: 1, Role: models.RoleAdmin}
	userID := &auth.Identity{UserID: 2, Role: models.RoleUser}

	tests := []struct {
		name     string
		identity *auth.Identity
		path     string
		status   int
		location string
	}{
		{"anonymous admin page", nil, "/admin/orders", http.StatusFound, "/auth/signin"},
		{"user admin page", userID, "/admin/orders", http.StatusFound, "/"},
		{"admin admin page", adminID, "/admin/orders", http.StatusOK, ""},

		{"anonymous dashboard", nil, "/dashboard/orders", http.StatusFound, "/auth/signin"},
		{"admin dashboard", adminID, "/dashboard/orders", http.StatusFound, "/admin"},
		{"user dashboard", userID, "/dashboard/orders", http.StatusOK, ""},

		{"admin auth page", adminID, "/auth/signin", http.StatusFound, "/admin"},
		{"user auth page", userID, "/auth/signin", http.StatusFound, "/"},
		{"anonymous auth page", nil, "/auth/signin", http.StatusOK, ""},

		{"anonymous public", nil, "/products", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			guardRouter(tt.identity).ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}
