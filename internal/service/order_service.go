package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrInvalidStatus is returned when an admin submits an unknown order status
var ErrInvalidStatus = errors.New("invalid order status")

// OrderStore is the storage surface the order service needs. *store.Store
// satisfies it; tests substitute an in-memory fake.
type OrderStore interface {
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	PlaceOrder(ctx context.Context, order *models.Order, item *models.OrderItem) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error)
	ListOrdersByStore(ctx context.Context, storeID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID int64, status string) error
}

// EventPublisher publishes order lifecycle events
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event *models.OrderPlacedEvent) error
	PublishOrderStatusChanged(ctx context.Context, event *models.OrderStatusChangedEvent) error
}

// OrderService handles order placement and administration
type OrderService struct {
	store     OrderStore
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store OrderStore, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// PlaceOrderRequest represents a checkout submission
type PlaceOrderRequest struct {
	ProductID       int64  `json:"product_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerEmail   string `json:"customer_email" binding:"required,email"`
	CustomerPhone   string `json:"customer_phone"`
	ShippingAddress string `json:"shipping_address" binding:"required"`
}

// PlaceOrderResponse is returned after a successful checkout
type PlaceOrderResponse struct {
	Order *models.Order     `json:"order"`
	Item  *models.OrderItem `json:"item"`
}

// PlaceOrder validates availability, records the order with a price snapshot
// and decrements stock, all inside one storage transaction. userID is zero for
// guest checkouts. Two concurrent orders racing for the last units cannot both
// succeed; the loser gets store.ErrInsufficientStock.
func (s *OrderService) PlaceOrder(ctx context.Context, req *PlaceOrderRequest, userID int64) (*PlaceOrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.PlaceOrder")
	defer span.End()

	start := time.Now()
	defer func() {
		util.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	}()

	product, err := s.store.GetProductByID(ctx, req.ProductID)
	if err != nil {
		util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
		return nil, err
	}

	order := &models.Order{
		UserID:          sql.NullInt64{Int64: userID, Valid: userID != 0},
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		Total:           product.Price * int64(req.Quantity),
	}

	item := &models.OrderItem{
		ProductID: product.ID,
		Quantity:  req.Quantity,
		Price:     product.Price,
	}

	if err := s.store.PlaceOrder(ctx, order, item); err != nil {
		switch {
		case errors.Is(err, store.ErrInsufficientStock):
			util.StockConflictsTotal.Inc()
			util.OrdersFailedTotal.WithLabelValues("insufficient_stock").Inc()
		case errors.Is(err, store.ErrProductNotFound):
			util.OrdersFailedTotal.WithLabelValues("product_not_found").Inc()
		default:
			util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		}
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	util.OrdersPlacedTotal.Inc()
	s.logger.Info("Order placed",
		zap.Int64("order_id", order.ID),
		zap.Int64("product_id", product.ID),
		zap.Int("quantity", req.Quantity))

	s.publishOrderPlaced(ctx, order, item, product.StoreID)

	return &PlaceOrderResponse{Order: order, Item: item}, nil
}

// publishOrderPlaced emits the OrderPlaced event. Publishing is best effort;
// the order is already committed and a broker outage must not fail checkout.
func (s *OrderService) publishOrderPlaced(ctx context.Context, order *models.Order, item *models.OrderItem, storeID int64) {
	event := &models.OrderPlacedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderPlaced,
			Timestamp: time.Now(),
		},
		OrderID:   order.ID,
		ProductID: item.ProductID,
		StoreID:   storeID,
		Quantity:  item.Quantity,
		Total:     order.Total,
	}

	if err := s.publisher.PublishOrderPlaced(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderPlaced event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}
}

// GetUserOrder retrieves an order and its items for the owning customer.
// Orders belonging to someone else, and guest orders, surface as not found
// so order IDs cannot be enumerated.
func (s *OrderService) GetUserOrder(ctx context.Context, orderID, userID int64) (*models.Order, []models.OrderItem, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if !order.UserID.Valid || order.UserID.Int64 != userID {
		return nil, nil, fmt.Errorf("%w: %d", store.ErrOrderNotFound, orderID)
	}

	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	return order, items, nil
}

// ListUserOrders retrieves a customer's orders
func (s *OrderService) ListUserOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.store.ListOrdersByUser(ctx, userID)
}

// ListStoreOrders retrieves orders touching a store's products
func (s *OrderService) ListStoreOrders(ctx context.Context, storeID int64) ([]models.Order, error) {
	return s.store.ListOrdersByStore(ctx, storeID)
}

// SetOrderStatus assigns an order status by administrative action. Only
// membership in the status enum is checked; transitions are unconstrained.
func (s *OrderService) SetOrderStatus(ctx context.Context, orderID int64, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return err
	}

	event := &models.OrderStatusChangedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeOrderStatusChanged,
			Timestamp: time.Now(),
		},
		OrderID: orderID,
		Status:  status,
	}

	if err := s.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderStatusChanged event",
			zap.Int64("order_id", orderID),
			zap.Error(err))
	}

	return nil
}
