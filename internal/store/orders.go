package store

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace-service/internal/models"
)

// PlaceOrder persists an order, its line item and the stock decrement as one
// transaction. The decrement is a single conditional update; zero affected
// rows means the product vanished or two orders raced for the last units, and
// the whole transaction rolls back. On success order and item carry their
// generated IDs.
func (s *Store) PlaceOrder(ctx context.Context, order *models.Order, item *models.OrderItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1",
		item.Quantity, item.ProductID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", item.ProductID); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: %d", ErrProductNotFound, item.ProductID)
		}
		return fmt.Errorf("%w: product %d", ErrInsufficientStock, item.ProductID)
	}

	err = tx.GetContext(ctx, order, `
		INSERT INTO orders (user_id, customer_name, customer_email, customer_phone, shipping_address, status, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		order.UserID, order.CustomerName, order.CustomerEmail,
		order.CustomerPhone, order.ShippingAddress, order.Status, order.Total)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	item.OrderID = order.ID
	err = tx.GetContext(ctx, &item.ID, `
		INSERT INTO order_items (order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		item.OrderID, item.ProductID, item.Quantity, item.Price)
	if err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}

	return tx.Commit()
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrOrderNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrderItemsByOrderID retrieves all items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}

// ListOrdersByUser retrieves a customer's orders, newest first
func (s *Store) ListOrdersByUser(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC", userID)
	return orders, err
}

// ListOrdersByStore retrieves orders containing the store's products, newest first
func (s *Store) ListOrdersByStore(ctx context.Context, storeID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, `
		SELECT DISTINCT o.* FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.store_id = $1
		ORDER BY o.created_at DESC`, storeID)
	return orders, err
}

// UpdateOrderStatus sets an order status by direct assignment
func (s *Store) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2",
		status, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrOrderNotFound, orderID)
	}
	return nil
}
