package store

import (
	"context"

	"marketplace-service/internal/models"
)

// GetAdminStats aggregates the dashboard numbers for a store admin
func (s *Store) GetAdminStats(ctx context.Context, storeID int64) (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	err := s.db.GetContext(ctx, &stats.TotalProducts,
		"SELECT COUNT(*) FROM products WHERE store_id = $1", storeID)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.TotalOrders, `
		SELECT COUNT(DISTINCT o.id) FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		JOIN products p ON p.id = oi.product_id
		WHERE p.store_id = $1`, storeID)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.TotalRevenue, `
		SELECT COALESCE(SUM(oi.price * oi.quantity), 0) FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE p.store_id = $1 AND o.status <> $2`, storeID, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &stats.TopProducts,
		"SELECT * FROM products WHERE store_id = $1 ORDER BY views DESC LIMIT 5", storeID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// GetUserStats aggregates the dashboard numbers for a customer
func (s *Store) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	stats := &models.UserStats{}

	err := s.db.GetContext(ctx, &stats.TotalOrders,
		"SELECT COUNT(*) FROM orders WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.PendingOrders,
		"SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status = $2",
		userID, models.OrderStatusPending)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.DeliveredOrders,
		"SELECT COUNT(*) FROM orders WHERE user_id = $1 AND status = $2",
		userID, models.OrderStatusDelivered)
	if err != nil {
		return nil, err
	}

	err = s.db.GetContext(ctx, &stats.TotalSpent,
		"SELECT COALESCE(SUM(total), 0) FROM orders WHERE user_id = $1 AND status <> $2",
		userID, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}

	err = s.db.SelectContext(ctx, &stats.RecentOrders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY created_at DESC LIMIT 5", userID)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
