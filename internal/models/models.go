package models

import (
	"database/sql"
	"time"
)

// User is an account known to the marketplace. Admins own stores,
// regular users place orders from their dashboard.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Roles
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Store is a seller's catalog, owned by exactly one admin user.
type Store struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Category groups products across stores.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Product is a sellable item. Price is in minor currency units.
// Stock never goes negative; the store layer enforces that on decrement.
type Product struct {
	ID          int64     `db:"id" json:"id"`
	StoreID     int64     `db:"store_id" json:"store_id"`
	CategoryID  int64     `db:"category_id" json:"category_id"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description,omitempty"`
	Price       int64     `db:"price" json:"price"`
	Stock       int       `db:"stock" json:"stock"`
	Views       int64     `db:"views" json:"views"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Order is a customer purchase. UserID is null for guest checkouts.
type Order struct {
	ID              int64         `db:"id" json:"id"`
	UserID          sql.NullInt64 `db:"user_id" json:"user_id,omitempty"`
	CustomerName    string        `db:"customer_name" json:"customer_name"`
	CustomerEmail   string        `db:"customer_email" json:"customer_email"`
	CustomerPhone   string        `db:"customer_phone" json:"customer_phone,omitempty"`
	ShippingAddress string        `db:"shipping_address" json:"shipping_address"`
	Status          string        `db:"status" json:"status"`
	Total           int64         `db:"total" json:"total"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`
}

// OrderItem links an order to a product. Price is the product price at the
// time the order was placed; later price edits do not touch it.
type OrderItem struct {
	ID        int64 `db:"id" json:"id"`
	OrderID   int64 `db:"order_id" json:"order_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"`
	Price     int64 `db:"price" json:"price"`
}

// Order statuses
const (
	OrderStatusPending    = "PENDING"
	OrderStatusProcessing = "PROCESSING"
	OrderStatusShipped    = "SHIPPED"
	OrderStatusDelivered  = "DELIVERED"
	OrderStatusCancelled  = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status.
// Transitions between statuses are deliberately unconstrained.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// AdminStats is the aggregate view shown on a store admin's dashboard.
type AdminStats struct {
	TotalProducts int       `json:"total_products"`
	TotalOrders   int       `json:"total_orders"`
	TotalRevenue  int64     `json:"total_revenue"`
	TopProducts   []Product `json:"top_products"`
}

// UserStats is the aggregate view shown on a customer's dashboard.
type UserStats struct {
	TotalOrders     int     `json:"total_orders"`
	PendingOrders   int     `json:"pending_orders"`
	DeliveredOrders int     `json:"delivered_orders"`
	TotalSpent      int64   `json:"total_spent"`
	RecentOrders    []Order `json:"recent_orders"`
}
