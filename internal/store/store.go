package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"marketplace-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Storage error taxonomy. The API layer maps these to status codes,
// so they must survive wrapping (matched with errors.Is).
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrStoreNotFound     = errors.New("store not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStoreExists       = errors.New("store already exists for user")
)

type Store struct {
	db *sqlx.DB
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation (error code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// NewStore creates a new database store
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDB returns the underlying database connection
func (s *Store) GetDB() *sqlx.DB {
	return s.db
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProductForStore retrieves a product only if it belongs to the given
// store. Used for admin edits so ownership is checked in the same query.
func (s *Store) GetProductForStore(ctx context.Context, id, storeID int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT * FROM products WHERE id = $1 AND store_id = $2", id, storeID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts retrieves products, optionally filtered by store or category.
// Zero means no filter.
func (s *Store) ListProducts(ctx context.Context, storeID, categoryID int64) ([]models.Product, error) {
	query := "SELECT * FROM products WHERE ($1 = 0 OR store_id = $1) AND ($2 = 0 OR category_id = $2) ORDER BY created_at DESC"

	var products []models.Product
	err := s.db.SelectContext(ctx, &products, query, storeID, categoryID)
	return products, err
}

// GetProductsByIDs retrieves multiple products by IDs
func (s *Store) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM products WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var products []models.Product
	err = s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// CreateProduct inserts a new product
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (store_id, category_id, title, description, price, stock)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, views, created_at, updated_at`

	return s.db.GetContext(ctx, product, query,
		product.StoreID, product.CategoryID, product.Title,
		product.Description, product.Price, product.Stock)
}

// UpdateProduct updates a product scoped to its owning store.
// Returns ErrProductNotFound when the product does not exist or is
// owned by a different store.
func (s *Store) UpdateProduct(ctx context.Context, product *models.Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET category_id = $1, title = $2, description = $3, price = $4, stock = $5, updated_at = NOW()
		WHERE id = $6 AND store_id = $7`,
		product.CategoryID, product.Title, product.Description,
		product.Price, product.Stock, product.ID, product.StoreID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, product.ID)
	}
	return nil
}

// DeleteProduct deletes a product scoped to its owning store
func (s *Store) DeleteProduct(ctx context.Context, id, storeID int64) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM products WHERE id = $1 AND store_id = $2", id, storeID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return nil
}

// AddProductViews adds a batch of view counts drained from Redis
func (s *Store) AddProductViews(ctx context.Context, productID, views int64) error {
	_, err := s.db.ExecContext(ctx,
		"UPDATE products SET views = views + $1 WHERE id = $2", views, productID)
	return err
}
