package store

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace-service/internal/models"
)

// CreateStore creates a seller store. Each admin owns at most one store;
// the unique constraint on user_id is the authority, so two concurrent
// creates cannot both win and the loser surfaces as ErrStoreExists.
func (s *Store) CreateStore(ctx context.Context, st *models.Store) error {
	query := `
		INSERT INTO stores (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := s.db.GetContext(ctx, st, query, st.UserID, st.Name, st.Description)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: user %d", ErrStoreExists, st.UserID)
	}
	return err
}

// GetStoreByID retrieves a store by ID
func (s *Store) GetStoreByID(ctx context.Context, id int64) (*models.Store, error) {
	var st models.Store
	err := s.db.GetContext(ctx, &st, "SELECT * FROM stores WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrStoreNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// GetStoreByUserID retrieves the store owned by the given admin
func (s *Store) GetStoreByUserID(ctx context.Context, userID int64) (*models.Store, error) {
	var st models.Store
	err := s.db.GetContext(ctx, &st, "SELECT * FROM stores WHERE user_id = $1", userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", ErrStoreNotFound, userID)
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListStores retrieves all stores, newest first
func (s *Store) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	err := s.db.SelectContext(ctx, &stores, "SELECT * FROM stores ORDER BY created_at DESC")
	return stores, err
}

// ListCategories retrieves all categories ordered by name
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY name")
	return categories, err
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserProfile updates a user's name and phone
func (s *Store) UpdateUserProfile(ctx context.Context, id int64, name, phone string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, `
		UPDATE users SET name = $1, phone = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING *`, name, phone, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
