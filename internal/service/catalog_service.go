package service

import (
	"context"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// ProductRanking tracks product popularity outside the hot path: pending
// view counts and the best-seller scores maintained by the order events
// worker. *redisclient.Client satisfies it.
type ProductRanking interface {
	IncrementProductViews(ctx context.Context, productID int64) error
	TopSellers(ctx context.Context, n int64) ([]int64, error)
}

// CatalogService handles store, product and category management
type CatalogService struct {
	store   *store.Store
	ranking ProductRanking
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store *store.Store, ranking ProductRanking) *CatalogService {
	return &CatalogService{
		store:   store,
		ranking: ranking,
		logger:  util.GetLogger(),
	}
}

// CreateStoreRequest represents an admin creating their store
type CreateStoreRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateStore creates the admin's store. Fails when one already exists.
func (s *CatalogService) CreateStore(ctx context.Context, userID int64, req *CreateStoreRequest) (*models.Store, error) {
	st := &models.Store{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
	}

	if err := s.store.CreateStore(ctx, st); err != nil {
		return nil, err
	}

	s.logger.Info("Store created",
		zap.Int64("store_id", st.ID),
		zap.Int64("user_id", userID))
	return st, nil
}

// GetStore retrieves a store by ID
func (s *CatalogService) GetStore(ctx context.Context, id int64) (*models.Store, error) {
	return s.store.GetStoreByID(ctx, id)
}

// GetOwnStore retrieves the store owned by the calling admin
func (s *CatalogService) GetOwnStore(ctx context.Context, userID int64) (*models.Store, error) {
	return s.store.GetStoreByUserID(ctx, userID)
}

// ListStores retrieves all stores
func (s *CatalogService) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.store.ListStores(ctx)
}

// ListCategories retrieves all categories
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// ListProducts retrieves products, optionally scoped to a store or category
func (s *CatalogService) ListProducts(ctx context.Context, storeID, categoryID int64) ([]models.Product, error) {
	return s.store.ListProducts(ctx, storeID, categoryID)
}

// GetProduct retrieves a product and records the view. The counter lives in
// Redis and is flushed to the database by a background worker, so a Redis
// outage only loses counts, never the read.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ranking.IncrementProductViews(ctx, id); err != nil {
		s.logger.Warn("Failed to record product view",
			zap.Int64("product_id", id),
			zap.Error(err))
	} else {
		util.ProductViewsTotal.Inc()
	}

	return product, nil
}

// TopSellingProducts returns the best-selling products in rank order. The
// ranking comes from the sorted set the order events worker maintains, so a
// product that was deleted since its last sale is silently skipped.
func (s *CatalogService) TopSellingProducts(ctx context.Context, n int64) ([]models.Product, error) {
	ids, err := s.ranking.TopSellers(ctx, n)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	products, err := s.store.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return sortByRank(ids, products), nil
}

// sortByRank reorders products to follow the ranked id list, dropping ids
// with no matching product.
func sortByRank(ids []int64, products []models.Product) []models.Product {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked
}

// ProductRequest represents an admin creating or updating a product
type ProductRequest struct {
	CategoryID  int64  `json:"category_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,min=1"`
	Stock       int    `json:"stock" binding:"min=0"`
}

// CreateProduct adds a product to the calling admin's store
func (s *CatalogService) CreateProduct(ctx context.Context, userID int64, req *ProductRequest) (*models.Product, error) {
	st, err := s.store.GetStoreByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		StoreID:     st.ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := s.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.Int64("product_id", product.ID),
		zap.Int64("store_id", st.ID))
	return product, nil
}

// UpdateProduct edits a product owned by the calling admin's store.
// A product owned by another store surfaces as not found, never as forbidden.
func (s *CatalogService) UpdateProduct(ctx context.Context, userID, productID int64, req *ProductRequest) (*models.Product, error) {
	st, err := s.store.GetStoreByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          productID,
		StoreID:     st.ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	if err := s.store.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	return s.store.GetProductForStore(ctx, productID, st.ID)
}

// DeleteProduct removes a product owned by the calling admin's store
func (s *CatalogService) DeleteProduct(ctx context.Context, userID, productID int64) error {
	st, err := s.store.GetStoreByUserID(ctx, userID)
	if err != nil {
		return err
	}

	return s.store.DeleteProduct(ctx, productID, st.ID)
}

// UpdateProfileRequest represents a user updating their own profile
type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdateProfile updates the calling user's name and phone
func (s *CatalogService) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*models.User, error) {
	return s.store.UpdateUserProfile(ctx, userID, req.Name, req.Phone)
}
