package service

import (
	"context"

	"marketplace-service/internal/models"
	"marketplace-service/internal/store"
	"marketplace-service/internal/util"

	"go.uber.org/zap"
)

// StatsService aggregates dashboard statistics
type StatsService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(store *store.Store) *StatsService {
	return &StatsService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// AdminStats returns the dashboard aggregates for the calling admin's store
func (s *StatsService) AdminStats(ctx context.Context, userID int64) (*models.AdminStats, error) {
	st, err := s.store.GetStoreByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.store.GetAdminStats(ctx, st.ID)
}

// UserStats returns the dashboard aggregates for a customer
func (s *StatsService) UserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	return s.store.GetUserStats(ctx, userID)
}
